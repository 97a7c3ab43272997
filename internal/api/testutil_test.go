package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"accounts/internal/auth"
	"accounts/internal/config"
	"accounts/internal/entity"
	"accounts/internal/mail"

	"github.com/gin-gonic/gin"
)

const testBcryptCost = 4

func testConfig(environment string) config.Config {
	return config.Config{
		Environment:          environment,
		JWTSecret:            "test-secret",
		JWTIssuer:            "accounts-test",
		JWTExpirationMinutes: 60,
		BcryptCost:           testBcryptCost,
		ResetTokenTTLMinutes: 10,
	}
}

// newTestServer wires the handler set against an in-memory repository and a
// no-op mailer.
func newTestServer(t *testing.T, environment string) (*HTTPHandler, *fakeRepo, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig(environment)
	repo := newFakeRepo()

	handler, err := NewHTTPHandler(cfg, repo, mail.New(cfg))
	if err != nil {
		t.Fatalf("failed to build handler: %v", err)
	}

	r := gin.New()
	handler.RegisterRoutes(r)
	return handler, repo, r
}

// seedUser inserts a user directly into the fake store.
func seedUser(t *testing.T, repo *fakeRepo, name, email, password string, role entity.Role) *entity.User {
	t.Helper()

	hash, err := auth.HashPassword(password, testBcryptCost)
	if err != nil {
		t.Fatalf("failed to hash seed password: %v", err)
	}
	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return body
}

// signInToken runs the sign-in flow and returns the issued token.
func signInToken(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/auth/signIn", entity.SignInRequest{Email: email, Password: password}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in failed with status %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	token, _ := body["jwt"].(string)
	if token == "" {
		t.Fatal("expected jwt in sign-in response")
	}
	return token
}
