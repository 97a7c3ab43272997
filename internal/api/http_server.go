package api

import (
	"accounts/internal/auth"
	"accounts/internal/config"
	"accounts/internal/entity"
	"accounts/internal/mail"
	"accounts/internal/model"

	"github.com/gin-gonic/gin"
)

// HTTPHandler bundles the dependencies of every HTTP endpoint.
type HTTPHandler struct {
	cfg    config.Config
	repo   model.Repository
	tokens *auth.Manager
	mailer *mail.Mailer
}

// NewHTTPHandler creates the HTTP handler set.
func NewHTTPHandler(cfg config.Config, repo model.Repository, mailer *mail.Mailer) (*HTTPHandler, error) {
	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry())
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:    cfg,
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
	}, nil
}

// RegisterRoutes mounts the auth flows and the user resource on the engine.
func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	authGroup.POST("/signUp", h.SignUp)
	authGroup.POST("/signIn", h.SignIn)
	authGroup.GET("/forgetPassword", h.ForgetPassword)
	authGroup.PATCH("/updateMyPassword/:token", h.ResetPassword)
	authGroup.PATCH("/updateMyPassword", h.AuthMiddleware(), h.UpdateMyPassword)

	users := r.Group("/users")
	users.Use(h.AuthMiddleware())
	users.PATCH("/updateMe", h.UpdateMe)

	admin := users.Group("")
	admin.Use(h.RequireRoles(entity.RoleAdmin))
	admin.GET("", h.GetAllUsers)
	admin.POST("", h.CreateUser)
	admin.GET("/:id", h.GetUser)
	admin.PATCH("/:id", h.UpdateUser)
	admin.DELETE("/:id", h.DeleteUser)
}
