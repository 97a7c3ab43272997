package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"accounts/internal/auth"
	"accounts/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const currentUserContextKey = "current-user"

// RequestUser carries the authenticated identity through the gin context.
type RequestUser struct {
	ID    uint
	Name  string
	Email string
	Role  entity.Role
}

// AuthMiddleware authenticates a request from its Bearer token. The token's
// subject is reloaded from the store on every request so that deletion,
// deactivation and password changes take effect immediately.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortFail(c, http.StatusUnauthorized, "You're not logged in! Please log in to the application")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortFail(c, http.StatusUnauthorized, "You're not logged in! Please log in to the application")
			return
		}

		claims, err := h.tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				abortFail(c, http.StatusUnauthorized, "Your session has expired! Please log in again.")
				return
			}
			logrus.WithError(err).Warn("failed to parse jwt token")
			abortFail(c, http.StatusUnauthorized, "Invalid token! Please log in again.")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := h.repo.GetUserByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortFail(c, http.StatusUnauthorized, "The user associated with this token is deleted.")
				return
			}
			logrus.WithError(err).WithField("user_id", claims.UserID).Error("failed to load user")
			abortFail(c, http.StatusInternalServerError, "Failed to verify user")
			return
		}

		if !user.IsActive {
			abortFail(c, http.StatusForbidden, "This account has been deactivated.")
			return
		}

		// Tokens issued before the latest password change are stale.
		if claims.IssuedAt != nil && user.PasswordChangedAfter(claims.IssuedAt.Time) {
			abortFail(c, http.StatusUnauthorized, "User recently changed password! Please login again.")
			return
		}

		c.Set(currentUserContextKey, &RequestUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		c.Next()
	}
}

// RequireRoles gates a route on an allow-list of roles.
func (h *HTTPHandler) RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !roleAllowed(user.Role, roles) {
			abortFail(c, http.StatusForbidden, "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}

func roleAllowed(role entity.Role, allowed []entity.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// CurrentUser returns the authenticated user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) *RequestUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*RequestUser)
	if !ok {
		return nil
	}
	return user
}
