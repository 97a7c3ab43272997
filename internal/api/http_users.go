package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"accounts/internal/auth"
	"accounts/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GetAllUsers lists users with pagination and sorting.
func (h *HTTPHandler) GetAllUsers(c *gin.Context) {
	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, "Invalid query parameters")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, meta, err := h.repo.ListUsers(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		InternalError(c, "Failed to load users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"count":  len(users),
		"meta":   meta,
		"data":   gin.H{"docs": users},
	})
}

// GetUser loads a single user by ID.
func (h *HTTPHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "No document found with that ID")
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to load user")
		InternalError(c, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"data":   gin.H{"doc": user},
	})
}

// CreateUser is the administrative create. Outside the test environment it is
// disabled: accounts are only ever created through sign-up.
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	if !h.cfg.IsTest() {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "Unauthorized",
			"message": "Use /auth/signUp route",
		})
		return
	}

	var req entity.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid request payload")
		return
	}

	if fieldErrs := entity.ValidateNewUser(req.Name, req.Email, req.Password, req.ConfirmPassword); len(fieldErrs) > 0 {
		FailFields(c, fieldErrs)
		return
	}

	role := entity.RoleUser
	if strings.TrimSpace(req.Role) != "" {
		role = entity.ParseRole(req.Role)
		if role == "" {
			BadRequest(c, "Invalid role")
			return
		}
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password for new user")
		InternalError(c, "Failed to create user")
		return
	}

	user := &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        entity.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, `Duplicate field value: "email". Please use another value`)
			return
		}
		logrus.WithError(err).Error("failed to create user")
		InternalError(c, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": statusSuccess,
		"data":   gin.H{"doc": user},
	})
}

// UpdateUser is the administrative update: name, email, active flag and role.
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req entity.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid request payload")
		return
	}

	updates := entity.UserUpdates{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			BadRequest(c, "Please provide the name")
			return
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		if !entity.IsValidEmail(*req.Email) {
			BadRequest(c, "Please provide a valid email")
			return
		}
		updates["email"] = entity.NormalizeEmail(*req.Email)
	}
	if req.Role != nil {
		role := entity.ParseRole(*req.Role)
		if role == "" {
			BadRequest(c, "Invalid role")
			return
		}
		updates["role"] = role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	h.applyUserUpdates(c, id, updates)
}

// UpdateMe lets the authenticated user change name and email. Anything else
// in the body is dropped before it can reach the store.
func (h *HTTPHandler) UpdateMe(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "Please sign in to the application")
		return
	}

	var req entity.UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid request payload")
		return
	}

	updates := entity.UserUpdates{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			BadRequest(c, "Please provide the name")
			return
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		if !entity.IsValidEmail(*req.Email) {
			BadRequest(c, "Please provide a valid email")
			return
		}
		updates["email"] = entity.NormalizeEmail(*req.Email)
	}

	h.applyUserUpdates(c, requestUser.ID, updates)
}

// DeleteUser removes a user by ID.
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "No document found with that ID")
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to delete user")
		InternalError(c, "Failed to delete user")
		return
	}

	c.JSON(http.StatusNoContent, gin.H{
		"status": statusSuccess,
		"data":   nil,
	})
}

// applyUserUpdates persists a partial update and responds with the refreshed
// document.
func (h *HTTPHandler) applyUserUpdates(c *gin.Context, id uint, updates entity.UserUpdates) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if len(updates) > 0 {
		if err := h.repo.UpdateUser(ctx, id, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				NotFound(c, "No document found with that ID")
				return
			}
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				BadRequest(c, `Duplicate field value: "email". Please use another value`)
				return
			}
			logrus.WithError(err).WithField("user_id", id).Error("failed to update user")
			InternalError(c, "Failed to update user")
			return
		}
	}

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "No document found with that ID")
			return
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to reload user after update")
		InternalError(c, "Failed to load updated user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"data":   gin.H{"doc": user},
	})
}

func parseUserID(c *gin.Context) (uint, bool) {
	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, "Invalid user id")
		return 0, false
	}
	return uint(id), true
}
