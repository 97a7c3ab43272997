package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"accounts/internal/auth"
	"accounts/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Tokens minted right after a password change must not be rejected as stale
// by the gate, so the change timestamp is backdated to absorb clock and
// processing skew between persistence and issuance.
const passwordChangedBackdate = 10 * time.Second

// sendToken issues a fresh session token for the user and writes the success
// envelope. The password hash never serializes.
func (h *HTTPHandler) sendToken(c *gin.Context, user *entity.User, status int) {
	token, _, err := h.tokens.Generate(user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to generate token")
		InternalError(c, "Failed to create session")
		return
	}

	c.JSON(status, gin.H{
		"status": statusSuccess,
		"jwt":    token,
		"data":   gin.H{"user": user},
	})
}

// SignUp registers a new account. The role is always forced to User here;
// privileged creation lives on the admin surface.
func (h *HTTPHandler) SignUp(c *gin.Context) {
	var req entity.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid request payload")
		return
	}

	if fieldErrs := entity.ValidateNewUser(req.Name, req.Email, req.Password, req.ConfirmPassword); len(fieldErrs) > 0 {
		FailFields(c, fieldErrs)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "Failed to register user")
		return
	}

	user := &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        entity.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         entity.RoleUser,
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
		InternalError(c, "Failed to register user")
		return
	}

	if !h.cfg.IsTest() {
		go func(email, name string) {
			if err := h.mailer.SendWelcome(email, name); err != nil {
				logrus.WithError(err).WithField("email", email).Warn("failed to send welcome email")
			}
		}(user.Email, user.Name)
	}

	h.sendToken(c, user, http.StatusCreated)
}

// SignIn authenticates by email and password.
func (h *HTTPHandler) SignIn(c *gin.Context) {
	var req entity.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid request payload")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		BadRequest(c, "Please provide email and password")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByEmail(ctx, entity.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Unauthorized(c, "There is no active user associated to this email")
			return
		}
		logrus.WithError(err).Error("failed to load user for sign-in")
		InternalError(c, "Failed to sign in")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		logrus.WithField("email", user.Email).Warn("password verification failed")
		Unauthorized(c, "Password is incorrect.")
		return
	}

	h.sendToken(c, user, http.StatusOK)
}

// UpdateMyPassword changes the password of the authenticated user. The
// missing-field checks run in a fixed order so each omission gets its own
// message.
func (h *HTTPHandler) UpdateMyPassword(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "Please sign in to the application")
		return
	}

	var req entity.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid request payload")
		return
	}

	if req.CurrentPassword == "" {
		BadRequest(c, "Please provide the current password")
		return
	}
	if req.NewPassword == "" {
		BadRequest(c, "Please provide the new password")
		return
	}
	if req.ConfirmPassword == "" {
		BadRequest(c, "Please provide the confirm password")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, requestUser.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Unauthorized(c, "Please sign in to the application")
			return
		}
		logrus.WithError(err).WithField("user_id", requestUser.ID).Error("failed to load user for password change")
		InternalError(c, "Failed to update password")
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		BadRequest(c, "Current password does not match")
		return
	}

	if fieldErrs := entity.ValidatePassword(req.NewPassword, req.ConfirmPassword); len(fieldErrs) > 0 {
		FailFields(c, fieldErrs)
		return
	}

	if err := h.applyNewPassword(ctx, user, req.NewPassword, false); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to update password")
		InternalError(c, "Failed to update password")
		return
	}

	h.sendToken(c, user, http.StatusOK)
}

// ForgetPassword starts password recovery for an email taken from the query
// string or the request body.
func (h *HTTPHandler) ForgetPassword(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		var req entity.ForgetPasswordRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			email = strings.TrimSpace(req.Email)
		}
	}
	if email == "" {
		BadRequest(c, "Please provide email to use this endpoint")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "No user found!")
			return
		}
		logrus.WithError(err).Error("failed to load user for password recovery")
		InternalError(c, "Failed to process password recovery")
		return
	}

	reset, err := auth.GenerateResetToken(h.cfg.ResetTokenTTL())
	if err != nil {
		logrus.WithError(err).Error("failed to generate reset token")
		InternalError(c, "Failed to process password recovery")
		return
	}

	// Partial update on purpose: only the reset bookkeeping changes, the rest
	// of the record is left untouched and unvalidated.
	updates := entity.UserUpdates{
		"password_reset_token_hash": reset.Hash,
		"password_reset_expires_at": reset.ExpiresAt,
	}
	if err := h.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to store reset token")
		InternalError(c, "Failed to process password recovery")
		return
	}

	if !h.cfg.IsTest() {
		go func(email, name, code string) {
			if err := h.mailer.SendPasswordReset(email, name, code); err != nil {
				logrus.WithError(err).WithField("email", email).Warn("failed to send reset email")
			}
		}(user.Email, user.Name, reset.Plain)
	}

	response := gin.H{
		"status":  statusSuccess,
		"message": "Token sent to email!",
	}
	// Dev/test convenience only; production clients get the code by mail.
	if !h.cfg.IsProduction() {
		response["token"] = reset.Plain
	}
	c.JSON(http.StatusOK, response)
}

// ResetPassword consumes a reset code and sets a new password.
func (h *HTTPHandler) ResetPassword(c *gin.Context) {
	hash := auth.HashResetCode(strings.TrimSpace(c.Param("token")))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.repo.GetUserByResetTokenHash(ctx, hash, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			BadRequest(c, "Token is expired or not valid!")
			return
		}
		logrus.WithError(err).Error("failed to look up reset token")
		InternalError(c, "Failed to reset password")
		return
	}

	var req entity.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid request payload")
		return
	}

	if fieldErrs := entity.ValidatePassword(req.NewPassword, req.ConfirmPassword); len(fieldErrs) > 0 {
		FailFields(c, fieldErrs)
		return
	}

	if err := h.applyNewPassword(ctx, user, req.NewPassword, true); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to reset password")
		InternalError(c, "Failed to reset password")
		return
	}

	h.sendToken(c, user, http.StatusOK)
}

// applyNewPassword hashes and persists a new password, stamps the backdated
// change time and, when consuming a reset token, clears the token columns so
// the code cannot be replayed.
func (h *HTTPHandler) applyNewPassword(ctx context.Context, user *entity.User, newPassword string, clearResetToken bool) error {
	hash, err := auth.HashPassword(newPassword, h.cfg.BcryptCost)
	if err != nil {
		return err
	}

	changedAt := time.Now().Add(-passwordChangedBackdate)
	updates := entity.UserUpdates{
		"password_hash":       hash,
		"password_changed_at": changedAt,
	}
	if clearResetToken {
		updates["password_reset_token_hash"] = nil
		updates["password_reset_expires_at"] = nil
	}

	if err := h.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		return err
	}

	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt
	if clearResetToken {
		user.PasswordResetTokenHash = nil
		user.PasswordResetExpiresAt = nil
	}
	return nil
}
