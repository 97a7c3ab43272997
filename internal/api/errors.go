package api

import (
	"net/http"

	"accounts/internal/entity"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
)

// FailResponse is the envelope for single-message failures.
type FailResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// FailFieldsResponse is the envelope for per-field validation failures.
type FailFieldsResponse struct {
	Status string              `json:"status"`
	Data   []entity.FieldError `json:"data"`
}

// Fail writes a single-message failure envelope.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, FailResponse{
		Status:  statusFail,
		Message: message,
	})
}

// FailFields writes a per-field validation failure envelope.
func FailFields(c *gin.Context, fields []entity.FieldError) {
	c.JSON(http.StatusBadRequest, FailFieldsResponse{
		Status: statusFail,
		Data:   fields,
	})
}

// BadRequest writes a 400 failure.
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 failure.
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 failure.
func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

// NotFound writes a 404 failure.
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// InternalError writes a 500 failure. The message is generic on purpose;
// details stay in the logs.
func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}

// abortFail writes a failure envelope and stops the middleware chain.
func abortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, FailResponse{
		Status:  statusFail,
		Message: message,
	})
}
