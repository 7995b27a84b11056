package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/sparkdate/spark-server/pkg/errors"
	"github.com/sparkdate/spark-server/pkg/logger"
)

// ResponseData is the envelope every API response uses.
type ResponseData struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a standard success response.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Created sends a standard resource created response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, ResponseData{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// Error sends a standard error response.
func Error(c *gin.Context, statusCode int, errorMessage string) {
	c.JSON(statusCode, ResponseData{
		Status:  statusCode,
		Message: "An error occurred",
		Error:   errorMessage,
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, errorMessage string) {
	Error(c, http.StatusBadRequest, errorMessage)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, errorMessage string) {
	Error(c, http.StatusUnauthorized, errorMessage)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, errorMessage string) {
	Error(c, http.StatusNotFound, errorMessage)
}

// TooManyRequests sends a 429 Too Many Requests error response.
func TooManyRequests(c *gin.Context, errorMessage string) {
	Error(c, http.StatusTooManyRequests, errorMessage)
}

// FromError maps an application error onto the matching HTTP status.
// Unrecognized errors are reported as 500 without leaking their details.
func FromError(c *gin.Context, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		logger.Error("Unhandled error", "path", c.FullPath(), "error", err)
		Error(c, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Code {
	case apperrors.ErrCodeValidation:
		Error(c, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrCodeUnauthorized:
		Error(c, http.StatusUnauthorized, appErr.Message)
	case apperrors.ErrCodeForbidden:
		Error(c, http.StatusForbidden, appErr.Message)
	case apperrors.ErrCodeNotFound:
		Error(c, http.StatusNotFound, appErr.Message)
	case apperrors.ErrCodeConflict, apperrors.ErrCodeAlreadyExists:
		Error(c, http.StatusConflict, appErr.Message)
	case apperrors.ErrCodeRateLimitExceeded:
		Error(c, http.StatusTooManyRequests, appErr.Message)
	default:
		logger.Error("Request failed", "path", c.FullPath(), "code", appErr.Code, "error", err)
		Error(c, http.StatusInternalServerError, "internal server error")
	}
}
