package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vinayakfood/website/backend/internal/logger"
	"github.com/vinayakfood/website/backend/internal/service"
)

// LoginURL is where the admin UI sends a caller whose session is missing or invalid
const LoginURL = "/admin/login"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	LoginURL string `json:"login_url,omitempty"`
}

// ErrorHandler renders the last error a handler attached with c.Error.
// Service errors map to their status; anything unexpected is logged and
// reported as a generic failure.
func ErrorHandler(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, body := Classify(err)
		if status == http.StatusInternalServerError {
			logger.FromContext(c.Request.Context(), base).Error("request failed", zap.Error(err))
		}
		c.JSON(status, body)
	}
}

// Classify maps an error to its HTTP status and response body
func Classify(err error) (int, ErrorResponse) {
	var (
		authErr       *service.AuthError
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		uploadErr     *service.UploadError
	)

	switch {
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, ErrorResponse{Error: authErr.Reason, LoginURL: LoginURL}
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: validationErr.Message, Field: validationErr.Field}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, ErrorResponse{Error: notFoundErr.Resource + " not found"}
	case errors.As(err, &uploadErr):
		return http.StatusBadGateway, ErrorResponse{Error: uploadErr.Message}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrorResponse{Error: "request timed out"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "something went wrong"}
	}
}
