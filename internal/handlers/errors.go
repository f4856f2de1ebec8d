package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobwave/internal/auth"
	"github.com/justsurfingit/jobwave/internal/connector"
	"github.com/justsurfingit/jobwave/internal/services"
	"go.uber.org/zap"
)

var badRequest = []error{
	auth.ErrMissingCredentials,
	auth.ErrMissingFields,
	auth.ErrInvalidRole,
	services.ErrInvalidStatus,
	services.ErrJobNotOpen,
	services.ErrConfirmDelete,
	services.ErrCompanyRequired,
}

// statusOf maps service and connector errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, connector.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAlreadyApplied), errors.Is(err, connector.ErrCompanyTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnsupportedResume):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrResumeTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrExtractionDisabled):
		return http.StatusServiceUnavailable
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// userMessage hides internal errors from the client.
func userMessage(err error) string {
	if statusOf(err) == http.StatusInternalServerError {
		return "Something went wrong, please try again"
	}
	return err.Error()
}

// respondError writes the JSON error body for err.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		log.Error("❌ Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(code, gin.H{"error": userMessage(err)})
}
