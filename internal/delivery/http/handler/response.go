package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrCannotInterestSelf, http.StatusBadRequest},
	{domain.ErrOnboardingIncomplete, http.StatusBadRequest},
	{domain.ErrInvalidStage, http.StatusBadRequest},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrSessionNotFound, http.StatusUnauthorized},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrProfileNotFound, http.StatusNotFound},
	{domain.ErrTagNotFound, http.StatusNotFound},
	{domain.ErrInterestNotFound, http.StatusNotFound},
	{domain.ErrConnectionNotFound, http.StatusNotFound},
	{domain.ErrUserAlreadyExists, http.StatusConflict},
	{domain.ErrProfileAlreadyExists, http.StatusConflict},
	{domain.ErrTagAlreadyExists, http.StatusConflict},
	{domain.ErrInterestAlreadyExists, http.StatusConflict},
	{domain.ErrInterestNotPending, http.StatusConflict},
	{domain.ErrAssistantUnavailable, http.StatusServiceUnavailable},
}

// StatusFor maps a use case error to its HTTP status code.
func StatusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err as an ErrorResponse. Unexpected errors are attached
// to the gin context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// currentUserID returns the caller set by the auth middleware, writing a 401
// when it is missing.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}
