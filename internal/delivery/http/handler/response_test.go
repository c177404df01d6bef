package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: name is required", domain.ErrInvalidInput), http.StatusBadRequest},
		{domain.ErrCannotInterestSelf, http.StatusBadRequest},
		{domain.ErrOnboardingIncomplete, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("failed to get profile: %w", domain.ErrProfileNotFound), http.StatusNotFound},
		{domain.ErrInterestAlreadyExists, http.StatusConflict},
		{domain.ErrInterestNotPending, http.StatusConflict},
		{domain.ErrAssistantUnavailable, http.StatusServiceUnavailable},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("pq: relation \"profiles\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	assert.Len(t, c.Errors, 1)
	assert.True(t, c.IsAborted())
}

func TestRespondError_ExposesDomainErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, domain.ErrInterestAlreadyExists)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, domain.ErrInterestAlreadyExists.Error()), w.Body.String())
	assert.Empty(t, c.Errors)
}

func TestCurrentUserID_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	_, ok := currentUserID(c)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
