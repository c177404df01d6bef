package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/usecase"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/interest"
	"github.com/gin-gonic/gin"
)

type InterestHandler struct {
	interestUseCase *interest.InterestUseCase
}

func NewInterestHandler(interestUseCase *interest.InterestUseCase) *InterestHandler {
	return &InterestHandler{
		interestUseCase: interestUseCase,
	}
}

// Send handles POST /interests
// @Summary Send interest
// @Description Express interest in another founder. A reciprocal interest creates a connection.
// @Tags interests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body interest.SendInterestRequest true "Receiver"
// @Success 201 {object} interest.MatchResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /interests [post]
func (h *InterestHandler) Send(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req interest.SendInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, usecase.ValidationError(err))
		return
	}

	result, err := h.interestUseCase.Send(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListReceived handles GET /interests/received
func (h *InterestHandler) ListReceived(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.interestUseCase.ListReceived(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListSent handles GET /interests/sent
func (h *InterestHandler) ListSent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.interestUseCase.ListSent(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Respond handles POST /interests/:id/respond
// @Summary Respond to interest
// @Description Accept or reject a pending interest addressed to the caller
// @Tags interests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Interest ID"
// @Param request body interest.RespondRequest true "Decision"
// @Success 200 {object} interest.MatchResult
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /interests/{id}/respond [post]
func (h *InterestHandler) Respond(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	interestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid interest id", domain.ErrInvalidInput))
		return
	}

	var req interest.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, usecase.ValidationError(err))
		return
	}

	result, err := h.interestUseCase.Respond(c.Request.Context(), userID, interestID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
