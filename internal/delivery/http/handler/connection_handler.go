package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/usecase"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/connection"
	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	connectionUseCase *connection.ConnectionUseCase
}

func NewConnectionHandler(connectionUseCase *connection.ConnectionUseCase) *ConnectionHandler {
	return &ConnectionHandler{
		connectionUseCase: connectionUseCase,
	}
}

// List handles GET /connections
// @Summary List connections
// @Description Revealed founders the caller is connected with
// @Tags connections
// @Security BearerAuth
// @Produce json
// @Param status query string false "active (default) or archived"
// @Success 200 {array} domain.ConnectedUser
// @Router /connections [get]
func (h *ConnectionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.connectionUseCase.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// UpdateStage handles PUT /connections/:id/stage
func (h *ConnectionHandler) UpdateStage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	connectionID, ok := connectionIDParam(c)
	if !ok {
		return
	}

	var req connection.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, usecase.ValidationError(err))
		return
	}

	updated, err := h.connectionUseCase.UpdateStage(c.Request.Context(), userID, connectionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Archive handles POST /connections/:id/archive
func (h *ConnectionHandler) Archive(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	connectionID, ok := connectionIDParam(c)
	if !ok {
		return
	}

	archived, err := h.connectionUseCase.Archive(c.Request.Context(), userID, connectionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, archived)
}

func connectionIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid connection id", domain.ErrInvalidInput))
		return 0, false
	}
	return id, true
}
