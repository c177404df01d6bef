package handler

import (
	"net/http"

	"github.com/gdugdh24/cofounder-backend/internal/usecase"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/pool"
	"github.com/gin-gonic/gin"
)

type PoolHandler struct {
	poolUseCase *pool.PoolUseCase
}

func NewPoolHandler(poolUseCase *pool.PoolUseCase) *PoolHandler {
	return &PoolHandler{
		poolUseCase: poolUseCase,
	}
}

// Browse handles GET /pool
// @Summary Browse the pool
// @Description List anonymous cards of other founders with filters and sorting
// @Tags pool
// @Security BearerAuth
// @Produce json
// @Param tags query []int false "Tag ids the card must carry"
// @Param category query string false "Tag category (ability, direction, role)"
// @Param q query string false "Free-text search in title, bio and vision"
// @Param min_completion query int false "Minimum completion percent"
// @Param exclude_connected query bool false "Hide already connected founders"
// @Param sort query string false "newest, match or completion"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {object} pool.BrowseResponse
// @Failure 400 {object} ErrorResponse
// @Router /pool [get]
func (h *PoolHandler) Browse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req pool.BrowseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, usecase.ValidationError(err))
		return
	}

	resp, err := h.poolUseCase.Browse(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
