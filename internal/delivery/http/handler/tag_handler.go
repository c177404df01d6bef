package handler

import (
	"net/http"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/usecase"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/tag"
	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagUseCase *tag.TagUseCase
}

func NewTagHandler(tagUseCase *tag.TagUseCase) *TagHandler {
	return &TagHandler{
		tagUseCase: tagUseCase,
	}
}

// List handles GET /tags
// @Summary List tags
// @Description All tags by popularity, or the system tags of one category
// @Tags tags
// @Security BearerAuth
// @Produce json
// @Param category query string false "ability, direction or role"
// @Success 200 {array} domain.Tag
// @Router /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	var (
		tags []*domain.Tag
		err  error
	)
	if category := c.Query("category"); category != "" {
		tags, err = h.tagUseCase.ListByCategory(c.Request.Context(), category)
	} else {
		tags, err = h.tagUseCase.ListAll(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}

// Create handles POST /tags
func (h *TagHandler) Create(c *gin.Context) {
	var req tag.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, usecase.ValidationError(err))
		return
	}

	created, err := h.tagUseCase.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}
