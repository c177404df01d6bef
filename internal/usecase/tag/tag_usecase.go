package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/gdugdh24/cofounder-backend/internal/usecase"
)

type TagUseCase struct {
	tagRepo repository.TagRepository
}

func NewTagUseCase(tagRepo repository.TagRepository) *TagUseCase {
	return &TagUseCase{tagRepo: tagRepo}
}

type CreateTagRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=20"`
	Category string `json:"category" binding:"required,oneof=ability direction role"`
}

// ListAll returns every tag, most used first.
func (uc *TagUseCase) ListAll(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := uc.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// ListByCategory returns the system tags of one category, most used first.
func (uc *TagUseCase) ListByCategory(ctx context.Context, category string) ([]*domain.Tag, error) {
	c := domain.TagCategory(category)
	if !c.Valid() {
		return nil, fmt.Errorf("%w: category must be one of [ability direction role]", domain.ErrInvalidInput)
	}
	tags, err := uc.tagRepo.ListByCategory(ctx, c, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Create adds a user-defined tag.
func (uc *TagUseCase) Create(ctx context.Context, req *CreateTagRequest) (*domain.Tag, error) {
	req.Name = strings.Join(strings.Fields(req.Name), " ")
	if err := usecase.Validate(req); err != nil {
		return nil, err
	}

	tag := &domain.Tag{
		Name:     req.Name,
		Category: domain.TagCategory(req.Category),
	}
	if err := uc.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, domain.ErrTagAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}
