package repository

import (
	"context"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
)

type TagRepository interface {
	// List returns every tag ordered by usage_count descending.
	List(ctx context.Context) ([]*domain.Tag, error)
	ListByCategory(ctx context.Context, category domain.TagCategory, systemOnly bool) ([]*domain.Tag, error)
	GetByIDs(ctx context.Context, ids []int) (map[int]*domain.Tag, error)
	Create(ctx context.Context, tag *domain.Tag) error
	AdjustUsage(ctx context.Context, added, removed []int) error
}
