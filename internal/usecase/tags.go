package usecase

import (
	"context"
	"fmt"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
)

// ResolveTags loads every tag referenced by the given profiles in one query.
func ResolveTags(ctx context.Context, repo repository.TagRepository, profiles ...*domain.Profile) (map[int]*domain.Tag, error) {
	seen := make(map[int]struct{})
	ids := make([]int, 0)
	for _, p := range profiles {
		if p == nil {
			continue
		}
		for _, id := range p.Tags {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[int]*domain.Tag{}, nil
	}

	tags, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	return tags, nil
}

// CheckTagCategory verifies that every id is an existing tag of category.
func CheckTagCategory(ctx context.Context, repo repository.TagRepository, field string, category domain.TagCategory, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	tags, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to get tags: %w", err)
	}
	for _, id := range ids {
		t, ok := tags[id]
		if !ok {
			return fmt.Errorf("%w: %s: unknown tag %d", domain.ErrInvalidInput, field, id)
		}
		if t.Category != category {
			return fmt.Errorf("%w: %s: tag %d is not a %s tag", domain.ErrInvalidInput, field, id, category)
		}
	}
	return nil
}
