package repository

import (
	"context"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

// ProfileRepository persists profiles together with their user_tags rows.
// Profile.Tags is populated on every read.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile, tags []domain.UserTag) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile, tags []domain.UserTag) error
	ListActive(ctx context.Context) ([]*domain.Profile, error)
}
