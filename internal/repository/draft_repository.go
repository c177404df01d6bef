package repository

import (
	"context"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

type DraftRepository interface {
	// Get returns an empty draft when nothing has been saved yet.
	Get(ctx context.Context, userID uuid.UUID) (*domain.OnboardingDraft, error)
	Save(ctx context.Context, userID uuid.UUID, draft *domain.OnboardingDraft) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
