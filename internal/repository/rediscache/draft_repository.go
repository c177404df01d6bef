package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const draftKeyPrefix = "onboarding:draft:"

type draftRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewDraftRepository keeps each draft for ttl after its last save.
func NewDraftRepository(client redis.UniversalClient, ttl time.Duration) repository.DraftRepository {
	return &draftRepository{client: client, ttl: ttl}
}

func (r *draftRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.OnboardingDraft, error) {
	var draft domain.OnboardingDraft
	raw, err := r.client.Get(ctx, draftKeyPrefix+userID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &draft, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode onboarding draft: %w", err)
	}
	return &draft, nil
}

func (r *draftRepository) Save(ctx context.Context, userID uuid.UUID, draft *domain.OnboardingDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, draftKeyPrefix+userID.String(), raw, r.ttl).Err()
}

func (r *draftRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, draftKeyPrefix+userID.String()).Err()
}
