package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type sessionRepository struct {
	client redis.UniversalClient
}

func NewSessionRepository(client redis.UniversalClient) repository.SessionRepository {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) Create(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKeyPrefix+tokenHash, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	val, err := r.client.Get(ctx, sessionKeyPrefix+tokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, domain.ErrSessionNotFound
		}
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, domain.ErrSessionNotFound
	}
	return userID, nil
}

func (r *sessionRepository) Delete(ctx context.Context, tokenHash string) error {
	return r.client.Del(ctx, sessionKeyPrefix+tokenHash).Err()
}
