package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionRepository maps a hashed bearer token to its user until it expires.
type SessionRepository interface {
	Create(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, tokenHash string) (uuid.UUID, error)
	Delete(ctx context.Context, tokenHash string) error
}
