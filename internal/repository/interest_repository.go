package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

type InterestRepository interface {
	Create(ctx context.Context, interest *domain.Interest) error
	GetByID(ctx context.Context, id int) (*domain.Interest, error)
	GetByUsers(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.Interest, error)
	ListReceived(ctx context.Context, receiverID uuid.UUID, status domain.InterestStatus) ([]*domain.Interest, error)
	ListSent(ctx context.Context, senderID uuid.UUID) ([]*domain.Interest, error)
	UpdateStatus(ctx context.Context, id int, status domain.InterestStatus, respondedAt time.Time) error
}
