package repository

import (
	"context"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

type ConnectionRepository interface {
	// Create inserts the connection, or loads the existing one for the same
	// pair into connection when it already exists.
	Create(ctx context.Context, connection *domain.Connection) error
	GetByID(ctx context.Context, id int) (*domain.Connection, error)
	GetByUsers(ctx context.Context, user1ID, user2ID uuid.UUID) (*domain.Connection, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status domain.ConnectionStatus) ([]*domain.Connection, error)
	Update(ctx context.Context, connection *domain.Connection) error
	UpdateIntro(ctx context.Context, id int, intro string) error
}
