package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

type ConnectionRepository struct {
	mu          sync.RWMutex
	connections map[int]domain.Connection
	nextID      int
}

func NewConnectionRepository() *ConnectionRepository {
	return &ConnectionRepository{connections: make(map[int]domain.Connection), nextID: 1}
}

func (r *ConnectionRepository) Create(_ context.Context, connection *domain.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	connection.UserAID, connection.UserBID = domain.OrderPair(connection.UserAID, connection.UserBID)
	for _, c := range r.connections {
		if c.UserAID == connection.UserAID && c.UserBID == connection.UserBID {
			*connection = c
			return nil
		}
	}
	connection.ID = r.nextID
	if connection.EstablishedAt.IsZero() {
		connection.EstablishedAt = time.Now().UTC()
	}
	r.nextID++
	r.connections[connection.ID] = *connection
	return nil
}

func (r *ConnectionRepository) GetByID(_ context.Context, id int) (*domain.Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.connections[id]
	if !ok {
		return nil, domain.ErrConnectionNotFound
	}
	return &c, nil
}

func (r *ConnectionRepository) GetByUsers(_ context.Context, user1ID, user2ID uuid.UUID) (*domain.Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, b := domain.OrderPair(user1ID, user2ID)
	for _, c := range r.connections {
		if c.UserAID == a && c.UserBID == b {
			return &c, nil
		}
	}
	return nil, domain.ErrConnectionNotFound
}

func (r *ConnectionRepository) ListByUser(_ context.Context, userID uuid.UUID, status domain.ConnectionStatus) ([]*domain.Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Connection, 0)
	for _, c := range r.connections {
		if c.HasUser(userID) && c.Status == status {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *ConnectionRepository) Update(_ context.Context, connection *domain.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.connections[connection.ID]
	if !ok {
		return domain.ErrConnectionNotFound
	}
	existing.Status = connection.Status
	existing.UserAStage = connection.UserAStage
	existing.UserBStage = connection.UserBStage
	existing.FeedbackSentAt = connection.FeedbackSentAt
	r.connections[connection.ID] = existing
	return nil
}

func (r *ConnectionRepository) UpdateIntro(_ context.Context, id int, intro string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.connections[id]
	if !ok {
		return domain.ErrConnectionNotFound
	}
	c.Intro = &intro
	r.connections[id] = c
	return nil
}
