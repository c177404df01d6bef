package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

type session struct {
	userID    uuid.UUID
	expiresAt time.Time
}

type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]session)}
}

func (r *SessionRepository) Create(_ context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[tokenHash] = session{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (r *SessionRepository) Get(_ context.Context, tokenHash string) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[tokenHash]
	if !ok {
		return uuid.Nil, domain.ErrSessionNotFound
	}
	if time.Now().After(s.expiresAt) {
		delete(r.sessions, tokenHash)
		return uuid.Nil, domain.ErrSessionNotFound
	}
	return s.userID, nil
}

func (r *SessionRepository) Delete(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, tokenHash)
	return nil
}
