package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

// DraftRepository stores drafts as JSON, like the Redis implementation, so
// callers never share pointers with the store.
type DraftRepository struct {
	mu     sync.Mutex
	drafts map[uuid.UUID][]byte
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{drafts: make(map[uuid.UUID][]byte)}
}

func (r *DraftRepository) Get(_ context.Context, userID uuid.UUID) (*domain.OnboardingDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var draft domain.OnboardingDraft
	raw, ok := r.drafts[userID]
	if !ok {
		return &draft, nil
	}
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *DraftRepository) Save(_ context.Context, userID uuid.UUID, draft *domain.OnboardingDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[userID] = raw
	return nil
}

func (r *DraftRepository) Delete(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, userID)
	return nil
}
