package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

type InterestRepository struct {
	mu        sync.RWMutex
	interests map[int]domain.Interest
	nextID    int
}

func NewInterestRepository() *InterestRepository {
	return &InterestRepository{interests: make(map[int]domain.Interest), nextID: 1}
}

func (r *InterestRepository) Create(_ context.Context, interest *domain.Interest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, i := range r.interests {
		if i.SenderID == interest.SenderID && i.ReceiverID == interest.ReceiverID {
			return domain.ErrInterestAlreadyExists
		}
	}
	interest.ID = r.nextID
	interest.CreatedAt = time.Now().UTC()
	r.nextID++
	r.interests[interest.ID] = *interest
	return nil
}

func (r *InterestRepository) GetByID(_ context.Context, id int) (*domain.Interest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.interests[id]
	if !ok {
		return nil, domain.ErrInterestNotFound
	}
	return &i, nil
}

func (r *InterestRepository) GetByUsers(_ context.Context, senderID, receiverID uuid.UUID) (*domain.Interest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, i := range r.interests {
		if i.SenderID == senderID && i.ReceiverID == receiverID {
			return &i, nil
		}
	}
	return nil, domain.ErrInterestNotFound
}

func (r *InterestRepository) ListReceived(_ context.Context, receiverID uuid.UUID, status domain.InterestStatus) ([]*domain.Interest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.newestFirst(func(i domain.Interest) bool {
		return i.ReceiverID == receiverID && i.Status == status
	}), nil
}

func (r *InterestRepository) ListSent(_ context.Context, senderID uuid.UUID) ([]*domain.Interest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.newestFirst(func(i domain.Interest) bool {
		return i.SenderID == senderID
	}), nil
}

func (r *InterestRepository) UpdateStatus(_ context.Context, id int, status domain.InterestStatus, respondedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.interests[id]
	if !ok {
		return domain.ErrInterestNotFound
	}
	i.Status = status
	i.RespondedAt = &respondedAt
	r.interests[id] = i
	return nil
}

// newestFirst orders by id descending, which follows insertion order.
func (r *InterestRepository) newestFirst(keep func(domain.Interest) bool) []*domain.Interest {
	out := make([]*domain.Interest, 0)
	for _, i := range r.interests {
		if keep(i) {
			i := i
			out = append(out, &i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	return out
}
