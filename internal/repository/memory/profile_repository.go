package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
)

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]domain.Profile
	userTags map[uuid.UUID][]domain.UserTag
	order    map[uuid.UUID]int
	tags     *TagRepository
}

// NewProfileRepository checks tag ids against tags when it is non-nil.
func NewProfileRepository(tags *TagRepository) *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[uuid.UUID]domain.Profile),
		userTags: make(map[uuid.UUID][]domain.UserTag),
		order:    make(map[uuid.UUID]int),
		tags:     tags,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile, tags []domain.UserTag) error {
	if err := r.checkTags(ctx, tags); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.ID]; ok {
		return domain.ErrProfileAlreadyExists
	}
	// A preset CreatedAt is kept so fixtures can control ordering.
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	profile.UpdatedAt = profile.CreatedAt
	r.order[profile.ID] = len(r.order)
	r.store(profile, tags)
	return nil
}

func (r *ProfileRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return clone(p), nil
}

func (r *ProfileRepository) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[uuid.UUID]*domain.Profile, len(ids))
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			result[id] = clone(p)
		}
	}
	return result, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile, tags []domain.UserTag) error {
	if err := r.checkTags(ctx, tags); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.profiles[profile.ID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now().UTC()
	r.store(profile, tags)
	return nil
}

func (r *ProfileRepository) ListActive(_ context.Context) ([]*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		if p.IsActive {
			profiles = append(profiles, clone(p))
		}
	}
	sort.Slice(profiles, func(i, j int) bool {
		a, b := profiles[i], profiles[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return r.order[a.ID] > r.order[b.ID]
	})
	return profiles, nil
}

// UserTags returns the stored tag rows of a profile.
func (r *ProfileRepository) UserTags(id uuid.UUID) []domain.UserTag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.UserTag(nil), r.userTags[id]...)
}

func (r *ProfileRepository) store(profile *domain.Profile, tags []domain.UserTag) {
	tags = domain.DedupeUserTags(tags)
	ids := make([]int, len(tags))
	for i, t := range tags {
		ids[i] = t.TagID
	}

	stored := *profile
	stored.Tags = ids
	r.profiles[profile.ID] = stored
	r.userTags[profile.ID] = tags
	profile.Tags = append([]int(nil), ids...)
}

func (r *ProfileRepository) checkTags(ctx context.Context, tags []domain.UserTag) error {
	if r.tags == nil || len(tags) == 0 {
		return nil
	}
	ids := make([]int, len(tags))
	for i, t := range tags {
		ids[i] = t.TagID
	}
	found, err := r.tags.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return domain.ErrTagNotFound
		}
	}
	return nil
}

func clone(p domain.Profile) *domain.Profile {
	p.Tags = append([]int{}, p.Tags...)
	return &p
}
