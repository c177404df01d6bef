package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
)

type TagRepository struct {
	mu     sync.RWMutex
	tags   map[int]domain.Tag
	nextID int
}

// NewTagRepository seeds the repository with the given tags.
func NewTagRepository(seed ...domain.Tag) *TagRepository {
	r := &TagRepository{tags: make(map[int]domain.Tag), nextID: 1}
	for _, t := range seed {
		r.tags[t.ID] = t
		if t.ID >= r.nextID {
			r.nextID = t.ID + 1
		}
	}
	return r
}

func (r *TagRepository) List(_ context.Context) ([]*domain.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(domain.Tag) bool { return true }), nil
}

func (r *TagRepository) ListByCategory(_ context.Context, category domain.TagCategory, systemOnly bool) ([]*domain.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(func(t domain.Tag) bool {
		return t.Category == category && (t.IsSystem || !systemOnly)
	}), nil
}

func (r *TagRepository) GetByIDs(_ context.Context, ids []int) (map[int]*domain.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[int]*domain.Tag, len(ids))
	for _, id := range ids {
		if t, ok := r.tags[id]; ok {
			result[id] = &t
		}
	}
	return result, nil
}

func (r *TagRepository) Create(_ context.Context, tag *domain.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tags {
		if t.Category == tag.Category && t.Name == tag.Name {
			return domain.ErrTagAlreadyExists
		}
	}
	tag.ID = r.nextID
	tag.CreatedAt = time.Now().UTC()
	r.nextID++
	r.tags[tag.ID] = *tag
	return nil
}

func (r *TagRepository) AdjustUsage(_ context.Context, added, removed []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range added {
		if t, ok := r.tags[id]; ok {
			t.UsageCount++
			r.tags[id] = t
		}
	}
	for _, id := range removed {
		if t, ok := r.tags[id]; ok && t.UsageCount > 0 {
			t.UsageCount--
			r.tags[id] = t
		}
	}
	return nil
}

func (r *TagRepository) sorted(keep func(domain.Tag) bool) []*domain.Tag {
	tags := make([]*domain.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		if keep(t) {
			t := t
			tags = append(tags, &t)
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].UsageCount != tags[j].UsageCount {
			return tags[i].UsageCount > tags[j].UsageCount
		}
		return tags[i].ID < tags[j].ID
	})
	return tags
}
