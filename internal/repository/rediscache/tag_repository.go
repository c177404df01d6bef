package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const tagListKey = "tags:all"

// tagRepository caches the full tag list in Redis in front of another
// TagRepository. Writes go through and drop the cached list.
type tagRepository struct {
	repository.TagRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

func NewTagRepository(inner repository.TagRepository, client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) repository.TagRepository {
	return &tagRepository{
		TagRepository: inner,
		client:        client,
		ttl:           ttl,
		logger:        logger,
	}
}

func (r *tagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	if raw, err := r.client.Get(ctx, tagListKey).Bytes(); err == nil {
		var tags []*domain.Tag
		if err := json.Unmarshal(raw, &tags); err == nil {
			return tags, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("tag cache read failed", zap.Error(err))
	}

	tags, err := r.TagRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(tags); err == nil {
		if err := r.client.Set(ctx, tagListKey, raw, r.ttl).Err(); err != nil {
			r.logger.Warn("tag cache write failed", zap.Error(err))
		}
	}
	return tags, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	if err := r.TagRepository.Create(ctx, tag); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *tagRepository) AdjustUsage(ctx context.Context, added, removed []int) error {
	if err := r.TagRepository.AdjustUsage(ctx, added, removed); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *tagRepository) invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, tagListKey).Err(); err != nil {
		r.logger.Warn("tag cache invalidation failed", zap.Error(err))
	}
}
