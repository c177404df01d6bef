package postgres

import (
	"context"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	query := `SELECT * FROM tags ORDER BY usage_count DESC, id ASC`
	err := r.db.SelectContext(ctx, &tags, query)
	return tags, err
}

func (r *tagRepository) ListByCategory(ctx context.Context, category domain.TagCategory, systemOnly bool) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	query := `
		SELECT * FROM tags
		WHERE category = $1 AND (is_system OR NOT $2)
		ORDER BY usage_count DESC, id ASC
	`
	err := r.db.SelectContext(ctx, &tags, query, category, systemOnly)
	return tags, err
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []int) (map[int]*domain.Tag, error) {
	result := make(map[int]*domain.Tag, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var tags []*domain.Tag
	query := `SELECT * FROM tags WHERE id = ANY($1::int[])`
	if err := r.db.SelectContext(ctx, &tags, query, toInt64s(ids)); err != nil {
		return nil, err
	}
	for _, t := range tags {
		result[t.ID] = t
	}
	return result, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `
		INSERT INTO tags (name, category, is_system, usage_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, tag.Name, tag.Category, tag.IsSystem, tag.UsageCount).
		Scan(&tag.ID, &tag.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrTagAlreadyExists
	}
	return err
}

func (r *tagRepository) AdjustUsage(ctx context.Context, added, removed []int) error {
	if len(added) > 0 {
		query := `UPDATE tags SET usage_count = usage_count + 1 WHERE id = ANY($1::int[])`
		if _, err := r.db.ExecContext(ctx, query, toInt64s(added)); err != nil {
			return err
		}
	}
	if len(removed) > 0 {
		query := `UPDATE tags SET usage_count = GREATEST(usage_count - 1, 0) WHERE id = ANY($1::int[])`
		if _, err := r.db.ExecContext(ctx, query, toInt64s(removed)); err != nil {
			return err
		}
	}
	return nil
}
