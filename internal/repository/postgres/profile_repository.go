package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// profileRow carries the aggregated tag ids alongside the profile columns.
type profileRow struct {
	domain.Profile
	TagIDs pq.Int64Array `db:"tag_ids"`
}

func (row *profileRow) toDomain() *domain.Profile {
	p := row.Profile
	p.Tags = toInts(row.TagIDs)
	return &p
}

const selectProfiles = `
	SELECT p.id, p.name, p.title, p.bio, p.vision,
	       p.linkedin_url, p.github_url, p.personal_website,
	       p.profile_completion, p.is_active, p.created_at, p.updated_at,
	       COALESCE(array_agg(ut.tag_id ORDER BY ut.id) FILTER (WHERE ut.tag_id IS NOT NULL), '{}') AS tag_ids
	FROM profiles p
	LEFT JOIN user_tags ut ON ut.user_id = p.id
`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile, tags []domain.UserTag) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO profiles (
			id, name, title, bio, vision,
			linkedin_url, github_url, personal_website,
			profile_completion, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(
		ctx, query,
		profile.ID, profile.Name, profile.Title, profile.Bio, profile.Vision,
		profile.LinkedinURL, profile.GithubURL, profile.PersonalWebsite,
		profile.Completion, profile.IsActive,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileAlreadyExists
		}
		return err
	}

	if err := insertUserTags(ctx, tx, profile.ID, tags); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var row profileRow
	query := selectProfiles + ` WHERE p.id = $1 GROUP BY p.id`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *profileRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error) {
	profiles := make(map[uuid.UUID]*domain.Profile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	var rows []profileRow
	query := selectProfiles + ` WHERE p.id = ANY($1::uuid[]) GROUP BY p.id`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(keys)); err != nil {
		return nil, err
	}
	for i := range rows {
		p := rows[i].toDomain()
		profiles[p.ID] = p
	}
	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile, tags []domain.UserTag) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE profiles
		SET name = $1, title = $2, bio = $3, vision = $4,
		    linkedin_url = $5, github_url = $6, personal_website = $7,
		    profile_completion = $8, is_active = $9,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING updated_at
	`
	err = tx.QueryRowContext(
		ctx, query,
		profile.Name, profile.Title, profile.Bio, profile.Vision,
		profile.LinkedinURL, profile.GithubURL, profile.PersonalWebsite,
		profile.Completion, profile.IsActive,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_tags WHERE user_id = $1`, profile.ID); err != nil {
		return err
	}
	if err := insertUserTags(ctx, tx, profile.ID, tags); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *profileRepository) ListActive(ctx context.Context) ([]*domain.Profile, error) {
	var rows []profileRow
	query := selectProfiles + ` WHERE p.is_active = true GROUP BY p.id ORDER BY p.created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	profiles := make([]*domain.Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, rows[i].toDomain())
	}
	return profiles, nil
}

func insertUserTags(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, tags []domain.UserTag) error {
	if len(tags) == 0 {
		return nil
	}

	ids := make([]int, len(tags))
	types := make([]string, len(tags))
	for i, t := range tags {
		ids[i] = t.TagID
		types[i] = string(t.TagType)
	}

	query := `
		INSERT INTO user_tags (user_id, tag_id, tag_type)
		SELECT $1, unnest($2::int[]), unnest($3::text[])
	`
	_, err := tx.ExecContext(ctx, query, userID, toInt64s(ids), pq.Array(types))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTagNotFound
		}
		return fmt.Errorf("failed to store user tags: %w", err)
	}
	return nil
}
