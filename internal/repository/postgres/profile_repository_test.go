package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileColumns = []string{
	"id", "name", "title", "bio", "vision",
	"linkedin_url", "github_url", "personal_website",
	"profile_completion", "is_active", "created_at", "updated_at", "tag_ids",
}

func newProfile() (*domain.Profile, []domain.UserTag) {
	tags := []domain.UserTag{
		{TagID: 1, TagType: domain.TagTypeMyAbility},
		{TagID: 16, TagType: domain.TagTypeRole},
	}
	return &domain.Profile{
		ID:       uuid.New(),
		Name:     "Alice",
		Title:    "AI tech lead",
		Bio:      "Shipped three products from zero to one.",
		Vision:   "Make AI tooling boring",
		Tags:     []int{1, 16},
		IsActive: true,
	}, tags
}

func TestProfileRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)
	profile, tags := newProfile()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profiles")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_tags (user_id, tag_id, tag_type)")).
		WithArgs(profile.ID, pq.Int64Array{1, 16}, pq.Array([]string{"my_ability", "role"})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), profile, tags))
	assert.Equal(t, now, profile.CreatedAt)
}

func TestProfileRepository_CreateErrors(t *testing.T) {
	t.Run("duplicate profile", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)
		profile, tags := newProfile()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profiles")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "profiles_pkey"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), profile, tags)
		assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
	})

	t.Run("unknown tag", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)
		profile, tags := newProfile()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profiles")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_tags")).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "user_tags_tag_id_fkey"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), profile, tags)
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})

	t.Run("other tag failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewProfileRepository(db)
		profile, tags := newProfile()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profiles")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_tags")).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.Create(context.Background(), profile, tags)
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.ErrorContains(t, err, "failed to store user tags")
	})
}

func TestProfileRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)
	id := uuid.New()
	github := "https://github.com/alice"

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1 GROUP BY p.id")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(
			id.String(), "Alice", "AI tech lead", "bio", "vision",
			nil, github, nil,
			85, true, time.Now(), time.Now(), "{1,9,16}",
		))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1 GROUP BY p.id")).
		WillReturnError(sql.ErrNoRows)

	profile, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, profile.ID)
	assert.Equal(t, []int{1, 9, 16}, profile.Tags)
	assert.Equal(t, 85, profile.Completion)
	assert.Nil(t, profile.LinkedinURL)
	require.NotNil(t, profile.GithubURL)
	assert.Equal(t, github, *profile.GithubURL)

	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfileRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)
	profile, tags := newProfile()
	updated := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE profiles")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_tags WHERE user_id = $1")).
		WithArgs(profile.ID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_tags")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), profile, tags))
	assert.Equal(t, updated, profile.UpdatedAt)
}

func TestProfileRepository_UpdateMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)
	profile, tags := newProfile()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE profiles")).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), profile, tags)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
