package postgres

import (
	"context"
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

func TestInterestRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInterestRepository(db)
	sender, receiver := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO interests (sender_id, receiver_id, status)")).
		WithArgs(sender, receiver, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO interests")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "interests_sender_id_receiver_id_key"})

	interest := &domain.Interest{SenderID: sender, ReceiverID: receiver, Status: domain.InterestStatusPending}
	require.NoError(t, repo.Create(context.Background(), interest))
	assert.Equal(t, 5, interest.ID)

	again := &domain.Interest{SenderID: sender, ReceiverID: receiver, Status: domain.InterestStatusPending}
	assert.ErrorIs(t, repo.Create(context.Background(), again), domain.ErrInterestAlreadyExists)
}

func TestInterestRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInterestRepository(db)
	now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE interests SET status = $1, responded_at = $2 WHERE id = $3")).
		WithArgs("accepted", now, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE interests")).
		WithArgs("accepted", now, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateStatus(context.Background(), 5, domain.InterestStatusAccepted, now))
	err := repo.UpdateStatus(context.Background(), 99, domain.InterestStatusAccepted, now)
	assert.ErrorIs(t, err, domain.ErrInterestNotFound)
}

func TestInterestRepository_NonUniqueErrorPassesThrough(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInterestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO interests")).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.Create(context.Background(), &domain.Interest{SenderID: uuid.New(), ReceiverID: uuid.New()})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInterestAlreadyExists)
}
