package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type interestRepository struct {
	db *sqlx.DB
}

func NewInterestRepository(db *sqlx.DB) repository.InterestRepository {
	return &interestRepository{db: db}
}

func (r *interestRepository) Create(ctx context.Context, interest *domain.Interest) error {
	query := `
		INSERT INTO interests (sender_id, receiver_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, interest.SenderID, interest.ReceiverID, interest.Status).
		Scan(&interest.ID, &interest.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrInterestAlreadyExists
	}
	return err
}

func (r *interestRepository) GetByID(ctx context.Context, id int) (*domain.Interest, error) {
	var interest domain.Interest
	err := r.db.GetContext(ctx, &interest, `SELECT * FROM interests WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) GetByUsers(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.Interest, error) {
	var interest domain.Interest
	query := `SELECT * FROM interests WHERE sender_id = $1 AND receiver_id = $2`
	err := r.db.GetContext(ctx, &interest, query, senderID, receiverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterestNotFound
		}
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) ListReceived(ctx context.Context, receiverID uuid.UUID, status domain.InterestStatus) ([]*domain.Interest, error) {
	var interests []*domain.Interest
	query := `
		SELECT * FROM interests
		WHERE receiver_id = $1 AND status = $2
		ORDER BY created_at DESC, id DESC
	`
	err := r.db.SelectContext(ctx, &interests, query, receiverID, status)
	return interests, err
}

func (r *interestRepository) ListSent(ctx context.Context, senderID uuid.UUID) ([]*domain.Interest, error) {
	var interests []*domain.Interest
	query := `
		SELECT * FROM interests
		WHERE sender_id = $1
		ORDER BY created_at DESC, id DESC
	`
	err := r.db.SelectContext(ctx, &interests, query, senderID)
	return interests, err
}

func (r *interestRepository) UpdateStatus(ctx context.Context, id int, status domain.InterestStatus, respondedAt time.Time) error {
	query := `UPDATE interests SET status = $1, responded_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, respondedAt, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInterestNotFound
	}
	return nil
}
