package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type connectionRepository struct {
	db *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) repository.ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, connection *domain.Connection) error {
	// Ensure user_a_id < user_b_id for constraint
	connection.UserAID, connection.UserBID = domain.OrderPair(connection.UserAID, connection.UserBID)

	query := `
		INSERT INTO connections (user_a_id, user_b_id, status, user_a_stage, user_b_stage)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_a_id, user_b_id) DO NOTHING
		RETURNING id, established_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		connection.UserAID, connection.UserBID, connection.Status,
		connection.UserAStage, connection.UserBStage,
	).Scan(&connection.ID, &connection.EstablishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		existing, err := r.GetByUsers(ctx, connection.UserAID, connection.UserBID)
		if err != nil {
			return err
		}
		*connection = *existing
		return nil
	}
	return err
}

func (r *connectionRepository) GetByID(ctx context.Context, id int) (*domain.Connection, error) {
	var connection domain.Connection
	err := r.db.GetContext(ctx, &connection, `SELECT * FROM connections WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &connection, nil
}

func (r *connectionRepository) GetByUsers(ctx context.Context, user1ID, user2ID uuid.UUID) (*domain.Connection, error) {
	userA, userB := domain.OrderPair(user1ID, user2ID)

	var connection domain.Connection
	query := `SELECT * FROM connections WHERE user_a_id = $1 AND user_b_id = $2`
	err := r.db.GetContext(ctx, &connection, query, userA, userB)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &connection, nil
}

func (r *connectionRepository) ListByUser(ctx context.Context, userID uuid.UUID, status domain.ConnectionStatus) ([]*domain.Connection, error) {
	var connections []*domain.Connection
	query := `
		SELECT * FROM connections
		WHERE (user_a_id = $1 OR user_b_id = $1) AND status = $2
		ORDER BY established_at DESC, id DESC
	`
	err := r.db.SelectContext(ctx, &connections, query, userID, status)
	return connections, err
}

func (r *connectionRepository) Update(ctx context.Context, connection *domain.Connection) error {
	query := `
		UPDATE connections
		SET status = $1, user_a_stage = $2, user_b_stage = $3, feedback_sent_at = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(
		ctx, query,
		connection.Status, connection.UserAStage, connection.UserBStage, connection.FeedbackSentAt,
		connection.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}

func (r *connectionRepository) UpdateIntro(ctx context.Context, id int, intro string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE connections SET intro = $1 WHERE id = $2`, intro, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}
