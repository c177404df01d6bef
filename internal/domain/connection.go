package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

type ConnectionStatus string

const (
	ConnectionStatusActive   ConnectionStatus = "active"
	ConnectionStatusArchived ConnectionStatus = "archived"
)

func (s ConnectionStatus) Valid() bool {
	return s == ConnectionStatusActive || s == ConnectionStatusArchived
}

// Stage is one side's label for how the relationship is progressing.
type Stage string

const (
	StageToContact Stage = "to_contact"
	StageMet       Stage = "met"
	StageOngoing   Stage = "ongoing"
	StageArchived  Stage = "archived"
)

func (s Stage) Valid() bool {
	switch s {
	case StageToContact, StageMet, StageOngoing, StageArchived:
		return true
	}
	return false
}

type Connection struct {
	ID             int              `json:"id" db:"id"`
	UserAID        uuid.UUID        `json:"user_a_id" db:"user_a_id"`
	UserBID        uuid.UUID        `json:"user_b_id" db:"user_b_id"`
	Status         ConnectionStatus `json:"status" db:"status"`
	UserAStage     Stage            `json:"user_a_stage" db:"user_a_stage"`
	UserBStage     Stage            `json:"user_b_stage" db:"user_b_stage"`
	Intro          *string          `json:"intro" db:"intro"`
	EstablishedAt  time.Time        `json:"established_at" db:"established_at"`
	FeedbackSentAt *time.Time       `json:"feedback_sent_at" db:"feedback_sent_at"`
}

// OrderPair returns the two ids with the smaller one first, matching the
// user_a_id < user_b_id constraint.
func OrderPair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(x[:], y[:]) > 0 {
		return y, x
	}
	return x, y
}

func NewConnection(x, y uuid.UUID) *Connection {
	a, b := OrderPair(x, y)
	return &Connection{
		UserAID:    a,
		UserBID:    b,
		Status:     ConnectionStatusActive,
		UserAStage: StageToContact,
		UserBStage: StageToContact,
	}
}

func (c *Connection) HasUser(userID uuid.UUID) bool {
	return c.UserAID == userID || c.UserBID == userID
}

func (c *Connection) GetOtherUserID(userID uuid.UUID) (uuid.UUID, bool) {
	if c.UserAID == userID {
		return c.UserBID, true
	}
	if c.UserBID == userID {
		return c.UserAID, true
	}
	return uuid.Nil, false
}

// StageFor returns the stage label of the given participant.
func (c *Connection) StageFor(userID uuid.UUID) Stage {
	if c.UserAID == userID {
		return c.UserAStage
	}
	return c.UserBStage
}

func (c *Connection) SetStage(userID uuid.UUID, stage Stage) bool {
	switch userID {
	case c.UserAID:
		c.UserAStage = stage
	case c.UserBID:
		c.UserBStage = stage
	default:
		return false
	}
	return true
}

// DaysSince returns whole days elapsed since the connection was established.
func (c *Connection) DaysSince(now time.Time) int {
	d := now.Sub(c.EstablishedAt)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
