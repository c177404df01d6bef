package domain

import (
	"time"

	"github.com/google/uuid"
)

type InterestStatus string

const (
	InterestStatusPending  InterestStatus = "pending"
	InterestStatusAccepted InterestStatus = "accepted"
	InterestStatusRejected InterestStatus = "rejected"
)

func (s InterestStatus) Valid() bool {
	switch s {
	case InterestStatusPending, InterestStatusAccepted, InterestStatusRejected:
		return true
	}
	return false
}

type Interest struct {
	ID          int            `json:"id" db:"id"`
	SenderID    uuid.UUID      `json:"sender_id" db:"sender_id"`
	ReceiverID  uuid.UUID      `json:"receiver_id" db:"receiver_id"`
	Status      InterestStatus `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	RespondedAt *time.Time     `json:"responded_at" db:"responded_at"`
}

// CountsTowardMatch reports whether the interest can complete a mutual match.
func (i *Interest) CountsTowardMatch() bool {
	return i.Status == InterestStatusPending || i.Status == InterestStatusAccepted
}
