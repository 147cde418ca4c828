package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoundStatus is the lifecycle state of a round. The engine only reads
// round numbers; it never drives these transitions itself.
type RoundStatus string

const (
	RoundPending   RoundStatus = "pending"
	RoundPaired    RoundStatus = "paired"
	RoundCompleted RoundStatus = "completed"
)

// Round is a tournament-scoped, monotonic 1-based round.
type Round struct {
	ID           uuid.UUID   `json:"id"`
	TournamentID uuid.UUID   `json:"tournament_id"`
	Number       int         `json:"number"`
	Status       RoundStatus `json:"status"`
	PairedAt     *time.Time  `json:"paired_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
