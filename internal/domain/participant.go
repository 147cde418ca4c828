package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRating is used for a participant whose rating was never supplied.
const DefaultRating = 1500

// Participant is a tournament-scoped player. Seq is the stable integer
// identifier assigned at registration time (monotonic per tournament);
// ID is the UUID primary key used for storage and wire references.
// Round 1's "largest identifier gets the bye" rule operates on Seq,
// since UUIDs carry no registration order.
type Participant struct {
	ID           uuid.UUID `json:"id"`
	TournamentID uuid.UUID `json:"tournament_id"`
	Seq          int       `json:"seq"`
	Name         string    `json:"name"`
	Rating       int       `json:"rating"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ParticipantRequest is the data needed to register a participant.
type ParticipantRequest struct {
	Name   string `json:"name" binding:"required"`
	Rating *int   `json:"rating,omitempty"`
}

// EffectiveRating returns the participant's rating, or DefaultRating when unset.
func (p *Participant) EffectiveRating() int {
	if p.Rating <= 0 {
		return DefaultRating
	}
	return p.Rating
}
