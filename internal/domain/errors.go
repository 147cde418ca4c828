package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Error taxonomy for the engine. Each is a small exported struct type,
// checked with errors.As by callers, rather than sentinel values.

type ErrTournamentNotFound struct{ ID uuid.UUID }

func (e *ErrTournamentNotFound) Error() string {
	return fmt.Sprintf("tournament not found: %s", e.ID)
}

type ErrRoundNotFound struct {
	TournamentID uuid.UUID
	Number       int
}

func (e *ErrRoundNotFound) Error() string {
	return fmt.Sprintf("round %d not found for tournament %s", e.Number, e.TournamentID)
}

type ErrParticipantNotFound struct{ ID uuid.UUID }

func (e *ErrParticipantNotFound) Error() string {
	return fmt.Sprintf("participant not found: %s", e.ID)
}

// ErrInsufficientParticipants is returned when fewer than 2 active
// participants are available to pair.
type ErrInsufficientParticipants struct{ Count int }

func (e *ErrInsufficientParticipants) Error() string {
	return fmt.Sprintf("insufficient participants to pair: %d active", e.Count)
}

// ErrPairingInfeasible is returned when no legal pairing exists. Residual
// carries the participant IDs that could not be paired, so callers can
// decide whether to allow a rematch.
type ErrPairingInfeasible struct {
	Residual []uuid.UUID
}

func (e *ErrPairingInfeasible) Error() string {
	return fmt.Sprintf("no legal pairing exists for %d residual participant(s)", len(e.Residual))
}

// ErrTournamentExhausted is returned when pairing is requested past the
// configured round limit.
type ErrTournamentExhausted struct {
	TournamentID uuid.UUID
	Rounds       int
}

func (e *ErrTournamentExhausted) Error() string {
	return fmt.Sprintf("tournament %s has no rounds left beyond its configured %d", e.TournamentID, e.Rounds)
}

// ErrInvalidHistory reports a fatal invariant violation in the input
// history, e.g. a participant appearing twice in one round. The engine
// never attempts to repair this; it stops and surfaces the offending
// round/participant.
type ErrInvalidHistory struct {
	RoundNumber   int
	ParticipantID uuid.UUID
	Reason        string
}

func (e *ErrInvalidHistory) Error() string {
	return fmt.Sprintf("invalid history at round %d for participant %s: %s", e.RoundNumber, e.ParticipantID, e.Reason)
}

// ErrRepositoryUnavailable wraps a repository-layer failure. The engine
// never swallows it; it adds context and returns it unchanged otherwise.
type ErrRepositoryUnavailable struct {
	Op  string
	Err error
}

func (e *ErrRepositoryUnavailable) Error() string {
	return fmt.Sprintf("repository unavailable during %s: %v", e.Op, e.Err)
}

func (e *ErrRepositoryUnavailable) Unwrap() error { return e.Err }
