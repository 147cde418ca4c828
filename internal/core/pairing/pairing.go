package pairing

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/history"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// Result is what the pairing engine hands back to the repository
// boundary: an ordered list of pairings plus at most one bye.
type Result struct {
	Pairings         []domain.MatchDraft
	ByeParticipantID *uuid.UUID
}

// Pair produces the pairing for targetRound given the roster and the
// history model built from every round strictly before it. rng is only
// consulted for round 1's random color assignment; pass a seeded
// source for reproducible tests.
func Pair(cfg domain.Tournament, targetRound int, roster []domain.Participant, histories map[uuid.UUID]*history.PlayerHistory, rng *rand.Rand) (*Result, error) {
	if cfg.Rounds > 0 && targetRound > cfg.Rounds {
		return nil, &domain.ErrTournamentExhausted{TournamentID: cfg.ID, Rounds: cfg.Rounds}
	}

	active := make([]domain.Participant, 0, len(roster))
	for _, p := range roster {
		if p.Active {
			active = append(active, p)
		}
	}
	if len(active) < 2 {
		return nil, &domain.ErrInsufficientParticipants{Count: len(active)}
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	if targetRound == 1 {
		return pairRound1(cfg, active, rng)
	}
	return pairDutch(cfg, active, histories)
}
