package pairing

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// pairRound1 handles the opening round, where no history exists yet. The
// odd participant out (by largest Seq) gets the bye; the rest are split into
// upper/lower halves by rating and paired top-vs-bottom, with colors
// assigned at random per board through the caller-supplied rng so tests
// stay deterministic.
func pairRound1(cfg domain.Tournament, participants []domain.Participant, rng *rand.Rand) (*Result, error) {
	active := make([]domain.Participant, len(participants))
	copy(active, participants)

	var bye *domain.Participant
	if len(active)%2 != 0 {
		idx := 0
		for i := range active {
			if active[i].Seq > active[idx].Seq {
				idx = i
			}
		}
		b := active[idx]
		bye = &b
		active = append(active[:idx], active[idx+1:]...)
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].EffectiveRating() != active[j].EffectiveRating() {
			return active[i].EffectiveRating() > active[j].EffectiveRating()
		}
		return active[i].Seq < active[j].Seq
	})

	half := len(active) / 2
	upper := active[:half]
	lower := active[half:]

	res := &Result{}
	board := 1
	for i := 0; i < half; i++ {
		p1, p2 := upper[i], lower[i]
		var whiteID, blackID uuid.UUID
		if rng.Intn(2) == 0 {
			whiteID, blackID = p1.ID, p2.ID
		} else {
			whiteID, blackID = p2.ID, p1.ID
		}
		bID := blackID
		res.Pairings = append(res.Pairings, domain.MatchDraft{
			Board:         board,
			WhiteID:       whiteID,
			BlackID:       &bID,
			DefaultResult: domain.NotPlayed,
			SourceTag:     domain.SourceTagSwissSystem,
		})
		board++
	}

	if bye != nil {
		res.Pairings = append(res.Pairings, domain.MatchDraft{
			Board:         board,
			WhiteID:       bye.ID,
			BlackID:       nil,
			DefaultResult: domain.Bye,
			ScoreWhite:    cfg.ByePoints,
			SourceTag:     domain.SourceTagSwissSystem,
		})
		res.ByeParticipantID = &bye.ID
	}

	return res, nil
}
