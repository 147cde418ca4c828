package pairing

import (
	"testing"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/history"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// TestColorPreferenceAfterByeFollowingWhiteGame covers a player who played
// one real white game and then received a bye: ColorDiff is 1, so
// preference should be the mild -1, not an absolute -2 from mistaking the
// bye's record for a second white game.
func TestColorPreferenceAfterByeFollowingWhiteGame(t *testing.T) {
	a, b := domain.Participant{ID: uuid.New()}, domain.Participant{ID: uuid.New()}
	roster := []domain.Participant{a, b}
	matches := []domain.Match{
		{ID: uuid.New(), RoundNumber: 1, Board: 1, WhiteID: a.ID, BlackID: &b.ID, Result: domain.WhiteWins, ScoreWhite: 1, ScoreBlack: 0},
		{ID: uuid.New(), RoundNumber: 2, Board: 1, WhiteID: a.ID, BlackID: nil, Result: domain.Bye, ScoreWhite: 1},
	}

	histories, err := history.Build(roster, matches)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ha := histories[a.ID]
	if ha.ColorDiff() != 1 {
		t.Fatalf("setup invariant broken: ColorDiff = %d, want 1", ha.ColorDiff())
	}
	if got := colorPreference(ha); got != -1 {
		t.Errorf("colorPreference = %d, want -1 (mild), got an absolute preference instead", got)
	}
}
