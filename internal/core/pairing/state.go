// Package pairing implements the FIDE Dutch System Swiss pairing engine.
// It consumes the history model for all rounds strictly before the
// target round and produces an ordered list of pairings plus at most
// one bye, without mutating the histories it is given.
package pairing

import (
	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/history"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// playerState is the scratch working copy used during one pairing call.
// It never mutates the persistent PlayerHistory it wraps.
type playerState struct {
	ID        uuid.UUID
	Rating    int
	Seq       int
	Hist      *history.PlayerHistory
	ColorPref int
}

// colorPreference derives cp in {-2,-1,0,+1,+2} from a player's history.
func colorPreference(h *history.PlayerHistory) int {
	diff := h.ColorDiff()
	switch {
	case diff < -1 || h.LastTwoSameColor == domain.Black:
		return 2
	case diff > 1 || h.LastTwoSameColor == domain.White:
		return -2
	case diff == -1:
		return 1
	case diff == 1:
		return -1
	case diff == 0:
		switch h.LastColor {
		case domain.Black:
			return 1
		case domain.White:
			return -1
		default:
			return 0
		}
	default:
		return 0
	}
}

// colorPenalty is the cost of assigning color to a player with the given
// preference.
func colorPenalty(pref int, color domain.Color) int {
	switch {
	case pref == 2 && color == domain.Black:
		return 1000
	case pref == -2 && color == domain.White:
		return 1000
	case pref == 1 && color == domain.Black:
		return 100
	case pref == -1 && color == domain.White:
		return 100
	case pref == 0:
		return 1
	default:
		return 0
	}
}

// resolveColors picks the lower-penalty color assignment for a candidate
// pair. On a tie, the higher-rated player gets the color matching their
// preference, or white if both are neutral.
func resolveColors(a, b *playerState) (white, black *playerState, penalty int) {
	costAWhite := colorPenalty(a.ColorPref, domain.White) + colorPenalty(b.ColorPref, domain.Black)
	costBWhite := colorPenalty(b.ColorPref, domain.White) + colorPenalty(a.ColorPref, domain.Black)

	if costAWhite < costBWhite {
		return a, b, costAWhite
	}
	if costBWhite < costAWhite {
		return b, a, costBWhite
	}

	higher, lower := a, b
	if b.Rating > a.Rating {
		higher, lower = b, a
	}
	if higher.ColorPref < 0 {
		return lower, higher, costAWhite
	}
	return higher, lower, costAWhite
}
