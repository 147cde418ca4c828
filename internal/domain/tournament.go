package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tournament is the read-only configuration the core engine is given.
type Tournament struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Rounds          int           `json:"rounds"`
	PointsWin       float64       `json:"points_win"`
	PointsDraw      float64       `json:"points_draw"`
	PointsLoss      float64       `json:"points_loss"`
	ByePoints       float64       `json:"bye_points"`
	Tiebreakers     []TiebreakKey `json:"tiebreakers"`
	ForbidRepeatBye bool          `json:"forbid_repeat_bye"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TiebreakKey names one of the configurable tiebreak criteria.
type TiebreakKey string

const (
	TBScore           TiebreakKey = "score"
	TBDirectEncounter TiebreakKey = "direct_encounter"
	TBBuchholz        TiebreakKey = "buchholz"
	TBBuchholzCut1    TiebreakKey = "buchholz_cut1"
	TBBuchholzCut2    TiebreakKey = "buchholz_cut2"
	TBMedianBuchholz  TiebreakKey = "median_buchholz"
	TBSonnebornBerger TiebreakKey = "sonneborn_berger"
	TBNumberOfWins    TiebreakKey = "number_of_wins"
	TBProgressive     TiebreakKey = "progressive"
	TBGamesAsBlack    TiebreakKey = "games_as_black"
	TBWinsWithBlack   TiebreakKey = "wins_with_black"
)

// KnownTiebreakKeys is the full set of tiebreak criteria Rank understands.
var KnownTiebreakKeys = map[TiebreakKey]bool{
	TBDirectEncounter: true,
	TBBuchholz:        true,
	TBBuchholzCut1:    true,
	TBBuchholzCut2:    true,
	TBMedianBuchholz:  true,
	TBSonnebornBerger: true,
	TBNumberOfWins:    true,
	TBProgressive:     true,
	TBGamesAsBlack:    true,
	TBWinsWithBlack:   true,
}

// DefaultConfig returns the typical {1, 0.5, 0, 1} point scheme.
func DefaultConfig() Tournament {
	return Tournament{
		Rounds:     0,
		PointsWin:  1,
		PointsDraw: 0.5,
		PointsLoss: 0,
		ByePoints:  1,
	}
}
