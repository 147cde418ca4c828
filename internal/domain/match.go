package domain

import (
	"time"

	"github.com/google/uuid"
)

// Color is a board color. It is also used, with ColorNone, to describe
// the absence of a last-round color or a bye.
type Color string

const (
	White     Color = "white"
	Black     Color = "black"
	ColorNone Color = "none"
)

// ResultTag is the closed set of terminal results a match can carry.
// Unknown tags are normalized to Draw by the history model rather
// than rejected.
type ResultTag string

const (
	WhiteWins    ResultTag = "white_wins"
	BlackWins    ResultTag = "black_wins"
	Draw         ResultTag = "draw"
	Bye          ResultTag = "bye"
	ForfeitWhite ResultTag = "forfeit_white" // white loses by forfeit
	ForfeitBlack ResultTag = "forfeit_black" // black loses by forfeit
	NotPlayed    ResultTag = "not_played"
)

// Outcome is the per-player label derived from a match's ResultTag.
type Outcome string

const (
	OutcomeWin         Outcome = "win"
	OutcomeLoss        Outcome = "loss"
	OutcomeDraw        Outcome = "draw"
	OutcomeBye         Outcome = "bye"
	OutcomeForfeitWin  Outcome = "forfeit_win"
	OutcomeForfeitLoss Outcome = "forfeit_loss"
)

// Match belongs to a round. Black is nil for a bye.
type Match struct {
	ID           uuid.UUID  `json:"id"`
	TournamentID uuid.UUID  `json:"tournament_id"`
	RoundID      uuid.UUID  `json:"round_id"`
	RoundNumber  int        `json:"round_number"`
	Board        int        `json:"board"`
	WhiteID      uuid.UUID  `json:"white_id"`
	BlackID      *uuid.UUID `json:"black_id"`
	Result       ResultTag  `json:"result"`
	ScoreWhite   float64    `json:"score_white"`
	ScoreBlack   float64    `json:"score_black"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsBye reports whether this match is a bye pairing.
func (m *Match) IsBye() bool {
	return m.BlackID == nil
}

// MatchDraft is what the pairing engine hands back to the repository for
// a single batch insert.
type MatchDraft struct {
	Board         int
	WhiteID       uuid.UUID
	BlackID       *uuid.UUID
	DefaultResult ResultTag
	ScoreWhite    float64
	ScoreBlack    float64
	SourceTag     string
}

const SourceTagSwissSystem = "swiss_system"
