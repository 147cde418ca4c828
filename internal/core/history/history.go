// Package history builds the per-participant PlayerHistory the Pairing
// Engine and the Tiebreak & Ranking module both read. It is a pure
// function of the roster and match rows it is given: no I/O, no shared
// state, idempotent.
package history

import (
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// PlayerRoundRecord is one round's worth of a player's result.
type PlayerRoundRecord struct {
	RoundNumber          int
	Opponent             *uuid.UUID
	Color                domain.Color
	Outcome              domain.Outcome
	PointsScored         float64
	VirtualOpponentScore *float64 // only set for bye records
}

// PlayerHistory is the materialized state of one participant across every
// round passed into Build.
type PlayerHistory struct {
	ParticipantID    uuid.UUID
	Score            float64
	AdjustedScore    float64
	WhiteCount       int
	BlackCount       int
	LastColor        domain.Color
	LastTwoSameColor domain.Color
	HadBye           bool
	Opponents        map[uuid.UUID]bool
	Records          []PlayerRoundRecord
}

func newHistory(id uuid.UUID) *PlayerHistory {
	return &PlayerHistory{
		ParticipantID: id,
		LastColor:     domain.ColorNone,
		Opponents:     make(map[uuid.UUID]bool),
	}
}

// ColorDiff is white games minus black games, used for color preference.
func (h *PlayerHistory) ColorDiff() int {
	return h.WhiteCount - h.BlackCount
}

// HasPlayed reports whether the two participants have already met.
func (h *PlayerHistory) HasPlayed(opponent uuid.UUID) bool {
	return h.Opponents[opponent]
}

// Build materializes a dense map from participant ID to PlayerHistory.
// Matches are processed in ascending round number, then ascending board
// number. Unknown result tags are normalized to a draw; matches
// referencing a participant outside the roster are skipped and logged,
// never erroring.
func Build(roster []domain.Participant, matches []domain.Match) (map[uuid.UUID]*PlayerHistory, error) {
	histories := make(map[uuid.UUID]*PlayerHistory, len(roster))
	for _, p := range roster {
		histories[p.ID] = newHistory(p.ID)
	}

	sorted := make([]domain.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RoundNumber != sorted[j].RoundNumber {
			return sorted[i].RoundNumber < sorted[j].RoundNumber
		}
		return sorted[i].Board < sorted[j].Board
	})

	seenInRound := make(map[int]map[uuid.UUID]bool)

	for _, m := range sorted {
		if m.Result == domain.NotPlayed {
			continue
		}
		white, ok := histories[m.WhiteID]
		if !ok {
			log.Printf("history: match %s references unknown white participant %s, skipping", m.ID, m.WhiteID)
			continue
		}

		roundSeen := seenInRound[m.RoundNumber]
		if roundSeen == nil {
			roundSeen = make(map[uuid.UUID]bool)
			seenInRound[m.RoundNumber] = roundSeen
		}
		if roundSeen[m.WhiteID] {
			return nil, &domain.ErrInvalidHistory{RoundNumber: m.RoundNumber, ParticipantID: m.WhiteID, Reason: "participant appears twice in round"}
		}
		roundSeen[m.WhiteID] = true

		var black *PlayerHistory
		if m.BlackID != nil {
			b, ok := histories[*m.BlackID]
			if !ok {
				log.Printf("history: match %s references unknown black participant %s, skipping", m.ID, *m.BlackID)
				continue
			}
			if roundSeen[*m.BlackID] {
				return nil, &domain.ErrInvalidHistory{RoundNumber: m.RoundNumber, ParticipantID: *m.BlackID, Reason: "participant appears twice in round"}
			}
			roundSeen[*m.BlackID] = true
			black = b
		}

		whiteOutcome, blackOutcome := outcomesFor(m.Result)

		whiteColor := domain.White
		if m.BlackID == nil {
			whiteColor = domain.ColorNone
		}
		applySide(white, m.RoundNumber, m.BlackID, whiteColor, whiteOutcome, m.ScoreWhite, m.Result)
		if black != nil {
			whiteID := m.WhiteID
			applySide(black, m.RoundNumber, &whiteID, domain.Black, blackOutcome, m.ScoreBlack, m.Result)
			white.Opponents[*m.BlackID] = true
			black.Opponents[m.WhiteID] = true
		}
	}

	for _, h := range histories {
		computeLastColorState(h)
	}

	computeVirtualOpponentScores(histories)

	return histories, nil
}

// outcomesFor maps a match's terminal result tag to the white-side and
// black-side outcome labels. Unknown tags are normalized to a draw
// split; NotPlayed is filtered out before this is reached.
func outcomesFor(result domain.ResultTag) (white, black domain.Outcome) {
	switch result {
	case domain.WhiteWins:
		return domain.OutcomeWin, domain.OutcomeLoss
	case domain.BlackWins:
		return domain.OutcomeLoss, domain.OutcomeWin
	case domain.Draw:
		return domain.OutcomeDraw, domain.OutcomeDraw
	case domain.Bye:
		return domain.OutcomeBye, ""
	case domain.ForfeitWhite:
		return domain.OutcomeForfeitLoss, domain.OutcomeForfeitWin
	case domain.ForfeitBlack:
		return domain.OutcomeForfeitWin, domain.OutcomeForfeitLoss
	default:
		log.Printf("history: unknown result tag %q treated as draw", result)
		return domain.OutcomeDraw, domain.OutcomeDraw
	}
}

func applySide(h *PlayerHistory, round int, opponent *uuid.UUID, color domain.Color, outcome domain.Outcome, pointsScored float64, result domain.ResultTag) {
	rec := PlayerRoundRecord{
		RoundNumber:  round,
		Opponent:     opponent,
		Color:        color,
		Outcome:      outcome,
		PointsScored: pointsScored,
	}
	h.Records = append(h.Records, rec)

	h.Score += pointsScored
	h.AdjustedScore += adjustedContribution(outcome, pointsScored, result)

	if opponent == nil {
		h.HadBye = true
		return
	}

	switch color {
	case domain.White:
		h.WhiteCount++
	case domain.Black:
		h.BlackCount++
	}
	h.LastColor = color
}

// adjustedContribution applies the FIDE adjusted-score rule.
func adjustedContribution(outcome domain.Outcome, pointsScored float64, result domain.ResultTag) float64 {
	switch outcome {
	case domain.OutcomeForfeitWin, domain.OutcomeForfeitLoss:
		return 0.5
	case domain.OutcomeBye:
		if pointsScored >= 1 {
			return 0.5
		}
		return pointsScored
	default:
		return pointsScored
	}
}

func computeLastColorState(h *PlayerHistory) {
	sort.SliceStable(h.Records, func(i, j int) bool { return h.Records[i].RoundNumber < h.Records[j].RoundNumber })

	h.LastTwoSameColor = domain.ColorNone
	n := len(h.Records)
	if n < 2 {
		return
	}
	c1 := h.Records[n-1].Color
	c2 := h.Records[n-2].Color
	if c1 != domain.ColorNone && c1 == c2 {
		h.LastTwoSameColor = c1
	}
}

// computeVirtualOpponentScores is the history model's second pass: for
// every bye record, compute the virtual opponent score:
//
//	Svon = S_before_round + (1 - SfPR) + 0.5*(n - R)
func computeVirtualOpponentScores(histories map[uuid.UUID]*PlayerHistory) {
	n := 0
	for _, h := range histories {
		for _, rec := range h.Records {
			if rec.RoundNumber > n {
				n = rec.RoundNumber
			}
		}
	}

	for _, h := range histories {
		var scoreBefore float64
		for i := range h.Records {
			rec := &h.Records[i]
			if rec.Outcome == domain.OutcomeBye {
				sfpr := rec.PointsScored
				svon := scoreBefore + (1 - sfpr) + 0.5*float64(n-rec.RoundNumber)
				rec.VirtualOpponentScore = &svon
			}
			scoreBefore += rec.PointsScored
		}
	}
}
