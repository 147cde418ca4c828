// Package tiebreak computes the FIDE tiebreak family and produces a
// totally ordered standings table. Like history and pairing, it is a
// pure function of the history model it is given.
package tiebreak

import (
	"log"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/history"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

const epsilon = 1e-3

// Standing is one row of the ranked output.
type Standing struct {
	Rank          int
	ParticipantID uuid.UUID
	Score         float64
	Tiebreaks     map[domain.TiebreakKey]float64
}

// Rank computes standings for the full roster: one entry per roster
// participant, ranks 1..N, ordered by score then by the configured
// tiebreak keys in order. Unknown keys are ignored with a warning.
func Rank(cfg domain.Tournament, roster []domain.Participant, histories map[uuid.UUID]*history.PlayerHistory) []Standing {
	keys := filterKnownKeys(cfg.Tiebreakers)

	values := make(map[uuid.UUID]map[domain.TiebreakKey]float64, len(roster))
	for _, p := range roster {
		h := histories[p.ID]
		if h == nil {
			h = &history.PlayerHistory{ParticipantID: p.ID}
		}
		values[p.ID] = computeValues(h, histories, keys)
	}

	standings := make([]Standing, 0, len(roster))
	for _, p := range roster {
		h := histories[p.ID]
		score := 0.0
		if h != nil {
			score = h.Score
		}
		standings = append(standings, Standing{
			ParticipantID: p.ID,
			Score:         score,
			Tiebreaks:     values[p.ID],
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return less(standings[i], standings[j], keys, histories)
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

func filterKnownKeys(keys []domain.TiebreakKey) []domain.TiebreakKey {
	out := make([]domain.TiebreakKey, 0, len(keys))
	for _, k := range keys {
		if k == domain.TBScore {
			continue // score is always the primary key, never repeated.
		}
		if !domain.KnownTiebreakKeys[k] {
			log.Printf("tiebreak: unknown tiebreak key %q ignored", k)
			continue
		}
		out = append(out, k)
	}
	return out
}

// less implements the standings comparator: score descending, then each
// configured key in order descending (epsilon 1e-3 for floating
// equality), with direct_encounter evaluated pairwise rather than from a
// precomputed value. The comparator may be non-transitive for 3+-way
// tied groups on direct_encounter; the final order within such a
// cluster is whatever this stable sort produces.
func less(a, b Standing, keys []domain.TiebreakKey, histories map[uuid.UUID]*history.PlayerHistory) bool {
	if !floatsEqual(a.Score, b.Score) {
		return a.Score > b.Score
	}
	for _, k := range keys {
		if k == domain.TBDirectEncounter {
			da, db := directEncounterScores(a.ParticipantID, b.ParticipantID, histories)
			if !floatsEqual(da, db) {
				return da > db
			}
			continue
		}
		va, vb := a.Tiebreaks[k], b.Tiebreaks[k]
		if !floatsEqual(va, vb) {
			return va > vb
		}
	}
	return false
}

func floatsEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// directEncounterScores returns how many points each of a and b scored
// against the other. If they never played, or split the points equally,
// both are reported as 0.
func directEncounterScores(a, b uuid.UUID, histories map[uuid.UUID]*history.PlayerHistory) (float64, float64) {
	ha, hb := histories[a], histories[b]
	if ha == nil || hb == nil {
		return 0, 0
	}
	var aPoints, bPoints float64
	played := false
	for _, rec := range ha.Records {
		if rec.Opponent != nil && *rec.Opponent == b {
			aPoints += rec.PointsScored
			played = true
		}
	}
	for _, rec := range hb.Records {
		if rec.Opponent != nil && *rec.Opponent == a {
			bPoints += rec.PointsScored
			played = true
		}
	}
	if !played || floatsEqual(aPoints, bPoints) {
		return 0, 0
	}
	return aPoints, bPoints
}

func computeValues(h *history.PlayerHistory, histories map[uuid.UUID]*history.PlayerHistory, keys []domain.TiebreakKey) map[domain.TiebreakKey]float64 {
	out := make(map[domain.TiebreakKey]float64, len(keys))
	opponentScores := opponentAdjustedScores(h, histories)

	for _, k := range keys {
		switch k {
		case domain.TBBuchholz:
			out[k] = sum(opponentScores)
		case domain.TBBuchholzCut1:
			out[k] = cutLowest(opponentScores, 1)
		case domain.TBBuchholzCut2:
			out[k] = cutLowest(opponentScores, 2)
		case domain.TBMedianBuchholz:
			out[k] = cutMedian(opponentScores)
		case domain.TBSonnebornBerger:
			out[k] = sonnebornBerger(h, histories)
		case domain.TBNumberOfWins:
			out[k] = float64(numberOfWins(h))
		case domain.TBProgressive:
			out[k] = progressive(h)
		case domain.TBGamesAsBlack:
			out[k] = float64(gamesAsBlack(h))
		case domain.TBWinsWithBlack:
			out[k] = float64(winsWithBlack(h))
		case domain.TBDirectEncounter:
			out[k] = 0 // pairwise-only; see directEncounterScores.
		}
	}
	return out
}

// opponentAdjustedScores returns, per round, the adjusted score of the
// opponent faced (or the virtual opponent score for a bye round), the
// base term both Buchholz and its cut variants sum over.
func opponentAdjustedScores(h *history.PlayerHistory, histories map[uuid.UUID]*history.PlayerHistory) []float64 {
	scores := make([]float64, 0, len(h.Records))
	for _, rec := range h.Records {
		if rec.VirtualOpponentScore != nil {
			scores = append(scores, *rec.VirtualOpponentScore)
			continue
		}
		if rec.Opponent != nil {
			if opp, ok := histories[*rec.Opponent]; ok {
				scores = append(scores, opp.AdjustedScore)
			}
		}
	}
	return scores
}

func sum(vals []float64) float64 {
	var total float64
	for _, v := range vals {
		total += v
	}
	return total
}

func cutLowest(vals []float64, n int) float64 {
	if len(vals) <= 1 {
		return sum(vals)
	}
	sorted := append([]float64{}, vals...)
	sort.Float64s(sorted)
	if n > len(sorted) {
		n = len(sorted)
	}
	return sum(sorted[n:])
}

func cutMedian(vals []float64) float64 {
	if len(vals) <= 1 {
		return sum(vals)
	}
	sorted := append([]float64{}, vals...)
	sort.Float64s(sorted)
	return sum(sorted[1 : len(sorted)-1])
}

func sonnebornBerger(h *history.PlayerHistory, histories map[uuid.UUID]*history.PlayerHistory) float64 {
	var total float64
	for _, rec := range h.Records {
		var opponentAdjusted float64
		if rec.VirtualOpponentScore != nil {
			opponentAdjusted = *rec.VirtualOpponentScore
		} else if rec.Opponent != nil {
			if opp, ok := histories[*rec.Opponent]; ok {
				opponentAdjusted = opp.AdjustedScore
			}
		}
		switch rec.Outcome {
		case domain.OutcomeWin, domain.OutcomeForfeitWin, domain.OutcomeBye:
			total += opponentAdjusted
		case domain.OutcomeDraw:
			total += opponentAdjusted / 2
		}
	}
	return total
}

func numberOfWins(h *history.PlayerHistory) int {
	count := 0
	for _, rec := range h.Records {
		if rec.Outcome == domain.OutcomeWin || rec.Outcome == domain.OutcomeForfeitWin {
			count++
		}
	}
	return count
}

func progressive(h *history.PlayerHistory) float64 {
	var running, total float64
	for _, rec := range h.Records {
		running += rec.PointsScored
		total += running
	}
	return total
}

func gamesAsBlack(h *history.PlayerHistory) int {
	count := 0
	for _, rec := range h.Records {
		if rec.Color == domain.Black {
			count++
		}
	}
	return count
}

func winsWithBlack(h *history.PlayerHistory) int {
	count := 0
	for _, rec := range h.Records {
		if rec.Color == domain.Black && (rec.Outcome == domain.OutcomeWin || rec.Outcome == domain.OutcomeForfeitWin) {
			count++
		}
	}
	return count
}
