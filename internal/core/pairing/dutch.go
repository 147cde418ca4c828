package pairing

import (
	"sort"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/history"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// pairDutch implements the FIDE Dutch System pairing rule for round 2 and beyond.
func pairDutch(cfg domain.Tournament, active []domain.Participant, histories map[uuid.UUID]*history.PlayerHistory) (*Result, error) {
	states := make([]*playerState, 0, len(active))
	for _, p := range active {
		h := histories[p.ID]
		if h == nil {
			h = &history.PlayerHistory{ParticipantID: p.ID, LastColor: domain.ColorNone, Opponents: map[uuid.UUID]bool{}}
		}
		states = append(states, &playerState{
			ID:        p.ID,
			Rating:    p.EffectiveRating(),
			Seq:       p.Seq,
			Hist:      h,
			ColorPref: colorPreference(h),
		})
	}

	played := func(a, b uuid.UUID) bool {
		h := histories[a]
		return h != nil && h.HasPlayed(b)
	}

	res := &Result{}

	var byeState *playerState
	if len(states)%2 != 0 {
		byeState = selectByeCandidate(states, histories, cfg)
		states = removeState(states, byeState.ID)
	}

	groups := groupByScore(states)

	var floaters []*playerState
	var allUnpaired []*playerState
	var orderedPairs []pairedMatch

	for gi := range groups {
		unit := append(append([]*playerState{}, floaters...), groups[gi]...)
		sortUnit(unit)
		floaters = nil

		hasNext := gi < len(groups)-1

		if len(unit)%2 != 0 {
			if hasNext {
				f := selectDownFloater(unit, groups[gi+1], played)
				unit = removeState(unit, f.ID)
				floaters = append(floaters, f)
			} else {
				last := unit[len(unit)-1]
				unit = unit[:len(unit)-1]
				allUnpaired = append(allUnpaired, last)
			}
		}

		pairs, unpaired := pairGroup(unit, played)
		orderedPairs = append(orderedPairs, pairs...)

		if hasNext {
			floaters = append(floaters, unpaired...)
		} else {
			allUnpaired = append(allUnpaired, unpaired...)
		}
	}

	allUnpaired = append(allUnpaired, floaters...)

	residualPairs, stillUnpaired := residualPass(allUnpaired, played)
	orderedPairs = append(orderedPairs, residualPairs...)

	if byeState == nil && len(stillUnpaired) == 1 {
		byeState = stillUnpaired[0]
		stillUnpaired = nil
	}

	if len(stillUnpaired) > 0 {
		ids := make([]uuid.UUID, 0, len(stillUnpaired))
		for _, s := range stillUnpaired {
			ids = append(ids, s.ID)
		}
		return nil, &domain.ErrPairingInfeasible{Residual: ids}
	}

	board := 1
	for _, pm := range orderedPairs {
		bID := pm.black.ID
		res.Pairings = append(res.Pairings, domain.MatchDraft{
			Board:         board,
			WhiteID:       pm.white.ID,
			BlackID:       &bID,
			DefaultResult: domain.NotPlayed,
			SourceTag:     domain.SourceTagSwissSystem,
		})
		board++
	}

	if byeState != nil {
		res.Pairings = append(res.Pairings, domain.MatchDraft{
			Board:         board,
			WhiteID:       byeState.ID,
			BlackID:       nil,
			DefaultResult: domain.Bye,
			ScoreWhite:    cfg.ByePoints,
			SourceTag:     domain.SourceTagSwissSystem,
		})
		id := byeState.ID
		res.ByeParticipantID = &id
	}

	return res, nil
}

type pairedMatch struct {
	white, black *playerState
}

func removeState(states []*playerState, id uuid.UUID) []*playerState {
	out := make([]*playerState, 0, len(states))
	for _, s := range states {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// sortUnit orders a score-group-plus-floaters unit highest-ranked first:
// by score descending, then rating descending, then Seq ascending for a
// stable tie-break.
func sortUnit(u []*playerState) {
	sort.SliceStable(u, func(i, j int) bool {
		if u[i].Hist.Score != u[j].Hist.Score {
			return u[i].Hist.Score > u[j].Hist.Score
		}
		if u[i].Rating != u[j].Rating {
			return u[i].Rating > u[j].Rating
		}
		return u[i].Seq < u[j].Seq
	})
}

// groupByScore partitions players into maximal sets sharing an exact
// current score, ordered from the highest score group to the lowest.
func groupByScore(states []*playerState) [][]*playerState {
	ordered := append([]*playerState{}, states...)
	sortUnit(ordered)

	var groups [][]*playerState
	i := 0
	for i < len(ordered) {
		j := i + 1
		for j < len(ordered) && scoresEqual(ordered[j].Hist.Score, ordered[i].Hist.Score) {
			j++
		}
		groups = append(groups, ordered[i:j])
		i = j
	}
	return groups
}

func scoresEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-3
}

// selectByeCandidate picks the bye recipient by ascending priority: (a)
// has not yet received a bye, (b) lower score, (c) lower Buchholz.
func selectByeCandidate(states []*playerState, histories map[uuid.UUID]*history.PlayerHistory, cfg domain.Tournament) *playerState {
	best := states[0]
	bestBuchholz := buchholzFor(best.Hist, histories)
	for _, s := range states[1:] {
		b := buchholzFor(s.Hist, histories)
		if byeCandidateLess(s, b, best, bestBuchholz) {
			best, bestBuchholz = s, b
		}
	}
	_ = cfg // forbid_repeat_bye is already implied by priority (a); kept for signature symmetry.
	return best
}

func byeCandidateLess(a *playerState, aBuchholz float64, b *playerState, bBuchholz float64) bool {
	if a.Hist.HadBye != b.Hist.HadBye {
		return !a.Hist.HadBye // those without a bye yet sort first
	}
	if a.Hist.Score != b.Hist.Score {
		return a.Hist.Score < b.Hist.Score
	}
	if !scoresEqual(aBuchholz, bBuchholz) {
		return aBuchholz < bBuchholz
	}
	return a.Seq < b.Seq
}

// buchholzFor sums a player's opponents' adjusted score, substituting the
// precomputed virtual opponent score for bye rounds. This is the same
// definition internal/core/tiebreak uses for its buchholz key
// (opponentAdjustedScores); the pairing engine needs only the raw sum to
// rank bye candidates, not the cut variants, so it is computed locally.
func buchholzFor(h *history.PlayerHistory, histories map[uuid.UUID]*history.PlayerHistory) float64 {
	var total float64
	for _, rec := range h.Records {
		if rec.VirtualOpponentScore != nil {
			total += *rec.VirtualOpponentScore
			continue
		}
		if rec.Opponent == nil {
			continue
		}
		if opp, ok := histories[*rec.Opponent]; ok {
			total += opp.AdjustedScore
		}
	}
	return total
}

// selectDownFloater implements the down-float rule for an unpaired unit.
func selectDownFloater(unit []*playerState, next []*playerState, played func(a, b uuid.UUID) bool) *playerState {
	bottomStart := len(unit) / 2
	bottom := unit[bottomStart:]

	var avgCPNext float64
	if len(next) > 0 {
		var sum int
		for _, n := range next {
			sum += n.ColorPref
		}
		avgCPNext = float64(sum) / float64(len(next))
	}

	canFloat := func(cand *playerState) bool {
		if len(next) == 0 {
			return true
		}
		for _, n := range next {
			if !played(cand.ID, n.ID) {
				return true
			}
		}
		return false
	}

	candidates := make([]*playerState, 0, len(bottom))
	for _, c := range bottom {
		if canFloat(c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = bottom
	}

	type scored struct {
		p        *playerState
		score    float64
		position int
	}
	scoredCandidates := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		pos := indexOf(unit, c.ID)
		diff := float64(c.ColorPref) + avgCPNext
		if diff < 0 {
			diff = -diff
		}
		scoredCandidates = append(scoredCandidates, scored{p: c, score: 100*diff + float64(pos), position: pos})
	}

	best := scoredCandidates[0]
	for _, sc := range scoredCandidates[1:] {
		if sc.score < best.score || (scoresEqual(sc.score, best.score) && sc.position > best.position) {
			best = sc
		}
	}
	return best.p
}

func indexOf(unit []*playerState, id uuid.UUID) int {
	for i, s := range unit {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// pairGroup splits an even-sized unit into top half S1 and bottom half
// S2 and greedily pairs each S1 member with the legal S2 member of
// lowest color penalty, falling back to a single-swap transposition
// within S1 when a member has no legal S2 partner left. This is a
// greedy local search, not a full FIDE transposition search.
func pairGroup(unit []*playerState, played func(a, b uuid.UUID) bool) ([]pairedMatch, []*playerState) {
	if len(unit) == 0 {
		return nil, nil
	}
	mid := len(unit) / 2
	s1 := append([]*playerState{}, unit[:mid]...)
	s2 := append([]*playerState{}, unit[mid:]...)

	assigned := make(map[uuid.UUID]*playerState) // s1 member -> s2 partner
	usedS2 := make(map[uuid.UUID]bool)

	for _, p := range s1 {
		best := bestS2Partner(p, s2, usedS2, played)
		if best != nil {
			assigned[p.ID] = best
			usedS2[best.ID] = true
		}
	}

	var stuck []*playerState
	for _, p := range s1 {
		if assigned[p.ID] == nil {
			stuck = append(stuck, p)
		}
	}

	for _, p := range stuck {
		if assigned[p.ID] != nil {
			continue
		}
		for _, q := range s1 {
			partner := assigned[q.ID]
			if partner == nil || played(p.ID, partner.ID) {
				continue
			}
			// p can legally take q's partner; q needs a replacement from
			// the still-unused S2 pool.
			replacement := bestS2Partner(q, s2, usedS2, played)
			if replacement == nil {
				continue
			}
			assigned[p.ID] = partner
			assigned[q.ID] = replacement
			usedS2[replacement.ID] = true
			break
		}
	}

	var pairs []pairedMatch
	var unpaired []*playerState
	for _, p := range s1 {
		partner := assigned[p.ID]
		if partner == nil {
			unpaired = append(unpaired, p)
			continue
		}
		white, black, _ := resolveColors(p, partner)
		pairs = append(pairs, pairedMatch{white: white, black: black})
	}
	for _, q := range s2 {
		if !usedS2[q.ID] {
			unpaired = append(unpaired, q)
		}
	}

	return pairs, unpaired
}

func bestS2Partner(p *playerState, s2 []*playerState, used map[uuid.UUID]bool, played func(a, b uuid.UUID) bool) *playerState {
	var best *playerState
	bestPenalty := -1
	for _, cand := range s2 {
		if used[cand.ID] || cand.ID == p.ID {
			continue
		}
		if played(p.ID, cand.ID) {
			continue
		}
		_, _, penalty := resolveColors(p, cand)
		if best == nil || penalty < bestPenalty {
			best, bestPenalty = cand, penalty
		}
	}
	return best
}

// residualPass does a pairwise greedy pairing of whatever floaters
// remain once the lowest score group is exhausted.
func residualPass(states []*playerState, played func(a, b uuid.UUID) bool) ([]pairedMatch, []*playerState) {
	remaining := append([]*playerState{}, states...)
	sortUnit(remaining)

	var pairs []pairedMatch
	for i := 0; i < len(remaining); i++ {
		p := remaining[i]
		if p == nil {
			continue
		}
		for j := i + 1; j < len(remaining); j++ {
			q := remaining[j]
			if q == nil || played(p.ID, q.ID) {
				continue
			}
			white, black, _ := resolveColors(p, q)
			pairs = append(pairs, pairedMatch{white: white, black: black})
			remaining[i], remaining[j] = nil, nil
			break
		}
	}

	var unpaired []*playerState
	for _, r := range remaining {
		if r != nil {
			unpaired = append(unpaired, r)
		}
	}
	return pairs, unpaired
}
