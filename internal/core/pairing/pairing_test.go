package pairing

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/history"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

func makeRoster(n int, ratingDesc bool) []domain.Participant {
	roster := make([]domain.Participant, n)
	for i := 0; i < n; i++ {
		rating := 1000 + i*10
		if ratingDesc {
			rating = 1000 + (n-i)*10
		}
		roster[i] = domain.Participant{
			ID:     uuid.New(),
			Seq:    i + 1,
			Rating: rating,
			Active: true,
		}
	}
	return roster
}

func emptyHistories(roster []domain.Participant) map[uuid.UUID]*history.PlayerHistory {
	h := make(map[uuid.UUID]*history.PlayerHistory, len(roster))
	for _, p := range roster {
		h[p.ID] = &history.PlayerHistory{ParticipantID: p.ID, Opponents: map[uuid.UUID]bool{}}
	}
	return h
}

// TestRound1EvenSplitsUpperLower covers scenario S1: with an even roster,
// round 1 pairs the top half against the bottom half by rating, with no bye.
func TestRound1EvenSplitsUpperLower(t *testing.T) {
	roster := makeRoster(8, true) // descending rating: seq1 highest ... seq8 lowest
	cfg := domain.DefaultConfig()
	cfg.Rounds = 4

	res, err := Pair(cfg, 1, roster, nil, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if res.ByeParticipantID != nil {
		t.Error("expected no bye with an even roster")
	}
	if len(res.Pairings) != 4 {
		t.Fatalf("expected 4 boards, got %d", len(res.Pairings))
	}

	// Top half is seq 1-4 (highest rated), bottom half seq 5-8.
	topSeqs := map[int]bool{1: true, 2: true, 3: true, 4: true}
	bySeq := make(map[uuid.UUID]int, len(roster))
	for _, p := range roster {
		bySeq[p.ID] = p.Seq
	}

	for _, m := range res.Pairings {
		whiteTop := topSeqs[bySeq[m.WhiteID]]
		blackTop := topSeqs[bySeq[*m.BlackID]]
		if whiteTop == blackTop {
			t.Errorf("board %d pairs two players from the same half (white seq %d, black seq %d)",
				m.Board, bySeq[m.WhiteID], bySeq[*m.BlackID])
		}
	}
}

// TestRound1OddGivesByeToLargestSeq covers scenario S2.
func TestRound1OddGivesByeToLargestSeq(t *testing.T) {
	roster := makeRoster(7, false)
	cfg := domain.DefaultConfig()

	res, err := Pair(cfg, 1, roster, nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if res.ByeParticipantID == nil {
		t.Fatal("expected a bye with an odd roster")
	}

	var maxSeq int
	var maxID uuid.UUID
	for _, p := range roster {
		if p.Seq > maxSeq {
			maxSeq, maxID = p.Seq, p.ID
		}
	}
	if *res.ByeParticipantID != maxID {
		t.Errorf("bye went to seq != max; got %s want %s", *res.ByeParticipantID, maxID)
	}
	if len(res.Pairings) != 4 { // 3 games + 1 bye record
		t.Fatalf("expected 4 pairing entries (3 games + bye), got %d", len(res.Pairings))
	}
}

// TestPairConservesRoster is a property test: every active participant
// appears in exactly one pairing or is the bye in round 1, for even and
// odd roster sizes.
func TestPairConservesRoster(t *testing.T) {
	for _, n := range []int{2, 3, 8, 9, 13} {
		roster := makeRoster(n, false)
		cfg := domain.DefaultConfig()

		res, err := Pair(cfg, 1, roster, nil, rand.New(rand.NewSource(int64(n))))
		if err != nil {
			t.Fatalf("n=%d: Pair: %v", n, err)
		}
		seen := map[uuid.UUID]bool{}
		for _, m := range res.Pairings {
			seen[m.WhiteID] = true
			if m.BlackID != nil {
				seen[*m.BlackID] = true
			}
		}
		if len(seen) != n {
			t.Errorf("n=%d: expected %d distinct participants covered, got %d", n, n, len(seen))
		}
		for _, p := range roster {
			if !seen[p.ID] {
				t.Errorf("n=%d: participant %s missing from round 1 pairings", n, p.ID)
			}
		}
	}
}

// TestDutchRoundAvoidsRematch covers scenario S3: a second round must not
// repeat round 1's pairings.
func TestDutchRoundAvoidsRematch(t *testing.T) {
	roster := makeRoster(8, true)
	cfg := domain.DefaultConfig()
	cfg.Rounds = 4

	r1, err := Pair(cfg, 1, roster, nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("round 1: %v", err)
	}

	matches := draftsToMatches(r1.Pairings, 1)
	histories, err := history.Build(roster, matches)
	if err != nil {
		t.Fatalf("history.Build: %v", err)
	}

	r2, err := Pair(cfg, 2, roster, histories, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("round 2: %v", err)
	}

	played := map[[2]uuid.UUID]bool{}
	for _, m := range r1.Pairings {
		if m.BlackID == nil {
			continue
		}
		played[pairKey(m.WhiteID, *m.BlackID)] = true
	}
	for _, m := range r2.Pairings {
		if m.BlackID == nil {
			continue
		}
		if played[pairKey(m.WhiteID, *m.BlackID)] {
			t.Errorf("round 2 repeats round 1 pairing %s vs %s", m.WhiteID, *m.BlackID)
		}
	}
}

// TestByeNotRepeated covers the forbid-repeat-bye priority ordering: a
// participant who already had a bye should not receive a second one while
// anyone else hasn't had one, all else equal.
func TestByeNotRepeated(t *testing.T) {
	roster := makeRoster(5, false)
	cfg := domain.DefaultConfig()

	// Round 1: odd roster, seq 5 (max) gets the bye.
	r1, err := Pair(cfg, 1, roster, nil, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("round 1: %v", err)
	}
	firstBye := *r1.ByeParticipantID

	matches := draftsToMatches(r1.Pairings, 1)
	histories, err := history.Build(roster, matches)
	if err != nil {
		t.Fatalf("history.Build: %v", err)
	}

	r2, err := Pair(cfg, 2, roster, histories, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("round 2: %v", err)
	}
	if *r2.ByeParticipantID == firstBye {
		t.Error("same participant received the bye twice while others had not")
	}
}

func TestTournamentExhausted(t *testing.T) {
	roster := makeRoster(4, false)
	cfg := domain.DefaultConfig()
	cfg.Rounds = 1

	_, err := Pair(cfg, 2, roster, emptyHistories(roster), nil)
	if err == nil {
		t.Fatal("expected ErrTournamentExhausted")
	}
	if _, ok := err.(*domain.ErrTournamentExhausted); !ok {
		t.Fatalf("expected *domain.ErrTournamentExhausted, got %T", err)
	}
}

func TestInsufficientParticipants(t *testing.T) {
	roster := makeRoster(1, false)
	_, err := Pair(domain.DefaultConfig(), 1, roster, nil, nil)
	if _, ok := err.(*domain.ErrInsufficientParticipants); !ok {
		t.Fatalf("expected *domain.ErrInsufficientParticipants, got %T", err)
	}
}

func pairKey(a, b uuid.UUID) [2]uuid.UUID {
	if a.String() < b.String() {
		return [2]uuid.UUID{a, b}
	}
	return [2]uuid.UUID{b, a}
}

func draftsToMatches(drafts []domain.MatchDraft, round int) []domain.Match {
	matches := make([]domain.Match, 0, len(drafts))
	for _, d := range drafts {
		result := d.DefaultResult
		scoreWhite, scoreBlack := d.ScoreWhite, d.ScoreBlack
		if result == domain.NotPlayed {
			// Simulate a decisive game so history has something to build on.
			result = domain.WhiteWins
			scoreWhite, scoreBlack = 1, 0
		}
		matches = append(matches, domain.Match{
			ID:          uuid.New(),
			RoundNumber: round,
			Board:       d.Board,
			WhiteID:     d.WhiteID,
			BlackID:     d.BlackID,
			Result:      result,
			ScoreWhite:  scoreWhite,
			ScoreBlack:  scoreBlack,
		})
	}
	return matches
}
