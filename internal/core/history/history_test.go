package history

import (
	"testing"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

func newParticipant() domain.Participant {
	return domain.Participant{ID: uuid.New(), Active: true, Rating: domain.DefaultRating}
}

func match(round, board int, white, black uuid.UUID, result domain.ResultTag, scoreWhite, scoreBlack float64) domain.Match {
	var b *uuid.UUID
	if black != uuid.Nil {
		b = &black
	}
	return domain.Match{
		ID: uuid.New(), RoundNumber: round, Board: board,
		WhiteID: white, BlackID: b, Result: result,
		ScoreWhite: scoreWhite, ScoreBlack: scoreBlack,
	}
}

func TestBuildScoreAccumulation(t *testing.T) {
	a, b := newParticipant(), newParticipant()
	roster := []domain.Participant{a, b}
	matches := []domain.Match{
		match(1, 1, a.ID, b.ID, domain.WhiteWins, 1, 0),
		match(2, 1, b.ID, a.ID, domain.Draw, 0.5, 0.5),
	}

	histories, err := Build(roster, matches)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := histories[a.ID].Score; got != 1.5 {
		t.Errorf("a score = %v, want 1.5", got)
	}
	if got := histories[b.ID].Score; got != 0.5 {
		t.Errorf("b score = %v, want 0.5", got)
	}
	if !histories[a.ID].HasPlayed(b.ID) || !histories[b.ID].HasPlayed(a.ID) {
		t.Error("expected mutual opponent record")
	}
}

func TestBuildColorCounts(t *testing.T) {
	a, b := newParticipant(), newParticipant()
	roster := []domain.Participant{a, b}
	matches := []domain.Match{
		match(1, 1, a.ID, b.ID, domain.WhiteWins, 1, 0),
		match(2, 1, b.ID, a.ID, domain.BlackWins, 0, 1),
	}

	histories, err := Build(roster, matches)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ha := histories[a.ID]
	if ha.WhiteCount != 1 || ha.BlackCount != 1 {
		t.Errorf("a colors = %d/%d, want 1/1", ha.WhiteCount, ha.BlackCount)
	}
	if ha.ColorDiff() != 0 {
		t.Errorf("a colorDiff = %d, want 0", ha.ColorDiff())
	}
}

func TestBuildRejectsDuplicateParticipantInRound(t *testing.T) {
	a, b, c := newParticipant(), newParticipant(), newParticipant()
	roster := []domain.Participant{a, b, c}
	matches := []domain.Match{
		match(1, 1, a.ID, b.ID, domain.WhiteWins, 1, 0),
		match(1, 2, a.ID, c.ID, domain.WhiteWins, 1, 0),
	}

	_, err := Build(roster, matches)
	var invalid *domain.ErrInvalidHistory
	if err == nil {
		t.Fatal("expected ErrInvalidHistory, got nil")
	}
	if !asInvalidHistory(err, &invalid) {
		t.Fatalf("expected *domain.ErrInvalidHistory, got %T", err)
	}
	if invalid.RoundNumber != 1 {
		t.Errorf("RoundNumber = %d, want 1", invalid.RoundNumber)
	}
}

func asInvalidHistory(err error, target **domain.ErrInvalidHistory) bool {
	e, ok := err.(*domain.ErrInvalidHistory)
	if ok {
		*target = e
	}
	return ok
}

// TestVirtualOpponentScore: a player who received a full-point bye in
// round 2 of a 4-round event, having scored 1 point in round 1, should
// get Svon = 1 + (1-1) + 0.5*(4-2) = 2.
func TestVirtualOpponentScore(t *testing.T) {
	a, b, c := newParticipant(), newParticipant(), newParticipant()
	roster := []domain.Participant{a, b, c}
	matches := []domain.Match{
		match(1, 1, a.ID, b.ID, domain.WhiteWins, 1, 0),
		match(1, 2, c.ID, uuid.Nil, domain.Bye, 1, 0),
		match(2, 1, a.ID, uuid.Nil, domain.Bye, 1, 0),
		match(3, 1, a.ID, b.ID, domain.Draw, 0.5, 0.5),
		match(4, 1, a.ID, b.ID, domain.Draw, 0.5, 0.5),
	}

	histories, err := Build(roster, matches)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ha := histories[a.ID]
	var byeRec *PlayerRoundRecord
	for i := range ha.Records {
		if ha.Records[i].Outcome == domain.OutcomeBye {
			byeRec = &ha.Records[i]
		}
	}
	if byeRec == nil {
		t.Fatal("expected a bye record for a")
	}
	if byeRec.VirtualOpponentScore == nil {
		t.Fatal("expected VirtualOpponentScore to be set")
	}
	if got, want := *byeRec.VirtualOpponentScore, 2.0; got != want {
		t.Errorf("Svon = %v, want %v", got, want)
	}
}

// TestByeRecordColorIsNone: a bye round carries no color, and must not
// be confused with a real white game when computing LastTwoSameColor.
func TestByeRecordColorIsNone(t *testing.T) {
	a, b := newParticipant(), newParticipant()
	roster := []domain.Participant{a, b}
	matches := []domain.Match{
		match(1, 1, a.ID, b.ID, domain.WhiteWins, 1, 0),
		match(2, 1, a.ID, uuid.Nil, domain.Bye, 1, 0),
	}

	histories, err := Build(roster, matches)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ha := histories[a.ID]
	var byeRec *PlayerRoundRecord
	for i := range ha.Records {
		if ha.Records[i].RoundNumber == 2 {
			byeRec = &ha.Records[i]
		}
	}
	if byeRec == nil {
		t.Fatal("expected a round 2 record")
	}
	if byeRec.Color != domain.ColorNone {
		t.Errorf("bye record Color = %v, want ColorNone", byeRec.Color)
	}
	if ha.WhiteCount != 1 || ha.BlackCount != 0 {
		t.Errorf("a colors = %d/%d, want 1/0 (bye must not count as a color)", ha.WhiteCount, ha.BlackCount)
	}
	if ha.ColorDiff() != 1 {
		t.Errorf("a colorDiff = %d, want 1", ha.ColorDiff())
	}
	// Only one real-colored round exists, so LastTwoSameColor must stay
	// ColorNone even though the bye record sits immediately after it.
	if ha.LastTwoSameColor != domain.ColorNone {
		t.Errorf("a LastTwoSameColor = %v, want ColorNone", ha.LastTwoSameColor)
	}
}

func TestAdjustedScoreRule(t *testing.T) {
	a, b := newParticipant(), newParticipant()
	roster := []domain.Participant{a, b}
	matches := []domain.Match{
		match(1, 1, a.ID, uuid.Nil, domain.Bye, 1, 0),
		match(2, 1, a.ID, b.ID, domain.ForfeitBlack, 1, 0),
	}

	histories, err := Build(roster, matches)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ha := histories[a.ID]
	if ha.Score != 2 {
		t.Errorf("raw score = %v, want 2", ha.Score)
	}
	if ha.AdjustedScore != 1 {
		t.Errorf("adjusted score = %v, want 1 (0.5 bye + 0.5 forfeit)", ha.AdjustedScore)
	}
}
