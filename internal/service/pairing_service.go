// Package service orchestrates the pure core packages (history, pairing,
// tiebreak) against the repository layer and broadcasts the results over
// the websocket hub.
package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/history"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/pairing"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/repository"
)

// PairingService generates and persists one round's pairing.
type PairingService interface {
	GenerateRound(ctx context.Context, tournamentID uuid.UUID, roundNumber int) ([]domain.Match, error)
}

type pairingService struct {
	tournamentRepo  repository.TournamentRepository
	participantRepo repository.ParticipantRepository
	roundRepo       repository.RoundRepository
	matchRepo       repository.MatchRepository
	broadcastChan   chan<- domain.WebSocketMessage
}

// NewPairingService creates a new pairing service. broadcastChan may be
// nil, in which case round generation proceeds without notifying any
// connected clients.
func NewPairingService(
	tournamentRepo repository.TournamentRepository,
	participantRepo repository.ParticipantRepository,
	roundRepo repository.RoundRepository,
	matchRepo repository.MatchRepository,
	broadcastChan chan<- domain.WebSocketMessage,
) PairingService {
	return &pairingService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		roundRepo:       roundRepo,
		matchRepo:       matchRepo,
		broadcastChan:   broadcastChan,
	}
}

// GenerateRound builds the history model from every round strictly before
// roundNumber, runs the pairing engine, and persists the resulting boards.
// The round is created in Pending status and marked Paired once its
// boards are persisted.
func (s *pairingService) GenerateRound(ctx context.Context, tournamentID uuid.UUID, roundNumber int) ([]domain.Match, error) {
	cfg, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load tournament: %w", err)
	}

	roster, err := s.participantRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	allMatches, err := s.matchRepo.GetByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load match history: %w", err)
	}
	priorMatches := make([]domain.Match, 0, len(allMatches))
	for _, m := range allMatches {
		if m.RoundNumber < roundNumber {
			priorMatches = append(priorMatches, m)
		}
	}

	histories, err := history.Build(roster, priorMatches)
	if err != nil {
		return nil, err
	}

	result, err := pairing.Pair(*cfg, roundNumber, roster, histories, rand.New(rand.NewSource(seedFor(tournamentID, roundNumber))))
	if err != nil {
		return nil, err
	}

	round := &domain.Round{ID: uuid.New(), TournamentID: tournamentID, Number: roundNumber, Status: domain.RoundPending}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		return nil, &domain.ErrRepositoryUnavailable{Op: "CreateRound", Err: err}
	}

	matches := make([]domain.Match, 0, len(result.Pairings))
	for _, draft := range result.Pairings {
		matches = append(matches, domain.Match{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			RoundID:      round.ID,
			RoundNumber:  roundNumber,
			Board:        draft.Board,
			WhiteID:      draft.WhiteID,
			BlackID:      draft.BlackID,
			Result:       draft.DefaultResult,
			ScoreWhite:   draft.ScoreWhite,
			ScoreBlack:   draft.ScoreBlack,
		})
	}

	if err := s.matchRepo.CreateBatch(ctx, matches); err != nil {
		return nil, &domain.ErrRepositoryUnavailable{Op: "CreateMatches", Err: err}
	}
	if err := s.roundRepo.MarkPaired(ctx, round.ID); err != nil {
		return nil, &domain.ErrRepositoryUnavailable{Op: "MarkPaired", Err: err}
	}

	if s.broadcastChan != nil {
		s.broadcastChan <- domain.WebSocketMessage{
			Type: domain.WSEventPairingGenerated,
			Payload: domain.PairingGeneratedPayload{
				TournamentID: tournamentID,
				RoundNumber:  roundNumber,
				BoardCount:   len(matches),
			},
		}
	}

	return matches, nil
}

// seedFor derives a round's color-randomization seed deterministically
// from the tournament and round number, so re-running GenerateRound on
// the same inputs (e.g. after a crash, before any result is recorded)
// reproduces the same pairing rather than re-rolling colors.
func seedFor(tournamentID uuid.UUID, round int) int64 {
	var seed int64
	for _, b := range tournamentID {
		seed = seed*31 + int64(b)
	}
	return seed + int64(round)
}
