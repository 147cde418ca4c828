package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/history"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/core/tiebreak"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/repository"
)

// StandingsService computes the current ranking for a tournament.
type StandingsService interface {
	Standings(ctx context.Context, tournamentID uuid.UUID) ([]tiebreak.Standing, error)
}

type standingsService struct {
	tournamentRepo  repository.TournamentRepository
	participantRepo repository.ParticipantRepository
	matchRepo       repository.MatchRepository
	broadcastChan   chan<- domain.WebSocketMessage
}

// NewStandingsService creates a new standings service.
func NewStandingsService(
	tournamentRepo repository.TournamentRepository,
	participantRepo repository.ParticipantRepository,
	matchRepo repository.MatchRepository,
	broadcastChan chan<- domain.WebSocketMessage,
) StandingsService {
	return &standingsService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		broadcastChan:   broadcastChan,
	}
}

// Standings rebuilds the history model from every recorded match and ranks
// the full roster per the tournament's configured tiebreakers.
func (s *standingsService) Standings(ctx context.Context, tournamentID uuid.UUID) ([]tiebreak.Standing, error) {
	cfg, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load tournament: %w", err)
	}

	roster, err := s.participantRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	matches, err := s.matchRepo.GetByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	histories, err := history.Build(roster, matches)
	if err != nil {
		return nil, err
	}

	standings := tiebreak.Rank(*cfg, roster, histories)

	if s.broadcastChan != nil {
		latestRound := 0
		for _, m := range matches {
			if m.RoundNumber > latestRound {
				latestRound = m.RoundNumber
			}
		}
		s.broadcastChan <- domain.WebSocketMessage{
			Type: domain.WSEventStandingsUpdated,
			Payload: domain.StandingsUpdatedPayload{
				TournamentID: tournamentID,
				RoundNumber:  latestRound,
			},
		}
	}

	return standings, nil
}
