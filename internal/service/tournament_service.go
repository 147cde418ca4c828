package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/client"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
	"github.com/cliffdoyle/swiss-pairing-engine/internal/repository"
)

// TournamentService covers tournament and participant lifecycle, the
// ambient CRUD surface the pairing and standings services build on.
type TournamentService interface {
	CreateTournament(ctx context.Context, req *domain.Tournament) (*domain.Tournament, error)
	GetTournament(ctx context.Context, id uuid.UUID) (*domain.Tournament, error)
	RegisterParticipant(ctx context.Context, tournamentID uuid.UUID, req *domain.ParticipantRequest) (*domain.Participant, error)
	ListParticipants(ctx context.Context, tournamentID uuid.UUID) ([]domain.Participant, error)
	WithdrawParticipant(ctx context.Context, tournamentID, participantID uuid.UUID) error
}

type tournamentService struct {
	tournamentRepo  repository.TournamentRepository
	participantRepo repository.ParticipantRepository
	ratings         *client.RatingService
}

// NewTournamentService creates a new tournament service.
func NewTournamentService(
	tournamentRepo repository.TournamentRepository,
	participantRepo repository.ParticipantRepository,
	ratings *client.RatingService,
) TournamentService {
	return &tournamentService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		ratings:         ratings,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, req *domain.Tournament) (*domain.Tournament, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.PointsWin == 0 && req.PointsDraw == 0 && req.PointsLoss == 0 && req.ByePoints == 0 {
		defaults := domain.DefaultConfig()
		req.PointsWin, req.PointsDraw, req.PointsLoss, req.ByePoints = defaults.PointsWin, defaults.PointsDraw, defaults.PointsLoss, defaults.ByePoints
	}
	if err := s.tournamentRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create tournament: %w", err)
	}
	return req, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	return s.tournamentRepo.GetByID(ctx, id)
}

// RegisterParticipant assigns the next registration sequence (the stable
// integer identifier round 1's bye rule needs) and, when the caller left
// the rating blank, tries the rating service before falling back to
// domain.DefaultRating.
func (s *tournamentService) RegisterParticipant(ctx context.Context, tournamentID uuid.UUID, req *domain.ParticipantRequest) (*domain.Participant, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	seq, err := s.participantRepo.NextSeq(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("allocate seq: %w", err)
	}

	rating := domain.DefaultRating
	if req.Rating != nil && *req.Rating > 0 {
		rating = *req.Rating
	} else if s.ratings != nil {
		if looked, ok, err := s.ratings.Lookup(req.Name); err == nil && ok {
			rating = looked
		}
	}

	p := &domain.Participant{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		Seq:          seq,
		Name:         req.Name,
		Rating:       rating,
		Active:       true,
	}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}
	return p, nil
}

func (s *tournamentService) ListParticipants(ctx context.Context, tournamentID uuid.UUID) ([]domain.Participant, error) {
	return s.participantRepo.ListByTournament(ctx, tournamentID)
}

// WithdrawParticipant marks a participant inactive rather than deleting
// them, so the history model built from past rounds still resolves their
// record. Pairing only considers active participants, but history and
// tiebreaks are computed over everyone who ever played.
func (s *tournamentService) WithdrawParticipant(ctx context.Context, tournamentID, participantID uuid.UUID) error {
	p, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return err
	}
	if p.TournamentID != tournamentID {
		return &domain.ErrParticipantNotFound{ID: participantID}
	}
	p.Active = false
	return s.participantRepo.Update(ctx, p)
}
