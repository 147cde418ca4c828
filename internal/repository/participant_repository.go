package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// ParticipantRepository persists tournament-scoped participants.
type ParticipantRepository interface {
	Create(ctx context.Context, p *domain.Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Participant, error)
	Update(ctx context.Context, p *domain.Participant) error
	NextSeq(ctx context.Context, tournamentID uuid.UUID) (int, error)
}

type participantRepository struct {
	db *sql.DB
}

// NewParticipantRepository creates a new participant repository.
func NewParticipantRepository(db *sql.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO participants (
			id, tournament_id, seq, name, rating, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.TournamentID, p.Seq, p.Name, p.Rating, p.Active, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *participantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	var p domain.Participant
	err := r.db.QueryRowContext(ctx, `
		SELECT id, tournament_id, seq, name, rating, active, created_at, updated_at
		FROM participants
		WHERE id = $1
	`, id).Scan(&p.ID, &p.TournamentID, &p.Seq, &p.Name, &p.Rating, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrParticipantNotFound{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Participant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tournament_id, seq, name, rating, active, created_at, updated_at
		FROM participants
		WHERE tournament_id = $1
		ORDER BY seq ASC
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.TournamentID, &p.Seq, &p.Name, &p.Rating, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *participantRepository) Update(ctx context.Context, p *domain.Participant) error {
	p.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE participants SET name = $1, rating = $2, active = $3, updated_at = $4
		WHERE id = $5
	`, p.Name, p.Rating, p.Active, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.ErrParticipantNotFound{ID: p.ID}
	}
	return nil
}

// NextSeq returns the next registration sequence number for a tournament,
// the stable integer identifier round 1's bye rule sorts on.
func (r *participantRepository) NextSeq(ctx context.Context, tournamentID uuid.UUID) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(seq) FROM participants WHERE tournament_id = $1
	`, tournamentID).Scan(&max)
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}
