package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// RoundRepository persists round lifecycle state.
type RoundRepository interface {
	Create(ctx context.Context, r *domain.Round) error
	GetByNumber(ctx context.Context, tournamentID uuid.UUID, number int) (*domain.Round, error)
	ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Round, error)
	MarkPaired(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID) error
}

type roundRepository struct {
	db *sql.DB
}

// NewRoundRepository creates a new round repository.
func NewRoundRepository(db *sql.DB) RoundRepository {
	return &roundRepository{db: db}
}

func (r *roundRepository) Create(ctx context.Context, round *domain.Round) error {
	now := time.Now()
	round.CreatedAt = now
	round.UpdatedAt = now
	if round.Status == "" {
		round.Status = domain.RoundPending
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rounds (id, tournament_id, number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, round.ID, round.TournamentID, round.Number, round.Status, round.CreatedAt, round.UpdatedAt)
	return err
}

func (r *roundRepository) GetByNumber(ctx context.Context, tournamentID uuid.UUID, number int) (*domain.Round, error) {
	var round domain.Round
	var pairedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT id, tournament_id, number, status, paired_at, created_at, updated_at
		FROM rounds
		WHERE tournament_id = $1 AND number = $2
	`, tournamentID, number).Scan(
		&round.ID, &round.TournamentID, &round.Number, &round.Status, &pairedAt, &round.CreatedAt, &round.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrRoundNotFound{TournamentID: tournamentID, Number: number}
	}
	if err != nil {
		return nil, err
	}
	if pairedAt.Valid {
		round.PairedAt = &pairedAt.Time
	}
	return &round, nil
}

func (r *roundRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Round, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tournament_id, number, status, paired_at, created_at, updated_at
		FROM rounds
		WHERE tournament_id = $1
		ORDER BY number ASC
	`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := []domain.Round{}
	for rows.Next() {
		var round domain.Round
		var pairedAt sql.NullTime
		if err := rows.Scan(&round.ID, &round.TournamentID, &round.Number, &round.Status, &pairedAt, &round.CreatedAt, &round.UpdatedAt); err != nil {
			return nil, err
		}
		if pairedAt.Valid {
			round.PairedAt = &pairedAt.Time
		}
		rounds = append(rounds, round)
	}
	return rounds, rows.Err()
}

func (r *roundRepository) MarkPaired(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE rounds SET status = $1, paired_at = $2, updated_at = $3 WHERE id = $4
	`, domain.RoundPaired, now, now, id)
	return err
}

func (r *roundRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE rounds SET status = $1, updated_at = $2 WHERE id = $3
	`, domain.RoundCompleted, time.Now(), id)
	return err
}
