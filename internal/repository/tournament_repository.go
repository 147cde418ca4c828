package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// TournamentRepository persists tournament configuration.
type TournamentRepository interface {
	Create(ctx context.Context, t *domain.Tournament) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tournament, error)
	Update(ctx context.Context, t *domain.Tournament) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tournamentRepository struct {
	db *sql.DB
}

// NewTournamentRepository creates a new tournament repository.
func NewTournamentRepository(db *sql.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) Create(ctx context.Context, t *domain.Tournament) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	tiebreakers := make([]string, len(t.Tiebreakers))
	for i, k := range t.Tiebreakers {
		tiebreakers[i] = string(k)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tournaments (
			id, name, rounds, points_win, points_draw, points_loss,
			bye_points, tiebreakers, forbid_repeat_bye, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		t.ID, t.Name, t.Rounds, t.PointsWin, t.PointsDraw, t.PointsLoss,
		t.ByePoints, pq.Array(tiebreakers), t.ForbidRepeatBye, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *tournamentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	var t domain.Tournament
	var tiebreakers pq.StringArray

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, rounds, points_win, points_draw, points_loss,
		       bye_points, tiebreakers, forbid_repeat_bye, created_at, updated_at
		FROM tournaments
		WHERE id = $1
	`, id).Scan(
		&t.ID, &t.Name, &t.Rounds, &t.PointsWin, &t.PointsDraw, &t.PointsLoss,
		&t.ByePoints, &tiebreakers, &t.ForbidRepeatBye, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTournamentNotFound{ID: id}
	}
	if err != nil {
		return nil, err
	}

	t.Tiebreakers = make([]domain.TiebreakKey, len(tiebreakers))
	for i, k := range tiebreakers {
		t.Tiebreakers[i] = domain.TiebreakKey(k)
	}
	return &t, nil
}

func (r *tournamentRepository) Update(ctx context.Context, t *domain.Tournament) error {
	t.UpdatedAt = time.Now()

	tiebreakers := make([]string, len(t.Tiebreakers))
	for i, k := range t.Tiebreakers {
		tiebreakers[i] = string(k)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE tournaments SET
			name = $1, rounds = $2, points_win = $3, points_draw = $4,
			points_loss = $5, bye_points = $6, tiebreakers = $7,
			forbid_repeat_bye = $8, updated_at = $9
		WHERE id = $10
	`,
		t.Name, t.Rounds, t.PointsWin, t.PointsDraw, t.PointsLoss,
		t.ByePoints, pq.Array(tiebreakers), t.ForbidRepeatBye, t.UpdatedAt, t.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("update tournament sql error (%s: %s): %w", pqErr.Code, pqErr.Message, err)
		}
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.ErrTournamentNotFound{ID: t.ID}
	}
	return nil
}

func (r *tournamentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	return err
}
