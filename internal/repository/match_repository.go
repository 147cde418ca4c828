package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/cliffdoyle/swiss-pairing-engine/internal/domain"
)

// MatchRepository persists the boards of each round.
type MatchRepository interface {
	CreateBatch(ctx context.Context, matches []domain.Match) error
	GetByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Match, error)
	GetByRound(ctx context.Context, tournamentID uuid.UUID, round int) ([]domain.Match, error)
	UpdateResult(ctx context.Context, m *domain.Match) error
}

type matchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new match repository.
func NewMatchRepository(db *sql.DB) MatchRepository {
	return &matchRepository{db: db}
}

// CreateBatch inserts every board of one round's pairing inside a single
// transaction so a round is never left half-written.
func (r *matchRepository) CreateBatch(ctx context.Context, matches []domain.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (
			id, tournament_id, round_id, round_number, board,
			white_id, black_id, result, score_white, score_black,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for i := range matches {
		m := &matches[i]
		m.CreatedAt, m.UpdatedAt = now, now
		if _, err := stmt.ExecContext(ctx,
			m.ID, m.TournamentID, m.RoundID, m.RoundNumber, m.Board,
			m.WhiteID, m.BlackID, m.Result, m.ScoreWhite, m.ScoreBlack,
			m.CreatedAt, m.UpdatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *matchRepository) GetByTournament(ctx context.Context, tournamentID uuid.UUID) ([]domain.Match, error) {
	return r.query(ctx, `
		SELECT id, tournament_id, round_id, round_number, board,
		       white_id, black_id, result, score_white, score_black,
		       created_at, updated_at
		FROM matches
		WHERE tournament_id = $1
		ORDER BY round_number ASC, board ASC
	`, tournamentID)
}

func (r *matchRepository) GetByRound(ctx context.Context, tournamentID uuid.UUID, round int) ([]domain.Match, error) {
	return r.query(ctx, `
		SELECT id, tournament_id, round_id, round_number, board,
		       white_id, black_id, result, score_white, score_black,
		       created_at, updated_at
		FROM matches
		WHERE tournament_id = $1 AND round_number = $2
		ORDER BY board ASC
	`, tournamentID, round)
}

func (r *matchRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []domain.Match{}
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(
			&m.ID, &m.TournamentID, &m.RoundID, &m.RoundNumber, &m.Board,
			&m.WhiteID, &m.BlackID, &m.Result, &m.ScoreWhite, &m.ScoreBlack,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *matchRepository) UpdateResult(ctx context.Context, m *domain.Match) error {
	m.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE matches SET result = $1, score_white = $2, score_black = $3, updated_at = $4
		WHERE id = $5
	`, m.Result, m.ScoreWhite, m.ScoreBlack, m.UpdatedAt, m.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.ErrRepositoryUnavailable{Op: "UpdateResult", Err: sql.ErrNoRows}
	}
	return nil
}
