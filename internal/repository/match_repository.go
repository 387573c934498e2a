package repository

import (
	"context"
	"errors"

	"founder-match/internal/database"
	"founder-match/internal/domain/match"

	"github.com/google/uuid"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrDuplicateMatch = errors.New("match already exists for pair")
	ErrStaleMatch     = errors.New("match was modified concurrently")
)

type MatchRepository interface {
	// FindByPair looks the pair up regardless of argument order.
	FindByPair(ctx context.Context, a, b uuid.UUID) (match.Match, error)
	FindByID(ctx context.Context, id uuid.UUID) (match.Match, error)
	// FindAllContaining returns every match the user is part of, highest score first.
	FindAllContaining(ctx context.Context, userID uuid.UUID) ([]match.Match, error)
	Create(ctx context.Context, m match.Match) (match.Match, error)
	// Save writes the per-user statuses and the derived status if m.Version is
	// still current, and returns the match with its new version.
	Save(ctx context.Context, m match.Match) (match.Match, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `id, user1_id, user2_id, score,
	breakdown_skills, breakdown_industry, breakdown_availability, breakdown_experience, breakdown_personality,
	status_user1, status_user2, status, version, created_at, updated_at`

func (r *PostgresMatchRepository) FindByPair(ctx context.Context, a, b uuid.UUID) (match.Match, error) {
	u1, u2 := match.CanonicalPair(a, b)
	row := r.db.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE user1_id = $1 AND user2_id = $2`, u1, u2)
	return scanMatch(row)
}

func (r *PostgresMatchRepository) FindByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	return scanMatch(row)
}

func (r *PostgresMatchRepository) FindAllContaining(ctx context.Context, userID uuid.UUID) ([]match.Match, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY score DESC, created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	u1, u2 := match.CanonicalPair(m.User1ID, m.User2ID)
	if u1 != m.User1ID {
		m.User1ID, m.User2ID = u1, u2
		m.StatusUser1, m.StatusUser2 = m.StatusUser2, m.StatusUser1
	}
	if m.Version == 0 {
		m.Version = 1
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO matches (
			id, user1_id, user2_id, score,
			breakdown_skills, breakdown_industry, breakdown_availability, breakdown_experience, breakdown_personality,
			status_user1, status_user2, status, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`,
		m.ID, m.User1ID, m.User2ID, m.Score,
		m.Breakdown.Skills, m.Breakdown.Industry, m.Breakdown.Availability, m.Breakdown.Experience, m.Breakdown.Personality,
		string(m.StatusUser1), string(m.StatusUser2), string(m.Status), m.Version,
	)
	if err := row.Scan(&m.CreatedAt, &m.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return match.Match{}, ErrDuplicateMatch
		}
		return match.Match{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) Save(ctx context.Context, m match.Match) (match.Match, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE matches
		SET status_user1 = $2, status_user2 = $3, status = $4, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $5
		RETURNING version, updated_at
	`, m.ID, string(m.StatusUser1), string(m.StatusUser2), string(m.Status), m.Version)

	if err := row.Scan(&m.Version, &m.UpdatedAt); err != nil {
		if !isNoRows(err) {
			return match.Match{}, err
		}
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM matches WHERE id = $1)`, m.ID).Scan(&exists); err != nil {
			return match.Match{}, err
		}
		if !exists {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, ErrStaleMatch
	}
	return m, nil
}

func scanMatch(row database.Row) (match.Match, error) {
	var (
		m              match.Match
		s1, s2, status string
	)
	err := row.Scan(
		&m.ID, &m.User1ID, &m.User2ID, &m.Score,
		&m.Breakdown.Skills, &m.Breakdown.Industry, &m.Breakdown.Availability, &m.Breakdown.Experience, &m.Breakdown.Personality,
		&s1, &s2, &status, &m.Version, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, err
	}
	m.StatusUser1 = match.Status(s1)
	m.StatusUser2 = match.Status(s2)
	m.Status = match.Status(status)
	return m, nil
}
