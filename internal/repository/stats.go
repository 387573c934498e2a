package repository

import (
	"context"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/skill"
)

// MatchStatsReader is implemented by every match store.
type MatchStatsReader interface {
	Stats(ctx context.Context) (match.Stats, error)
}

// SkillUsageReader is implemented by every profile store.
type SkillUsageReader interface {
	// TopSkills returns the most listed skills, most popular first, ties by name.
	TopSkills(ctx context.Context, limit int) ([]skill.Usage, error)
}

var (
	_ MatchStatsReader = (*PostgresMatchRepository)(nil)
	_ SkillUsageReader = (*PostgresProfileRepository)(nil)
)

func (r *PostgresMatchRepository) Stats(ctx context.Context) (match.Stats, error) {
	var s match.Stats
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'ACCEPTED'),
			COUNT(*) FILTER (WHERE status = 'REJECTED')
		FROM matches
	`).Scan(&s.Total, &s.Accepted, &s.Rejected)
	if err != nil {
		return match.Stats{}, err
	}
	s.Pending = s.Total - s.Accepted - s.Rejected
	return s, nil
}

func (r *PostgresProfileRepository) TopSkills(ctx context.Context, limit int) ([]skill.Usage, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.name, COUNT(*) AS uses
		FROM profile_skills ps
		JOIN skills s ON s.id = ps.skill_id
		GROUP BY s.id, s.name
		ORDER BY uses DESC, s.name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Usage, 0, limit)
	for rows.Next() {
		var u skill.Usage
		if err := rows.Scan(&u.ID, &u.Name, &u.Count); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
