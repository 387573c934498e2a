package repository

import (
	"context"
	"errors"

	"founder-match/internal/database"
	"founder-match/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrDuplicateSkill = errors.New("skill already exists")

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, name string) (skill.Skill, error)
	// EnsureSkill returns the existing row for name or creates it.
	EnsureSkill(ctx context.Context, name string) (skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]skill.Skill, error) {
	if len(ids) == 0 {
		return []skill.Skill{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM skills WHERE id = ANY($1::uuid[]) ORDER BY name ASC`, uuidStrings(ids))
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name string) (skill.Skill, error) {
	s := skill.Skill{ID: uuid.New(), Name: skill.NormalizeName(name)}
	err := r.db.QueryRow(ctx, `INSERT INTO skills (id, name) VALUES ($1, $2) RETURNING created_at`, s.ID, s.Name).Scan(&s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return skill.Skill{}, ErrDuplicateSkill
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) EnsureSkill(ctx context.Context, name string) (skill.Skill, error) {
	name = skill.NormalizeName(name)
	var s skill.Skill
	err := r.db.QueryRow(ctx, `
		INSERT INTO skills (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at
	`, uuid.New(), name).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func collectSkills(rows database.Rows) ([]skill.Skill, error) {
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
