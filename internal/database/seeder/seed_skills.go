package seeder

import (
	"context"

	"founder-match/internal/database"
	"founder-match/internal/domain/skill"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

// DefaultSkills is the starter catalogue new profiles pick from.
var DefaultSkills = []string{
	"react",
	"node.js",
	"mongodb",
	"aws",
	"python",
	"marketing",
	"sales",
	"finance",
	"ui/ux design",
	"product management",
}

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "created_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, name := range DefaultSkills {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO skills (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT (name) DO NOTHING`,
				skill.NormalizeName(name),
			); err != nil {
				return err
			}
		}
		return nil
	})
}
