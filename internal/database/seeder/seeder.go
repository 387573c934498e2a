package seeder

import (
	"context"

	"founder-match/internal/config"
	"founder-match/internal/database"
)

// Seeder loads reference or bootstrap rows. cmd/seed runs every seeder on each
// invocation, so Run must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Defaults returns the skill catalogue seeder, followed by the bootstrap admin
// when ADMIN_EMAIL is configured.
func Defaults(cfg config.SeedConfig) []Seeder {
	out := []Seeder{SkillsSeeder{}}
	if cfg.HasAdmin() {
		out = append(out, AdminSeeder{Email: cfg.AdminEmail, Password: cfg.AdminPassword})
	}
	return out
}
