package seeder

import (
	"context"
	"errors"
	"strings"

	"founder-match/internal/database"
	"founder-match/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minAdminPasswordLen = 8

var ErrWeakAdminPassword = errors.New("admin password must be at least 8 characters")

// AdminSeeder ensures a user with the given email holds the ADMIN role. A new
// account gets the configured password; an existing account is promoted and
// keeps its password.
type AdminSeeder struct {
	Email    string
	Password string

	// cost overrides bcrypt.DefaultCost in tests.
	cost int
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" {
		return errors.New("admin email is empty")
	}
	if len(s.Password) < minAdminPasswordLen {
		return ErrWeakAdminPassword
	}
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "role", "updated_at"); err != nil {
		return err
	}

	cost := s.cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, updated_at = NOW()
	`, uuid.New(), email, string(hash), string(user.RoleAdmin))
	return err
}
