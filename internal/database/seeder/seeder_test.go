package seeder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"founder-match/internal/config"
	"founder-match/internal/database"
	"founder-match/internal/domain/user"

	"golang.org/x/crypto/bcrypt"
)

type columnRows struct {
	cols []string
	i    int
}

func (r *columnRows) Close()     {}
func (r *columnRows) Err() error { return nil }
func (r *columnRows) Next() bool {
	r.i++
	return r.i <= len(r.cols)
}
func (r *columnRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.cols[r.i-1]
	return nil
}

type execCall struct {
	query string
	args  []any
}

// schemaDB answers information_schema lookups from tables and records every
// statement, whether run on the pool or inside a transaction.
type schemaDB struct {
	database.DB

	tables  map[string][]string
	execErr error

	execs      []execCall
	committed  bool
	rolledBack bool
}

func (d *schemaDB) Query(_ context.Context, _ string, args ...any) (database.Rows, error) {
	return &columnRows{cols: d.tables[args[0].(string)]}, nil
}

func (d *schemaDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	if d.execErr != nil {
		return 0, d.execErr
	}
	d.execs = append(d.execs, execCall{query: query, args: args})
	return 1, nil
}

func (d *schemaDB) Begin(context.Context) (database.Tx, error) { return schemaTx{d}, nil }

type schemaTx struct{ d *schemaDB }

func (t schemaTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.d.Exec(ctx, query, args...)
}
func (t schemaTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.d.Query(ctx, query, args...)
}
func (t schemaTx) QueryRow(context.Context, string, ...any) database.Row { return nil }
func (t schemaTx) Commit(context.Context) error {
	t.d.committed = true
	return nil
}
func (t schemaTx) Rollback(context.Context) error {
	if !t.d.committed {
		t.d.rolledBack = true
	}
	return nil
}

func migratedDB() *schemaDB {
	return &schemaDB{tables: map[string][]string{
		"skills": {"id", "name", "created_at"},
		"users":  {"id", "email", "password_hash", "role", "created_at", "updated_at"},
	}}
}

func TestEnsureTableColumns(t *testing.T) {
	db := migratedDB()

	if err := EnsureTableColumns(context.Background(), db, "skills", "id", "name"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	err := EnsureTableColumns(context.Background(), db, "skills", "id", "slug", "category")
	if !errors.Is(err, ErrSchemaMismatch) || !strings.Contains(err.Error(), "slug, category") {
		t.Fatalf("expected both missing columns reported, got %v", err)
	}

	err = EnsureTableColumns(context.Background(), db, "messages", "id")
	if !errors.Is(err, ErrSchemaMismatch) || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing table, got %v", err)
	}
}

func TestSkillsSeeder_InsertsCatalogueInOneTx(t *testing.T) {
	db := migratedDB()

	if err := (SkillsSeeder{}).Run(context.Background(), db); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(db.execs) != len(DefaultSkills) {
		t.Fatalf("expected %d inserts, got %d", len(DefaultSkills), len(db.execs))
	}
	if !db.committed || db.rolledBack {
		t.Fatalf("expected commit without rollback")
	}
	if db.execs[len(db.execs)-1].args[0] != "product management" {
		t.Fatalf("unexpected last skill: %v", db.execs[len(db.execs)-1].args[0])
	}
}

func TestSkillsSeeder_RollsBackOnError(t *testing.T) {
	db := migratedDB()
	db.execErr = errors.New("disk full")

	if err := (SkillsSeeder{}).Run(context.Background(), db); err == nil {
		t.Fatalf("expected error")
	}
	if db.committed || !db.rolledBack {
		t.Fatalf("expected rollback, committed=%v rolledBack=%v", db.committed, db.rolledBack)
	}
}

func TestAdminSeeder_UpsertsAdminRole(t *testing.T) {
	db := migratedDB()
	s := AdminSeeder{Email: "  Ops@Founder.io ", Password: "correct-horse", cost: bcrypt.MinCost}

	if err := s.Run(context.Background(), db); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(db.execs) != 1 {
		t.Fatalf("expected a single upsert, got %d", len(db.execs))
	}
	call := db.execs[0]
	if !strings.Contains(call.query, "ON CONFLICT (email) DO UPDATE") {
		t.Fatalf("expected upsert, got %s", call.query)
	}
	if call.args[1] != "ops@founder.io" || call.args[3] != string(user.RoleAdmin) {
		t.Fatalf("unexpected args: %v", call.args)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(call.args[2].(string)), []byte("correct-horse")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAdminSeeder_RejectsBadInput(t *testing.T) {
	db := migratedDB()

	if err := (AdminSeeder{Email: "ops@founder.io", Password: "short"}).Run(context.Background(), db); !errors.Is(err, ErrWeakAdminPassword) {
		t.Fatalf("expected ErrWeakAdminPassword, got %v", err)
	}
	if err := (AdminSeeder{Email: " ", Password: "long-enough"}).Run(context.Background(), db); err == nil {
		t.Fatalf("expected error for empty email")
	}
	if len(db.execs) != 0 {
		t.Fatalf("nothing should be written, got %d statements", len(db.execs))
	}
}

func TestDefaults(t *testing.T) {
	if got := Defaults(config.SeedConfig{}); len(got) != 1 || got[0].Name() != "skills" {
		t.Fatalf("expected only the skills seeder, got %d", len(got))
	}

	got := Defaults(config.SeedConfig{AdminEmail: "ops@founder.io", AdminPassword: "correct-horse"})
	if len(got) != 2 || got[1].Name() != "admin" {
		t.Fatalf("expected admin seeder last, got %d seeders", len(got))
	}
}
