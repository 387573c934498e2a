package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"founder-match/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// EnsureTableColumns fails unless table exists with every listed column. It
// guards seeders against running before migrations.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return database.ErrNilDB
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(existing) == 0 {
		return fmt.Errorf("%w: table %s does not exist", ErrSchemaMismatch, table)
	}
	if missing := missingColumns(existing, columns); len(missing) > 0 {
		return fmt.Errorf("%w: %s is missing %s", ErrSchemaMismatch, table, strings.Join(missing, ", "))
	}
	return nil
}

func missingColumns(existing map[string]struct{}, want []string) []string {
	var missing []string
	for _, col := range want {
		if _, ok := existing[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
