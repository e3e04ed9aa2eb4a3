package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// resetTables is every application table in drop order, children before
// parents, followed by the bun bookkeeping tables so the schema is rebuilt
// from scratch.
var resetTables = []string{
	"book_genres",
	"books",
	"wanted",
	"authors",
	"genres",
	"bun_migrations",
	"bun_migration_locks",
}

// Reset drops every table and re-runs all migrations. Destructive and
// irreversible; callers are responsible for any confirmation flow.
func Reset(ctx context.Context, db *bun.DB) error {
	for _, table := range resetTables {
		_, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	_, err := BringUpToDate(ctx, db)
	return errors.WithStack(err)
}
