package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	// Each :memory: connection gets its own database, so the pool has to stay
	// at a single connection.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestBringUpToDate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	group, err := BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.NotEqual(t, int64(0), group.ID)

	// All application tables should exist and be writable.
	for _, stmt := range []string{
		"INSERT INTO authors (name) VALUES ('Ursula K. Le Guin')",
		"INSERT INTO genres (name) VALUES ('Fantasy')",
		"INSERT INTO books (title, status, rating) VALUES ('A Wizard of Earthsea', 'finished', 9)",
		"INSERT INTO book_genres (book_id, genre_id) VALUES (1, 1)",
		"INSERT INTO wanted (title) VALUES ('The Dispossessed')",
	} {
		_, err = db.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}
}

func TestBringUpToDateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := BringUpToDate(ctx, db)
	require.NoError(t, err)

	group, err := BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), group.ID)
}

func TestReset(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := BringUpToDate(ctx, db)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "INSERT INTO authors (name) VALUES ('Someone')")
	require.NoError(t, err)

	err = Reset(ctx, db)
	require.NoError(t, err)

	// Data is gone but the schema is rebuilt and usable.
	var count int
	err = db.NewSelect().Table("authors").ColumnExpr("COUNT(*)").Scan(ctx, &count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = db.ExecContext(ctx, "INSERT INTO authors (name) VALUES ('Someone Else')")
	require.NoError(t, err)
}
