package genres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pkg/errors"
	"github.com/shelfnotes/shelfnotes/pkg/errcodes"
	"github.com/shelfnotes/shelfnotes/pkg/migrations"
	"github.com/shelfnotes/shelfnotes/pkg/models"
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

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestBook(t *testing.T, db *bun.DB, title string) *models.Book {
	t.Helper()

	book := &models.Book{Title: title, Status: models.StatusToRead}
	_, err := db.NewInsert().Model(book).Exec(context.Background())
	require.NoError(t, err)
	return book
}

func TestCreateGenreConflict(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	genre := &models.Genre{Name: "Fantasy"}
	require.NoError(t, svc.CreateGenre(ctx, genre))
	assert.NotZero(t, genre.ID)

	err := svc.CreateGenre(ctx, &models.Genre{Name: "Fantasy"})
	assert.True(t, errors.Is(err, errcodes.Conflict("Genre")))
}

func TestFindOrCreateGenre(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	first, err := svc.FindOrCreateGenre(ctx, "Sci-Fi")
	require.NoError(t, err)

	second, err := svc.FindOrCreateGenre(ctx, "sci-fi")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	genres, err := svc.ListGenres(ctx, ListGenresOptions{})
	require.NoError(t, err)
	assert.Len(t, genres, 1)
}

func TestAttachGenre(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	book := createTestBook(t, db, "Dune")
	genre := &models.Genre{Name: "Sci-Fi"}
	require.NoError(t, svc.CreateGenre(ctx, genre))

	err := svc.AttachGenre(ctx, book.ID, genre.ID)
	require.NoError(t, err)

	// Attaching the same pair again conflicts.
	err = svc.AttachGenre(ctx, book.ID, genre.ID)
	assert.True(t, errors.Is(err, errcodes.Conflict("Book genre")))

	// Attaching to a missing book is a validation error, not a store error.
	err = svc.AttachGenre(ctx, 9999, genre.ID)
	assert.True(t, errors.Is(err, errcodes.ValidationError("Book and genre must both exist")))
}

func TestReconcileBookGenresOnlyAttaches(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	book := createTestBook(t, db, "Dune")

	err := svc.ReconcileBookGenres(ctx, book.ID, []string{"Sci-Fi", "Classic"})
	require.NoError(t, err)

	genres, err := svc.ListGenresForBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Len(t, genres, 2)

	// Saving again with a partial list adds the new tag but never removes the
	// ones that were omitted.
	err = svc.ReconcileBookGenres(ctx, book.ID, []string{"Epic"})
	require.NoError(t, err)

	genres, err = svc.ListGenresForBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Len(t, genres, 3)
}

func TestReconcileBookGenresIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	book := createTestBook(t, db, "Dune")

	require.NoError(t, svc.ReconcileBookGenres(ctx, book.ID, []string{"Sci-Fi"}))
	require.NoError(t, svc.ReconcileBookGenres(ctx, book.ID, []string{"sci-fi", " Sci-Fi ", ""}))

	genres, err := svc.ListGenresForBook(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Sci-Fi", genres[0].Name)
}

func TestDeleteGenreKeepsBooks(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	book := createTestBook(t, db, "Dune")
	genre, err := svc.FindOrCreateGenre(ctx, "Sci-Fi")
	require.NoError(t, err)
	require.NoError(t, svc.AttachGenre(ctx, book.ID, genre.ID))

	err = svc.DeleteGenre(ctx, genre.ID)
	require.NoError(t, err)

	genres, err := svc.ListGenresForBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Empty(t, genres)

	// The book row itself is untouched.
	var count int
	err = db.NewSelect().Table("books").ColumnExpr("COUNT(*)").Scan(ctx, &count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetBookCount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	genre, err := svc.FindOrCreateGenre(ctx, "Sci-Fi")
	require.NoError(t, err)

	for _, title := range []string{"Dune", "Hyperion"} {
		book := createTestBook(t, db, title)
		require.NoError(t, svc.AttachGenre(ctx, book.ID, genre.ID))
	}

	count, err := svc.GetBookCount(ctx, genre.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
