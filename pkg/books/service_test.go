package books

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/shelfnotes/shelfnotes/pkg/errcodes"
	"github.com/shelfnotes/shelfnotes/pkg/genres"
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

func createTestAuthor(t *testing.T, db *bun.DB, name string) *models.Author {
	t.Helper()

	author := &models.Author{Name: name}
	_, err := db.NewInsert().Model(author).Exec(context.Background())
	require.NoError(t, err)
	return author
}

func TestCreateAndRetrieveBook(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)
	genreSvc := genres.NewService(db)

	author := createTestAuthor(t, db, "Frank Herbert")

	started := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	finished := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	book := &models.Book{
		Title:        "Dune",
		AuthorID:     &author.ID,
		Status:       models.StatusFinished,
		Rating:       9,
		StartedDate:  &started,
		FinishedDate: &finished,
		Link:         "https://example.com/dune",
		Notes:        "A classic.",
	}
	err := svc.CreateBook(ctx, book)
	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.False(t, book.Added.IsZero())

	require.NoError(t, genreSvc.ReconcileBookGenres(ctx, book.ID, []string{"Sci-Fi", "Classic"}))

	got, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.AuthorName)
	assert.Equal(t, models.StatusFinished, got.Status)
	assert.Equal(t, 9, got.Rating)
	assert.Equal(t, "A classic.", got.Notes)
	assert.ElementsMatch(t, []string{"Sci-Fi", "Classic"}, got.Genres)
}

func TestRetrieveBookProjectionFallbacks(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	book := &models.Book{Title: "Anonymous Work", Status: models.StatusToRead}
	require.NoError(t, svc.CreateBook(ctx, book))

	got, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, models.UnknownAuthorName, got.AuthorName)
	assert.Empty(t, got.Genres)
	assert.NotNil(t, got.Genres)
}

func TestRetrieveBookNotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	_, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: pointerutil.Int(9999)})
	assert.True(t, errors.Is(err, errcodes.NotFound("Book")))
}

func TestCreateBookValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	tests := []struct {
		name string
		book *models.Book
	}{
		{
			name: "empty title",
			book: &models.Book{Title: "   ", Status: models.StatusToRead},
		},
		{
			name: "unknown status",
			book: &models.Book{Title: "Dune", Status: "paused"},
		},
		{
			name: "rating too high",
			book: &models.Book{Title: "Dune", Status: models.StatusFinished, Rating: 11},
		},
		{
			name: "rating negative",
			book: &models.Book{Title: "Dune", Status: models.StatusFinished, Rating: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateBook(ctx, tt.book)
			require.Error(t, err)

			var codeErr *errcodes.Error
			require.True(t, errors.As(err, &codeErr))
			assert.Equal(t, "validation_error", codeErr.Code)
		})
	}
}

func TestCreateBookMissingAuthor(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	book := &models.Book{Title: "Dune", Status: models.StatusToRead, AuthorID: pointerutil.Int(9999)}
	err := svc.CreateBook(ctx, book)
	assert.True(t, errors.Is(err, errcodes.ValidationError("author_id must reference an existing author")))
}

func TestListBooksFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)
	genreSvc := genres.NewService(db)

	herbert := createTestAuthor(t, db, "Frank Herbert")
	simmons := createTestAuthor(t, db, "Dan Simmons")

	dune := &models.Book{Title: "Dune", AuthorID: &herbert.ID, Status: models.StatusFinished}
	require.NoError(t, svc.CreateBook(ctx, dune))
	hyperion := &models.Book{Title: "Hyperion", AuthorID: &simmons.ID, Status: models.StatusReading}
	require.NoError(t, svc.CreateBook(ctx, hyperion))

	require.NoError(t, genreSvc.ReconcileBookGenres(ctx, dune.ID, []string{"Sci-Fi"}))

	byAuthor, err := svc.ListBooks(ctx, ListBooksOptions{AuthorID: &simmons.ID})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Hyperion", byAuthor[0].Title)

	genre, err := genreSvc.RetrieveGenre(ctx, genres.RetrieveGenreOptions{Name: pointerutil.String("Sci-Fi")})
	require.NoError(t, err)

	byGenre, total, err := svc.ListBooksWithTotal(ctx, ListBooksOptions{GenreID: &genre.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, byGenre, 1)
	assert.Equal(t, "Dune", byGenre[0].Title)
}

func TestUpdateBookOnlyTouchesGivenColumns(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	book := &models.Book{Title: "Dune", Status: models.StatusReading, Notes: "original notes"}
	require.NoError(t, svc.CreateBook(ctx, book))
	added := book.Added

	book.Status = models.StatusFinished
	book.Rating = 9
	book.Notes = "this should not be written"
	err := svc.UpdateBook(ctx, book, UpdateBookOptions{Columns: []string{"status", "rating"}})
	require.NoError(t, err)

	got, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, got.Status)
	assert.Equal(t, 9, got.Rating)
	assert.Equal(t, "original notes", got.Notes)
	assert.WithinDuration(t, added, got.Added, time.Second)
}

func TestDeleteBookRemovesGenreLinks(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)
	genreSvc := genres.NewService(db)

	book := &models.Book{Title: "Dune", Status: models.StatusFinished}
	require.NoError(t, svc.CreateBook(ctx, book))
	require.NoError(t, genreSvc.ReconcileBookGenres(ctx, book.ID, []string{"Sci-Fi"}))

	err := svc.DeleteBook(ctx, book.ID)
	require.NoError(t, err)

	_, err = svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	assert.True(t, errors.Is(err, errcodes.NotFound("Book")))

	var count int
	err = db.NewSelect().Table("book_genres").ColumnExpr("COUNT(*)").Scan(ctx, &count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The genre itself survives.
	err = db.NewSelect().Table("genres").ColumnExpr("COUNT(*)").Scan(ctx, &count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
