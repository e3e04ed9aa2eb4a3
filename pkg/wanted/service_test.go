package wanted

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/pointerutil"
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

func TestCreateWantedBook(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	author := &models.Author{Name: "Becky Chambers"}
	_, err := db.NewInsert().Model(author).Exec(ctx)
	require.NoError(t, err)

	book := &models.WantedBook{Title: "  A Psalm for the Wild-Built  ", AuthorID: &author.ID}
	err = svc.CreateWantedBook(ctx, book)
	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, "A Psalm for the Wild-Built", book.Title)

	err = svc.CreateWantedBook(ctx, &models.WantedBook{Title: "   "})
	assert.True(t, errors.Is(err, errcodes.ValidationError("Title cannot be empty")))

	err = svc.CreateWantedBook(ctx, &models.WantedBook{Title: "Ghost", AuthorID: pointerutil.Int(9999)})
	assert.True(t, errors.Is(err, errcodes.ValidationError("author_id must reference an existing author")))
}

func TestRetrieveWantedBookProjection(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	author := &models.Author{Name: "Becky Chambers"}
	_, err := db.NewInsert().Model(author).Exec(ctx)
	require.NoError(t, err)

	withAuthor := &models.WantedBook{Title: "Record of a Spaceborn Few", AuthorID: &author.ID}
	require.NoError(t, svc.CreateWantedBook(ctx, withAuthor))

	anonymous := &models.WantedBook{Title: "Mystery Title"}
	require.NoError(t, svc.CreateWantedBook(ctx, anonymous))

	got, err := svc.RetrieveWantedBook(ctx, RetrieveWantedBookOptions{ID: &withAuthor.ID})
	require.NoError(t, err)
	assert.Equal(t, "Becky Chambers", got.AuthorName)

	got, err = svc.RetrieveWantedBook(ctx, RetrieveWantedBookOptions{ID: &anonymous.ID})
	require.NoError(t, err)
	assert.Equal(t, models.UnknownAuthorName, got.AuthorName)

	_, err = svc.RetrieveWantedBook(ctx, RetrieveWantedBookOptions{ID: pointerutil.Int(9999)})
	assert.True(t, errors.Is(err, errcodes.NotFound("Wanted book")))
}

func TestListWantedBooksByAuthor(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	author := &models.Author{Name: "Becky Chambers"}
	_, err := db.NewInsert().Model(author).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.CreateWantedBook(ctx, &models.WantedBook{Title: "Wanted One", AuthorID: &author.ID}))
	require.NoError(t, svc.CreateWantedBook(ctx, &models.WantedBook{Title: "Wanted Two"}))

	books, total, err := svc.ListWantedBooksWithTotal(ctx, ListWantedBooksOptions{AuthorID: &author.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, books, 1)
	assert.Equal(t, "Wanted One", books[0].Title)
}

func TestDeleteWantedBook(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	book := &models.WantedBook{Title: "Short Lived"}
	require.NoError(t, svc.CreateWantedBook(ctx, book))

	require.NoError(t, svc.DeleteWantedBook(ctx, book.ID))

	_, err := svc.RetrieveWantedBook(ctx, RetrieveWantedBookOptions{ID: &book.ID})
	assert.True(t, errors.Is(err, errcodes.NotFound("Wanted book")))
}
