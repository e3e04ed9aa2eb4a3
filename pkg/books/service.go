package books

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shelfnotes/shelfnotes/pkg/database"
	"github.com/shelfnotes/shelfnotes/pkg/errcodes"
	"github.com/shelfnotes/shelfnotes/pkg/models"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *int
}

type ListBooksOptions struct {
	Limit    *int
	Offset   *int
	AuthorID *int
	GenreID  *int

	includeTotal bool
}

type UpdateBookOptions struct {
	Columns []string
}

// MutableColumns is the full set of columns a book edit replaces. The added
// timestamp and the genre associations are deliberately excluded: added is
// immutable after insert, and genre links are managed through the genres
// service.
var MutableColumns = []string{
	"title", "author_id", "status", "rating",
	"started_date", "finished_date", "link", "notes",
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func validateBook(book *models.Book) error {
	if strings.TrimSpace(book.Title) == "" {
		return errcodes.ValidationError("Book title cannot be empty")
	}
	if !models.ValidStatus(book.Status) {
		return errcodes.ValidationError(fmt.Sprintf("Status must be one of: %s", strings.Join(models.Statuses, ", ")))
	}
	if book.Rating < models.RatingMin || book.Rating > models.RatingMax {
		return errcodes.ValidationError(fmt.Sprintf("Rating must be between %d and %d", models.RatingMin, models.RatingMax))
	}
	return nil
}

// CreateBook inserts a book and returns it with the generated id populated.
// The author reference must already exist or be nil; callers resolve authors
// (find-or-create) before calling, the repository never creates them
// implicitly.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}
	if book.Added.IsZero() {
		book.Added = time.Now()
	}

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errcodes.ValidationError("author_id must reference an existing author")
		}
		return errors.WithStack(err)
	}
	return nil
}

// projectedQuery builds the one-query projection joining the author name and
// aggregating genre names per book.
func (svc *Service) projectedQuery(model interface{}) *bun.SelectQuery {
	return svc.db.
		NewSelect().
		Model(model).
		ColumnExpr("b.*").
		ColumnExpr("a.name AS author_name").
		ColumnExpr("GROUP_CONCAT(g.name, ', ') AS genre_names").
		Join("LEFT JOIN authors AS a ON a.id = b.author_id").
		Join("LEFT JOIN book_genres AS bg ON bg.book_id = b.id").
		Join("LEFT JOIN genres AS g ON g.id = bg.genre_id").
		GroupExpr("b.id")
}

// RetrieveBook returns the book joined with its author name (falling back to
// "Unknown Author") and genre-name list (empty if none).
func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.projectedQuery(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	book.ResolveProjection()
	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, errors.WithStack(err)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}
	var total int
	var err error

	q := svc.projectedQuery(&books)

	if opts.AuthorID != nil {
		q = q.Where("b.author_id = ?", *opts.AuthorID)
	}
	if opts.GenreID != nil {
		q = q.Where("b.id IN (SELECT book_id FROM book_genres WHERE genre_id = ?)", *opts.GenreID)
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	for _, book := range books {
		book.ResolveProjection()
	}

	return books, total, nil
}

// UpdateBook replaces the given columns on the book row. Genre associations
// are untouched; use the genres service to reconcile those.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	if err := validateBook(book); err != nil {
		return err
	}

	_, err := svc.db.
		NewUpdate().
		Model(book).
		Column(opts.Columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Book")
		}
		if database.IsForeignKeyViolation(err) {
			return errcodes.ValidationError("author_id must reference an existing author")
		}
		return errors.WithStack(err)
	}
	return nil
}

// DeleteBook deletes a book and its genre associations.
func (svc *Service) DeleteBook(ctx context.Context, bookID int) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Cascade should handle this, but be explicit.
		_, err := tx.NewDelete().
			Model((*models.BookGenre)(nil)).
			Where("book_id = ?", bookID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", bookID).
			Exec(ctx)
		return errors.WithStack(err)
	})
}
