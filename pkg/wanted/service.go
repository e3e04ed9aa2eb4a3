package wanted

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"github.com/shelfnotes/shelfnotes/pkg/database"
	"github.com/shelfnotes/shelfnotes/pkg/errcodes"
	"github.com/shelfnotes/shelfnotes/pkg/models"
	"github.com/uptrace/bun"
)

type RetrieveWantedBookOptions struct {
	ID *int
}

type ListWantedBooksOptions struct {
	Limit    *int
	Offset   *int
	AuthorID *int

	includeTotal bool
}

type UpdateWantedBookOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateWantedBook(ctx context.Context, book *models.WantedBook) error {
	book.Title = strings.TrimSpace(book.Title)
	if book.Title == "" {
		return errcodes.ValidationError("Title cannot be empty")
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

func (svc *Service) RetrieveWantedBook(ctx context.Context, opts RetrieveWantedBookOptions) (*models.WantedBook, error) {
	book := &models.WantedBook{}

	q := svc.db.
		NewSelect().
		Model(book).
		ColumnExpr("w.*").
		ColumnExpr("a.name AS author_name").
		Join("LEFT JOIN authors AS a ON a.id = w.author_id")

	if opts.ID != nil {
		q = q.Where("w.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Wanted book")
		}
		return nil, errors.WithStack(err)
	}

	book.ResolveProjection()
	return book, nil
}

func (svc *Service) ListWantedBooks(ctx context.Context, opts ListWantedBooksOptions) ([]*models.WantedBook, error) {
	w, _, err := svc.listWantedBooksWithTotal(ctx, opts)
	return w, errors.WithStack(err)
}

func (svc *Service) ListWantedBooksWithTotal(ctx context.Context, opts ListWantedBooksOptions) ([]*models.WantedBook, int, error) {
	opts.includeTotal = true
	return svc.listWantedBooksWithTotal(ctx, opts)
}

func (svc *Service) listWantedBooksWithTotal(ctx context.Context, opts ListWantedBooksOptions) ([]*models.WantedBook, int, error) {
	books := []*models.WantedBook{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		ColumnExpr("w.*").
		ColumnExpr("a.name AS author_name").
		Join("LEFT JOIN authors AS a ON a.id = w.author_id")

	if opts.AuthorID != nil {
		q = q.Where("w.author_id = ?", *opts.AuthorID)
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

func (svc *Service) UpdateWantedBook(ctx context.Context, book *models.WantedBook, opts UpdateWantedBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	book.Title = strings.TrimSpace(book.Title)
	if book.Title == "" {
		return errcodes.ValidationError("Title cannot be empty")
	}

	_, err := svc.db.
		NewUpdate().
		Model(book).
		Column(opts.Columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Wanted book")
		}
		return errors.WithStack(err)
	}
	return nil
}

func (svc *Service) DeleteWantedBook(ctx context.Context, id int) error {
	_, err := svc.db.
		NewDelete().
		Model((*models.WantedBook)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}
