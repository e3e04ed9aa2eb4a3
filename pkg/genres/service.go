package genres

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

type RetrieveGenreOptions struct {
	ID   *int
	Name *string // case-insensitive match
}

type ListGenresOptions struct {
	Limit  *int
	Offset *int
	Search *string

	includeTotal bool
}

type UpdateGenreOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateGenre inserts a genre. Names are unique case-sensitively, so "Sci-Fi"
// and "sci-fi" can coexist but a second "Sci-Fi" fails with a conflict.
func (svc *Service) CreateGenre(ctx context.Context, genre *models.Genre) error {
	genre.Name = strings.TrimSpace(genre.Name)
	if genre.Name == "" {
		return errcodes.ValidationError("Genre name cannot be empty")
	}

	_, err := svc.db.
		NewInsert().
		Model(genre).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return errcodes.Conflict("Genre")
		}
		return errors.WithStack(err)
	}
	return nil
}

func (svc *Service) RetrieveGenre(ctx context.Context, opts RetrieveGenreOptions) (*models.Genre, error) {
	genre := &models.Genre{}

	q := svc.db.
		NewSelect().
		Model(genre)

	if opts.ID != nil {
		q = q.Where("g.id = ?", *opts.ID)
	}
	if opts.Name != nil {
		q = q.Where("LOWER(g.name) = LOWER(?)", *opts.Name)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Genre")
		}
		return nil, errors.WithStack(err)
	}

	return genre, nil
}

// FindOrCreateGenre finds an existing genre (case-insensitive match) or
// creates a new one.
func (svc *Service) FindOrCreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errcodes.ValidationError("Genre name cannot be empty")
	}

	genre, err := svc.RetrieveGenre(ctx, RetrieveGenreOptions{Name: &name})
	if err == nil {
		return genre, nil
	}
	if !errors.Is(err, errcodes.NotFound("Genre")) {
		return nil, err
	}

	genre = &models.Genre{Name: name}
	err = svc.CreateGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	return genre, nil
}

func (svc *Service) ListGenres(ctx context.Context, opts ListGenresOptions) ([]*models.Genre, error) {
	g, _, err := svc.listGenresWithTotal(ctx, opts)
	return g, errors.WithStack(err)
}

func (svc *Service) ListGenresWithTotal(ctx context.Context, opts ListGenresOptions) ([]*models.Genre, int, error) {
	opts.includeTotal = true
	return svc.listGenresWithTotal(ctx, opts)
}

func (svc *Service) listGenresWithTotal(ctx context.Context, opts ListGenresOptions) ([]*models.Genre, int, error) {
	var genres []*models.Genre
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&genres)

	if opts.Search != nil && *opts.Search != "" {
		q = q.Where("g.name LIKE ?", "%"+*opts.Search+"%")
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

	return genres, total, nil
}

func (svc *Service) UpdateGenre(ctx context.Context, genre *models.Genre, opts UpdateGenreOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	_, err := svc.db.
		NewUpdate().
		Model(genre).
		Column(opts.Columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Genre")
		}
		if database.IsUniqueViolation(err) {
			return errcodes.Conflict("Genre")
		}
		return errors.WithStack(err)
	}
	return nil
}

// DeleteGenre deletes a genre and its book associations. Books keep their
// rows and only lose this genre tag.
func (svc *Service) DeleteGenre(ctx context.Context, genreID int) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Cascade should handle this, but be explicit.
		_, err := tx.NewDelete().
			Model((*models.BookGenre)(nil)).
			Where("genre_id = ?", genreID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.NewDelete().
			Model((*models.Genre)(nil)).
			Where("id = ?", genreID).
			Exec(ctx)
		return errors.WithStack(err)
	})
}

// AttachGenre associates a genre with a book. Attaching an already-attached
// pair fails with a conflict; callers either check first or treat the
// conflict as idempotent success.
func (svc *Service) AttachGenre(ctx context.Context, bookID, genreID int) error {
	_, err := svc.db.
		NewInsert().
		Model(&models.BookGenre{BookID: bookID, GenreID: genreID}).
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return errcodes.Conflict("Book genre")
		}
		if database.IsForeignKeyViolation(err) {
			return errcodes.ValidationError("Book and genre must both exist")
		}
		return errors.WithStack(err)
	}
	return nil
}

// ListGenresForBook returns the genres attached to a book.
func (svc *Service) ListGenresForBook(ctx context.Context, bookID int) ([]*models.Genre, error) {
	var genres []*models.Genre

	err := svc.db.NewSelect().
		Model(&genres).
		Where("g.id IN (SELECT genre_id FROM book_genres WHERE book_id = ?)", bookID).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return genres, nil
}

// ReconcileBookGenres applies a desired genre-name list to a book by
// attaching every name not already present, resolving each to an existing
// genre (case-insensitive) or creating it. Names missing from the desired
// list are left attached; the save flow only ever adds tags, and untagging
// goes through the genre screens instead.
func (svc *Service) ReconcileBookGenres(ctx context.Context, bookID int, names []string) error {
	current, err := svc.ListGenresForBook(ctx, bookID)
	if err != nil {
		return err
	}

	attached := make(map[string]bool, len(current))
	for _, g := range current {
		attached[strings.ToLower(g.Name)] = true
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || attached[strings.ToLower(name)] {
			continue
		}

		genre, err := svc.FindOrCreateGenre(ctx, name)
		if err != nil {
			return err
		}
		err = svc.AttachGenre(ctx, bookID, genre.ID)
		if err != nil && !errors.Is(err, errcodes.Conflict("Book genre")) {
			return err
		}
		attached[strings.ToLower(name)] = true
	}

	return nil
}

// GetBookCount returns the count of books tagged with this genre.
func (svc *Service) GetBookCount(ctx context.Context, genreID int) (int, error) {
	count, err := svc.db.NewSelect().
		Model((*models.BookGenre)(nil)).
		Where("genre_id = ?", genreID).
		Count(ctx)
	return count, errors.WithStack(err)
}
