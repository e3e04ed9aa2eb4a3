// Package export produces full-library snapshots for backup: a single
// pretty-printed JSON document and per-table CSV text. The CSV output is a
// plain join with no quoting or escaping, so fields containing commas or
// newlines shift columns; consumers that need strict CSV should use the JSON
// export instead.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/shelfnotes/shelfnotes/pkg/authors"
	"github.com/shelfnotes/shelfnotes/pkg/books"
	"github.com/shelfnotes/shelfnotes/pkg/genres"
	"github.com/shelfnotes/shelfnotes/pkg/models"
	"github.com/uptrace/bun"
)

const (
	authorsCSVHeader = "id,name"
	genresCSVHeader  = "id,name"
	booksCSVHeader   = "id,title,author_id,status,rating,started_date,finished_date,link,notes,author_name,added,genres"

	dateFormat = "2006-01-02"
)

// Snapshot is the JSON export document.
type Snapshot struct {
	Authors []*models.Author `json:"authors"`
	Genres  []*models.Genre  `json:"genres"`
	Books   []*models.Book   `json:"books"`
}

// CSVExport holds one CSV document per table.
type CSVExport struct {
	Authors string `json:"authors"`
	Genres  string `json:"genres"`
	Books   string `json:"books"`
}

type Service struct {
	db            *bun.DB
	authorService *authors.Service
	genreService  *genres.Service
	bookService   *books.Service
}

func NewService(db *bun.DB) *Service {
	return &Service{
		db:            db,
		authorService: authors.NewService(db),
		genreService:  genres.NewService(db),
		bookService:   books.NewService(db),
	}
}

// Snapshot reads the entire library in one pass. Books carry their projected
// author name and genre list.
func (svc *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	allAuthors, err := svc.authorService.ListAuthors(ctx, authors.ListAuthorsOptions{})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	allGenres, err := svc.genreService.ListGenres(ctx, genres.ListGenresOptions{})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	allBooks, err := svc.bookService.ListBooks(ctx, books.ListBooksOptions{})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Snapshot{
		Authors: allAuthors,
		Genres:  allGenres,
		Books:   allBooks,
	}, nil
}

// JSON serializes the full library as an indented JSON document.
func (svc *Service) JSON(ctx context.Context) ([]byte, error) {
	snapshot, err := svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	return data, errors.WithStack(err)
}

// CSV serializes the full library as three CSV documents.
func (svc *Service) CSV(ctx context.Context) (*CSVExport, error) {
	snapshot, err := svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &CSVExport{
		Authors: AuthorsCSV(snapshot.Authors),
		Genres:  GenresCSV(snapshot.Genres),
		Books:   BooksCSV(snapshot.Books),
	}, nil
}

// AuthorsCSV renders the authors table.
func AuthorsCSV(authors []*models.Author) string {
	lines := []string{authorsCSVHeader}
	for _, a := range authors {
		lines = append(lines, fmt.Sprintf("%d,%s", a.ID, a.Name))
	}
	return strings.Join(lines, "\n")
}

// GenresCSV renders the genres table.
func GenresCSV(genres []*models.Genre) string {
	lines := []string{genresCSVHeader}
	for _, g := range genres {
		lines = append(lines, fmt.Sprintf("%d,%s", g.ID, g.Name))
	}
	return strings.Join(lines, "\n")
}

// BooksCSV renders the books table with the projected author name and the
// genre names joined with commas in the final column.
func BooksCSV(books []*models.Book) string {
	lines := []string{booksCSVHeader}
	for _, b := range books {
		authorID := ""
		if b.AuthorID != nil {
			authorID = fmt.Sprintf("%d", *b.AuthorID)
		}
		lines = append(lines, strings.Join([]string{
			fmt.Sprintf("%d", b.ID),
			b.Title,
			authorID,
			b.Status,
			fmt.Sprintf("%d", b.Rating),
			formatDate(b.StartedDate),
			formatDate(b.FinishedDate),
			b.Link,
			b.Notes,
			b.AuthorName,
			b.Added.Format(time.RFC3339),
			strings.Join(b.Genres, ","),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}
