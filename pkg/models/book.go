package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Reading status values for a tracked book.
const (
	StatusToRead    = "to-read"
	StatusReading   = "reading"
	StatusFinished  = "finished"
	StatusAbandoned = "abandoned"
)

// Ratings are stored as integers on a 0-10 scale, which renders as 0-5 stars
// at half-star granularity.
const (
	RatingMin = 0
	RatingMax = 10
)

// UnknownAuthorName is the display name used when a book has no author row to
// join against.
const UnknownAuthorName = "Unknown Author"

// Statuses lists every valid reading status.
var Statuses = []string{StatusToRead, StatusReading, StatusFinished, StatusAbandoned}

// ValidStatus reports whether s is one of the recognized reading statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusToRead, StatusReading, StatusFinished, StatusAbandoned:
		return true
	}
	return false
}

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID           int        `bun:",pk,autoincrement" json:"id"`
	Title        string     `bun:",notnull" json:"title"`
	AuthorID     *int       `json:"author_id"`
	Status       string     `bun:",notnull" json:"status"`
	Rating       int        `json:"rating"`
	StartedDate  *time.Time `bun:",nullzero" json:"started_date"`
	FinishedDate *time.Time `bun:",nullzero" json:"finished_date"`
	Link         string     `json:"link"`
	Notes        string     `json:"notes"`
	Added        time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"added"`

	// Projected fields joined from authors and genres. Not columns on the
	// books table itself.
	AuthorName string   `bun:",scanonly" json:"author_name"`
	GenreNames string   `bun:",scanonly" json:"-"`
	Genres     []string `bun:"-" json:"genres"`
}

// genreSeparator is used by the list queries to aggregate genre names into a
// single column. Splitting on it reverses GROUP_CONCAT.
const genreSeparator = ", "

// ResolveProjection fills the derived AuthorName and Genres fields after a
// joined scan. AuthorName falls back to UnknownAuthorName when the author join
// came back empty, and Genres is always non-nil.
func (b *Book) ResolveProjection() {
	if b.AuthorName == "" {
		b.AuthorName = UnknownAuthorName
	}
	if b.GenreNames == "" {
		b.Genres = []string{}
	} else {
		b.Genres = strings.Split(b.GenreNames, genreSeparator)
	}
	b.GenreNames = ""
}

// HasGenre reports whether the projected genre list contains name,
// case-insensitively.
func (b *Book) HasGenre(name string) bool {
	for _, g := range b.Genres {
		if strings.EqualFold(g, name) {
			return true
		}
	}
	return false
}
