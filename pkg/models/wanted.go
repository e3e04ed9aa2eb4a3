package models

import (
	"github.com/uptrace/bun"
)

// WantedBook is a wishlist entry. It shares the weak author reference
// semantics of Book but lives in its own table and never cascades.
type WantedBook struct {
	bun.BaseModel `bun:"table:wanted,alias:w"`

	ID       int    `bun:",pk,autoincrement" json:"id"`
	Title    string `bun:",notnull" json:"title"`
	AuthorID *int   `json:"author_id"`

	AuthorName string `bun:",scanonly" json:"author_name"`
}

// ResolveProjection fills the derived AuthorName field after a joined scan.
func (w *WantedBook) ResolveProjection() {
	if w.AuthorName == "" {
		w.AuthorName = UnknownAuthorName
	}
}
