package models

import (
	"github.com/uptrace/bun"
)

// Author is a weakly referenced lookup row. Deleting an author cascades to
// every book that references it.
type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID   int    `bun:",pk,autoincrement" json:"id"`
	Name string `bun:",notnull" json:"name"`

	// BookCount is populated by list queries that aggregate over books.
	BookCount int `bun:",scanonly" json:"book_count,omitempty"`
}
