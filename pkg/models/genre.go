package models

import (
	"github.com/uptrace/bun"
)

// Genre names are unique case-sensitively at the schema level; lookups during
// reconciliation match case-insensitively.
type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`

	ID   int    `bun:",pk,autoincrement" json:"id"`
	Name string `bun:",notnull" json:"name"`

	BookCount int `bun:",scanonly" json:"book_count,omitempty"`
}

// BookGenre is the many-to-many join row between books and genres. The pair
// is the composite primary key, so attaching the same genre twice violates a
// uniqueness constraint.
type BookGenre struct {
	bun.BaseModel `bun:"table:book_genres,alias:bg"`

	BookID  int    `bun:",pk" json:"book_id"`
	GenreID int    `bun:",pk" json:"genre_id"`
	Genre   *Genre `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
}
