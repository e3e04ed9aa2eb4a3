package stats

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfnotes/shelfnotes/pkg/books"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers the stats route on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		bookService: books.NewService(db),
	}

	g.GET("", h.summary)
}
