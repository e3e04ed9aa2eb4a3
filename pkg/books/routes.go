package books

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfnotes/shelfnotes/pkg/authors"
	"github.com/shelfnotes/shelfnotes/pkg/genres"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		bookService:   NewService(db),
		authorService: authors.NewService(db),
		genreService:  genres.NewService(db),
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.retrieve)
	g.GET("/:id/genres", h.listGenres)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.deleteBook)
}
