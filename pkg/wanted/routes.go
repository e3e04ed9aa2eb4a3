package wanted

import (
	"github.com/labstack/echo/v4"
	"github.com/shelfnotes/shelfnotes/pkg/authors"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers wanted-book routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		wantedService: NewService(db),
		authorService: authors.NewService(db),
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.retrieve)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.deleteWantedBook)
}
