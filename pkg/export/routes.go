package export

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers export routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		exportService: NewService(db),
	}

	g.GET("/json", h.exportJSON)
	g.GET("/csv", h.exportCSV)
}
