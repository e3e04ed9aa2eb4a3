package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/shelfnotes/shelfnotes/pkg/authors"
	"github.com/shelfnotes/shelfnotes/pkg/binder"
	"github.com/shelfnotes/shelfnotes/pkg/books"
	"github.com/shelfnotes/shelfnotes/pkg/config"
	"github.com/shelfnotes/shelfnotes/pkg/errcodes"
	"github.com/shelfnotes/shelfnotes/pkg/export"
	"github.com/shelfnotes/shelfnotes/pkg/genres"
	"github.com/shelfnotes/shelfnotes/pkg/settings"
	"github.com/shelfnotes/shelfnotes/pkg/stats"
	"github.com/shelfnotes/shelfnotes/pkg/wanted"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	registerRoutes(e, db)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func registerRoutes(e *echo.Echo, db *bun.DB) {
	books.RegisterRoutesWithGroup(e.Group("/books"), db)
	authors.RegisterRoutesWithGroup(e.Group("/authors"), db)
	genres.RegisterRoutesWithGroup(e.Group("/genres"), db)
	wanted.RegisterRoutesWithGroup(e.Group("/wanted"), db)
	stats.RegisterRoutesWithGroup(e.Group("/stats"), db)
	export.RegisterRoutesWithGroup(e.Group("/export"), db)
	settings.RegisterRoutesWithGroup(e.Group("/settings"), db)
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
