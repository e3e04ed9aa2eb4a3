// Package settings exposes the maintenance endpoints behind the settings
// screen.
package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shelfnotes/shelfnotes/pkg/migrations"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// reset drops every table and rebuilds the schema from scratch. The client is
// expected to have confirmed with the user before calling this.
func (h *handler) reset(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	log.Info("resetting database")

	err := migrations.Reset(ctx, h.db)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
