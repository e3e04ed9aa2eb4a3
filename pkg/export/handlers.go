package export

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	exportService *Service
}

func (h *handler) exportJSON(c echo.Context) error {
	ctx := c.Request().Context()

	data, err := h.exportService.JSON(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="library.json"`)
	return errors.WithStack(c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data))
}

func (h *handler) exportCSV(c echo.Context) error {
	ctx := c.Request().Context()

	csv, err := h.exportService.CSV(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, csv))
}
