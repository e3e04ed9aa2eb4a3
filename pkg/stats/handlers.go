package stats

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfnotes/shelfnotes/pkg/books"
)

type handler struct {
	bookService *books.Service
}

func (h *handler) summary(c echo.Context) error {
	ctx := c.Request().Context()

	all, err := h.bookService.ListBooks(ctx, books.ListBooksOptions{})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, Compute(all, time.Now())))
}
