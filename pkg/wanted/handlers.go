package wanted

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfnotes/shelfnotes/pkg/authors"
	"github.com/shelfnotes/shelfnotes/pkg/errcodes"
	"github.com/shelfnotes/shelfnotes/pkg/models"
)

type handler struct {
	wantedService *Service
	authorService *authors.Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateWantedBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &models.WantedBook{Title: params.Title}

	if params.Author != nil && strings.TrimSpace(*params.Author) != "" {
		author, err := h.authorService.FindOrCreateAuthor(ctx, *params.Author)
		if err != nil {
			return errors.WithStack(err)
		}
		book.AuthorID = &author.ID
	}

	err := h.wantedService.CreateWantedBook(ctx, book)
	if err != nil {
		return errors.WithStack(err)
	}

	// Reload with the projected author name.
	book, err = h.wantedService.RetrieveWantedBook(ctx, RetrieveWantedBookOptions{
		ID: &book.ID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Wanted book")
	}

	book, err := h.wantedService.RetrieveWantedBook(ctx, RetrieveWantedBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListWantedBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	opts := ListWantedBooksOptions{
		Limit:    &params.Limit,
		Offset:   &params.Offset,
		AuthorID: params.AuthorID,
	}

	books, total, err := h.wantedService.ListWantedBooksWithTotal(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Wanted []*models.WantedBook `json:"wanted"`
		Total  int                  `json:"total"`
	}{books, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Wanted book")
	}

	// Bind params.
	params := UpdateWantedBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the wanted book.
	book, err := h.wantedService.RetrieveWantedBook(ctx, RetrieveWantedBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Keep track of what's been changed.
	opts := UpdateWantedBookOptions{Columns: []string{}}

	if params.Title != nil && *params.Title != book.Title {
		book.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.Author != nil {
		if strings.TrimSpace(*params.Author) == "" {
			book.AuthorID = nil
		} else {
			author, err := h.authorService.FindOrCreateAuthor(ctx, *params.Author)
			if err != nil {
				return errors.WithStack(err)
			}
			book.AuthorID = &author.ID
		}
		opts.Columns = append(opts.Columns, "author_id")
	}

	// Update the model.
	err = h.wantedService.UpdateWantedBook(ctx, book, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	// Reload the model.
	book, err = h.wantedService.RetrieveWantedBook(ctx, RetrieveWantedBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) deleteWantedBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Wanted book")
	}

	// Make sure the wanted book exists so a bogus id still 404s.
	_, err = h.wantedService.RetrieveWantedBook(ctx, RetrieveWantedBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	err = h.wantedService.DeleteWantedBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
