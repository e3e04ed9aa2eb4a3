package books

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shelfnotes/shelfnotes/pkg/authors"
	"github.com/shelfnotes/shelfnotes/pkg/bookview"
	"github.com/shelfnotes/shelfnotes/pkg/errcodes"
	"github.com/shelfnotes/shelfnotes/pkg/genres"
	"github.com/shelfnotes/shelfnotes/pkg/models"
)

const dateFormat = "2006-01-02"

type handler struct {
	bookService   *Service
	authorService *authors.Service
	genreService  *genres.Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		Title:  params.Title,
		Status: params.Status,
		Rating: params.Rating,
	}
	if params.Link != nil {
		book.Link = *params.Link
	}
	if params.Notes != nil {
		book.Notes = *params.Notes
	}

	var err error
	book.StartedDate, err = parseDate(params.StartedDate)
	if err != nil {
		return errors.WithStack(err)
	}
	book.FinishedDate, err = parseDate(params.FinishedDate)
	if err != nil {
		return errors.WithStack(err)
	}

	// Authors are resolved by display name before the book row is inserted.
	if params.Author != nil && strings.TrimSpace(*params.Author) != "" {
		author, err := h.authorService.FindOrCreateAuthor(ctx, *params.Author)
		if err != nil {
			return errors.WithStack(err)
		}
		book.AuthorID = &author.ID
	}

	err = h.bookService.CreateBook(ctx, book)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(params.Genres) > 0 {
		err = h.genreService.ReconcileBookGenres(ctx, book.ID, params.Genres)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	// Reload with the projected author name and genres.
	book, err = h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
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
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
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
	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Search, status filters, and sorting run in memory over the full
	// projected collection, so the store query only narrows by author/genre
	// and pagination happens after the view is derived.
	all, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		AuthorID: params.AuthorID,
		GenreID:  params.GenreID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if params.Search != nil {
		all = bookview.Search(all, *params.Search)
	}
	if params.Status != nil {
		all = bookview.FilterByStatus(all, bookview.StatusFilter(*params.Status))
	}
	if params.Sort != nil {
		descending := params.Direction != nil && *params.Direction == "desc"
		all = bookview.Sort(all, bookview.SortKey(*params.Sort), descending)
	}

	total := len(all)
	if params.Offset < len(all) {
		all = all[params.Offset:]
	} else {
		all = []*models.Book{}
	}
	if params.Limit < len(all) {
		all = all[:params.Limit]
	}

	resp := struct {
		Books []*models.Book `json:"books"`
		Total int            `json:"total"`
	}{all, total}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// Bind params.
	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the book.
	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Keep track of what's been changed.
	opts := UpdateBookOptions{Columns: []string{}}

	if params.Title != nil && *params.Title != book.Title {
		book.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.Status != nil && *params.Status != book.Status {
		book.Status = *params.Status
		opts.Columns = append(opts.Columns, "status")
	}
	if params.Rating != nil && *params.Rating != book.Rating {
		book.Rating = *params.Rating
		opts.Columns = append(opts.Columns, "rating")
	}
	if params.StartedDate != nil {
		book.StartedDate, err = parseDate(params.StartedDate)
		if err != nil {
			return errors.WithStack(err)
		}
		opts.Columns = append(opts.Columns, "started_date")
	}
	if params.FinishedDate != nil {
		book.FinishedDate, err = parseDate(params.FinishedDate)
		if err != nil {
			return errors.WithStack(err)
		}
		opts.Columns = append(opts.Columns, "finished_date")
	}
	if params.Link != nil && *params.Link != book.Link {
		book.Link = *params.Link
		opts.Columns = append(opts.Columns, "link")
	}
	if params.Notes != nil && *params.Notes != book.Notes {
		book.Notes = *params.Notes
		opts.Columns = append(opts.Columns, "notes")
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
	err = h.bookService.UpdateBook(ctx, book, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(params.Genres) > 0 {
		err = h.genreService.ReconcileBookGenres(ctx, id, params.Genres)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	// Reload the model.
	book, err = h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// Make sure the book exists so a bogus id still 404s.
	_, err = h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	err = h.bookService.DeleteBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *handler) listGenres(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// Make sure the book exists so a bogus id still 404s.
	_, err = h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	bookGenres, err := h.genreService.ListGenresForBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, bookGenres))
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateFormat, *value)
	if err != nil {
		return nil, errcodes.ValidationError("Dates should be in the format of YYYY-MM-DD")
	}
	return &t, nil
}
