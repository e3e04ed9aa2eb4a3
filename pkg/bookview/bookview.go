// Package bookview holds the pure in-memory derivations the list screens
// apply to an already-fetched book collection: substring search, reading
// status filters, and stable sorts. Nothing here touches the store or
// mutates its input.
package bookview

import (
	"sort"
	"strings"
	"time"

	"github.com/shelfnotes/shelfnotes/pkg/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StatusFilter buckets the reading statuses the way the list screen presents
// them: "read" is finished only, "unread" is anything not yet finished or
// abandoned.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterRead      StatusFilter = "read"
	FilterUnread    StatusFilter = "unread"
	FilterAbandoned StatusFilter = "abandoned"
)

// ValidStatusFilter reports whether f is a recognized filter.
func ValidStatusFilter(f StatusFilter) bool {
	switch f {
	case FilterAll, FilterRead, FilterUnread, FilterAbandoned:
		return true
	}
	return false
}

// SortKey selects the sort dimension.
type SortKey string

const (
	SortByTitle    SortKey = "title"
	SortByAuthor   SortKey = "author"
	SortByAdded    SortKey = "added"
	SortByFinished SortKey = "finished"
)

// ValidSortKey reports whether k is a recognized sort key.
func ValidSortKey(k SortKey) bool {
	switch k {
	case SortByTitle, SortByAuthor, SortByAdded, SortByFinished:
		return true
	}
	return false
}

// Search returns the books whose title or author name contains query,
// case-insensitively. An empty query returns the input unchanged.
func Search(books []*models.Book, query string) []*models.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return books
	}

	matched := []*models.Book{}
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), query) ||
			strings.Contains(strings.ToLower(b.AuthorName), query) {
			matched = append(matched, b)
		}
	}
	return matched
}

// FilterByStatus returns the books in the given status bucket.
func FilterByStatus(books []*models.Book, f StatusFilter) []*models.Book {
	if f == FilterAll || f == "" {
		return books
	}

	matched := []*models.Book{}
	for _, b := range books {
		switch f {
		case FilterRead:
			if b.Status == models.StatusFinished {
				matched = append(matched, b)
			}
		case FilterUnread:
			if b.Status != models.StatusFinished && b.Status != models.StatusAbandoned {
				matched = append(matched, b)
			}
		case FilterAbandoned:
			if b.Status == models.StatusAbandoned {
				matched = append(matched, b)
			}
		}
	}
	return matched
}

// Sort returns a sorted copy of books. The sort is stable: entries with equal
// keys keep their prior relative order in both directions. Title and author
// comparisons are locale-aware.
func Sort(books []*models.Book, key SortKey, descending bool) []*models.Book {
	sorted := make([]*models.Book, len(books))
	copy(sorted, books)

	cl := collate.New(language.English, collate.IgnoreCase)

	var cmp func(a, b *models.Book) int
	switch key {
	case SortByTitle:
		cmp = func(a, b *models.Book) int {
			return cl.CompareString(a.Title, b.Title)
		}
	case SortByAuthor:
		cmp = func(a, b *models.Book) int {
			return cl.CompareString(lastNameKey(a.AuthorName), lastNameKey(b.AuthorName))
		}
	case SortByAdded:
		cmp = func(a, b *models.Book) int {
			return compareTimes(a.Added, b.Added)
		}
	case SortByFinished:
		cmp = func(a, b *models.Book) int {
			return compareTimes(timeOrZero(a.FinishedDate), timeOrZero(b.FinishedDate))
		}
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return cmp(sorted[i], sorted[j]) > 0
		}
		return cmp(sorted[i], sorted[j]) < 0
	})

	return sorted
}

// lastNameKey extracts the author sort key: the token after the last
// whitespace in the display name.
func lastNameKey(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
