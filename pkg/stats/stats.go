// Package stats computes the home-screen statistics from a full book
// collection snapshot. Everything is a pure function of the snapshot and the
// supplied clock time; at personal-library scale a full scan per load is
// fine.
package stats

import (
	"fmt"
	"time"

	"github.com/shelfnotes/shelfnotes/pkg/models"
)

// None is the fallback shown when a statistic has no data to draw from.
const None = "None"

// Summary bundles every home-screen statistic for one snapshot.
type Summary struct {
	TotalBooks      int            `json:"total_books"`
	TotalFinished   int            `json:"total_finished"`
	TotalAbandoned  int            `json:"total_abandoned"`
	Reading         []*models.Book `json:"reading"`
	LastFinished    *models.Book   `json:"last_finished"`
	LastAdded       *models.Book   `json:"last_added"`
	HighestRated    []*models.Book `json:"highest_rated"`
	FavouriteAuthor string         `json:"favourite_author"`
	FavouriteGenre  string         `json:"favourite_genre"`
	ReadThisMonth   int            `json:"read_this_month"`
	ReadLastMonth   int            `json:"read_last_month"`
	ReadThisYear    int            `json:"read_this_year"`
	ReadLastYear    int            `json:"read_last_year"`
	BestMonth       string         `json:"best_month"`
	BestYear        string         `json:"best_year"`
}

// Compute evaluates every statistic against the snapshot, with calendar
// periods anchored at now.
func Compute(books []*models.Book, now time.Time) *Summary {
	s := &Summary{
		TotalBooks:      len(books),
		Reading:         []*models.Book{},
		LastFinished:    LastFinished(books),
		LastAdded:       LastAdded(books),
		HighestRated:    HighestRated(books),
		FavouriteAuthor: FavouriteAuthor(books),
		FavouriteGenre:  FavouriteGenre(books),
		ReadThisMonth:   ReadThisMonth(books, now),
		ReadLastMonth:   ReadLastMonth(books, now),
		ReadThisYear:    ReadThisYear(books, now),
		ReadLastYear:    ReadLastYear(books, now),
		BestMonth:       BestMonth(books),
		BestYear:        BestYear(books),
	}

	for _, b := range books {
		switch b.Status {
		case models.StatusFinished:
			s.TotalFinished++
		case models.StatusAbandoned:
			s.TotalAbandoned++
		case models.StatusReading:
			s.Reading = append(s.Reading, b)
		}
	}

	return s
}

// LastFinished returns the finished book with the latest finished date, or
// nil when nothing has been finished yet.
func LastFinished(books []*models.Book) *models.Book {
	var last *models.Book
	for _, b := range books {
		if b.Status != models.StatusFinished || b.FinishedDate == nil {
			continue
		}
		if last == nil || b.FinishedDate.After(*last.FinishedDate) {
			last = b
		}
	}
	return last
}

// LastAdded returns the most recently added book, or nil for an empty
// collection.
func LastAdded(books []*models.Book) *models.Book {
	var last *models.Book
	for _, b := range books {
		if last == nil || b.Added.After(last.Added) {
			last = b
		}
	}
	return last
}

// HighestRated returns every book whose rating equals the collection maximum,
// ties included. An empty collection yields an empty slice.
func HighestRated(books []*models.Book) []*models.Book {
	max := 0
	for _, b := range books {
		if b.Rating > max {
			max = b.Rating
		}
	}

	rated := []*models.Book{}
	for _, b := range books {
		if b.Rating == max {
			rated = append(rated, b)
		}
	}
	return rated
}

// FavouriteAuthor returns the author name occurring on the most books, or
// "None" for an empty collection. Ties resolve to the lexicographically
// smaller name so the result is deterministic.
func FavouriteAuthor(books []*models.Book) string {
	counts := map[string]int{}
	for _, b := range books {
		if b.AuthorName != "" {
			counts[b.AuthorName]++
		}
	}
	return topName(counts)
}

// FavouriteGenre returns the genre tag occurring on the most books, counting
// each tag once per book that has it, or "None" when nothing is tagged.
func FavouriteGenre(books []*models.Book) string {
	counts := map[string]int{}
	for _, b := range books {
		for _, g := range b.Genres {
			counts[g]++
		}
	}
	return topName(counts)
}

func topName(counts map[string]int) string {
	best := ""
	bestCount := 0
	for name, count := range counts {
		if count > bestCount || (count == bestCount && (best == "" || name < best)) {
			best = name
			bestCount = count
		}
	}
	if best == "" {
		return None
	}
	return best
}

func finishedIn(books []*models.Book, match func(t time.Time) bool) int {
	count := 0
	for _, b := range books {
		if b.Status == models.StatusFinished && b.FinishedDate != nil && match(*b.FinishedDate) {
			count++
		}
	}
	return count
}

// ReadThisMonth counts the books finished in now's calendar month.
func ReadThisMonth(books []*models.Book, now time.Time) int {
	return finishedIn(books, func(t time.Time) bool {
		return t.Year() == now.Year() && t.Month() == now.Month()
	})
}

// ReadLastMonth counts the books finished in the calendar month before now's,
// crossing the year boundary in January.
func ReadLastMonth(books []*models.Book, now time.Time) int {
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	return finishedIn(books, func(t time.Time) bool {
		return t.Year() == prev.Year() && t.Month() == prev.Month()
	})
}

// ReadThisYear counts the books finished in now's calendar year.
func ReadThisYear(books []*models.Book, now time.Time) int {
	return finishedIn(books, func(t time.Time) bool {
		return t.Year() == now.Year()
	})
}

// ReadLastYear counts the books finished in the calendar year before now's.
func ReadLastYear(books []*models.Book, now time.Time) int {
	return finishedIn(books, func(t time.Time) bool {
		return t.Year() == now.Year()-1
	})
}

type period struct {
	year  int
	month time.Month
}

// BestMonth returns the calendar month with the most finished books, as a
// human-readable "January 2006" string, or "None" when no books are
// finished. Ties resolve to the earlier month.
func BestMonth(books []*models.Book) string {
	counts := map[period]int{}
	for _, b := range books {
		if b.Status == models.StatusFinished && b.FinishedDate != nil {
			counts[period{b.FinishedDate.Year(), b.FinishedDate.Month()}]++
		}
	}

	var best period
	bestCount := 0
	for p, count := range counts {
		if count > bestCount || (count == bestCount && bestCount > 0 && earlier(p, best)) {
			best = p
			bestCount = count
		}
	}
	if bestCount == 0 {
		return None
	}
	return fmt.Sprintf("%s %d", best.month, best.year)
}

// BestYear returns the calendar year with the most finished books, or "None"
// when no books are finished. Ties resolve to the earlier year.
func BestYear(books []*models.Book) string {
	counts := map[int]int{}
	for _, b := range books {
		if b.Status == models.StatusFinished && b.FinishedDate != nil {
			counts[b.FinishedDate.Year()]++
		}
	}

	bestYear := 0
	bestCount := 0
	for year, count := range counts {
		if count > bestCount || (count == bestCount && bestCount > 0 && year < bestYear) {
			bestYear = year
			bestCount = count
		}
	}
	if bestCount == 0 {
		return None
	}
	return fmt.Sprintf("%d", bestYear)
}

func earlier(a, b period) bool {
	if a.year != b.year {
		return a.year < b.year
	}
	return a.month < b.month
}
