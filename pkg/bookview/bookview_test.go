package bookview

import (
	"testing"
	"time"

	"github.com/shelfnotes/shelfnotes/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func titles(books []*models.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestSearch(t *testing.T) {
	books := []*models.Book{
		{Title: "Dune", AuthorName: "Frank Herbert"},
		{Title: "Hyperion", AuthorName: "Dan Simmons"},
		{Title: "The Herbalist", AuthorName: "Someone Else"},
	}

	// Matches both titles and author names, case-insensitively.
	assert.ElementsMatch(t, []string{"Dune", "The Herbalist"}, titles(Search(books, "herb")))
	assert.ElementsMatch(t, []string{"Hyperion"}, titles(Search(books, "SIMMONS")))
	assert.Empty(t, Search(books, "tolkien"))

	// An empty or whitespace query returns everything.
	assert.Len(t, Search(books, "  "), 3)
}

func TestFilterByStatus(t *testing.T) {
	books := []*models.Book{
		{Title: "To Read", Status: models.StatusToRead},
		{Title: "Reading", Status: models.StatusReading},
		{Title: "Finished", Status: models.StatusFinished},
		{Title: "Abandoned", Status: models.StatusAbandoned},
	}

	assert.Len(t, FilterByStatus(books, FilterAll), 4)
	assert.ElementsMatch(t, []string{"Finished"}, titles(FilterByStatus(books, FilterRead)))
	assert.ElementsMatch(t, []string{"To Read", "Reading"}, titles(FilterByStatus(books, FilterUnread)))
	assert.ElementsMatch(t, []string{"Abandoned"}, titles(FilterByStatus(books, FilterAbandoned)))
}

func TestSortByTitle(t *testing.T) {
	books := []*models.Book{
		{Title: "hyperion"},
		{Title: "Dune"},
		{Title: "Anathem"},
	}

	sorted := Sort(books, SortByTitle, false)
	assert.Equal(t, []string{"Anathem", "Dune", "hyperion"}, titles(sorted))

	sorted = Sort(books, SortByTitle, true)
	assert.Equal(t, []string{"hyperion", "Dune", "Anathem"}, titles(sorted))

	// The input slice is left untouched.
	assert.Equal(t, []string{"hyperion", "Dune", "Anathem"}, titles(books))
}

func TestSortByAuthorUsesLastName(t *testing.T) {
	books := []*models.Book{
		{Title: "A", AuthorName: "Ted Chiang"},
		{Title: "B", AuthorName: "Iain Banks"},
		{Title: "C", AuthorName: "Ursula K. Le Guin"},
	}

	sorted := Sort(books, SortByAuthor, false)
	assert.Equal(t, []string{"B", "A", "C"}, titles(sorted))
}

func TestSortIsStable(t *testing.T) {
	d := day(1)
	books := []*models.Book{
		{Title: "First", FinishedDate: &d},
		{Title: "Second", FinishedDate: &d},
		{Title: "Third", FinishedDate: &d},
	}

	// Equal keys keep their prior relative order in both directions.
	sorted := Sort(books, SortByFinished, false)
	assert.Equal(t, []string{"First", "Second", "Third"}, titles(sorted))

	sorted = Sort(books, SortByFinished, true)
	assert.Equal(t, []string{"First", "Second", "Third"}, titles(sorted))
}

func TestSortByFinishedTreatsNilAsZero(t *testing.T) {
	d1, d2 := day(10), day(20)
	books := []*models.Book{
		{Title: "Late", FinishedDate: &d2},
		{Title: "Unfinished"},
		{Title: "Early", FinishedDate: &d1},
	}

	sorted := Sort(books, SortByFinished, false)
	assert.Equal(t, []string{"Unfinished", "Early", "Late"}, titles(sorted))
}

func TestSortByAdded(t *testing.T) {
	books := []*models.Book{
		{Title: "Newest", Added: day(30)},
		{Title: "Oldest", Added: day(1)},
		{Title: "Middle", Added: day(15)},
	}

	sorted := Sort(books, SortByAdded, true)
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, titles(sorted))
}

func TestValidators(t *testing.T) {
	require.True(t, ValidStatusFilter(FilterRead))
	require.False(t, ValidStatusFilter("finished"))
	require.True(t, ValidSortKey(SortByAuthor))
	require.False(t, ValidSortKey("rating"))
}
