package discovery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusevents/backend/internal/model"
)

func TestSortByDateOrdersChronologically(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.Date = day("2025-12-10") }),
		testEvent("e2", func(e *model.Event) { e.Date = day("2025-12-01") }),
		testEvent("e3", func(e *model.Event) { e.Date = day("2025-12-05") }),
	}

	SortEvents(events, SortByDate)
	assert.Equal(t, []string{"e2", "e3", "e1"}, matchedIDs(events))
}

func TestSortByDateBreaksTiesByStartTimeThenID(t *testing.T) {
	events := []model.Event{
		testEvent("e2", func(e *model.Event) { e.StartTime = "14:00" }),
		testEvent("e3", func(e *model.Event) { e.StartTime = "09:00" }),
		testEvent("e1", func(e *model.Event) { e.StartTime = "14:00" }),
	}

	SortEvents(events, SortByDate)
	assert.Equal(t, []string{"e3", "e1", "e2"}, matchedIDs(events))
}

func TestSortByTitleIsCaseInsensitive(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.Title = "zebra talk" }),
		testEvent("e2", func(e *model.Event) { e.Title = "Apple Fair" }),
		testEvent("e3", func(e *model.Event) { e.Title = "mango tasting" }),
	}

	SortEvents(events, SortByTitle)
	assert.Equal(t, []string{"e2", "e3", "e1"}, matchedIDs(events))
}

func TestSortByTitleBreaksTiesByID(t *testing.T) {
	events := []model.Event{
		testEvent("e2", func(e *model.Event) { e.Title = "Open Mic" }),
		testEvent("e1", func(e *model.Event) { e.Title = "open mic" }),
	}

	SortEvents(events, SortByTitle)
	assert.Equal(t, []string{"e1", "e2"}, matchedIDs(events))
}

func TestSortByPopularityDescending(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.RegisteredCount = 5 }),
		testEvent("e2", func(e *model.Event) { e.RegisteredCount = 90 }),
		testEvent("e4", func(e *model.Event) { e.RegisteredCount = 30 }),
		testEvent("e3", func(e *model.Event) { e.RegisteredCount = 30 }),
	}

	SortEvents(events, SortByPopularity)
	assert.Equal(t, []string{"e2", "e3", "e4", "e1"}, matchedIDs(events))
}

func TestSortIsDeterministicAcrossRuns(t *testing.T) {
	build := func() []model.Event {
		return []model.Event{
			testEvent("e3", func(e *model.Event) { e.RegisteredCount = 10 }),
			testEvent("e1", func(e *model.Event) { e.RegisteredCount = 10 }),
			testEvent("e2", func(e *model.Event) { e.RegisteredCount = 10 }),
		}
	}

	first := build()
	SortEvents(first, SortByPopularity)
	second := build()
	SortEvents(second, SortByPopularity)

	assert.Equal(t, matchedIDs(first), matchedIDs(second))
	assert.Equal(t, []string{"e1", "e2", "e3"}, matchedIDs(first))
}

func TestPaginateSinglePartialPage(t *testing.T) {
	events := make([]model.Event, 5)
	for i := range events {
		events[i] = testEvent(string(rune('a'+i)), nil)
	}

	page, meta := Paginate(events, 1, 20)
	assert.Len(t, page, 5)
	assert.Equal(t, model.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 5, ItemsPerPage: 20}, meta)
}

func TestPaginateLastPageShorter(t *testing.T) {
	events := make([]model.Event, 5)
	for i := range events {
		events[i] = testEvent(string(rune('a'+i)), nil)
	}

	page, meta := Paginate(events, 3, 2)
	require.Len(t, page, 1)
	assert.Equal(t, "e", page[0].ID)
	assert.Equal(t, model.Pagination{CurrentPage: 3, TotalPages: 3, TotalItems: 5, ItemsPerPage: 2}, meta)
}

func TestPaginateBeyondLastPage(t *testing.T) {
	events := []model.Event{testEvent("e1", nil), testEvent("e2", nil)}

	page, meta := Paginate(events, 7, 10)
	assert.Empty(t, page)
	assert.Equal(t, model.Pagination{CurrentPage: 7, TotalPages: 1, TotalItems: 2, ItemsPerPage: 10}, meta)
}

func TestPaginateExtremePageValue(t *testing.T) {
	events := []model.Event{testEvent("e1", nil), testEvent("e2", nil)}

	// A page number this large overflows (page-1)*limit if multiplied
	// naively; it must behave like any other page beyond the last.
	q, err := ParseQuery(url.Values{"page": {"4611686018427387904"}, "limit": {"20"}})
	require.NoError(t, err)

	page, meta := Paginate(events, q.Page, q.Limit)
	assert.Empty(t, page)
	assert.Equal(t, 4611686018427387904, meta.CurrentPage)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, 2, meta.TotalItems)
}

func TestPaginateEmptySet(t *testing.T) {
	page, meta := Paginate(nil, 1, 20)
	assert.Empty(t, page)
	assert.Equal(t, model.Pagination{CurrentPage: 1, TotalPages: 0, TotalItems: 0, ItemsPerPage: 20}, meta)
}

func TestPaginatePagesPartitionTheSet(t *testing.T) {
	events := make([]model.Event, 7)
	for i := range events {
		events[i] = testEvent(string(rune('a'+i)), nil)
	}

	var seen []string
	for p := 1; p <= 3; p++ {
		page, meta := Paginate(events, p, 3)
		assert.Equal(t, 3, meta.TotalPages)
		seen = append(seen, matchedIDs(page)...)
	}
	assert.Equal(t, matchedIDs(events), seen)
}
