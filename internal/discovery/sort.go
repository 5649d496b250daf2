package discovery

import (
	"cmp"
	"slices"
	"strings"

	"github.com/campusevents/backend/internal/model"
)

// SortEvents imposes a total order on events in place. Every key breaks
// ties by ascending id, so two events sharing a sort value still order
// deterministically.
func SortEvents(events []model.Event, key SortKey) {
	switch key {
	case SortByTitle:
		slices.SortFunc(events, compareByTitle)
	case SortByPopularity:
		slices.SortFunc(events, compareByPopularity)
	default:
		slices.SortFunc(events, compareByDate)
	}
}

// compareByDate orders chronologically soonest first: (date, startTime, id)
// ascending. StartTime is a zero-padded 24-hour "HH:MM" string, so plain
// string comparison is chronological.
func compareByDate(a, b model.Event) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	if c := strings.Compare(a.StartTime, b.StartTime); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func compareByTitle(a, b model.Event) int {
	if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// compareByPopularity orders by registeredCount descending.
func compareByPopularity(a, b model.Event) int {
	if c := cmp.Compare(b.RegisteredCount, a.RegisteredCount); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Paginate slices the ordered set into exactly one page. A page beyond the
// last returns an empty slice, not an error. TotalPages is ceil(N/L) and 0
// when the set is empty.
func Paginate(events []model.Event, page, limit int) ([]model.Event, model.Pagination) {
	total := len(events)

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	// Compare against totalPages before multiplying: (page-1)*limit can
	// overflow for an extreme page value and wrap negative.
	start := total
	if page <= totalPages {
		start = (page - 1) * limit
	}
	end := start + limit
	if end > total {
		end = total
	}

	meta := model.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
	return events[start:end], meta
}
