package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusevents/backend/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

// testEvent builds a published event with sensible defaults; mut tweaks
// the fields under test.
func testEvent(id string, mut func(*model.Event)) model.Event {
	e := model.Event{
		ID:          id,
		Title:       "Event " + id,
		Description: "An event on campus",
		CategoryID:  "cat-1",
		OrganizerID: "org-1",
		Date:        day("2025-12-05"),
		StartTime:   "10:00",
		EndTime:     "12:00",
		Venue:       "Main Hall",
		Location:    "Campus Center",
		Capacity:    100,
		Status:      model.StatusPublished,
		Tags:        []string{"campus"},
	}
	if mut != nil {
		mut(&e)
	}
	return e
}

func matchedIDs(events []model.Event) []string {
	ids := make([]string, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].ID)
	}
	return ids
}

func TestBasePredicateOnlyMatchesPublished(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.Status = model.StatusDraft }),
		testEvent("e2", func(e *model.Event) { e.Status = model.StatusPending }),
		testEvent("e3", nil),
		testEvent("e4", func(e *model.Event) { e.Status = model.StatusCancelled }),
	}

	matched := Apply(events, BuildPredicate(Query{}, "", nil))
	assert.Equal(t, []string{"e3"}, matchedIDs(matched))
}

func TestSearchMatchesAnyTextField(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.Title = "Jazz Night" }),
		testEvent("e2", func(e *model.Event) { e.Description = "Live jazz by the quad" }),
		testEvent("e3", func(e *model.Event) { e.Tags = []string{"music", "jazz"} }),
		testEvent("e4", func(e *model.Event) { e.Venue = "Jazz Cellar" }),
		testEvent("e5", func(e *model.Event) { e.Title = "Robotics Demo" }),
	}

	matched := Apply(events, BuildPredicate(Query{Search: "JAZZ"}, "", nil))
	assert.Equal(t, []string{"e1", "e2", "e3", "e4"}, matchedIDs(matched))
}

func TestSearchSubstringNotWholeWord(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.Title = "Hackathon 2025" }),
		testEvent("e2", func(e *model.Event) { e.Title = "Study Group" }),
	}

	matched := Apply(events, BuildPredicate(Query{Search: "hack"}, "", nil))
	assert.Equal(t, []string{"e1"}, matchedIDs(matched))
}

func TestDateRangeBoundsAreInclusive(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.Date = day("2025-11-30") }),
		testEvent("e2", func(e *model.Event) { e.Date = day("2025-12-01") }),
		testEvent("e3", func(e *model.Event) { e.Date = day("2025-12-05") }),
		testEvent("e4", func(e *model.Event) { e.Date = day("2025-12-10") }),
		testEvent("e5", func(e *model.Event) { e.Date = day("2025-12-11") }),
	}
	q := Query{StartDate: dayPtr("2025-12-01"), EndDate: dayPtr("2025-12-10")}

	matched := Apply(events, BuildPredicate(q, "", nil))
	assert.Equal(t, []string{"e2", "e3", "e4"}, matchedIDs(matched))
}

func TestOpenEndedDateRange(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.Date = day("2025-11-30") }),
		testEvent("e2", func(e *model.Event) { e.Date = day("2025-12-05") }),
	}

	matched := Apply(events, BuildPredicate(Query{StartDate: dayPtr("2025-12-01")}, "", nil))
	assert.Equal(t, []string{"e2"}, matchedIDs(matched))

	matched = Apply(events, BuildPredicate(Query{EndDate: dayPtr("2025-12-01")}, "", nil))
	assert.Equal(t, []string{"e1"}, matchedIDs(matched))
}

func TestCategoryFilterUsesResolvedID(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.CategoryID = "cat-1" }),
		testEvent("e2", func(e *model.Event) { e.CategoryID = "cat-2" }),
	}

	matched := Apply(events, BuildPredicate(Query{}, "cat-2", nil))
	assert.Equal(t, []string{"e2"}, matchedIDs(matched))
}

func TestAvailabilityFilter(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.Capacity = 10; e.RegisteredCount = 10 }),
		testEvent("e2", func(e *model.Event) { e.Capacity = 10; e.RegisteredCount = 9 }),
		testEvent("e3", func(e *model.Event) { e.Capacity = 10; e.RegisteredCount = 12 }),
	}

	matched := Apply(events, BuildPredicate(Query{Availability: true}, "", nil))
	assert.Equal(t, []string{"e2"}, matchedIDs(matched))
}

func TestOrganizerNameFilter(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) { e.OrganizerID = "org-1" }),
		testEvent("e2", func(e *model.Event) { e.OrganizerID = "org-2" }),
		testEvent("e3", func(e *model.Event) { e.OrganizerID = "org-3" }),
	}
	names := map[string]string{
		"org-1": "Music Society",
		"org-2": "Chess Club",
	}

	matched := Apply(events, BuildPredicate(Query{Organizer: "music"}, "", names))
	assert.Equal(t, []string{"e1"}, matchedIDs(matched))

	// org-3 has no resolved name and must never match.
	matched = Apply(events, BuildPredicate(Query{Organizer: "club"}, "", names))
	assert.Equal(t, []string{"e2"}, matchedIDs(matched))
}

func TestFiltersCombineWithAND(t *testing.T) {
	events := []model.Event{
		testEvent("e1", func(e *model.Event) {
			e.Title = "Jazz Night"
			e.CategoryID = "cat-arts"
			e.Date = day("2025-12-05")
		}),
		testEvent("e2", func(e *model.Event) {
			e.Title = "Jazz Brunch"
			e.CategoryID = "cat-arts"
			e.Date = day("2026-01-15")
		}),
		testEvent("e3", func(e *model.Event) {
			e.Title = "Jazz Workshop"
			e.CategoryID = "cat-tech"
			e.Date = day("2025-12-05")
		}),
	}
	q := Query{Search: "jazz", EndDate: dayPtr("2025-12-31")}

	matched := Apply(events, BuildPredicate(q, "cat-arts", nil))
	assert.Equal(t, []string{"e1"}, matchedIDs(matched))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	events := []model.Event{
		testEvent("e1", nil),
		testEvent("e2", func(e *model.Event) { e.Status = model.StatusDraft }),
	}
	before := make([]model.Event, len(events))
	copy(before, events)

	first := Apply(events, BuildPredicate(Query{}, "", nil))
	second := Apply(events, BuildPredicate(Query{}, "", nil))

	require.Equal(t, before, events)
	assert.Equal(t, first, second)
}
