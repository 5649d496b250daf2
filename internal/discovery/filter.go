package discovery

import (
	"strings"
	"time"

	"github.com/campusevents/backend/internal/model"
)

// Predicate reports whether an event matches one filter dimension.
type Predicate func(e *model.Event) bool

// BuildPredicate composes the query's filter dimensions into a single
// predicate over the event set. All supplied dimensions combine with
// logical AND on top of the base visibility predicate, which always
// restricts to published events and cannot be overridden.
//
// categoryID is the already-resolved internal id for q.Category; empty
// means no category constraint. organizerNames maps organizer id to
// display name and is only consulted when q.Organizer is set.
//
// The resulting predicate is pure: same query, same snapshot, same
// matching set, no mutation.
func BuildPredicate(q Query, categoryID string, organizerNames map[string]string) Predicate {
	preds := []Predicate{isPublished}

	if q.Search != "" {
		preds = append(preds, matchesSearch(q.Search))
	}
	if categoryID != "" {
		preds = append(preds, inCategory(categoryID))
	}
	if q.StartDate != nil {
		preds = append(preds, onOrAfter(*q.StartDate))
	}
	if q.EndDate != nil {
		preds = append(preds, onOrBefore(*q.EndDate))
	}
	if q.Organizer != "" {
		preds = append(preds, organizedBy(q.Organizer, organizerNames))
	}
	if q.Availability {
		preds = append(preds, IsAvailable)
	}

	return func(e *model.Event) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Apply returns the events matching p, preserving input order.
func Apply(events []model.Event, p Predicate) []model.Event {
	matched := make([]model.Event, 0, len(events))
	for i := range events {
		if p(&events[i]) {
			matched = append(matched, events[i])
		}
	}
	return matched
}

func isPublished(e *model.Event) bool {
	return e.Status == model.StatusPublished
}

// matchesSearch is a case-insensitive substring match against any of
// title, description, tags, and venue name (OR across fields).
func matchesSearch(term string) Predicate {
	needle := strings.ToLower(term)
	return func(e *model.Event) bool {
		if strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Description), needle) ||
			strings.Contains(strings.ToLower(e.Venue), needle) {
			return true
		}
		for _, tag := range e.Tags {
			if strings.Contains(strings.ToLower(tag), needle) {
				return true
			}
		}
		return false
	}
}

func inCategory(categoryID string) Predicate {
	return func(e *model.Event) bool {
		return e.CategoryID == categoryID
	}
}

func onOrAfter(start time.Time) Predicate {
	return func(e *model.Event) bool {
		return !e.Date.Before(start)
	}
}

func onOrBefore(end time.Time) Predicate {
	return func(e *model.Event) bool {
		return !e.Date.After(end)
	}
}

// organizedBy is a case-insensitive substring match on the organizer's
// name. An event whose organizer is missing from the map never matches.
func organizedBy(term string, organizerNames map[string]string) Predicate {
	needle := strings.ToLower(term)
	return func(e *model.Event) bool {
		name, ok := organizerNames[e.OrganizerID]
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(name), needle)
	}
}
