// Package discovery implements the event discovery engine: typed query
// parsing, filter predicate composition, deterministic sorting,
// pagination, and capacity-derived availability over a snapshot of the
// entity store. The engine is a stateless read path: it never writes,
// never caches, and holds no locks of its own.
package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusevents/backend/internal/model"
	"github.com/campusevents/backend/internal/repository"
)

// EventSource supplies the event snapshot. ScanEvents returns all events
// regardless of status; the engine applies the visibility predicate
// itself. EventByID returns repository.ErrNotFound for an absent id.
type EventSource interface {
	ScanEvents(ctx context.Context) ([]model.Event, error)
	EventByID(ctx context.Context, id string) (*model.Event, error)
}

// CategorySource resolves categories by internal id and by external slug.
// Both return repository.ErrNotFound when no row matches.
type CategorySource interface {
	CategoryByID(ctx context.Context, id string) (*model.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
}

// OrganizerSource projects users into organizer summaries.
type OrganizerSource interface {
	OrganizerByID(ctx context.Context, id string) (*model.OrganizerSummary, error)
	OrganizersByIDs(ctx context.Context, ids []string) (map[string]model.OrganizerSummary, error)
}

// Service orchestrates filtering, sorting, pagination, and response
// enrichment for the two public discovery operations.
type Service struct {
	events     EventSource
	categories CategorySource
	organizers OrganizerSource
}

// NewService constructs a discovery Service over the given sources.
func NewService(events EventSource, categories CategorySource, organizers OrganizerSource) *Service {
	return &Service{events: events, categories: categories, organizers: organizers}
}

// ListEvents returns one page of published events matching the query,
// each enriched with its category, organizer summary, and computed
// capacity fields, plus the pagination metadata.
//
// An unknown or inactive category slug is not an error: the filter fails
// closed and the page is empty. A dangling category or organizer
// reference on a returned event is a DataIntegrityError.
func (s *Service) ListEvents(ctx context.Context, q Query) ([]EventSummary, model.Pagination, error) {
	categoryID := ""
	if q.Category != "" {
		cat, err := s.categories.CategoryBySlug(ctx, q.Category)
		if errors.Is(err, repository.ErrNotFound) {
			return emptyPage(q)
		}
		if err != nil {
			return nil, model.Pagination{}, fmt.Errorf("resolve category slug %q: %w", q.Category, err)
		}
		if !cat.IsActive {
			return emptyPage(q)
		}
		categoryID = cat.ID
	}

	events, err := s.events.ScanEvents(ctx)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("scan events: %w", err)
	}

	var organizerNames map[string]string
	if q.Organizer != "" {
		organizerNames, err = s.resolveOrganizerNames(ctx, events)
		if err != nil {
			return nil, model.Pagination{}, err
		}
	}

	matched := Apply(events, BuildPredicate(q, categoryID, organizerNames))
	SortEvents(matched, q.SortBy)
	page, meta := Paginate(matched, q.Page, q.Limit)

	summaries := make([]EventSummary, 0, len(page))
	resolver := newRefResolver(s)
	for i := range page {
		summary, err := resolver.enrich(ctx, &page[i])
		if err != nil {
			return nil, model.Pagination{}, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, meta, nil
}

// GetEvent returns the enriched detail view for a single event. The
// lookup is NOT restricted to published events; visibility enforcement
// for non-published events is the caller's responsibility. An absent id
// propagates repository.ErrNotFound.
func (s *Service) GetEvent(ctx context.Context, id string) (*EventDetail, error) {
	e, err := s.events.EventByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	summary, err := newRefResolver(s).enrich(ctx, e)
	if err != nil {
		return nil, err
	}
	return &EventDetail{
		EventSummary: *summary,
		CategoryID:   e.CategoryID,
		OrganizerID:  e.OrganizerID,
		UpdatedAt:    e.UpdatedAt,
		CancelledAt:  e.CancelledAt,
	}, nil
}

func (s *Service) resolveOrganizerNames(ctx context.Context, events []model.Event) (map[string]string, error) {
	ids := make([]string, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for i := range events {
		id := events[i].OrganizerID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	summaries, err := s.organizers.OrganizersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve organizer names: %w", err)
	}
	names := make(map[string]string, len(summaries))
	for id, o := range summaries {
		names[id] = o.Name
	}
	return names, nil
}

// refResolver memoizes category and organizer lookups across the events
// of one response page.
type refResolver struct {
	svc        *Service
	categories map[string]*model.Category
	organizers map[string]*model.OrganizerSummary
}

func newRefResolver(s *Service) *refResolver {
	return &refResolver{
		svc:        s,
		categories: make(map[string]*model.Category),
		organizers: make(map[string]*model.OrganizerSummary),
	}
}

func (r *refResolver) enrich(ctx context.Context, e *model.Event) (*EventSummary, error) {
	cat, ok := r.categories[e.CategoryID]
	if !ok {
		var err error
		cat, err = r.svc.categories.CategoryByID(ctx, e.CategoryID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &DataIntegrityError{EventID: e.ID, Kind: "category", RefID: e.CategoryID}
		}
		if err != nil {
			return nil, fmt.Errorf("resolve category %q: %w", e.CategoryID, err)
		}
		r.categories[e.CategoryID] = cat
	}

	org, ok := r.organizers[e.OrganizerID]
	if !ok {
		var err error
		org, err = r.svc.organizers.OrganizerByID(ctx, e.OrganizerID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &DataIntegrityError{EventID: e.ID, Kind: "organizer", RefID: e.OrganizerID}
		}
		if err != nil {
			return nil, fmt.Errorf("resolve organizer %q: %w", e.OrganizerID, err)
		}
		r.organizers[e.OrganizerID] = org
	}

	summary := newSummary(e, cat, org)
	return &summary, nil
}

func emptyPage(q Query) ([]EventSummary, model.Pagination, error) {
	meta := model.Pagination{
		CurrentPage:  q.Page,
		TotalPages:   0,
		TotalItems:   0,
		ItemsPerPage: q.Limit,
	}
	return []EventSummary{}, meta, nil
}
