package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusevents/backend/internal/discovery"
	"github.com/campusevents/backend/internal/model"
	"github.com/campusevents/backend/internal/repository"
)

// fakeSources backs the discovery service with in-memory data.
type fakeSources struct {
	events     []model.Event
	categories []model.Category
	organizers []model.OrganizerSummary
}

func (f *fakeSources) ScanEvents(ctx context.Context) ([]model.Event, error) {
	out := make([]model.Event, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeSources) EventByID(ctx context.Context, id string) (*model.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			e := f.events[i]
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSources) CategoryByID(ctx context.Context, id string) (*model.Category, error) {
	for i := range f.categories {
		if f.categories[i].ID == id {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSources) CategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	for i := range f.categories {
		if f.categories[i].Slug == slug {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSources) OrganizerByID(ctx context.Context, id string) (*model.OrganizerSummary, error) {
	for i := range f.organizers {
		if f.organizers[i].ID == id {
			o := f.organizers[i]
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSources) OrganizersByIDs(ctx context.Context, ids []string) (map[string]model.OrganizerSummary, error) {
	out := make(map[string]model.OrganizerSummary, len(ids))
	for _, id := range ids {
		if o, err := f.OrganizerByID(ctx, id); err == nil {
			out[id] = *o
		}
	}
	return out, nil
}

func newDiscoveryHandler(src *fakeSources) http.Handler {
	h := NewEventHandler(discovery.NewService(src, src, src), nil)

	r := chi.NewRouter()
	r.Get("/api/events", h.ListEvents)
	r.Get("/api/events/{id}", h.GetEvent)
	return r
}

func seededSources() *fakeSources {
	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return &fakeSources{
		events: []model.Event{
			{
				ID: "e1", Title: "Jazz Night", Description: "Evening concert",
				CategoryID: "cat-1", OrganizerID: "org-1",
				Date: day("2025-12-05"), StartTime: "19:00", EndTime: "22:00",
				Venue: "Auditorium", Location: "Campus Center",
				Capacity: 100, RegisteredCount: 40,
				Status: model.StatusPublished, Tags: []string{"music"},
			},
			{
				ID: "e2", Title: "Draft Workshop", Description: "Not yet visible",
				CategoryID: "cat-1", OrganizerID: "org-1",
				Date: day("2025-12-06"), StartTime: "10:00", EndTime: "12:00",
				Venue: "Lab", Location: "North Campus",
				Capacity: 30, Status: model.StatusDraft,
			},
		},
		categories: []model.Category{
			{ID: "cat-1", Name: "Arts", Slug: "arts", IsActive: true},
		},
		organizers: []model.OrganizerSummary{
			{ID: "org-1", Name: "Music Society", Email: "music@campus.edu"},
		},
	}
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListEventsEnvelope(t *testing.T) {
	h := newDiscoveryHandler(seededSources())

	rec := doGet(t, h, "/api/events")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Success    bool                     `json:"success"`
		Events     []discovery.EventSummary `json:"events"`
		Pagination model.Pagination         `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Success)
	require.Len(t, body.Events, 1)
	assert.Equal(t, "e1", body.Events[0].ID)
	assert.Equal(t, "2025-12-05", body.Events[0].Date)
	assert.Equal(t, "Arts", body.Events[0].Category.Name)
	assert.Equal(t, "Music Society", body.Events[0].Organizer.Name)
	assert.Equal(t, 60, body.Events[0].RemainingCapacity)
	assert.True(t, body.Events[0].IsAvailable)
	assert.Equal(t, model.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 1, ItemsPerPage: 20}, body.Pagination)
}

func TestListEventsMalformedQuery(t *testing.T) {
	h := newDiscoveryHandler(seededSources())

	for _, target := range []string{
		"/api/events?page=abc",
		"/api/events?startDate=12/01/2025",
		"/api/events?sortBy=price",
		"/api/events?availability=maybe",
	} {
		rec := doGet(t, h, target)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)

		var body model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, codeValidation, body.Code)
		assert.NotEmpty(t, body.Error)
	}
}

func TestListEventsUnknownCategoryIsEmptySuccess(t *testing.T) {
	h := newDiscoveryHandler(seededSources())

	rec := doGet(t, h, "/api/events?category=no-such-slug")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                     `json:"success"`
		Events  []discovery.EventSummary `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotNil(t, body.Events)
	assert.Empty(t, body.Events)
}

func TestGetEventByID(t *testing.T) {
	h := newDiscoveryHandler(seededSources())

	rec := doGet(t, h, "/api/events/e2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                  `json:"success"`
		Event   discovery.EventDetail `json:"event"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "e2", body.Event.ID)
	// Detail lookups are not restricted to published events.
	assert.Equal(t, model.StatusDraft, body.Event.Status)
	assert.Equal(t, "cat-1", body.Event.CategoryID)
}

func TestGetEventNotFound(t *testing.T) {
	h := newDiscoveryHandler(seededSources())

	rec := doGet(t, h, "/api/events/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, codeNotFound, body.Code)
}

func TestListEventsDanglingReference(t *testing.T) {
	src := seededSources()
	src.events[0].CategoryID = "cat-gone"
	h := newDiscoveryHandler(src)

	rec := doGet(t, h, "/api/events")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, codeDataIntegrity, body.Code)
}

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
