package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campusevents/backend/internal/model"
	"github.com/campusevents/backend/internal/repository"
)

// Event capacity bounds.
const (
	minCapacity = 1
	maxCapacity = 5000
)

// EventStore is the slice of the event repository the event service needs.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	EventByID(ctx context.Context, id string) (*model.Event, error)
	ByOrganizer(ctx context.Context, organizerID string, status model.EventStatus) ([]model.Event, error)
	SetStatus(ctx context.Context, id string, status model.EventStatus, at time.Time) error
}

// CategoryStore resolves categories during event creation.
type CategoryStore interface {
	CategoryByID(ctx context.Context, id string) (*model.Category, error)
}

// EventService handles the organizer-facing event lifecycle.
type EventService struct {
	events     EventStore
	categories CategoryStore
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore, categories CategoryStore) *EventService {
	return &EventService{events: events, categories: categories}
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
	Date        string   `json:"date"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	ImageURL    string   `json:"imageUrl"`
	Tags        []string `json:"tags"`
}

// CreateEvent validates the request and stores the event in the pending
// state, awaiting admin approval before it becomes discoverable.
func (s *EventService) CreateEvent(ctx context.Context, organizerID string, req CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Venue = strings.TrimSpace(req.Venue)
	req.Location = strings.TrimSpace(req.Location)

	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("description is required")
	}
	if req.Capacity < minCapacity || req.Capacity > maxCapacity {
		return nil, fmt.Errorf("capacity must be between %d and %d", minCapacity, maxCapacity)
	}
	if req.Venue == "" {
		return nil, fmt.Errorf("venue is required")
	}
	if req.Location == "" {
		return nil, fmt.Errorf("location is required")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("date must be a YYYY-MM-DD date")
	}
	if err := validateTimeOfDay(req.StartTime); err != nil {
		return nil, fmt.Errorf("startTime %v", err)
	}
	if err := validateTimeOfDay(req.EndTime); err != nil {
		return nil, fmt.Errorf("endTime %v", err)
	}
	if req.EndTime <= req.StartTime {
		return nil, fmt.Errorf("endTime must be after startTime")
	}

	cat, err := s.categories.CategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("category %q not found", req.CategoryID)
		}
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if !cat.IsActive {
		return nil, fmt.Errorf("category %q is not active", cat.Slug)
	}

	now := time.Now().UTC()
	e := &model.Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  cat.ID,
		OrganizerID: organizerID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Venue:       req.Venue,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Status:      model.StatusPending,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Tags:        req.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}

	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Publish transitions a pending event to published.
func (s *EventService) Publish(ctx context.Context, eventID string) (*model.Event, error) {
	e, err := s.events.EventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.Status != model.StatusPending {
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	if err := s.events.SetStatus(ctx, eventID, model.StatusPublished, now); err != nil {
		return nil, err
	}
	e.Status = model.StatusPublished
	e.PublishedAt = &now
	e.UpdatedAt = now
	return e, nil
}

// Cancel transitions a pending or published event to cancelled. Only the
// owning organizer or an admin may cancel.
func (s *EventService) Cancel(ctx context.Context, eventID string, actor *model.User) (*model.Event, error) {
	e, err := s.events.EventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && e.OrganizerID != actor.ID {
		return nil, ErrForbidden
	}
	if e.Status != model.StatusPending && e.Status != model.StatusPublished {
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	if err := s.events.SetStatus(ctx, eventID, model.StatusCancelled, now); err != nil {
		return nil, err
	}
	e.Status = model.StatusCancelled
	e.CancelledAt = &now
	e.UpdatedAt = now
	return e, nil
}

// ListByOrganizer returns the organizer's own events, optionally
// restricted to one status.
func (s *EventService) ListByOrganizer(ctx context.Context, organizerID, status string) ([]model.Event, error) {
	st := model.EventStatus(status)
	if status != "" {
		switch st {
		case model.StatusDraft, model.StatusPending, model.StatusPublished, model.StatusCancelled:
		default:
			return nil, fmt.Errorf("status must be one of draft, pending, published, cancelled")
		}
	}
	return s.events.ByOrganizer(ctx, organizerID, st)
}

// validateTimeOfDay enforces the zero-padded 24-hour "HH:MM" form used
// for event start and end times.
func validateTimeOfDay(v string) error {
	if _, err := time.Parse("15:04", v); err != nil || len(v) != 5 {
		return fmt.Errorf("must be a HH:MM 24-hour time")
	}
	return nil
}
