package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusevents/backend/internal/model"
)

var eventCols = []any{
	"id", "title", "description", "category_id", "organizer_id",
	"date", "start_time", "end_time", "venue", "location",
	"capacity", "registered_count", "waitlist_count", "status",
	"image_url", "tags", "is_featured",
	"created_at", "updated_at", "published_at", "cancelled_at",
}

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// ScanEvents returns every event regardless of status. The discovery
// engine applies its own visibility predicate over this snapshot.
func (r *EventRepository) ScanEvents(ctx context.Context) ([]model.Event, error) {
	sql, args, err := pg.From("events").Select(eventCols...).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build scan query: %w", err)
	}
	return r.queryEvents(ctx, sql, args)
}

// EventByID returns a single event or ErrNotFound.
func (r *EventRepository) EventByID(ctx context.Context, id string) (*model.Event, error) {
	sql, args, err := pg.From("events").
		Select(eventCols...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build event query: %w", err)
	}

	e, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// ByOrganizer returns the organizer's events, newest date first. An empty
// status means all statuses.
func (r *EventRepository) ByOrganizer(ctx context.Context, organizerID string, status model.EventStatus) ([]model.Event, error) {
	ds := pg.From("events").
		Select(eventCols...).
		Where(goqu.C("organizer_id").Eq(organizerID)).
		Order(goqu.I("date").Desc(), goqu.I("id").Asc())
	if status != "" {
		ds = ds.Where(goqu.C("status").Eq(string(status)))
	}

	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build organizer query: %w", err)
	}
	return r.queryEvents(ctx, sql, args)
}

// Create inserts a new event.
func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	sql, args, err := pg.Insert("events").Rows(goqu.Record{
		"id":               e.ID,
		"title":            e.Title,
		"description":      e.Description,
		"category_id":      e.CategoryID,
		"organizer_id":     e.OrganizerID,
		"date":             e.Date,
		"start_time":       e.StartTime,
		"end_time":         e.EndTime,
		"venue":            e.Venue,
		"location":         e.Location,
		"capacity":         e.Capacity,
		"registered_count": e.RegisteredCount,
		"waitlist_count":   e.WaitlistCount,
		"status":           string(e.Status),
		"image_url":        e.ImageURL,
		"tags":             e.Tags,
		"is_featured":      e.IsFeatured,
		"created_at":       e.CreatedAt,
		"updated_at":       e.UpdatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// SetStatus transitions an event's lifecycle state, stamping published_at
// or cancelled_at as appropriate. The transition itself is validated by
// the service layer.
func (r *EventRepository) SetStatus(ctx context.Context, id string, status model.EventStatus, at time.Time) error {
	rec := goqu.Record{"status": string(status), "updated_at": at}
	switch status {
	case model.StatusPublished:
		rec["published_at"] = at
	case model.StatusCancelled:
		rec["cancelled_at"] = at
	}

	sql, args, err := pg.Update("events").
		Set(rec).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build status update: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) queryEvents(ctx context.Context, sql string, args []any) ([]model.Event, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.CategoryID, &e.OrganizerID,
		&e.Date, &e.StartTime, &e.EndTime, &e.Venue, &e.Location,
		&e.Capacity, &e.RegisteredCount, &e.WaitlistCount, &e.Status,
		&e.ImageURL, &e.Tags, &e.IsFeatured,
		&e.CreatedAt, &e.UpdatedAt, &e.PublishedAt, &e.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
