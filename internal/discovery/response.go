package discovery

import (
	"time"

	"github.com/campusevents/backend/internal/model"
)

// EventSummary is the discovery projection of an event: the event fields
// plus its embedded category, an organizer summary, and the computed
// capacity fields. remainingCapacity and isAvailable are derived on every
// read and never stored.
type EventSummary struct {
	ID                string                 `json:"id"`
	Title             string                 `json:"title"`
	Description       string                 `json:"description"`
	Category          model.Category         `json:"category"`
	Organizer         model.OrganizerSummary `json:"organizer"`
	Date              string                 `json:"date"`
	StartTime         string                 `json:"startTime"`
	EndTime           string                 `json:"endTime"`
	Venue             string                 `json:"venue"`
	Location          string                 `json:"location"`
	Capacity          int                    `json:"capacity"`
	RegisteredCount   int                    `json:"registeredCount"`
	WaitlistCount     int                    `json:"waitlistCount"`
	RemainingCapacity int                    `json:"remainingCapacity"`
	IsAvailable       bool                   `json:"isAvailable"`
	Status            model.EventStatus      `json:"status"`
	ImageURL          string                 `json:"imageUrl,omitempty"`
	Tags              []string               `json:"tags"`
	IsFeatured        bool                   `json:"isFeatured"`
	CreatedAt         time.Time              `json:"createdAt"`
	PublishedAt       *time.Time             `json:"publishedAt"`
}

// EventDetail extends the summary with the raw reference ids and the
// remaining timestamps for the detail view.
type EventDetail struct {
	EventSummary
	CategoryID  string     `json:"categoryId"`
	OrganizerID string     `json:"organizerId"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
}

func newSummary(e *model.Event, cat *model.Category, org *model.OrganizerSummary) EventSummary {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return EventSummary{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		Category:          *cat,
		Organizer:         *org,
		Date:              e.DateString(),
		StartTime:         e.StartTime,
		EndTime:           e.EndTime,
		Venue:             e.Venue,
		Location:          e.Location,
		Capacity:          e.Capacity,
		RegisteredCount:   e.RegisteredCount,
		WaitlistCount:     e.WaitlistCount,
		RemainingCapacity: RemainingCapacity(e),
		IsAvailable:       IsAvailable(e),
		Status:            e.Status,
		ImageURL:          e.ImageURL,
		Tags:              tags,
		IsFeatured:        e.IsFeatured,
		CreatedAt:         e.CreatedAt,
		PublishedAt:       e.PublishedAt,
	}
}
