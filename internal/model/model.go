// Package model defines the core domain types for the campus event platform.
package model

import "time"

// UserRole enumerates the three account roles.
type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleOrganizer UserRole = "organizer"
	RoleAdmin     UserRole = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// EventStatus enumerates the event lifecycle states.
// Events move from draft through pending to published, and may be
// cancelled; only published events are discoverable.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPending   EventStatus = "pending"
	StatusPublished EventStatus = "published"
	StatusCancelled EventStatus = "cancelled"
)

// User represents an account in the system. The password hash is never
// serialized.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Department string    `json:"department,omitempty"`
	Role       UserRole  `json:"role"`
	IsApproved bool      `json:"isApproved"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CanLogin reports whether the account may start a session. Organizers
// additionally need admin approval.
func (u *User) CanLogin() bool {
	if !u.IsActive {
		return false
	}
	if u.Role == RoleOrganizer && !u.IsApproved {
		return false
	}
	return true
}

// OrganizerSummary is the reduced organizer projection embedded in event
// responses. Never the full User record.
type OrganizerSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Summary returns the organizer projection of a user.
func (u *User) Summary() OrganizerSummary {
	return OrganizerSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
	}
}

// Category organizes events. The slug is the external filter key; the id
// stays internal.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Venue is read-only reference data. Event.Venue is a free-text string and
// is not cross-validated against this table.
type Venue struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Building   string    `json:"building"`
	Capacity   int       `json:"capacity"`
	Facilities []string  `json:"facilities"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Event represents a campus event. Date carries only the calendar date;
// StartTime/EndTime are "HH:MM" 24-hour strings with no date component.
// RegisteredCount and WaitlistCount are maintained by the registration
// subsystem and treated as read-only inputs everywhere else.
type Event struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	CategoryID      string      `json:"categoryId"`
	OrganizerID     string      `json:"organizerId"`
	Date            time.Time   `json:"-"`
	StartTime       string      `json:"startTime"`
	EndTime         string      `json:"endTime"`
	Venue           string      `json:"venue"`
	Location        string      `json:"location"`
	Capacity        int         `json:"capacity"`
	RegisteredCount int         `json:"registeredCount"`
	WaitlistCount   int         `json:"waitlistCount"`
	Status          EventStatus `json:"status"`
	ImageURL        string      `json:"imageUrl,omitempty"`
	Tags            []string    `json:"tags"`
	IsFeatured      bool        `json:"isFeatured"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	PublishedAt     *time.Time  `json:"publishedAt"`
	CancelledAt     *time.Time  `json:"cancelledAt"`
}

// DateString formats the event date as YYYY-MM-DD for responses.
func (e *Event) DateString() string {
	return e.Date.Format("2006-01-02")
}

// Registration records a confirmed seat for an event.
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// WaitlistEntry records a queued registration attempt for a full event.
// Positions start at 1 and are dense per event.
type WaitlistEntry struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	UserID    string    `json:"userId"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pagination describes one page of a filtered result set.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}
