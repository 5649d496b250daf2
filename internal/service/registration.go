package service

import (
	"context"
	"fmt"

	"github.com/campusevents/backend/internal/model"
)

// RegistrationStore is the slice of the registration repository the
// service needs. The store owns all counter mutations; the service only
// validates and delegates.
type RegistrationStore interface {
	Register(ctx context.Context, eventID, userID string) (*model.Registration, *model.WaitlistEntry, error)
	Cancel(ctx context.Context, eventID, userID string) error
}

// RegistrationService handles signing up for and leaving events.
type RegistrationService struct {
	registrations RegistrationStore
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(registrations RegistrationStore) *RegistrationService {
	return &RegistrationService{registrations: registrations}
}

// Register books a seat for the user, falling back to the waitlist when
// the event is full. Exactly one of the returned values is non-nil on
// success.
func (s *RegistrationService) Register(ctx context.Context, eventID, userID string) (*model.Registration, *model.WaitlistEntry, error) {
	if eventID == "" {
		return nil, nil, fmt.Errorf("event id is required")
	}
	return s.registrations.Register(ctx, eventID, userID)
}

// Cancel releases the user's seat or waitlist spot.
func (s *RegistrationService) Cancel(ctx context.Context, eventID, userID string) error {
	if eventID == "" {
		return fmt.Errorf("event id is required")
	}
	return s.registrations.Cancel(ctx, eventID, userID)
}
