// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"errors"
	"strings"
)

// ErrInvalidCredentials is returned for a failed login, without revealing
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrAccountDeactivated is returned when a deactivated account attempts
// to log in.
var ErrAccountDeactivated = errors.New("account is deactivated")

// ErrOrganizerNotApproved is returned when an organizer logs in before an
// admin approved the account.
var ErrOrganizerNotApproved = errors.New("organizer account is pending approval")

// ErrForbidden is returned when the acting user may not perform the
// operation on the target resource.
var ErrForbidden = errors.New("insufficient permissions")

// ErrInvalidTransition is returned for a lifecycle change the event's
// current status does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
