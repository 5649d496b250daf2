// Package repository implements all database queries for the campus event
// platform. It uses pgx directly (no ORM) for transparency and
// performance, with goqu composing the dynamic SQL.
package repository

import (
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when registering an account with an email
// that is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrAlreadyRegistered is returned when the same user registers twice for
// an event (including holding a waitlist spot).
var ErrAlreadyRegistered = errors.New("already registered for this event")

// ErrNotRegistered is returned when cancelling a registration that does
// not exist.
var ErrNotRegistered = errors.New("not registered for this event")

// ErrEventNotOpen is returned when registering for an event that is not
// published.
var ErrEventNotOpen = errors.New("event is not open for registration")

var pg = goqu.Dialect("postgres")
