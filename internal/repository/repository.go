// Package repository holds the activity stores: an in-memory store used by
// default and a PostgreSQL store built on pgx.
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
)

// ErrNotFound is returned when the named activity does not exist.
var ErrNotFound = errors.New("activity not found")

// ErrAlreadySignedUp is returned when the email is already on the roster.
var ErrAlreadySignedUp = errors.New("student is already signed up for this activity")

// ErrNotRegistered is returned when unregistering an email that is not on the roster.
var ErrNotRegistered = errors.New("student is not registered for this activity")

// ErrActivityFull is returned when capacity is enforced and the roster is full.
var ErrActivityFull = errors.New("activity is full")

// ActivityStore owns the activity catalog and its rosters.
type ActivityStore interface {
	// List returns a snapshot of every activity keyed by name.
	List(ctx context.Context) (model.Catalog, error)
	// AddParticipant appends email to the roster. When enforceCapacity is
	// set, a full roster yields ErrActivityFull.
	AddParticipant(ctx context.Context, activity, email string, enforceCapacity bool) error
	// RemoveParticipant deletes email from the roster, keeping the order of
	// the remaining participants.
	RemoveParticipant(ctx context.Context, activity, email string) error
}
