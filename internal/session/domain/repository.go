package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("session_not_found")
)

// Store owns the session registry: the table of sessions keyed by integer id
// and the single id counter. Implementations serialize their own access;
// handlers run concurrently.
type Store interface {
	// Create registers a new active session with the next id. An empty
	// vehicleID gets the generated placeholder.
	Create(ctx context.Context, vehicleID string, entryTime time.Time) (Session, error)

	// Get returns a stored session or ErrNotFound.
	Get(ctx context.Context, id int64) (Session, error)

	// Complete stamps the exit time and flips the status to COMPLETED. The
	// transition happens exactly once: an already-completed session is
	// returned unchanged.
	Complete(ctx context.Context, id int64, exitTime time.Time) (Session, error)

	// ListAll returns every stored session, active and completed, in
	// insertion order.
	ListAll(ctx context.Context) ([]Session, error)

	// Clear empties the registry and resets the id counter to 1.
	Clear(ctx context.Context) error
}
