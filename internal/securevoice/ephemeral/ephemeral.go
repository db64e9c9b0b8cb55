// Package ephemeral holds short-lived records (registration OTPs, sign-up
// sessions, login sessions) with time based expiry.
//
// Expired entries may remain readable until the next Sweep. Callers that care
// about the exact deadline check the expiry stored inside their record.
package ephemeral

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no entry exists for the key.
var ErrNotFound = errors.New("ephemeral: not found")

// Store is a keyed, typed, expiring record store.
type Store[T any] interface {
	// Put inserts or replaces the entry for key. It expires ttl from now.
	Put(ctx context.Context, key string, value T, ttl time.Duration) error

	// Get returns a copy of the entry for key or ErrNotFound.
	Get(ctx context.Context, key string) (T, error)

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Sweep removes entries whose expiry is at or before now and reports how
	// many were removed.
	Sweep(ctx context.Context, now time.Time) (int, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
