package ports

import "context"

// IdempotencyStore remembers which member a client request key created.
type IdempotencyStore interface {
	// Reserve claims key for a new request. When the key is already taken it
	// returns the member id stored for it, or "" while the request holding it
	// has not finished.
	Reserve(ctx context.Context, key string) (reserved bool, socioID string, err error)
	// Remember replaces a reservation with the member it created.
	Remember(ctx context.Context, key, socioID string) error
	// Release frees a reservation whose request failed.
	Release(ctx context.Context, key string) error
}
