// Package identity resolves chat user ids to display names.
package identity

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LookupFunc fetches the display name for a user id.
type LookupFunc func(ctx context.Context, userID string) (string, error)

// Cache memoizes lookups for one formatting pass. Each id is looked up at
// most once, even under concurrent Resolve calls; a failed or empty lookup
// caches the raw id so it is not retried within the pass.
//
// A Cache must not be shared between passes. Build one with NewCache per batch.
type Cache struct {
	mu    sync.Mutex
	names map[string]string
	group singleflight.Group
}

func NewCache() *Cache {
	return &Cache{names: make(map[string]string)}
}

// Resolve never fails: on lookup error it returns userID.
func (c *Cache) Resolve(ctx context.Context, userID string, lookup LookupFunc) string {
	if name, ok := c.cached(userID); ok {
		return name
	}

	v, _, _ := c.group.Do(userID, func() (any, error) {
		// A flight for this id may have finished between the check above and Do.
		if name, ok := c.cached(userID); ok {
			return name, nil
		}

		name, err := lookup(ctx, userID)
		if err != nil {
			slog.DebugContext(ctx, "user lookup failed, using raw id",
				"user_id", userID,
				"error", err)
			name = userID
		} else if name == "" {
			name = userID
		}

		c.mu.Lock()
		c.names[userID] = name
		c.mu.Unlock()
		return name, nil
	})

	return v.(string)
}

// Len reports how many ids have been resolved so far.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}

func (c *Cache) cached(userID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.names[userID]
	return name, ok
}
