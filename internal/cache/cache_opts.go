package cache

import "github.com/pixil98/go-worldsync/internal/placement"

type CacheOpt func(*Cache)

// WithPlacement sets the collaborator told to cancel placement when a
// structure placed by the local identity arrives.
func WithPlacement(p placement.Canceler) CacheOpt {
	return func(c *Cache) {
		c.placement = p
	}
}
