// Package catalog resolves extracted (code, description) pairs to canonical
// product identities using a layered match strategy over a cached product
// catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrUnavailable marks a failed catalog load. Resolution degrades to an
// error-kind match instead of failing the pipeline.
var ErrUnavailable = errors.New("catalog unavailable")

// Entry is one catalog row. Reverse lookup is one-to-many over descriptions,
// so entries keep their load order for deterministic tie-breaking.
type Entry struct {
	Code        string
	Description string
}

// Source loads catalog entries from a backing store.
type Source interface {
	LoadEntries(ctx context.Context) ([]Entry, error)
}

// Catalog is a time-expiring snapshot of the product catalog. It is loaded
// before a batch begins and treated as read-only for the batch's duration;
// the only runtime mutation is the reload inside a resolution call.
type Catalog struct {
	source Source
	ttl    time.Duration

	mu       sync.Mutex
	entries  []Entry
	byCode   map[string]string
	loadedAt time.Time
}

// New creates a catalog over the given source. A zero ttl means the snapshot
// never goes stale on its own.
func New(source Source, ttl time.Duration) *Catalog {
	return &Catalog{source: source, ttl: ttl}
}

// RefreshIfStale reloads the snapshot when it has expired or was never
// loaded.
func (c *Catalog) RefreshIfStale(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.byCode != nil && (c.ttl == 0 || time.Since(c.loadedAt) < c.ttl) {
		return nil
	}
	return c.reloadLocked(ctx)
}

// Refresh reloads the snapshot unconditionally.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reloadLocked(ctx)
}

func (c *Catalog) reloadLocked(ctx context.Context) error {
	entries, err := c.source.LoadEntries(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	byCode := make(map[string]string, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e.Description
	}
	c.entries = entries
	c.byCode = byCode
	c.loadedAt = time.Now()
	return nil
}

// Lookup returns the description for an exact code.
func (c *Catalog) Lookup(code string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	desc, ok := c.byCode[code]
	return desc, ok
}

// Entries returns the current snapshot in load order.
func (c *Catalog) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries
}
