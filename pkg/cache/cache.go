// Package cache holds the server-side response cache and rate limiter as
// explicit value objects. All state is instance-scoped; nothing here lives in
// package-level mutable globals.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/termopark/finboard/pkg/service"
)

type entry struct {
	report   *service.Report
	storedAt time.Time
}

// Cache is a TTL response cache keyed by query shape.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// New creates a cache with the given entry lifetime.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Key derives the cache key for one query shape.
func Key(unit, from, to string, breakfast bool) string {
	if unit == "" {
		unit = "all"
	}
	if from == "" {
		from = "all"
	}
	if to == "" {
		to = "all"
	}
	return fmt.Sprintf("%s-%s-%s-%t", unit, from, to, breakfast)
}

// Get returns a fresh entry, evicting it when expired.
func (c *Cache) Get(key string) (*service.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.report, true
}

// GetStale returns an entry regardless of age. Used when the upstream source
// fails and a stale answer beats no answer.
func (c *Cache) GetStale(key string) (*service.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.report, true
}

// Put stores a report under the key.
func (c *Cache) Put(key string, report *service.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{report: report, storedAt: c.now()}
}

// Bucket is a token-bucket rate limiter guarding the upstream quota: each
// allowed request consumes one token, tokens refill continuously.
type Bucket struct {
	mu       sync.Mutex
	capacity float64
	tokens   float64
	perSec   float64
	last     time.Time
	now      func() time.Time
}

// NewBucket creates a full bucket of the given capacity refilling at perSec
// tokens per second.
func NewBucket(capacity int, perSec float64) *Bucket {
	b := &Bucket{
		capacity: float64(capacity),
		tokens:   float64(capacity),
		perSec:   perSec,
		now:      time.Now,
	}
	b.last = b.now()
	return b
}

// Allow consumes one token when available.
func (b *Bucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.tokens += now.Sub(b.last).Seconds() * b.perSec
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
