package shelflife

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	expiry    time.Time
	arrival   time.Time
	reference time.Time
	status    Status
}

// Cache memoizes classifications per record. Keys are record identities
// (usually pointers); an entry is reused only while the record's dates and
// the reference day are unchanged.
type Cache[K comparable] struct {
	classifier *Classifier
	entries    *lru.Cache[K, cacheEntry]
}

// NewCache creates a cache holding at most size classifications
func NewCache[K comparable](classifier *Classifier, size int) (*Cache[K], error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier cannot be nil")
	}
	entries, err := lru.New[K, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create classification cache: %w", err)
	}
	return &Cache[K]{classifier: classifier, entries: entries}, nil
}

// Classify returns the cached status for key, recomputing it when the inputs differ
func (c *Cache[K]) Classify(key K, expiry, arrival, reference time.Time) Status {
	if reference.IsZero() {
		reference = c.classifier.now()
	}
	e, a, r := dayOrZero(expiry), dayOrZero(arrival), startOfDay(reference)

	if entry, ok := c.entries.Get(key); ok &&
		entry.expiry.Equal(e) && entry.arrival.Equal(a) && entry.reference.Equal(r) {
		return entry.status
	}

	status := c.classifier.Classify(expiry, arrival, reference)
	c.entries.Add(key, cacheEntry{expiry: e, arrival: a, reference: r, status: status})
	return status
}

// Forget drops the entry for key
func (c *Cache[K]) Forget(key K) {
	c.entries.Remove(key)
}

// Len returns the number of cached classifications
func (c *Cache[K]) Len() int {
	return c.entries.Len()
}

// Purge drops every cached classification
func (c *Cache[K]) Purge() {
	c.entries.Purge()
}

func dayOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return startOfDay(t)
}
