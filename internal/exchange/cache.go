package exchange

import (
	"container/list"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// RateCache is an in-memory, size-bounded, time-bounded cache of historical
// exchange rates keyed by (date, from, to). Rates for a past calendar date
// never change, so the freshness window exists only to bound memory growth of
// a long-running process, not for correctness. Entries leave the cache either
// by being read past the freshness window or by insertion-order eviction at
// capacity. The cache itself cannot fail; absence is a valid result.
//
// Eviction is explicit FIFO (map plus insertion-order queue) rather than map
// iteration order, which is not guaranteed to be insertion-ordered.
type RateCache struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	entries    map[string]*rateEntry
	order      *list.List // of cache keys, oldest inserted at front

	now func() time.Time
}

type rateEntry struct {
	rate      decimal.Decimal
	fetchedAt time.Time
	elem      *list.Element
}

// NewRateCache creates a RateCache bounded to maxEntries entries, treating
// entries older than ttl as absent on read.
func NewRateCache(maxEntries int, ttl time.Duration) *RateCache {
	return &RateCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[string]*rateEntry),
		order:      list.New(),
		now:        time.Now,
	}
}

func cacheKey(date, from, to string) string {
	return date + ":" + from + ":" + to
}

// Get returns the cached rate for (date, from, to) if present and not older
// than the freshness window. A stale entry is reported as a miss but left in
// place; the next successful fetch overwrites it.
func (c *RateCache) Get(date, from, to string) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cacheKey(date, from, to)]
	if !ok {
		return decimal.Decimal{}, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		return decimal.Decimal{}, false
	}
	return entry.rate, true
}

// Put inserts or overwrites the rate for (date, from, to), stamping the
// current fetch time. Inserting a new key at capacity first evicts exactly
// the earliest-inserted entry. Overwriting an existing key keeps its queue
// position; values for a given key are expected to be identical anyway.
func (c *RateCache) Put(date, from, to string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(date, from, to)
	if entry, ok := c.entries[key]; ok {
		entry.rate = rate
		entry.fetchedAt = c.now()
		return
	}

	if len(c.entries) >= c.maxEntries {
		if oldest := c.order.Front(); oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(string))
		}
	}

	c.entries[key] = &rateEntry{
		rate:      rate,
		fetchedAt: c.now(),
		elem:      c.order.PushBack(key),
	}
}

// Len reports the number of entries physically present, stale ones included.
func (c *RateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
