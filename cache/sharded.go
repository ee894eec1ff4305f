// Package cache provides a small sharded LRU cache.
//
// The engine uses it for Gaussian kernels (keyed by radius) and other
// per-frame lookups that must stay allocation-free on the hit path.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// Configuration constants.
const (
	// shardCount is the number of independently locked shards. Power of 2
	// so shard selection is a bitwise AND.
	shardCount = 8

	// shardMask selects a shard from a hash.
	shardMask = shardCount - 1

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 64
)

// Hasher computes the shard-selection hash for a key.
type Hasher[K any] func(K) uint64

// IntHasher hashes an int key with FNV-1a.
func IntHasher(i int) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for b := 0; b < 8; b++ {
		buf[b] = byte(i >> (8 * b))
	}
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// StringHasher hashes a string key with FNV-1a.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Sharded is a thread-safe LRU cache split into shards to reduce lock
// contention. Values are stored as-is, not copied; callers must not
// mutate a value after caching it.
type Sharded[K comparable, V any] struct {
	shards   [shardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits   atomic.Uint64
	misses atomic.Uint64
}

// shard is one lock domain of the cache. Entries carry their position in
// a doubly linked recency list; the oldest entry is evicted at capacity.
type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	head    *entry[K, V] // most recently used
	tail    *entry[K, V] // least recently used
	size    int
}

type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// NewSharded creates a cache with the given per-shard capacity. If
// capacity <= 0, DefaultCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{entries: make(map[K]*entry[K, V])}
	}
	return c
}

// Get retrieves a cached value, refreshing its recency on a hit.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shards[c.hasher(key)&shardMask]

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.moveToFront(e)
	v := e.value
	s.mu.Unlock()

	c.hits.Add(1)
	return v, true
}

// Set stores a value, evicting the least recently used entry when the
// shard is full.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.shards[c.hasher(key)&shardMask]

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.value = value
		s.moveToFront(e)
		return
	}
	s.insert(key, value, c.capacity)
}

// GetOrCreate returns the cached value for key, calling create to fill a
// miss. create runs with the shard lock held, so a given key is computed
// once; keep it fast.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() V) V {
	s := c.shards[c.hasher(key)&shardMask]

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.moveToFront(e)
		c.hits.Add(1)
		return e.value
	}

	c.misses.Add(1)
	v := create()
	s.insert(key, v, c.capacity)
	return v
}

// Len returns the total number of cached entries.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.Lock()
		n += s.size
		s.mu.Unlock()
	}
	return n
}

// Stats returns the cumulative hit and miss counts.
func (c *Sharded[K, V]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// insert adds a new entry at the recency front, evicting from the tail at
// capacity. Caller holds the shard lock.
func (s *shard[K, V]) insert(key K, value V, capacity int) {
	for s.size >= capacity && s.tail != nil {
		old := s.tail
		s.unlink(old)
		delete(s.entries, old.key)
		s.size--
	}

	e := &entry[K, V]{key: key, value: value}
	s.entries[key] = e
	s.pushFront(e)
	s.size++
}

func (s *shard[K, V]) moveToFront(e *entry[K, V]) {
	if s.head == e {
		return
	}
	s.unlink(e)
	s.pushFront(e)
}

func (s *shard[K, V]) pushFront(e *entry[K, V]) {
	e.prev = nil
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *shard[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else if s.head == e {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else if s.tail == e {
		s.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
