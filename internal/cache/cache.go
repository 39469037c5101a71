// Package cache keeps recently synthesized audio in memory. Completion
// notices repeat the same few phrases, and a cache hit skips a subprocess
// round-trip through the synthesis runtime.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// ErrItemTooLarge is returned when a single payload exceeds the cache
// capacity and could never be stored.
var ErrItemTooLarge = errors.New("item larger than cache capacity")

// Stats reports cache effectiveness.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int64
	Capacity  int64
	ItemCount int
}

// AudioCache is an LRU cache of synthesized audio keyed by utterance. Safe
// for concurrent use.
type AudioCache struct {
	mu       sync.Mutex
	capacity int64
	size     int64
	items    map[string]*list.Element
	order    *list.List

	hits, misses, evictions int64
}

type entry struct {
	key     string
	audio   []byte
	addedAt time.Time
}

// New creates a cache holding up to capacity bytes of audio.
func New(capacity int64) *AudioCache {
	return &AudioCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Key derives the cache key for one synthesis request. Voice and engine are
// part of the key; the same text in a different voice is different audio.
func Key(engine, voice, text string) string {
	sum := sha256.Sum256([]byte(engine + "\x00" + voice + "\x00" + text))
	return hex.EncodeToString(sum[:16])
}

// Get returns the cached audio for key, if present.
func (c *AudioCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.order.MoveToFront(elem)
	c.hits++
	return elem.Value.(*entry).audio, true
}

// Put stores audio under key, evicting least recently used entries to stay
// within capacity.
func (c *AudioCache) Put(key string, audio []byte) error {
	size := int64(len(audio))
	if size > c.capacity {
		return ErrItemTooLarge
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry)
		c.size += size - int64(len(e.audio))
		e.audio = audio
		e.addedAt = time.Now()
		c.order.MoveToFront(elem)
		// A grown entry can push the cache over capacity just like an insert.
		for c.size > c.capacity && c.order.Len() > 1 {
			c.evictOldest()
		}
		return nil
	}

	for c.size+size > c.capacity && c.order.Len() > 0 {
		c.evictOldest()
	}

	c.items[key] = c.order.PushFront(&entry{key: key, audio: audio, addedAt: time.Now()})
	c.size += size
	return nil
}

// Prune drops entries older than maxAge and reports how many were removed.
func (c *AudioCache) Prune(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	pruned := 0
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry).addedAt.Before(cutoff) {
			c.remove(elem)
			pruned++
		}
		elem = prev
	}
	return pruned
}

// Stats returns a snapshot of cache counters.
func (c *AudioCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.size,
		Capacity:  c.capacity,
		ItemCount: len(c.items),
	}
}

func (c *AudioCache) evictOldest() {
	if elem := c.order.Back(); elem != nil {
		c.remove(elem)
		c.evictions++
	}
}

func (c *AudioCache) remove(elem *list.Element) {
	e := elem.Value.(*entry)
	c.order.Remove(elem)
	delete(c.items, e.key)
	c.size -= int64(len(e.audio))
}
