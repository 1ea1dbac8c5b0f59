package geocache

import (
	"container/list"
	"sync"
	"time"

	"github.com/compasshq/compass/geo"
)

// lruTier is the bounded in-process cache tier. Entries expire by TTL and the
// least recently used entry is evicted when capacity is reached.
type lruTier struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	order     *list.List // front = most recently used
	entries   map[string]*list.Element
	evictions uint64
	now       func() time.Time
}

type lruEntry struct {
	key       string
	value     *geo.GeocodeResult
	expiresAt time.Time
}

func newLRUTier(capacity int, ttl time.Duration) *lruTier {
	return &lruTier{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

func (t *lruTier) get(key string) (*geo.GeocodeResult, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	elem, ok := t.entries[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*lruEntry)
	if t.now().After(entry.expiresAt) {
		t.order.Remove(elem)
		delete(t.entries, key)
		return nil, false
	}
	t.order.MoveToFront(elem)
	return entry.value, true
}

// put stores a result with an entry-specific TTL (capped at the tier TTL).
func (t *lruTier) put(key string, value *geo.GeocodeResult, ttl time.Duration) {
	if ttl <= 0 || ttl > t.ttl {
		ttl = t.ttl
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if elem, ok := t.entries[key]; ok {
		entry := elem.Value.(*lruEntry)
		entry.value = value
		entry.expiresAt = t.now().Add(ttl)
		t.order.MoveToFront(elem)
		return
	}

	if t.order.Len() >= t.capacity {
		oldest := t.order.Back()
		if oldest != nil {
			t.order.Remove(oldest)
			delete(t.entries, oldest.Value.(*lruEntry).key)
			t.evictions++
		}
	}

	t.entries[key] = t.order.PushFront(&lruEntry{
		key:       key,
		value:     value,
		expiresAt: t.now().Add(ttl),
	})
}

func (t *lruTier) remove(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if elem, ok := t.entries[key]; ok {
		t.order.Remove(elem)
		delete(t.entries, key)
	}
}

func (t *lruTier) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.order.Init()
	t.entries = make(map[string]*list.Element, t.capacity)
}

func (t *lruTier) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.order.Len()
}

func (t *lruTier) evicted() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.evictions
}
