package store

import (
	"sync"
	"time"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"
)

type entry struct {
	data     aqi.PredictionData
	storedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory prediction cache with retention
// by entry count and age.
type MemoryStore struct {
	mu sync.RWMutex

	data  map[string]entry
	order []string // insertion order, oldest first

	maxEntries int           // max cached payloads (0 = unlimited)
	maxAge     time.Duration // max age of a cached payload (0 = unlimited)
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries is <= 0, it is treated as unlimited.
func NewMemoryStore(maxEntries int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]entry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
	}
}

// Get returns the cached payload for key, if present and fresh.
func (s *MemoryStore) Get(key string) (aqi.PredictionData, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return aqi.PredictionData{}, false
	}
	if s.maxAge > 0 && time.Since(e.storedAt) > s.maxAge {
		// Stale entries stay in place until the next Put overwrites them;
		// the count-based eviction bounds their number.
		return aqi.PredictionData{}, false
	}
	return e.data, true
}

// Put caches a payload under key and enforces retention by count.
func (s *MemoryStore) Put(key string, data aqi.PredictionData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; !exists {
		s.order = append(s.order, key)
	}
	s.data[key] = entry{data: data, storedAt: time.Now()}

	// Enforce retention by count, oldest insertions first.
	for s.maxEntries > 0 && len(s.order) > s.maxEntries {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.data, oldest)
	}
}

// Len reports the number of cached payloads.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
