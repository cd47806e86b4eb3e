package prefstore

import (
	"context"
	"sync"
	"time"

	"github.com/darkroompro/devcalc/internal/domain/preferences"
)

type entry struct {
	payload   preferences.Preferences
	expiresAt time.Time
}

// MemoryStore keeps preferences in process memory for tests/dev.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// Get implements preferences.Store.
func (s *MemoryStore) Get(_ context.Context, profile string) (preferences.Preferences, bool, error) {
	s.mu.RLock()
	record, ok := s.items[profile]
	s.mu.RUnlock()
	if !ok {
		return preferences.Preferences{}, false, nil
	}
	if s.hasExpired(record.expiresAt) {
		s.mu.Lock()
		// A Save may have landed between the two locks.
		if current, ok := s.items[profile]; ok && s.hasExpired(current.expiresAt) {
			delete(s.items, profile)
		}
		s.mu.Unlock()
		return preferences.Preferences{}, false, nil
	}
	return record.payload, true, nil
}

// Save stores the preferences with an optional TTL.
func (s *MemoryStore) Save(_ context.Context, prefs preferences.Preferences, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.items[prefs.Profile] = entry{payload: prefs, expiresAt: exp}
	return nil
}

func (s *MemoryStore) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ preferences.Store = (*MemoryStore)(nil)
