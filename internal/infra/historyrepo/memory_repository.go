package historyrepo

import (
	"context"
	"sync"

	"github.com/darkroompro/devcalc/internal/domain/history"
)

const defaultCapacity = 1000

// MemoryRepository keeps the most recent entries in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	entries  []history.Entry
	capacity int
}

// NewMemoryRepository constructs an in-memory repository holding at most
// capacity entries; older entries are dropped first.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

// Append implements history.Repository.
func (r *MemoryRepository) Append(_ context.Context, entry history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	if overflow := len(r.entries) - r.capacity; overflow > 0 {
		r.entries = append([]history.Entry(nil), r.entries[overflow:]...)
	}
	return nil
}

// Recent implements history.Repository.
func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]history.Entry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

var _ history.Repository = (*MemoryRepository)(nil)
