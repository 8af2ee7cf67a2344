package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/tally/pkg/metrics"
)

// MemoryStore is the in-memory Store implementation. A single RWMutex
// guards the map; operations are O(1) and never block on I/O, so no
// finer-grained locking is warranted.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]int64
	newID func() string
}

// NewMemoryStore creates an empty store. Identifiers are canonical
// random UUID strings unless overridden via WithIDFunc.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:  make(map[string]int64),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert generates a fresh identifier, records the points under it, and
// returns the identifier. On the astronomically unlikely collision it
// regenerates rather than overwrite an existing record.
func (s *MemoryStore) Insert(_ context.Context, points int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for {
		if _, taken := s.byID[id]; !taken {
			break
		}
		id = s.newID()
	}
	s.byID[id] = points

	metrics.UpdateStoredReceipts(len(s.byID))
	return id, nil
}

// Points returns the total stored for id, or ErrNotFound.
func (s *MemoryStore) Points(_ context.Context, id string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pts, ok := s.byID[id]
	if !ok {
		return 0, ErrNotFound
	}
	return pts, nil
}

// Count returns the number of stored receipts.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
