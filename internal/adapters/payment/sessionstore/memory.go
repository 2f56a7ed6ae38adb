package sessionstore

import (
	"context"
	"sync"
	"time"

	"eventregistration/internal/domain"
)

type memoryEntry struct {
	md        domain.SessionMetadata
	expiresAt time.Time
}

// MemoryStore is a process-local metadata store for single-instance deployments
// and tests. Expired entries are dropped lazily on Load.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns an in-memory store. A ttl of zero keeps entries forever.
func NewMemory(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, md domain.SessionMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{md: md}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[sessionID] = entry
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*domain.SessionMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, sessionID)
		return nil, domain.ErrNotFound
	}
	md := entry.md
	return &md, nil
}
