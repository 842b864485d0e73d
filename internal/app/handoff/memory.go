package handoff

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gatherly/internal/pkg/logx"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore keeps sessions in process memory; nothing survives a restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a store whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put implements Store.
func (m *MemoryStore) Put(ctx context.Context, tabID string, session *MeetingSession) error {
	data, err := encode(session)
	if err != nil {
		return fmt.Errorf("encode meeting session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[storageKey(tabID)] = memoryEntry{data: data, expires: m.now().Add(m.ttl)}
	return nil
}

// Take implements Store.
func (m *MemoryStore) Take(ctx context.Context, tabID string) (*MeetingSession, error) {
	key := storageKey(tabID)

	m.mu.Lock()
	entry, ok := m.entries[key]
	delete(m.entries, key)
	m.mu.Unlock()

	if !ok || m.now().After(entry.expires) {
		return nil, ErrEmpty
	}

	session, err := decode(entry.data)
	if err != nil {
		return nil, fmt.Errorf("decode meeting session: %w", err)
	}
	return session, nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(ctx context.Context, tabID string) error {
	m.mu.Lock()
	delete(m.entries, storageKey(tabID))
	m.mu.Unlock()
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, entry := range m.entries {
		if now.After(entry.expires) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx ends.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.Sweep(); removed > 0 {
				logx.Debug("Handoff sweep finished", "removed", removed)
			}
		}
	}
}
