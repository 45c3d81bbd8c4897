package session

import (
	"context"
	"sync"
	"time"
)

type memoEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is the single-process Store used when no Redis URL is
// configured. Callers always get copies, never the stored session.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*Session
	memos    map[string]memoEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
		memos:    make(map[string]memoEntry),
	}
}

// WithClock replaces the time source, for tests.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) expired(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !m.expired(s) {
		return s.Clone(), nil
	}

	// A Save may have landed since the read lock was released.
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	if m.expired(cur) {
		delete(m.sessions, id)
		return nil, nil
	}
	return cur.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	s.UpdatedAt = m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Remember(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memos[key] = memoEntry{value: value, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Reserve(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if e, ok := m.memos[key]; ok && !now.After(e.expiresAt) {
		return false, nil
	}
	m.memos[key] = memoEntry{value: value, expiresAt: now.Add(ttl)}
	return true, nil
}

func (m *MemoryStore) Forget(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.memos, key)
	return nil
}

func (m *MemoryStore) Recall(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.memos[key]
	if !ok || m.now().After(e.expiresAt) {
		return "", nil
	}
	return e.value, nil
}

// Sweep drops expired sessions and memos.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			removed++
		}
	}
	now := m.now()
	for k, e := range m.memos {
		if now.After(e.expiresAt) {
			delete(m.memos, k)
		}
	}
	return removed
}
