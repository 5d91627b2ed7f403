package session

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// Persisted holds the two persisted keys of a client instance. Either may be missing.
type Persisted struct {
	Token string
	User  []byte
}

// Complete reports whether both keys are present.
func (p Persisted) Complete() bool {
	return p.Token != "" && len(p.User) > 0
}

// Empty reports whether neither key is present.
func (p Persisted) Empty() bool {
	return p.Token == "" && len(p.User) == 0
}

// Storage persists the token and user keys of client instances.
// Load returns appErrors.ErrStateMiss when nothing is stored.
type Storage interface {
	Load(ctx context.Context, clientID string) (Persisted, error)
	Save(ctx context.Context, clientID string, state Persisted, ttl time.Duration) error
	Clear(ctx context.Context, clientID string) error
}

type memoryEntry struct {
	state     Persisted
	expiresAt time.Time
}

// MemoryStorage keeps persisted state in process memory. It backs tests and single-node development.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStorage constructs an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]memoryEntry), now: time.Now}
}

// Load implements Storage.
func (m *MemoryStorage) Load(_ context.Context, clientID string) (Persisted, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[clientID]
	if !ok {
		return Persisted{}, appErrors.ErrStateMiss
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		delete(m.entries, clientID)
		return Persisted{}, appErrors.ErrStateMiss
	}
	return entry.state, nil
}

// Save implements Storage. A non-positive ttl never expires.
func (m *MemoryStorage) Save(_ context.Context, clientID string, state Persisted, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memoryEntry{state: state}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.entries[clientID] = entry
	return nil
}

// Clear implements Storage.
func (m *MemoryStorage) Clear(_ context.Context, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, clientID)
	return nil
}
