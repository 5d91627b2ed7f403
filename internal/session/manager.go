package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ManagerOptions configures the lifecycle of client-instance stores.
type ManagerOptions struct {
	Store Options
	// RestoreTimeout bounds the single verification call made on first touch.
	RestoreTimeout time.Duration
	// OnTeardown runs after a client instance's store is dropped.
	OnTeardown func(clientID string)
}

type managedStore struct {
	store    *Store
	lastSeen time.Time
}

// Manager owns one Store per client instance. It is built once at the composition root.
type Manager struct {
	storage   Storage
	auth      Authenticator
	validator *validator.Validate
	logger    *zap.Logger
	opts      ManagerOptions

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	stores map[string]*managedStore
}

// NewManager initialises the session lifecycle.
func NewManager(storage Storage, auth Authenticator, validate *validator.Validate, logger *zap.Logger, opts ManagerOptions) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if opts.RestoreTimeout <= 0 {
		opts.RestoreTimeout = 10 * time.Second
	}
	if opts.Store.Now == nil {
		opts.Store.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		storage:   storage,
		auth:      auth,
		validator: validate,
		logger:    logger,
		opts:      opts,
		ctx:       ctx,
		cancel:    cancel,
		stores:    make(map[string]*managedStore),
	}
}

// Get returns the store of clientID. The first touch of a client instance starts
// restoring its persisted session in the background; until that finishes the store
// reports Loading.
func (m *Manager) Get(clientID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.stores[clientID]; ok {
		entry.lastSeen = m.opts.Store.Now()
		return entry.store
	}

	store := NewStore(clientID, m.storage, m.auth, m.validator, m.logger, m.opts.Store)
	m.stores[clientID] = &managedStore{store: store, lastSeen: m.opts.Store.Now()}

	store.mu.Lock()
	store.state.Loading = true
	store.mu.Unlock()

	m.wg.Add(1)
	go m.restore(store)
	return store
}

func (m *Manager) restore(store *Store) {
	defer m.wg.Done()
	ctx, cancel := context.WithTimeout(m.ctx, m.opts.RestoreTimeout)
	defer cancel()

	err := store.Restore(ctx)

	// Nothing persisted or the restore bailed before adopting: leave the transitional state.
	store.mu.Lock()
	stillLoading := store.state.Loading && store.state.Identity == nil
	store.mu.Unlock()
	if stillLoading {
		store.mutate(func(st *State) { st.Loading = false })
	}
	if err != nil {
		m.logger.Warn("restore session", zap.String("client_id", store.ClientID()), zap.Error(err))
	}
}

// Teardown drops the in-memory store of clientID. Persisted state is left alone.
func (m *Manager) Teardown(clientID string) {
	m.mu.Lock()
	_, ok := m.stores[clientID]
	delete(m.stores, clientID)
	m.mu.Unlock()
	if ok {
		m.tornDown(clientID)
	}
}

// Sweep tears down stores not touched within idle and returns how many were dropped.
func (m *Manager) Sweep(idle time.Duration) int {
	cutoff := m.opts.Store.Now().Add(-idle)
	m.mu.Lock()
	var dropped []string
	for id, entry := range m.stores {
		if entry.lastSeen.Before(cutoff) {
			delete(m.stores, id)
			dropped = append(dropped, id)
		}
	}
	m.mu.Unlock()
	for _, id := range dropped {
		m.tornDown(id)
	}
	return len(dropped)
}

func (m *Manager) tornDown(clientID string) {
	if m.opts.OnTeardown != nil {
		m.opts.OnTeardown(clientID)
	}
}

// Run sweeps idle stores every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(idle); n > 0 {
				m.logger.Debug("swept idle client instances", zap.Int("count", n))
			}
		}
	}
}

// Active returns the number of live client instances.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

// Authenticated returns the number of live client instances with a signed-in user.
func (m *Manager) Authenticated() int {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, entry := range m.stores {
		stores = append(stores, entry.store)
	}
	m.mu.Unlock()

	count := 0
	for _, s := range stores {
		if s.Snapshot().IsAuthenticated() {
			count++
		}
	}
	return count
}

// Close cancels pending restores and waits for them to finish.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}
