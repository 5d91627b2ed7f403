package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/journal-portal/internal/models"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// Authenticator is the part of the journal API the session needs.
type Authenticator interface {
	Login(ctx context.Context, role models.Role, form interface{}) (*models.LoginResponse, error)
	Verify(ctx context.Context, token string) error
}

// Subscriber observes every session mutation.
type Subscriber func(State)

// Options tunes a Store.
type Options struct {
	// FallbackTTL bounds persisted keys when the token carries no usable exp claim.
	FallbackTTL time.Duration
	Now         func() time.Time
}

// Store is the single source of truth for who is signed in on one client instance.
type Store struct {
	clientID  string
	storage   Storage
	auth      Authenticator
	validator *validator.Validate
	logger    *zap.Logger
	opts      Options

	mu          sync.RWMutex
	state       State
	generation  uint64
	subscribers []Subscriber
}

// NewStore constructs a signed-out Store for clientID.
func NewStore(clientID string, storage Storage, auth Authenticator, validate *validator.Validate, logger *zap.Logger, opts Options) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FallbackTTL <= 0 {
		opts.FallbackTTL = 24 * time.Hour
	}
	return &Store{
		clientID:  clientID,
		storage:   storage,
		auth:      auth,
		validator: validate,
		logger:    logger.With(zap.String("client_id", clientID)),
		opts:      opts,
	}
}

// ClientID returns the client instance the store belongs to.
func (s *Store) ClientID() string { return s.clientID }

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Subscribe registers fn to be called synchronously after every mutation.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
	idx := len(s.subscribers) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.subscribers) {
			s.subscribers[idx] = nil
		}
	}
}

// Login authenticates with role-specific credentials. A failure leaves the prior state untouched.
func (s *Store) Login(ctx context.Context, role models.Role, creds models.Credentials) (State, error) {
	form, ok := creds.ForRole(role)
	if !ok {
		return s.Snapshot(), appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	if err := s.validator.Struct(form); err != nil {
		return s.Snapshot(), appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	resp, err := s.auth.Login(ctx, role, form)
	if err != nil {
		s.logger.Info("login rejected", zap.String("role", string(role)), zap.Error(err))
		return s.Snapshot(), err
	}
	if resp.Token == "" || !resp.User.Role.Valid() {
		return s.Snapshot(), appErrors.Clone(appErrors.ErrUpstream, "login response is missing token or user")
	}
	identity := resp.User
	if identity.Role != role {
		s.logger.Warn("login role differs from requested role", zap.String("requested", string(role)), zap.String("granted", string(identity.Role)))
	}

	if err := s.persist(ctx, resp.Token, identity); err != nil {
		return s.Snapshot(), err
	}

	s.mutate(func(st *State) {
		*st = State{Identity: &identity, Token: resp.Token}
	})
	s.logger.Info("signed in", zap.String("role", string(identity.Role)), zap.String("user_id", identity.ID))
	return s.Snapshot(), nil
}

// Logout clears persisted and in-memory state. It is idempotent and never fails the caller.
func (s *Store) Logout(ctx context.Context) {
	if err := s.storage.Clear(ctx, s.clientID); err != nil {
		s.logger.Warn("clear persisted session", zap.Error(err))
	}
	s.mutate(func(st *State) { *st = State{} })
}

// Restore adopts persisted state optimistically and re-validates the token with exactly
// one call. A failed validation logs out. A login or logout that lands while the token is
// being validated wins over the validation result.
func (s *Store) Restore(ctx context.Context) error {
	persisted, err := s.storage.Load(ctx, s.clientID)
	if err != nil {
		if errors.Is(err, appErrors.ErrStateMiss) {
			return nil
		}
		return err
	}
	if !persisted.Complete() {
		if !persisted.Empty() {
			s.logger.Info("discarding partial persisted session")
			if err := s.storage.Clear(ctx, s.clientID); err != nil {
				s.logger.Warn("clear partial session", zap.Error(err))
			}
		}
		return nil
	}

	var identity models.Identity
	if err := json.Unmarshal(persisted.User, &identity); err != nil || !identity.Role.Valid() {
		s.logger.Info("discarding unreadable persisted identity")
		s.Logout(ctx)
		return nil
	}

	gen := s.mutate(func(st *State) {
		*st = State{Identity: &identity, Token: persisted.Token, Loading: true}
	})

	if err := s.auth.Verify(ctx, persisted.Token); err != nil {
		if s.currentGeneration() != gen {
			return nil
		}
		s.logger.Info("persisted token rejected", zap.Error(err))
		s.Logout(ctx)
		return nil
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return nil
	}
	s.state.Loading = false
	s.generation++
	snapshot := cloneState(s.state)
	subs := s.activeSubscribers()
	s.mu.Unlock()
	notify(subs, snapshot)
	return nil
}

// UpdateIdentity merges patch into the current identity and re-persists it. The role never changes.
func (s *Store) UpdateIdentity(ctx context.Context, patch models.IdentityPatch) (State, error) {
	if err := s.validator.Struct(patch); err != nil {
		return s.Snapshot(), appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid identity update")
	}
	current := s.Snapshot()
	if !current.IsAuthenticated() {
		return current, appErrors.ErrUnauthorized
	}
	updated := patch.Apply(*current.Identity)
	updated.Role = current.Identity.Role

	if err := s.persist(ctx, current.Token, updated); err != nil {
		return current, err
	}
	s.mutate(func(st *State) {
		if st.Token == current.Token {
			st.Identity = &updated
		}
	})
	return s.Snapshot(), nil
}

// Token returns the bearer token, empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Revoke is the forced logout applied when the journal API rejects the token.
func (s *Store) Revoke(ctx context.Context) {
	s.logger.Info("token rejected upstream, forcing logout")
	s.Logout(ctx)
}

func (s *Store) persist(ctx context.Context, token string, identity models.Identity) error {
	user, err := json.Marshal(identity)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode identity")
	}
	ttl := tokenTTL(token, s.opts.Now(), s.opts.FallbackTTL)
	if err := s.storage.Save(ctx, s.clientID, Persisted{Token: token, User: user}, ttl); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "persist session")
	}
	return nil
}

// mutate applies fn under the lock, then notifies subscribers outside it.
func (s *Store) mutate(fn func(*State)) uint64 {
	s.mu.Lock()
	fn(&s.state)
	s.generation++
	gen := s.generation
	snapshot := cloneState(s.state)
	subs := s.activeSubscribers()
	s.mu.Unlock()
	notify(subs, snapshot)
	return gen
}

func (s *Store) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

func (s *Store) activeSubscribers() []Subscriber {
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		if fn != nil {
			subs = append(subs, fn)
		}
	}
	return subs
}

func notify(subs []Subscriber, state State) {
	for _, fn := range subs {
		fn(state)
	}
}

func cloneState(st State) State {
	if st.Identity != nil {
		identity := *st.Identity
		st.Identity = &identity
	}
	return st
}
