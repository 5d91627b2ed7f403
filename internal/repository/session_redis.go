package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/journal-portal/internal/session"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// RedisSessionRepository keeps the persisted client state in two Redis keys per client
// instance, mirroring the token and user entries of the browser store it replaces.
type RedisSessionRepository struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisSessionRepository constructs the repository.
func NewRedisSessionRepository(client *redis.Client, prefix string, logger *zap.Logger) *RedisSessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = "journal-portal"
	}
	return &RedisSessionRepository{client: client, prefix: prefix, logger: logger}
}

// TokenKey returns the token key for a client instance.
func (r *RedisSessionRepository) TokenKey(clientID string) string {
	return fmt.Sprintf("%s:client:%s:token", r.prefix, clientID)
}

// UserKey returns the identity key for a client instance.
func (r *RedisSessionRepository) UserKey(clientID string) string {
	return fmt.Sprintf("%s:client:%s:user", r.prefix, clientID)
}

// Load reads both keys. A half-written pair is returned as is; the session store decides.
func (r *RedisSessionRepository) Load(ctx context.Context, clientID string) (session.Persisted, error) {
	if r.client == nil {
		return session.Persisted{}, appErrors.ErrStateMiss
	}
	values, err := r.client.MGet(ctx, r.TokenKey(clientID), r.UserKey(clientID)).Result()
	if err != nil {
		return session.Persisted{}, fmt.Errorf("redis mget client %s: %w", clientID, err)
	}
	state := session.Persisted{
		Token: stringValue(values, 0),
		User:  []byte(stringValue(values, 1)),
	}
	if len(state.User) == 0 {
		state.User = nil
	}
	if state.Empty() {
		return session.Persisted{}, appErrors.ErrStateMiss
	}
	return state, nil
}

// Save writes both keys atomically.
func (r *RedisSessionRepository) Save(ctx context.Context, clientID string, state session.Persisted, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	if ttl < 0 {
		ttl = 0
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.TokenKey(clientID), state.Token, ttl)
	pipe.Set(ctx, r.UserKey(clientID), state.User, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save client %s: %w", clientID, err)
	}
	return nil
}

// Clear removes both keys.
func (r *RedisSessionRepository) Clear(ctx context.Context, clientID string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, r.TokenKey(clientID), r.UserKey(clientID)).Err(); err != nil {
		return fmt.Errorf("redis delete client %s: %w", clientID, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *RedisSessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

func stringValue(values []interface{}, i int) string {
	if i >= len(values) {
		return ""
	}
	s, _ := values[i].(string)
	return s
}
