package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/journal-portal/internal/session"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

const clientStateSchema = `CREATE TABLE IF NOT EXISTS client_state (
    client_id TEXT PRIMARY KEY,
    token TEXT,
    user_payload BYTEA,
    expires_at TIMESTAMPTZ,
    updated_at TIMESTAMPTZ NOT NULL
)`

type clientStateRow struct {
	ClientID  string         `db:"client_id"`
	Token     sql.NullString `db:"token"`
	User      []byte         `db:"user_payload"`
	ExpiresAt sql.NullTime   `db:"expires_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// PostgresSessionRepository keeps the persisted client state in a client_state row.
type PostgresSessionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresSessionRepository constructs the repository.
func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db, now: time.Now}
}

// EnsureSchema creates the client_state table when missing.
func (r *PostgresSessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, clientStateSchema); err != nil {
		return fmt.Errorf("ensure client_state schema: %w", err)
	}
	return nil
}

// Load returns the unexpired state of a client instance.
func (r *PostgresSessionRepository) Load(ctx context.Context, clientID string) (session.Persisted, error) {
	const query = `SELECT client_id, token, user_payload, expires_at, updated_at FROM client_state
WHERE client_id = $1 AND (expires_at IS NULL OR expires_at > $2)`
	var row clientStateRow
	if err := r.db.GetContext(ctx, &row, query, clientID, r.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Persisted{}, appErrors.ErrStateMiss
		}
		return session.Persisted{}, fmt.Errorf("load client state %s: %w", clientID, err)
	}
	state := session.Persisted{Token: row.Token.String, User: row.User}
	if state.Empty() {
		return session.Persisted{}, appErrors.ErrStateMiss
	}
	return state, nil
}

// Save upserts both values. A non-positive ttl never expires.
func (r *PostgresSessionRepository) Save(ctx context.Context, clientID string, state session.Persisted, ttl time.Duration) error {
	const query = `INSERT INTO client_state (client_id, token, user_payload, expires_at, updated_at)
VALUES (:client_id, :token, :user_payload, :expires_at, :updated_at)
ON CONFLICT (client_id)
DO UPDATE SET token = EXCLUDED.token, user_payload = EXCLUDED.user_payload,
              expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`
	now := r.now().UTC()
	row := clientStateRow{
		ClientID:  clientID,
		Token:     sql.NullString{String: state.Token, Valid: state.Token != ""},
		User:      state.User,
		UpdatedAt: now,
	}
	if ttl > 0 {
		row.ExpiresAt = sql.NullTime{Time: now.Add(ttl), Valid: true}
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("save client state %s: %w", clientID, err)
	}
	return nil
}

// Clear deletes the row of a client instance.
func (r *PostgresSessionRepository) Clear(ctx context.Context, clientID string) error {
	const query = `DELETE FROM client_state WHERE client_id = $1`
	if _, err := r.db.ExecContext(ctx, query, clientID); err != nil {
		return fmt.Errorf("clear client state %s: %w", clientID, err)
	}
	return nil
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (r *PostgresSessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM client_state WHERE expires_at IS NOT NULL AND expires_at <= $1`
	res, err := r.db.ExecContext(ctx, query, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge client state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge client state rows: %w", err)
	}
	return n, nil
}
