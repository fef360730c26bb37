package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	xerrors "tryout-admin-service/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// Manager stores admin sessions in Redis. The session cookie carries a signed
// token whose jti resolves to a key here; deleting the key logs the admin out
// everywhere immediately regardless of the token's expiry.
type Manager struct {
	client *redis.Client
}

func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

// CreateSession stores a new session in Redis with a TTL matching the cookie.
func (m *Manager) CreateSession(ctx context.Context, session *SessionData) error {
	key := m.sessionKey(session.AdminID, session.JTI)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := m.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}

	return nil
}

// GetSession retrieves a session from Redis.
func (m *Manager) GetSession(ctx context.Context, adminID int64, jti string) (*SessionData, error) {
	key := m.sessionKey(adminID, jti)

	data, err := m.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, xerrors.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// TouchSession updates the last activity timestamp, keeping the TTL.
func (m *Manager) TouchSession(ctx context.Context, adminID int64, jti string) error {
	key := m.sessionKey(adminID, jti)

	data, err := m.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil // session gone or expired, nothing to touch
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return err
	}

	session.LastActivityAt = time.Now()

	updated, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl > 0 {
		return m.client.Set(ctx, key, updated, ttl).Err()
	}

	return nil
}

// InvalidateSession removes a single session.
func (m *Manager) InvalidateSession(ctx context.Context, adminID int64, jti string) error {
	return m.client.Del(ctx, m.sessionKey(adminID, jti)).Err()
}

// InvalidateAllSessions removes every session belonging to an admin.
func (m *Manager) InvalidateAllSessions(ctx context.Context, adminID int64) error {
	pattern := fmt.Sprintf("admin_session:%d:*", adminID)

	iter := m.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := m.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete session %s: %w", iter.Val(), err)
		}
	}

	return iter.Err()
}

func (m *Manager) sessionKey(adminID int64, jti string) string {
	return fmt.Sprintf("admin_session:%d:%s", adminID, jti)
}
