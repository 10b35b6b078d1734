package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fixdesk/fixdesk/internal/shared/biztime"
)

// DefaultSessionPrefix namespaces revoked session keys
const DefaultSessionPrefix = "fixdesk:session:revoked:"

// RevokedSession is stored for each logged-out session until its token would have expired
type RevokedSession struct {
	UserID    string    `json:"user_id"`
	RevokedAt time.Time `json:"revoked_at"`
}

// RedisSessionStore remembers revoked session ids. Keys expire together with
// the token they block, so the set never outgrows the live sessions.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

func NewRedisSessionStore(client *redis.Client, prefix string) *RedisSessionStore {
	if prefix == "" {
		prefix = DefaultSessionPrefix
	}
	return &RedisSessionStore{
		client: client,
		prefix: prefix,
	}
}

// Revoke blocks sessionID until expiresAt. Already expired sessions are ignored.
func (s *RedisSessionStore) Revoke(ctx context.Context, sessionID, userID string, expiresAt time.Time) error {
	if sessionID == "" {
		return errors.New("session id cannot be empty")
	}

	now := biztime.NowUTC()
	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(RevokedSession{UserID: userID, RevokedAt: now})
	if err != nil {
		return fmt.Errorf("failed to marshal revoked session: %w", err)
	}

	if err := s.client.Set(ctx, s.buildKey(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revoked session in redis: %w", err)
	}

	return nil
}

// IsRevoked reports whether sessionID was logged out
func (s *RedisSessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}

	n, err := s.client.Exists(ctx, s.buildKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revoked session: %w", err)
	}

	return n > 0, nil
}

// Get returns the revocation record, or nil when the session is live
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*RevokedSession, error) {
	data, err := s.client.Get(ctx, s.buildKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read revoked session: %w", err)
	}

	var record RevokedSession
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal revoked session: %w", err)
	}
	return &record, nil
}

func (s *RedisSessionStore) buildKey(sessionID string) string {
	return s.prefix + sessionID
}
