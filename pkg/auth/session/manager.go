package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redisclient "github.com/angelmondragon/giftlist-backend/pkg/redis"
	"github.com/google/uuid"
)

// ErrNoAccessID is returned for a blank jti.
var ErrNoAccessID = errors.New("access id is required")

// store is the redis surface a Manager needs; *redis.Client satisfies it.
type store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Manager tracks live access tokens by jti. A token whose key is gone is
// treated as logged out even before it expires.
type Manager struct {
	store store
}

func NewManager(client *redisclient.Client) (*Manager, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &Manager{store: client}, nil
}

func (m *Manager) key(accessID string) (string, error) {
	accessID = strings.TrimSpace(accessID)
	if accessID == "" {
		return "", ErrNoAccessID
	}
	return m.store.AccessSessionKey(accessID), nil
}

// Register marks accessID live for ttl. The value is the subject, kept only
// to make keys readable when inspecting redis.
func (m *Manager) Register(ctx context.Context, accessID, subject string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	key, err := m.key(accessID)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, key, subject, ttl)
}

func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	key, err := m.key(accessID)
	if err != nil {
		return false, err
	}
	return m.store.Exists(ctx, key)
}

// Revoke ends the session. Revoking an unknown or expired jti is not an error.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	key, err := m.key(accessID)
	if err != nil {
		return err
	}
	return m.store.Del(ctx, key)
}

// NewAccessID produces the identifier used as the JWT jti and Redis key.
func NewAccessID() string {
	return uuid.NewString()
}
