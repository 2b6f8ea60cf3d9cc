package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	redisclient "github.com/pharmaseek/pharmaseek-backend/pkg/redis"
)

// ErrSessionNotFound signals a missing or expired session record.
var ErrSessionNotFound = errors.New("session not found")

// SessionUser is the upstream user object cached alongside the tokens.
type SessionUser struct {
	ID         uuid.UUID      `json:"id"`
	Email      string         `json:"email"`
	Role       enums.UserRole `json:"role"`
	PharmacyID *uuid.UUID     `json:"pharmacy_id,omitempty"`
}

// Record bundles the upstream credentials held for one client session.
// The three fields are written and cleared as a single Redis value so a
// login or logout can never leave a partial credential set behind.
type Record struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         SessionUser `json:"user"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	AccessSessionKey(accessID string) string
}

// Manager owns the server-side session records keyed by JWT jti.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	accessTTL := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if ttl <= accessTTL {
		return nil, fmt.Errorf("session ttl (%s) must exceed access token ttl (%s)", ttl, accessTTL)
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Save writes the upstream credential record for the given access ID.
func (m *Manager) Save(ctx context.Context, accessID string, record Record) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	return m.store.Set(ctx, m.keyer.AccessSessionKey(accessID), payload, m.ttl)
}

// Load returns the credential record stored for the access ID.
func (m *Manager) Load(ctx context.Context, accessID string) (*Record, error) {
	if strings.TrimSpace(accessID) == "" {
		return nil, ErrSessionNotFound
	}
	raw, err := m.store.Get(ctx, m.keyer.AccessSessionKey(accessID))
	if err != nil {
		return nil, wrapNotFound(err)
	}
	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	return &record, nil
}

// HasSession reports whether a live record exists for the access ID.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	_, err := m.Load(ctx, accessID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Rotate replaces the session under a new access ID, deleting the old
// record. Used by refresh so a stolen expired token cannot be replayed.
func (m *Manager) Rotate(ctx context.Context, oldAccessID string, record Record) (string, error) {
	if strings.TrimSpace(oldAccessID) == "" {
		return "", ErrSessionNotFound
	}
	oldKey := m.keyer.AccessSessionKey(oldAccessID)
	if _, err := m.store.Get(ctx, oldKey); err != nil {
		return "", wrapNotFound(err)
	}

	newAccessID := NewAccessID()
	if err := m.Save(ctx, newAccessID, record); err != nil {
		return "", err
	}
	if err := m.store.Del(ctx, oldKey); err != nil {
		return "", err
	}
	return newAccessID, nil
}

// Revoke deletes the record tied to the access identifier.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Del(ctx, m.keyer.AccessSessionKey(accessID))
}

// NewAccessID produces a stable identifier used as the JWT jti/Redis key.
func NewAccessID() string {
	return uuid.NewString()
}

func wrapNotFound(err error) error {
	if errors.Is(err, redislib.Nil) {
		return ErrSessionNotFound
	}
	return err
}
