package viewstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
)

const schemaVersion = 1

// State is the persisted navigation position for one client.
type State struct {
	Version   int        `json:"version"`
	View      enums.View `json:"view"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type gateway interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ViewKey(clientID string) string
}

// Store persists per-client view state through the typed Redis gateway.
type Store struct {
	gateway gateway
	ttl     time.Duration
	now     func() time.Time
}

// NewStore constructs a view-state store. A zero ttl keeps entries forever.
func NewStore(g gateway, ttl time.Duration) (*Store, error) {
	if g == nil {
		return nil, fmt.Errorf("redis gateway is required")
	}
	return &Store{gateway: g, ttl: ttl, now: time.Now}, nil
}

// Get returns the client's persisted view, defaulting to home when absent
// or recorded under an older schema.
func (s *Store) Get(ctx context.Context, clientID string) (State, error) {
	fallback := State{Version: schemaVersion, View: enums.ViewHome}

	raw, err := s.gateway.Get(ctx, s.gateway.ViewKey(clientID))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return fallback, nil
		}
		return fallback, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load view state")
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return fallback, nil
	}
	if state.Version != schemaVersion || !state.View.IsValid() {
		return fallback, nil
	}
	return state, nil
}

// Set persists the client's current view.
func (s *Store) Set(ctx context.Context, clientID string, view enums.View) (State, error) {
	if !view.IsValid() {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid view")
	}

	state := State{
		Version:   schemaVersion,
		View:      view,
		UpdatedAt: s.now().UTC(),
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode view state")
	}
	if err := s.gateway.Set(ctx, s.gateway.ViewKey(clientID), string(payload), s.ttl); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist view state")
	}
	return state, nil
}
