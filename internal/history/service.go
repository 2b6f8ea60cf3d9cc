package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
	"github.com/pharmaseek/pharmaseek-backend/pkg/pagination"
)

// Service persists per-client search history and popular-search counters.
type Service interface {
	AddSearch(ctx context.Context, clientID string, query string, params AddParams) (*SearchHistoryItem, error)
	RecentSearches(ctx context.Context, clientID string, limit int) ([]SearchHistoryItem, error)
	PopularSearches(ctx context.Context, clientID string, limit int) ([]PopularSearch, error)
	RemoveSearch(ctx context.Context, clientID string, id uuid.UUID) error
	ClearHistory(ctx context.Context, clientID string) error
	ClearOldSearches(ctx context.Context, clientID string, daysOld int) (int, error)
}

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	HistoryKey(clientID string) string
	PopularKey(clientID string) string
}

// Publisher receives best-effort analytics events for committed searches.
type Publisher interface {
	PublishSearchExecuted(ctx context.Context, event SearchExecutedEvent) error
}

// SearchExecutedEvent is the analytics payload emitted on every committed search.
type SearchExecutedEvent struct {
	ClientID    string    `json:"clientId"`
	Query       string    `json:"query"`
	ResultCount *int      `json:"resultCount,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Type        string    `json:"type"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type service struct {
	store     store
	logg      *logger.Logger
	cfg       config.HistoryConfig
	publisher Publisher
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// ServiceParams bundles the dependencies required to build a history service.
type ServiceParams struct {
	Store     store
	Logger    *logger.Logger
	Config    config.HistoryConfig
	Publisher Publisher
}

// NewService constructs a history service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("history store is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		store:     params.Store,
		logg:      params.Logger,
		cfg:       params.Config,
		publisher: params.Publisher,
		now:       time.Now,
		locks:     map[string]*sync.Mutex{},
	}, nil
}

func (s *service) AddSearch(ctx context.Context, clientID string, query string, params AddParams) (*SearchHistoryItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query is required")
	}

	unlock := s.lock(clientID)
	defer unlock()

	items, err := s.loadHistory(ctx, clientID)
	if err != nil {
		return nil, err
	}

	// One entry per query text: a repeat search replaces the old entry
	// and moves to the front with a fresh timestamp.
	kept := items[:0]
	for _, item := range items {
		if !strings.EqualFold(item.Query, query) {
			kept = append(kept, item)
		}
	}

	searchType := params.Type
	if searchType == "" {
		searchType = enums.SearchTypeMedicine
	}
	entry := SearchHistoryItem{
		ID:          uuid.New(),
		Query:       query,
		CreatedAt:   s.now().UTC(),
		ResultCount: params.ResultCount,
		Category:    params.Category,
		Type:        searchType,
	}

	items = append([]SearchHistoryItem{entry}, kept...)
	if max := s.maxEntries(); len(items) > max {
		items = items[:max]
	}
	if err := s.saveHistory(ctx, clientID, items); err != nil {
		return nil, err
	}

	if err := s.bumpPopular(ctx, clientID, entry); err != nil {
		return nil, err
	}

	s.publishSearch(ctx, clientID, entry)
	return &entry, nil
}

func (s *service) RecentSearches(ctx context.Context, clientID string, limit int) ([]SearchHistoryItem, error) {
	items, err := s.loadHistory(ctx, clientID)
	if err != nil {
		return nil, err
	}
	limit = pagination.NormalizeLimitWithin(limit, s.maxEntries(), s.maxEntries())
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *service) PopularSearches(ctx context.Context, clientID string, limit int) ([]PopularSearch, error) {
	popular, err := s.loadPopular(ctx, clientID)
	if err != nil {
		return nil, err
	}

	// Count descending; insertion order breaks ties.
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].Count > popular[j].Count
	})

	limit = pagination.NormalizeLimitWithin(limit, s.maxPopular(), s.maxPopular())
	if len(popular) > limit {
		popular = popular[:limit]
	}
	return popular, nil
}

func (s *service) RemoveSearch(ctx context.Context, clientID string, id uuid.UUID) error {
	unlock := s.lock(clientID)
	defer unlock()

	items, err := s.loadHistory(ctx, clientID)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "search entry not found")
	}
	return s.saveHistory(ctx, clientID, kept)
}

// ClearHistory drops the history list only. Popular counters survive a clear.
func (s *service) ClearHistory(ctx context.Context, clientID string) error {
	unlock := s.lock(clientID)
	defer unlock()

	if err := s.store.Del(ctx, s.store.HistoryKey(clientID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear history")
	}
	return nil
}

func (s *service) ClearOldSearches(ctx context.Context, clientID string, daysOld int) (int, error) {
	if daysOld <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "days must be positive")
	}

	unlock := s.lock(clientID)
	defer unlock()

	items, err := s.loadHistory(ctx, clientID)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().UTC().AddDate(0, 0, -daysOld)
	kept := items[:0]
	for _, item := range items {
		if !item.CreatedAt.Before(cutoff) {
			kept = append(kept, item)
		}
	}
	removed := len(items) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.saveHistory(ctx, clientID, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *service) bumpPopular(ctx context.Context, clientID string, entry SearchHistoryItem) error {
	popular, err := s.loadPopular(ctx, clientID)
	if err != nil {
		return err
	}

	found := false
	for i := range popular {
		if strings.EqualFold(popular[i].Query, entry.Query) {
			popular[i].Count++
			found = true
			break
		}
	}
	if !found {
		popular = append([]PopularSearch{{
			Query:    entry.Query,
			Count:    1,
			Category: entry.Category,
			Type:     entry.Type,
		}}, popular...)
		if max := s.maxPopular(); len(popular) > max {
			popular = popular[:max]
		}
	}
	return s.savePopular(ctx, clientID, popular)
}

func (s *service) publishSearch(ctx context.Context, clientID string, entry SearchHistoryItem) {
	if s.publisher == nil {
		return
	}
	event := SearchExecutedEvent{
		ClientID:    clientID,
		Query:       entry.Query,
		ResultCount: entry.ResultCount,
		Category:    entry.Category,
		Type:        entry.Type.String(),
		OccurredAt:  entry.CreatedAt,
	}
	if err := s.publisher.PublishSearchExecuted(ctx, event); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("publish search event failed: %v", err))
	}
}

func (s *service) loadHistory(ctx context.Context, clientID string) ([]SearchHistoryItem, error) {
	var items []SearchHistoryItem
	if err := s.loadJSON(ctx, s.store.HistoryKey(clientID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) saveHistory(ctx context.Context, clientID string, items []SearchHistoryItem) error {
	return s.saveJSON(ctx, s.store.HistoryKey(clientID), items)
}

func (s *service) loadPopular(ctx context.Context, clientID string) ([]PopularSearch, error) {
	var popular []PopularSearch
	if err := s.loadJSON(ctx, s.store.PopularKey(clientID), &popular); err != nil {
		return nil, err
	}
	return popular, nil
}

func (s *service) savePopular(ctx context.Context, clientID string, popular []PopularSearch) error {
	return s.saveJSON(ctx, s.store.PopularKey(clientID), popular)
}

func (s *service) loadJSON(ctx context.Context, key string, dest any) error {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load history state")
	}
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode history state")
	}
	return nil
}

func (s *service) saveJSON(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode history state")
	}
	if err := s.store.Set(ctx, key, string(payload), s.cfg.TTL()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist history state")
	}
	return nil
}

func (s *service) lock(clientID string) func() {
	s.mu.Lock()
	m, ok := s.locks[clientID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[clientID] = m
	}
	s.mu.Unlock()
	m.Lock()
	return m.Unlock
}

func (s *service) maxEntries() int {
	if s.cfg.MaxEntries > 0 {
		return s.cfg.MaxEntries
	}
	return 50
}

func (s *service) maxPopular() int {
	if s.cfg.MaxPopular > 0 {
		return s.cfg.MaxPopular
	}
	return 20
}
