package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/pharmaseek/pharmaseek-backend/internal/history"
	"github.com/pharmaseek/pharmaseek-backend/internal/pharmacies"
	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	"github.com/pharmaseek/pharmaseek-backend/pkg/db/models"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

// Service runs the search pipeline: live suggestions while typing and
// committed searches that attach stocking pharmacies and record history.
type Service interface {
	Suggest(ctx context.Context, text string) ([]MedicineResult, error)
	Search(ctx context.Context, clientID string, q Query) (*Result, error)
}

type catalogService interface {
	Medicines(ctx context.Context) ([]models.Medicine, error)
}

type pharmacyLister interface {
	List(ctx context.Context, medicineName string) ([]pharmacies.Pharmacy, error)
}

type historyRecorder interface {
	AddSearch(ctx context.Context, clientID string, query string, params history.AddParams) (*history.SearchHistoryItem, error)
}

type service struct {
	catalog    catalogService
	pharmacies pharmacyLister
	history    historyRecorder
	logg       *logger.Logger
	cfg        config.SearchConfig
}

// ServiceParams bundles the dependencies required to build a search service.
type ServiceParams struct {
	Catalog    catalogService
	Pharmacies pharmacyLister
	History    historyRecorder
	Logger     *logger.Logger
	Config     config.SearchConfig
}

// NewService constructs a search service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if params.Pharmacies == nil {
		return nil, fmt.Errorf("pharmacies service is required")
	}
	if params.History == nil {
		return nil, fmt.Errorf("history service is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		catalog:    params.Catalog,
		pharmacies: params.Pharmacies,
		history:    params.History,
		logg:       params.Logger,
		cfg:        params.Config,
	}, nil
}

// Suggest returns the first few text matches. Inputs below the minimum
// query length yield an empty list rather than an error.
func (s *service) Suggest(ctx context.Context, text string) ([]MedicineResult, error) {
	text = strings.TrimSpace(text)
	if len(text) < s.minQueryLength() {
		return []MedicineResult{}, nil
	}

	medicines, err := s.catalog.Medicines(ctx)
	if err != nil {
		return nil, err
	}

	matched := Filter(medicines, Query{Text: text})
	limit := s.suggestionLimit()
	if len(matched) > limit {
		matched = matched[:limit]
	}

	results := make([]MedicineResult, 0, len(matched))
	for _, m := range matched {
		results = append(results, toResult(m))
	}
	return results, nil
}

// Search commits a query: validates it, filters the catalog, attaches the
// pharmacies stocking the medicine, and records the search in history.
func (s *service) Search(ctx context.Context, clientID string, q Query) (*Result, error) {
	q.Text = strings.TrimSpace(q.Text)
	if len(q.Text) < s.minQueryLength() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("query must be at least %d characters", s.minQueryLength()))
	}
	if q.Mode != "" && !q.Mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid brand mode")
	}

	medicines, err := s.catalog.Medicines(ctx)
	if err != nil {
		return nil, err
	}

	matched := Filter(medicines, q)
	results := make([]MedicineResult, 0, len(matched))
	for _, m := range matched {
		results = append(results, toResult(m))
	}

	// Pharmacy attachment is best effort: a degraded upstream must not
	// take local catalog search down with it.
	stocking, err := s.pharmacies.List(ctx, q.Text)
	if err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("pharmacy lookup failed for search: %v", err))
		stocking = []pharmacies.Pharmacy{}
	}

	count := len(results)
	var category *string
	if c := strings.TrimSpace(q.Category); c != "" {
		category = &c
	}
	entry, err := s.history.AddSearch(ctx, clientID, q.Text, history.AddParams{
		ResultCount: &count,
		Category:    category,
		Type:        enums.SearchTypeMedicine,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Medicines:  results,
		Pharmacies: stocking,
		History:    entry,
	}, nil
}

func (s *service) minQueryLength() int {
	if s.cfg.MinQueryLength > 0 {
		return s.cfg.MinQueryLength
	}
	return 2
}

func (s *service) suggestionLimit() int {
	if s.cfg.SuggestionLimit > 0 {
		return s.cfg.SuggestionLimit
	}
	return 5
}
