package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/pharmaseek/pharmaseek-backend/pkg/db/models"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
)

// Service exposes the demonstration medicine list. The set is fixed at
// seed time, so the first successful load is cached for the process
// lifetime.
type Service interface {
	Medicines(ctx context.Context) ([]models.Medicine, error)
}

type service struct {
	repo Repository

	mu     sync.RWMutex
	cached []models.Medicine
}

// NewService constructs a catalog service over the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Medicines(ctx context.Context) ([]models.Medicine, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	medicines, err := s.repo.All(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load catalog")
	}

	s.mu.Lock()
	if s.cached == nil {
		s.cached = medicines
	}
	cached = s.cached
	s.mu.Unlock()
	return cached, nil
}
