package pharmacies

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/upstream"
)

// Service proxies pharmacy reads and writes to the upstream API.
type Service interface {
	List(ctx context.Context, medicineName string) ([]Pharmacy, error)
	Get(ctx context.Context, id string) (*Pharmacy, error)
	Create(ctx context.Context, token string, req CreateRequest) (*Pharmacy, error)
	Update(ctx context.Context, token string, id string, req UpdateRequest) (*Pharmacy, error)
}

type upstreamClient interface {
	Get(ctx context.Context, path string, query url.Values, token string) (*upstream.Envelope, error)
	Post(ctx context.Context, path string, body any, token string) (*upstream.Envelope, error)
	Put(ctx context.Context, path string, body any, token string) (*upstream.Envelope, error)
}

type service struct {
	client upstreamClient
	now    func() time.Time
}

// NewService constructs a pharmacies proxy over the upstream client.
func NewService(client upstreamClient) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("upstream client is required")
	}
	return &service{client: client, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, medicineName string) ([]Pharmacy, error) {
	query := url.Values{}
	if name := strings.TrimSpace(medicineName); name != "" {
		query.Set("medicineName", name)
	}

	env, err := s.client.Get(ctx, "/pharmacies", query, "")
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var pharmacies []Pharmacy
	if err := env.DecodeData(&pharmacies); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode pharmacies")
	}

	now := s.now()
	for i := range pharmacies {
		pharmacies[i].OpenNow = pharmacies[i].OpenHours.IsOpenAt(now)
	}
	return pharmacies, nil
}

func (s *service) Get(ctx context.Context, id string) (*Pharmacy, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pharmacy id is required")
	}

	env, err := s.client.Get(ctx, "/pharmacies/"+url.PathEscape(id), nil, "")
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var pharmacy Pharmacy
	if err := env.DecodeData(&pharmacy); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode pharmacy")
	}
	pharmacy.OpenNow = pharmacy.OpenHours.IsOpenAt(s.now())
	return &pharmacy, nil
}

func (s *service) Create(ctx context.Context, token string, req CreateRequest) (*Pharmacy, error) {
	env, err := s.client.Post(ctx, "/pharmacies", req, token)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var pharmacy Pharmacy
	if err := env.DecodeData(&pharmacy); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode pharmacy")
	}
	pharmacy.OpenNow = pharmacy.OpenHours.IsOpenAt(s.now())
	return &pharmacy, nil
}

func (s *service) Update(ctx context.Context, token string, id string, req UpdateRequest) (*Pharmacy, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pharmacy id is required")
	}

	env, err := s.client.Put(ctx, "/pharmacies/"+url.PathEscape(id), req, token)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var pharmacy Pharmacy
	if err := env.DecodeData(&pharmacy); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode pharmacy")
	}
	pharmacy.OpenNow = pharmacy.OpenHours.IsOpenAt(s.now())
	return &pharmacy, nil
}
