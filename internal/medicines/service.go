package medicines

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/upstream"
)

// Service proxies inventory reads and writes to the upstream API. Writes
// return the upstream record on success and surface the upstream error
// untouched on failure, so callers never mutate state optimistically.
type Service interface {
	List(ctx context.Context, token string, pharmacyID string) ([]InventoryItem, error)
	Create(ctx context.Context, token string, req CreateRequest) (*InventoryItem, error)
	Update(ctx context.Context, token string, id string, req UpdateRequest) (*InventoryItem, error)
	Delete(ctx context.Context, token string, id string, confirmed bool) error
}

type upstreamClient interface {
	Get(ctx context.Context, path string, query url.Values, token string) (*upstream.Envelope, error)
	Post(ctx context.Context, path string, body any, token string) (*upstream.Envelope, error)
	Put(ctx context.Context, path string, body any, token string) (*upstream.Envelope, error)
	Delete(ctx context.Context, path string, token string) (*upstream.Envelope, error)
}

type service struct {
	client upstreamClient
}

// NewService constructs an inventory proxy over the upstream client.
func NewService(client upstreamClient) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("upstream client is required")
	}
	return &service{client: client}, nil
}

func (s *service) List(ctx context.Context, token string, pharmacyID string) ([]InventoryItem, error) {
	query := url.Values{}
	if id := strings.TrimSpace(pharmacyID); id != "" {
		query.Set("pharmacyId", id)
	}

	env, err := s.client.Get(ctx, "/medicines", query, token)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var items []InventoryItem
	if err := env.DecodeData(&items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode inventory")
	}
	for i := range items {
		items[i].Status = enums.AvailabilityForQuantity(items[i].Quantity)
	}
	return items, nil
}

func (s *service) Create(ctx context.Context, token string, req CreateRequest) (*InventoryItem, error) {
	env, err := s.client.Post(ctx, "/medicines", req, token)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}
	return decodeItem(env)
}

func (s *service) Update(ctx context.Context, token string, id string, req UpdateRequest) (*InventoryItem, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "medicine id is required")
	}
	if req.Name == nil && req.Quantity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	env, err := s.client.Put(ctx, "/medicines/"+url.PathEscape(id), req, token)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}
	return decodeItem(env)
}

func (s *service) Delete(ctx context.Context, token string, id string, confirmed bool) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "medicine id is required")
	}
	if !confirmed {
		return pkgerrors.New(pkgerrors.CodeValidation, "deletion must be confirmed")
	}

	env, err := s.client.Delete(ctx, "/medicines/"+url.PathEscape(id), token)
	if err != nil {
		return err
	}
	return env.Err()
}

func decodeItem(env *upstream.Envelope) (*InventoryItem, error) {
	var item InventoryItem
	if err := env.DecodeData(&item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode inventory item")
	}
	item.Status = enums.AvailabilityForQuantity(item.Quantity)
	return &item, nil
}
