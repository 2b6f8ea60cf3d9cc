package medicines

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/types"
	"github.com/pharmaseek/pharmaseek-backend/pkg/upstream"
)

type stubUpstream struct {
	lastMethod string
	lastPath   string
	lastQuery  url.Values
	lastBody   any
	lastToken  string
	env        *upstream.Envelope
}

func (s *stubUpstream) Get(ctx context.Context, path string, query url.Values, token string) (*upstream.Envelope, error) {
	s.lastMethod, s.lastPath, s.lastQuery, s.lastToken = "GET", path, query, token
	return s.env, nil
}

func (s *stubUpstream) Post(ctx context.Context, path string, body any, token string) (*upstream.Envelope, error) {
	s.lastMethod, s.lastPath, s.lastBody, s.lastToken = "POST", path, body, token
	return s.env, nil
}

func (s *stubUpstream) Put(ctx context.Context, path string, body any, token string) (*upstream.Envelope, error) {
	s.lastMethod, s.lastPath, s.lastBody, s.lastToken = "PUT", path, body, token
	return s.env, nil
}

func (s *stubUpstream) Delete(ctx context.Context, path string, token string) (*upstream.Envelope, error) {
	s.lastMethod, s.lastPath, s.lastToken = "DELETE", path, token
	return s.env, nil
}

func okEnvelope(t *testing.T, data any) *upstream.Envelope {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &upstream.Envelope{OK: true, Data: raw}
}

func TestListDerivesStatusFromQuantity(t *testing.T) {
	stub := &stubUpstream{env: okEnvelope(t, []InventoryItem{
		{ID: "m-1", Name: "Panadol", Quantity: 21},
		{ID: "m-2", Name: "Brufen", Quantity: 20},
		{ID: "m-3", Name: "Amoxil", Quantity: 0},
	})}
	svc, err := NewService(stub)
	require.NoError(t, err)

	items, err := svc.List(context.Background(), "tok", "ph-1")
	require.NoError(t, err)
	require.Equal(t, "ph-1", stub.lastQuery.Get("pharmacyId"))
	require.Equal(t, enums.AvailabilityInStock, items[0].Status)
	require.Equal(t, enums.AvailabilityLowStock, items[1].Status)
	require.Equal(t, enums.AvailabilityOutOfStock, items[2].Status)
}

func TestCreateReturnsUpstreamRecord(t *testing.T) {
	stub := &stubUpstream{env: okEnvelope(t, InventoryItem{ID: "m-9", Name: "Zyrtec", Quantity: 5})}
	svc, err := NewService(stub)
	require.NoError(t, err)

	item, err := svc.Create(context.Background(), "tok", CreateRequest{
		Name:       "Zyrtec",
		Quantity:   5,
		PharmacyID: "ph-1",
	})
	require.NoError(t, err)
	require.Equal(t, "m-9", item.ID)
	require.Equal(t, enums.AvailabilityLowStock, item.Status)
	require.Equal(t, "tok", stub.lastToken)
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	svc, err := NewService(&stubUpstream{})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "tok", "m-1", UpdateRequest{})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateSurfacesUpstreamFailure(t *testing.T) {
	stub := &stubUpstream{env: &upstream.Envelope{
		OK:    false,
		Error: &types.APIError{Code: "NOT_FOUND", Message: "medicine not found"},
	}}
	svc, err := NewService(stub)
	require.NoError(t, err)

	qty := 3
	_, err = svc.Update(context.Background(), "tok", "m-404", UpdateRequest{Quantity: &qty})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUpstream, pkgerrors.As(err).Code())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	stub := &stubUpstream{env: &upstream.Envelope{OK: true}}
	svc, err := NewService(stub)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "tok", "m-1", false)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	require.Empty(t, stub.lastMethod)

	err = svc.Delete(context.Background(), "tok", "m-1", true)
	require.NoError(t, err)
	require.Equal(t, "DELETE", stub.lastMethod)
	require.Equal(t, "/medicines/m-1", stub.lastPath)
}
