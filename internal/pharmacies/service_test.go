package pharmacies

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/types"
	"github.com/pharmaseek/pharmaseek-backend/pkg/upstream"
)

type stubUpstream struct {
	lastPath  string
	lastQuery url.Values
	lastBody  any
	lastToken string
	env       *upstream.Envelope
}

func (s *stubUpstream) Get(ctx context.Context, path string, query url.Values, token string) (*upstream.Envelope, error) {
	s.lastPath, s.lastQuery, s.lastToken = path, query, token
	return s.env, nil
}

func (s *stubUpstream) Post(ctx context.Context, path string, body any, token string) (*upstream.Envelope, error) {
	s.lastPath, s.lastBody, s.lastToken = path, body, token
	return s.env, nil
}

func (s *stubUpstream) Put(ctx context.Context, path string, body any, token string) (*upstream.Envelope, error) {
	s.lastPath, s.lastBody, s.lastToken = path, body, token
	return s.env, nil
}

func okEnvelope(t *testing.T, data any) *upstream.Envelope {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &upstream.Envelope{OK: true, Data: raw}
}

// mondayMorning is a Monday at 10:00 local time.
var mondayMorning = time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, stub *stubUpstream) *service {
	t.Helper()
	svc, err := NewService(stub)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return mondayMorning }
	return impl
}

func TestListFiltersByMedicineNameAndComputesOpenNow(t *testing.T) {
	stub := &stubUpstream{env: okEnvelope(t, []Pharmacy{
		{
			ID:   "ph-1",
			Name: "City Pharmacy",
			OpenHours: types.OpenHours{
				"monday": {Open: "09:00", Close: "20:00"},
			},
		},
		{
			ID:   "ph-2",
			Name: "Night Owl",
			OpenHours: types.OpenHours{
				"monday": {Closed: true},
			},
		},
	})}
	svc := newTestService(t, stub)

	got, err := svc.List(context.Background(), "Paracetamol")
	require.NoError(t, err)
	require.Equal(t, "/pharmacies", stub.lastPath)
	require.Equal(t, "Paracetamol", stub.lastQuery.Get("medicineName"))
	require.Len(t, got, 2)
	require.True(t, got[0].OpenNow)
	require.False(t, got[1].OpenNow)
}

func TestGetRequiresID(t *testing.T) {
	svc := newTestService(t, &stubUpstream{})
	_, err := svc.Get(context.Background(), " ")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestGetSurfacesUpstreamError(t *testing.T) {
	stub := &stubUpstream{env: &upstream.Envelope{
		OK:    false,
		Error: &types.APIError{Code: "NOT_FOUND", Message: "pharmacy not found"},
	}}
	svc := newTestService(t, stub)

	_, err := svc.Get(context.Background(), "ph-404")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUpstream, pkgerrors.As(err).Code())
}

func TestCreatePassesBearerToken(t *testing.T) {
	stub := &stubUpstream{env: okEnvelope(t, Pharmacy{ID: "ph-9", Name: "New Pharmacy"})}
	svc := newTestService(t, stub)

	got, err := svc.Create(context.Background(), "upstream-token", CreateRequest{
		Name:    "New Pharmacy",
		Address: "12 High Street",
	})
	require.NoError(t, err)
	require.Equal(t, "upstream-token", stub.lastToken)
	require.Equal(t, "ph-9", got.ID)
}

func TestUpdateEscapesID(t *testing.T) {
	stub := &stubUpstream{env: okEnvelope(t, Pharmacy{ID: "ph 1"})}
	svc := newTestService(t, stub)

	name := "Renamed"
	_, err := svc.Update(context.Background(), "tok", "ph 1", UpdateRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "/pharmacies/ph%201", stub.lastPath)
}
