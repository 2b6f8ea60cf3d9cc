package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pharmaseek/pharmaseek-backend/internal/viewstate"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

type stubViewStore struct {
	state viewstate.State
	err   error

	lastView enums.View
}

func (s *stubViewStore) Get(ctx context.Context, clientID string) (viewstate.State, error) {
	return s.state, s.err
}

func (s *stubViewStore) Set(ctx context.Context, clientID string, view enums.View) (viewstate.State, error) {
	s.lastView = view
	return viewstate.State{Version: 1, View: view}, s.err
}

func TestViewGet(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	t.Run("missing client identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/view", nil)
		rec := httptest.NewRecorder()
		ViewGet(&stubViewStore{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubViewStore{state: viewstate.State{Version: 1, View: enums.ViewHome}}
		req := withClient(httptest.NewRequest(http.MethodGet, "/api/v1/view", nil))
		rec := httptest.NewRecorder()
		ViewGet(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestViewSet(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	t.Run("unknown view", func(t *testing.T) {
		req := withClient(httptest.NewRequest(http.MethodPut, "/api/v1/view", strings.NewReader(`{"view":"basement"}`)))
		rec := httptest.NewRecorder()
		ViewSet(&stubViewStore{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success forwards the view", func(t *testing.T) {
		stub := &stubViewStore{}
		req := withClient(httptest.NewRequest(http.MethodPut, "/api/v1/view", strings.NewReader(`{"view":"search"}`)))
		rec := httptest.NewRecorder()
		ViewSet(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastView != enums.ViewSearch {
			t.Fatalf("expected view search, got %q", stub.lastView)
		}
	})
}
