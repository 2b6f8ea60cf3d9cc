package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pharmaseek/pharmaseek-backend/api/middleware"
	searchsvc "github.com/pharmaseek/pharmaseek-backend/internal/search"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

type stubSearchService struct {
	suggestions []searchsvc.MedicineResult
	result      *searchsvc.Result
	err         error

	lastClientID string
	lastQuery    searchsvc.Query
}

func (s *stubSearchService) Suggest(ctx context.Context, text string) ([]searchsvc.MedicineResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestions, nil
}

func (s *stubSearchService) Search(ctx context.Context, clientID string, q searchsvc.Query) (*searchsvc.Result, error) {
	s.lastClientID = clientID
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestSearchSuggest(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	t.Run("empty suggestions stay a 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/search/suggest?q=p", nil)
		rec := httptest.NewRecorder()
		SearchSuggest(&stubSearchService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var envelope struct {
			OK   bool `json:"ok"`
			Data struct {
				Suggestions []searchsvc.MedicineResult `json:"suggestions"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if !envelope.OK {
			t.Fatalf("expected ok envelope")
		}
		if len(envelope.Data.Suggestions) != 0 {
			t.Fatalf("expected no suggestions, got %d", len(envelope.Data.Suggestions))
		}
	})
}

func TestSearch(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	makeRequest := func(body string, withClient bool, stub *stubSearchService) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(body))
		if withClient {
			req = req.WithContext(middleware.WithClientID(req.Context(), "anon:device-1"))
		}
		rec := httptest.NewRecorder()
		Search(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing client identity", func(t *testing.T) {
		rec := makeRequest(`{"query":"panadol"}`, false, &stubSearchService{})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		rec := makeRequest(`{}`, true, &stubSearchService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("invalid brand type", func(t *testing.T) {
		rec := makeRequest(`{"query":"panadol","brandType":"branded"}`, true, &stubSearchService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success forwards the query", func(t *testing.T) {
		stub := &stubSearchService{result: &searchsvc.Result{}}
		rec := makeRequest(`{"query":"panadol","category":"pain relief","brandType":"brand"}`, true, stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastClientID != "anon:device-1" {
			t.Fatalf("unexpected client id %q", stub.lastClientID)
		}
		if stub.lastQuery.Text != "panadol" || stub.lastQuery.Category != "pain relief" {
			t.Fatalf("query not forwarded: %+v", stub.lastQuery)
		}
		if string(stub.lastQuery.Mode) != "brand" {
			t.Fatalf("unexpected mode %q", stub.lastQuery.Mode)
		}
	})
}
