package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pharmaseek/pharmaseek-backend/api/middleware"
	"github.com/pharmaseek/pharmaseek-backend/api/responses"
	"github.com/pharmaseek/pharmaseek-backend/api/validators"
	historysvc "github.com/pharmaseek/pharmaseek-backend/internal/history"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

const (
	historyDefaultLimit = 50
	popularDefaultLimit = 10
	popularMaxLimit     = 20
	clearOldDefaultDays = 30
	clearOldMaxDays     = 365
)

func activeClientID(r *http.Request) (string, error) {
	clientID := middleware.ClientIDFromContext(r.Context())
	if clientID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "client identity missing")
	}
	return clientID, nil
}

// HistoryList returns the client's recent searches, newest first.
func HistoryList(svc historysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "history service unavailable"))
			return
		}

		clientID, err := activeClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", historyDefaultLimit, 1, historyDefaultLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.RecentSearches(r.Context(), clientID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"history": items})
	}
}

// HistoryRemove deletes one entry from the client's history.
func HistoryRemove(svc historysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "history service unavailable"))
			return
		}

		clientID, err := activeClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "entryId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid entry id"))
			return
		}

		if err := svc.RemoveSearch(r.Context(), clientID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// HistoryClear wipes the client's search history. Popular counters are
// left untouched.
func HistoryClear(svc historysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "history service unavailable"))
			return
		}

		clientID, err := activeClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ClearHistory(r.Context(), clientID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// HistoryClearOld drops entries older than the days cutoff and reports
// how many were removed.
func HistoryClearOld(svc historysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "history service unavailable"))
			return
		}

		clientID, err := activeClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		days, err := validators.ParseQueryInt(r, "days", clearOldDefaultDays, 1, clearOldMaxDays)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		removed, err := svc.ClearOldSearches(r.Context(), clientID, days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"removed": removed})
	}
}

// PopularSearches returns the client's most repeated queries.
func PopularSearches(svc historysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "history service unavailable"))
			return
		}

		clientID, err := activeClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", popularDefaultLimit, 1, popularMaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		popular, err := svc.PopularSearches(r.Context(), clientID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"popular": popular})
	}
}
