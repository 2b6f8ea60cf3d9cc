package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaseek/pharmaseek-backend/api/middleware"
	"github.com/pharmaseek/pharmaseek-backend/api/responses"
	"github.com/pharmaseek/pharmaseek-backend/api/validators"
	pharmacysvc "github.com/pharmaseek/pharmaseek-backend/internal/pharmacies"
	"github.com/pharmaseek/pharmaseek-backend/pkg/auth/session"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

type sessionLoader interface {
	Load(ctx context.Context, accessID string) (*session.Record, error)
}

// upstreamToken resolves the upstream bearer token for the
// authenticated session seeded by the auth middleware.
func upstreamToken(r *http.Request, sessions sessionLoader) (string, error) {
	if sessions == nil {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable")
	}
	accessID := middleware.SessionIDFromContext(r.Context())
	if accessID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session missing")
	}
	record, err := sessions.Load(r.Context(), accessID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load session")
	}
	return record.AccessToken, nil
}

// PharmacyList returns pharmacies, optionally narrowed to ones stocking
// a medicine via the medicineName parameter.
func PharmacyList(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		medicineName := validators.SanitizeString(r.URL.Query().Get("medicineName"), 160)
		pharmacies, err := svc.List(r.Context(), medicineName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"pharmacies": pharmacies})
	}
}

// PharmacyGet returns one pharmacy by id.
func PharmacyGet(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "pharmacyId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "pharmacy id is required"))
			return
		}

		pharmacy, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pharmacy)
	}
}

// PharmacyCreate registers a new pharmacy upstream on behalf of the
// authenticated pharmacist.
func PharmacyCreate(svc pharmacysvc.Service, sessions sessionLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		token, err := upstreamToken(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pharmacysvc.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pharmacy, err := svc.Create(r.Context(), token, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, pharmacy)
	}
}

// PharmacyUpdate edits an existing pharmacy upstream.
func PharmacyUpdate(svc pharmacysvc.Service, sessions sessionLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		token, err := upstreamToken(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "pharmacyId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "pharmacy id is required"))
			return
		}

		var body pharmacysvc.UpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pharmacy, err := svc.Update(r.Context(), token, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pharmacy)
	}
}
