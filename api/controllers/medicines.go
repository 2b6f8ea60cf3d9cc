package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaseek/pharmaseek-backend/api/responses"
	"github.com/pharmaseek/pharmaseek-backend/api/validators"
	medicinesvc "github.com/pharmaseek/pharmaseek-backend/internal/medicines"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

// InventoryList returns the upstream inventory for one pharmacy.
func InventoryList(svc medicinesvc.Service, sessions sessionLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		token, err := upstreamToken(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pharmacyID := strings.TrimSpace(r.URL.Query().Get("pharmacyId"))
		if pharmacyID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "pharmacyId is required"))
			return
		}

		items, err := svc.List(r.Context(), token, pharmacyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"medicines": items})
	}
}

// InventoryCreate adds a medicine to a pharmacy's inventory upstream.
func InventoryCreate(svc medicinesvc.Service, sessions sessionLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		token, err := upstreamToken(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body medicinesvc.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), token, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// InventoryUpdate edits an inventory record's name or quantity. The
// availability status is recomputed from the new quantity.
func InventoryUpdate(svc medicinesvc.Service, sessions sessionLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		token, err := upstreamToken(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "medicineId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "medicine id is required"))
			return
		}

		var body medicinesvc.UpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), token, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// InventoryDelete removes an inventory record. The caller must pass
// confirm=true; anything else is rejected before the upstream call.
func InventoryDelete(svc medicinesvc.Service, sessions sessionLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		token, err := upstreamToken(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "medicineId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "medicine id is required"))
			return
		}

		confirmed := strings.EqualFold(r.URL.Query().Get("confirm"), "true")
		if err := svc.Delete(r.Context(), token, id, confirmed); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
