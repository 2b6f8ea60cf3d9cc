package controllers

import (
	"context"
	"net/http"

	"github.com/pharmaseek/pharmaseek-backend/api/responses"
	"github.com/pharmaseek/pharmaseek-backend/api/validators"
	"github.com/pharmaseek/pharmaseek-backend/internal/viewstate"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

type viewStore interface {
	Get(ctx context.Context, clientID string) (viewstate.State, error)
	Set(ctx context.Context, clientID string, view enums.View) (viewstate.State, error)
}

type viewUpdateRequest struct {
	View string `json:"view" validate:"required"`
}

// ViewGet returns the client's persisted UI view, defaulting to home.
func ViewGet(store viewStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "view store unavailable"))
			return
		}

		clientID, err := activeClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := store.Get(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}

// ViewSet persists the client's current UI view.
func ViewSet(store viewStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "view store unavailable"))
			return
		}

		clientID, err := activeClientID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body viewUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := enums.ParseView(body.View)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid view"))
			return
		}

		state, err := store.Set(r.Context(), clientID, view)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, state)
	}
}
