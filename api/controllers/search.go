package controllers

import (
	"net/http"

	"github.com/pharmaseek/pharmaseek-backend/api/middleware"
	"github.com/pharmaseek/pharmaseek-backend/api/responses"
	"github.com/pharmaseek/pharmaseek-backend/api/validators"
	searchsvc "github.com/pharmaseek/pharmaseek-backend/internal/search"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

type searchRequest struct {
	Query     string   `json:"query" validate:"required,min=1,max=160"`
	Category  string   `json:"category" validate:"omitempty,max=80"`
	Strengths []string `json:"strengths" validate:"omitempty,dive,max=40"`
	Forms     []string `json:"forms" validate:"omitempty,dive,max=40"`
	BrandType string   `json:"brandType" validate:"omitempty"`
	Type      string   `json:"type" validate:"omitempty"`
}

// SearchSuggest returns typeahead suggestions for the q parameter.
// Queries below the minimum length yield an empty list, not an error.
func SearchSuggest(svc searchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}

		text := validators.SanitizeString(r.URL.Query().Get("q"), 160)
		suggestions, err := svc.Suggest(r.Context(), text)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"suggestions": suggestions})
	}
}

// Search commits a catalog search for the active client: filters the
// catalog, attaches stocking pharmacies, and records the query.
func Search(svc searchsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		if clientID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "client identity missing"))
			return
		}

		var body searchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := enums.ParseBrandMode(body.BrandType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid brand type"))
			return
		}

		if body.Type != "" {
			if _, err := enums.ParseSearchType(body.Type); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid search type"))
				return
			}
		}

		result, err := svc.Search(r.Context(), clientID, searchsvc.Query{
			Text:      body.Query,
			Category:  body.Category,
			Strengths: body.Strengths,
			Forms:     body.Forms,
			Mode:      mode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
