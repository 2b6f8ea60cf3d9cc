package controllers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/pharmaseek/pharmaseek-backend/api/responses"
	"github.com/pharmaseek/pharmaseek-backend/api/validators"
	authsvc "github.com/pharmaseek/pharmaseek-backend/internal/auth"
	pkgAuth "github.com/pharmaseek/pharmaseek-backend/pkg/auth"
	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

// Form rules mirror the registration and login forms: evaluated in
// order, first failing rule per field wins.
var registerForm = validators.FormRules{
	{Field: "name", Rules: []validators.Rule{
		validators.Required(""),
		validators.MinLength(2, ""),
		validators.MaxLength(120, ""),
	}},
	{Field: "email", Rules: []validators.Rule{
		validators.Required(""),
		validators.Pattern(emailPattern, "must be a valid email"),
	}},
	{Field: "password", Rules: []validators.Rule{
		validators.Required(""),
		validators.MinLength(8, "password must be at least 8 characters"),
		validators.MaxLength(128, ""),
	}},
	{Field: "confirm_password", Rules: []validators.Rule{
		validators.Required(""),
		validators.MatchesField("password", "passwords do not match"),
	}},
}

var loginForm = validators.FormRules{
	{Field: "email", Rules: []validators.Rule{
		validators.Required(""),
		validators.Pattern(emailPattern, "must be a valid email"),
	}},
	{Field: "password", Rules: []validators.Rule{
		validators.Required(""),
	}},
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func bearerFromRequest(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	token := raw
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return token, nil
}

// AuthRegister creates an account upstream and opens a local session.
func AuthRegister(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body authsvc.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := registerForm.Validate(map[string]string{
			"name":             body.Name,
			"email":            body.Email,
			"password":         body.Password,
			"confirm_password": body.ConfirmPassword,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// AuthLogin exchanges credentials upstream and opens a local session.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := loginForm.Validate(map[string]string{
			"email":    body.Email,
			"password": body.Password,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// AuthRefresh rotates the session using the (possibly expired) access
// token presented by the client.
func AuthRefresh(svc authsvc.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		token, err := bearerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgAuth.ParseAccessTokenAllowExpired(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
			return
		}
		if claims.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
			return
		}

		resp, err := svc.Refresh(r.Context(), claims)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// AuthLogout revokes the session tied to the presented access token.
func AuthLogout(svc authsvc.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		token, err := bearerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgAuth.ParseAccessTokenAllowExpired(cfg, token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
			return
		}
		if claims.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
			return
		}

		if err := svc.Logout(r.Context(), claims.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
