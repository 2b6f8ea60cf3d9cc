package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pharmaseek/pharmaseek-backend/api/responses"
	pkgAuth "github.com/pharmaseek/pharmaseek-backend/pkg/auth"
	"github.com/pharmaseek/pharmaseek-backend/pkg/auth/session"
	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

// ClientIDHeader carries the anonymous identity used for search history
// and view state before a visitor logs in.
const ClientIDHeader = "X-Client-Id"

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

func seedClaims(ctx context.Context, claims *pkgAuth.AccessTokenClaims, logg *logger.Logger) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, claims.UserID.String())
	ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
	ctx = context.WithValue(ctx, ctxSessionID, claims.ID)
	ctx = context.WithValue(ctx, ctxClientID, claims.UserID.String())
	if claims.PharmacyID != nil {
		ctx = context.WithValue(ctx, ctxPharmacyID, claims.PharmacyID.String())
	}

	if logg != nil {
		fields := map[string]any{
			"user_id":    claims.UserID.String(),
			"actor_role": string(claims.Role),
		}
		if claims.PharmacyID != nil {
			fields["pharmacy_id"] = claims.PharmacyID.String()
		}
		ctx = logg.WithFields(ctx, fields)
	}
	return ctx
}

// Auth validates a bearer token, checks the server-side session record
// still exists, and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(seedClaims(r.Context(), claims, logg)))
		})
	}
}

// ClientIdentity resolves the identity history and view state are keyed
// by: a valid bearer token wins, otherwise the anonymous client header.
// Requests with neither are rejected.
func ClientIdentity(cfg config.JWTConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				claims, err := pkgAuth.ParseAccessToken(cfg, token)
				if err == nil && claims.ID != "" {
					if verifier != nil {
						if ok, verr := verifier.HasSession(r.Context(), claims.ID); verr == nil && ok {
							next.ServeHTTP(w, r.WithContext(seedClaims(r.Context(), claims, logg)))
							return
						}
					} else {
						next.ServeHTTP(w, r.WithContext(seedClaims(r.Context(), claims, logg)))
						return
					}
				}
			}

			clientID := strings.TrimSpace(r.Header.Get(ClientIDHeader))
			if clientID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "client identity required"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), "anon:"+clientID)))
		})
	}
}
