package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/pharmaseek/pharmaseek-backend/api/responses"
	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
)

// Pinger is implemented by dependencies the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PharmaSeek-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each named dependency and reports per-dependency
// status. Any failing check turns the whole probe into a 503.
func HealthReady(cfg *config.Config, logg *logger.Logger, checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PharmaSeek-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		statuses := make(map[string]string, len(checks))
		failed := false
		for name, check := range checks {
			if check == nil {
				statuses[name] = "skipped"
				continue
			}
			if err := check.Ping(ctx); err != nil {
				logCtx := logg.WithFields(r.Context(), map[string]any{"dependency": name, "error": err.Error()})
				logg.Warn(logCtx, "readiness check failed")
				statuses[name] = "down"
				failed = true
				continue
			}
			statuses[name] = "up"
		}

		if failed {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(statuses)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": statuses})
	}
}
