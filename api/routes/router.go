package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pharmaseek/pharmaseek-backend/api/controllers"
	"github.com/pharmaseek/pharmaseek-backend/api/middleware"
	authsvc "github.com/pharmaseek/pharmaseek-backend/internal/auth"
	historysvc "github.com/pharmaseek/pharmaseek-backend/internal/history"
	medicinesvc "github.com/pharmaseek/pharmaseek-backend/internal/medicines"
	pharmacysvc "github.com/pharmaseek/pharmaseek-backend/internal/pharmacies"
	searchsvc "github.com/pharmaseek/pharmaseek-backend/internal/search"
	"github.com/pharmaseek/pharmaseek-backend/internal/viewstate"
	"github.com/pharmaseek/pharmaseek-backend/pkg/auth/session"
	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	"github.com/pharmaseek/pharmaseek-backend/pkg/db"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
	"github.com/pharmaseek/pharmaseek-backend/pkg/logger"
	"github.com/pharmaseek/pharmaseek-backend/pkg/metrics"
	"github.com/pharmaseek/pharmaseek-backend/pkg/redis"
	"github.com/pharmaseek/pharmaseek-backend/pkg/upstream"
)

type sessionManager interface {
	session.AccessSessionChecker
	Load(ctx context.Context, accessID string) (*session.Record, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	dbP db.Pinger,
	redisClient *redis.Client,
	upstreamClient *upstream.Client,
	sessions sessionManager,
	authService authsvc.Service,
	searchService searchsvc.Service,
	historyService historysvc.Service,
	viewStore *viewstate.Store,
	pharmacyService pharmacysvc.Service,
	medicineService medicinesvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":       dbP,
			"redis":    redisClient,
			"upstream": upstreamClient,
		}))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(authService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pharmacies", func(r chi.Router) {
			r.Get("/", controllers.PharmacyList(pharmacyService, logg))
			r.Get("/{pharmacyId}", controllers.PharmacyGet(pharmacyService, logg))
		})

		// Consumer surface: works for both logged-in users and
		// anonymous clients carrying X-Client-Id.
		r.Group(func(r chi.Router) {
			r.Use(middleware.ClientIdentity(cfg.JWT, sessions, logg))

			r.Route("/search", func(r chi.Router) {
				r.Get("/suggest", controllers.SearchSuggest(searchService, logg))
				r.Post("/", controllers.Search(searchService, logg))
				r.Get("/popular", controllers.PopularSearches(historyService, logg))
				r.Route("/history", func(r chi.Router) {
					r.Get("/", controllers.HistoryList(historyService, logg))
					r.Delete("/", controllers.HistoryClear(historyService, logg))
					r.Delete("/old", controllers.HistoryClearOld(historyService, logg))
					r.Delete("/{entryId}", controllers.HistoryRemove(historyService, logg))
				})
			})

			r.Route("/view", func(r chi.Router) {
				r.Get("/", controllers.ViewGet(viewStore, logg))
				r.Put("/", controllers.ViewSet(viewStore, logg))
			})
		})

		// Pharmacist dashboard: authenticated writes proxied upstream.
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Use(middleware.RequireRole(string(enums.UserRolePharmacist), logg))

			r.Route("/pharmacies", func(r chi.Router) {
				r.Post("/", controllers.PharmacyCreate(pharmacyService, sessions, logg))
				r.Put("/{pharmacyId}", controllers.PharmacyUpdate(pharmacyService, sessions, logg))
			})
			r.Route("/medicines", func(r chi.Router) {
				r.Get("/", controllers.InventoryList(medicineService, sessions, logg))
				r.Post("/", controllers.InventoryCreate(medicineService, sessions, logg))
				r.Put("/{medicineId}", controllers.InventoryUpdate(medicineService, sessions, logg))
				r.Delete("/{medicineId}", controllers.InventoryDelete(medicineService, sessions, logg))
			})
		})
	})

	return r
}
