package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/citizenai/commshub/internal/customers"
	"github.com/citizenai/commshub/internal/dashboard"
	httpmiddleware "github.com/citizenai/commshub/internal/http/middleware"
	"github.com/citizenai/commshub/internal/media"
	"github.com/citizenai/commshub/internal/messages"
	"github.com/citizenai/commshub/internal/webhook"
	"github.com/citizenai/commshub/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	WebhookHandler     *webhook.Handler
	MessagesHandler    *messages.Handler
	MediaHandler       *media.Handler
	CustomersHandler   *customers.Handler
	DashboardHandler   *dashboard.Handler
	AdminToken         string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)

	// Public endpoints (provider webhook, read APIs)
	r.Group(func(public chi.Router) {
		if cfg.WebhookHandler != nil {
			public.Get("/webhook", cfg.WebhookHandler.Verify)
			public.Post("/webhook", cfg.WebhookHandler.Ingest)
		}
		if cfg.MessagesHandler != nil {
			public.Get("/messages", cfg.MessagesHandler.List)
		}
		if cfg.MediaHandler != nil {
			public.Get("/media/{mediaID}", cfg.MediaHandler.Proxy)
		}
		if cfg.DashboardHandler != nil {
			public.Get("/customers/{customerID}/dashboard", cfg.DashboardHandler.Serve)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Admin endpoints behind the shared token
	if cfg.CustomersHandler != nil {
		r.Route("/customers/{customerID}/config", func(admin chi.Router) {
			admin.Use(requireAdminToken(cfg.AdminToken))
			admin.Get("/", cfg.CustomersHandler.GetConfig)
			admin.Put("/", cfg.CustomersHandler.UpdateConfig)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
