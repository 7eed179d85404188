package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bcnlabs/prospect-ai-platform/internal/auth"
	httpmiddleware "github.com/bcnlabs/prospect-ai-platform/internal/http/middleware"
	"github.com/bcnlabs/prospect-ai-platform/internal/outreach"
	"github.com/bcnlabs/prospect-ai-platform/internal/prospects"
	"github.com/bcnlabs/prospect-ai-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ProspectsHandler   *prospects.Handler
	OutreachHandler    *outreach.Handler
	MetricsHandler     http.Handler
	AuthSecret         string
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// User-scoped API routes
	r.Group(func(user chi.Router) {
		user.Use(auth.RequireUser(cfg.AuthSecret))

		if cfg.ProspectsHandler != nil {
			user.Route("/prospects", func(r chi.Router) {
				r.Get("/", cfg.ProspectsHandler.List)
				r.Post("/search", cfg.ProspectsHandler.Search)
				r.Delete("/{id}", cfg.ProspectsHandler.Delete)
			})
		}

		if cfg.OutreachHandler != nil {
			user.Post("/messages/generate", cfg.OutreachHandler.Generate)
		}
	})

	return r
}
