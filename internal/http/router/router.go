package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"quent-tech-backend/internal/config"
	"quent-tech-backend/internal/http/handlers"
	"quent-tech-backend/internal/http/middleware"
	"quent-tech-backend/internal/ratelimit"
)

// Deps are the collaborators the router wires into its handlers
type Deps struct {
	Contact   *handlers.ContactHandler
	RateLimit ratelimit.Options
	Logger    *zap.Logger
}

// Setup creates and configures the HTTP router
func Setup(cfg *config.Config, deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.NoStore)

	// Gateway-level CORS for the permitted origins. Preflights are passed through so the
	// contact route answers them with its own fixed headers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     cfg.Origins(),
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"Content-Type"},
		AllowCredentials:   false,
		MaxAge:             cfg.CORS.MaxAge,
		OptionsPassthrough: true,
	}))

	// Health check endpoints
	r.Get("/health", handlers.HealthCheck)
	r.Get("/healthz", handlers.LivenessCheck)

	// Contact form endpoint
	r.Route("/contact", func(c chi.Router) {
		c.Use(middleware.ContactCORS(cfg.Site.Origin, cfg.Origins()))
		c.Options("/", deps.Contact.Preflight)
		c.With(ratelimit.Middleware(deps.RateLimit)).Post("/", deps.Contact.Submit)
	})

	return r
}
