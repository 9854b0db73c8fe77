package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cresolva/notify-relay/internal/config"
	"github.com/cresolva/notify-relay/internal/relay"
)

// NewRouter creates a chi.Mux with all routes and middleware configured.
func NewRouter(cfg *config.Config, rl *relay.Relay, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CorrelationIDMiddleware)
	r.Use(LoggingMiddleware(log))
	r.Use(RecoverMiddleware(log))
	r.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Liveness (no business logic)
	r.Get("/", RootHandler(cfg.Server.Port))
	r.Get("/healthz", HealthzHandler())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Relay endpoints
	r.Post("/send-email", SendEmailHandler(rl))
	r.Post("/forward-chat", ForwardChatHandler(rl))

	return r
}
