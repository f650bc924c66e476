package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"assistant-backend/internal/handlers"
	"assistant-backend/internal/middleware"
)

func New(
	assistantHandler *handlers.AssistantHandler,
	chatHandler *handlers.ChatHandler,
	speechHandler *handlers.SpeechHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// AI calls are the expensive path (30 req/min per IP)
	aiLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Assistant Routes ────
		r.Route("/assistants", func(r chi.Router) {
			r.Post("/", assistantHandler.Create)
			r.Get("/", assistantHandler.List)
			r.Get("/{id}", assistantHandler.Get)
			r.Put("/{id}", assistantHandler.Update)
			r.Delete("/{id}", assistantHandler.Delete)

			r.Group(func(r chi.Router) {
				r.Use(aiLimiter.Middleware)
				r.Post("/{id}/chat", chatHandler.Ask)
			})
		})

		// ──── Session Routes ────
		r.Delete("/sessions/{sessionID}", chatHandler.EndSession)

		// ──── Speech Routes ────
		r.Group(func(r chi.Router) {
			r.Use(aiLimiter.Middleware)
			r.Post("/speech", speechHandler.Synthesize)
		})
	})

	return r
}
