package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"matchminded-service/internal/app"
)

// NewRouter wires the REST and websocket surfaces for the match service.
func NewRouter(service *app.MatchService, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	sessions := NewSessionHandler(service)
	ws := NewWSHandler(service)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessions.Start)
		r.Get("/{id}", sessions.Get)
		r.Post("/{id}/answers", sessions.Answer)
		r.Post("/{id}/reset", sessions.Reset)
		r.Delete("/{id}", sessions.End)
	})
	return r
}
