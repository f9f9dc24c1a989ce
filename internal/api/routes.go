// Package api provides the HTTP surface: routing, middleware, request
// validation, and response shaping for the voice-cloning endpoints.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voxmod/voxmod/internal/config"
)

// NewRouter wires middleware and routes around the handler set.
func NewRouter(cfg *config.Config, h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(h.logger))
	r.Use(CORSMiddleware)
	r.Use(RecoverMiddleware(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/capabilities", h.HandleCapabilities)

		// Signup and waitlist stay open so the landing page works without
		// credentials even when the rest of the API is locked down.
		r.Post("/auth/signup", h.HandleSignup)
		r.Post("/waitlist", h.HandleWaitlist)

		r.Group(func(r chi.Router) {
			if cfg.Auth.APIKey != "" {
				r.Use(AuthMiddleware(cfg.Auth.APIKey))
			}

			r.Post("/transcribe", h.HandleTranscribe)
			r.Get("/voices", h.HandleVoices)

			r.Route("/voice", func(r chi.Router) {
				r.Post("/upload", h.HandleVoiceUpload)
				r.Post("/generate", h.HandleGenerate)
				r.Get("/presets", h.HandlePresets)
				r.Delete("/{modelId}", h.HandleVoiceDelete)
			})
		})
	})

	// Synthesized audio is served as plain files in file response mode; the
	// inline mode embeds audio in responses and never touches this route.
	if cfg.Audio.ResponseMode == config.ResponseModeFile {
		fs := http.StripPrefix("/generated/", http.FileServer(http.Dir(cfg.Audio.GeneratedDir)))
		r.Get("/generated/*", fs.ServeHTTP)
	}

	return r
}
