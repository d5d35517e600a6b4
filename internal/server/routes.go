package server

import (
	"log/slog"
	"net/http"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
	}
}

// NewRouter creates a new HTTP router with all routes configured.
// It uses Go 1.22+ ServeMux with method-based routing.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("POST /videos", h.UploadVideo)
	mux.HandleFunc("GET /videos", h.ListVideos)
	mux.HandleFunc("GET /videos/{id}", h.GetVideo)
	mux.HandleFunc("DELETE /videos/{id}", h.DeleteVideo)

	mux.HandleFunc("POST /videos/{id}/trim-silence", h.TrimSilence)
	mux.HandleFunc("POST /videos/{id}/transform-landscape", h.TransformLandscape)
	mux.HandleFunc("POST /videos/{id}/subtitles/generate", h.GenerateSubtitles)
	mux.HandleFunc("PUT /videos/{id}/subtitles", h.UpdateSubtitles)
	mux.HandleFunc("POST /videos/{id}/export", h.Export)
	mux.HandleFunc("POST /videos/{id}/enhance-audio", h.EnhanceAudio)
	mux.HandleFunc("POST /videos/{id}/viral-clips", h.ViralClips)

	// Apply middleware chain
	chain := ChainMiddleware(
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	return chain(mux)
}
