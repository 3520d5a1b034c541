package server

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/nounquiz/internal/config"
)

// NewRouter mounts the quiz API and the audio files.
func NewRouter(handler *QuizHandler, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/get-random-sentence", handler.GetRandomSentence)
		r.Get("/get-sentence-by-title", handler.GetSentenceByTitle)
		r.Post("/check-answers", handler.CheckAnswers)
		r.Get("/all-titles", handler.GetAllTitles)
		r.Get("/groups", handler.GetGroups)
	})
	r.Get("/audio/{file}", audioHandler(cfg.AudioDirectory))

	return corsMiddleware(h2c.NewHandler(r, &http2.Server{}), cfg.CORS.AllowedOrigins)
}

// NewServer creates the HTTP server listening on the configured port.
func NewServer(handler http.Handler, cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func audioHandler(directory string) http.HandlerFunc {
	audio := os.DirFS(directory)
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "file")
		info, err := fs.Stat(audio, name)
		if !fs.ValidPath(name) || err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeFileFS(w, r, audio, name)
	}
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] || allowed["*"] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		slog.Default().Info("handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
