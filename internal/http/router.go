package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"promptstudio/internal/handlers"
	"promptstudio/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Sessions  service.SessionService
	DB        *sql.DB
	ImageDir  string // Artifact root, served at /images/ for the gallery
	IndexHTML string // Embedded HTML content for the front page
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(CORS)
	r.Use(LoggerMiddleware)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/generate", handlers.NewGenerateHandler(deps.Sessions))
		r.Method(http.MethodGet, "/history", handlers.NewHistoryHandler(deps.Sessions))
		r.Method(http.MethodDelete, "/history", handlers.NewPurgeHandler(deps.Sessions))
		r.Method(http.MethodGet, "/report", handlers.NewReportHandler(deps.Sessions))
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.DB))
	})

	// Serve generated images for the gallery
	if deps.ImageDir != "" {
		fileServer := http.StripPrefix("/images/", http.FileServer(http.Dir(deps.ImageDir)))
		r.Get("/images/*", func(w http.ResponseWriter, r *http.Request) {
			fileServer.ServeHTTP(w, r)
		})
	}

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
