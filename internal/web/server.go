// Package web provides the server-rendered HTML surface of the catalog:
// the genre controller, its views, and the HTTP router.
package web

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/openshelf/openshelf-server/internal/api"
	"github.com/openshelf/openshelf-server/internal/service"
)

// Services groups the business logic services used by the HTTP server.
type Services struct {
	Genre *service.GenreService
	Book  *service.BookService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *Services
	renderer *Renderer
	router   *chi.Mux
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured: the
// server-rendered catalog pages plus the JSON read API under /api/v1.
func NewServer(services *Services, logger *slog.Logger) (*Server, error) {
	renderer, err := NewRenderer(logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		services: services,
		renderer: renderer,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Catalog pages.
	s.router.Route("/catalog", func(r chi.Router) {
		r.Get("/", s.handleCatalogIndex)
		r.Get("/genres", s.handleGenreList)
		r.Route("/genre", func(r chi.Router) {
			r.Get("/create", s.handleGenreCreateForm)
			r.Post("/create", s.handleGenreCreate)
			r.Get("/{id}", s.handleGenreDetail)
			r.Get("/{id}/delete", s.handleGenreDeleteForm)
			r.Post("/{id}/delete", s.handleGenreDelete)
			r.Get("/{id}/update", s.handleGenreUpdateForm)
			r.Post("/{id}/update", s.handleGenreUpdate)
		})
	})

	// The site root lands on the catalog.
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/catalog/genres", http.StatusFound)
	})

	// JSON read API.
	humaConfig := huma.DefaultConfig("OpenShelf Catalog API", "1.0.0")
	humaAPI := humachi.New(s.router, humaConfig)
	api.RegisterErrorHandler()
	api.Register(humaAPI, s.services.Genre, s.services.Book)
}

// handleCatalogIndex redirects the catalog root to the genre list.
func (s *Server) handleCatalogIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/catalog/genres", http.StatusFound)
}
