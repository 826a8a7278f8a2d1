// Package web provides the HTTP transport for cookbook.
// It exposes the recipe pipeline as a server-sent event stream and the
// reference lookups as JSON endpoints.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 30 * time.Second

// ErrMissingPort is returned when a required service is not provided.
var ErrMissingPort = errors.New("web: recipe, analyzer, reference and cuisine services are required")

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Recipes    driving.RecipeService
	Analyzer   driving.RecipeAnalyzer
	References driving.ReferenceService
	Cuisines   driving.CuisineService
}

// Validate ensures all ports are set.
func (p *Ports) Validate() error {
	if p.Recipes == nil || p.Analyzer == nil || p.References == nil || p.Cuisines == nil {
		return ErrMissingPort
	}
	return nil
}

// Server is the HTTP server for cookbook.
type Server struct {
	ports    *Ports
	router   chi.Router
	hostname string
}

// NewServer creates a new HTTP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	s := &Server{
		ports:    ports,
		hostname: hostname,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)

	r.Route("/recipe", func(r chi.Router) {
		r.Get("/", s.handleRecipeStatus)
		r.Get("/analyze", s.handleAnalyze)
		r.Get("/create", s.handleCreateRecipe)
		r.Post("/create", s.handleCreateRecipe)
	})

	r.Route("/ingredient", func(r chi.Router) {
		r.Get("/status", s.handleIngredientStatus)
		r.Get("/create", s.handleCreateIngredient)
		r.Post("/create", s.handleCreateIngredient)
		r.Get("/{name}", s.handleFindIngredient)
	})

	r.Route("/cuisine", func(r chi.Router) {
		r.Get("/classify", s.handleClassify)
		r.Post("/classify", s.handleClassify)
		r.Get("/create", s.handleCreateCuisine)
		r.Post("/create", s.handleCreateCuisine)
		r.Get("/{name}", s.handleFindCuisine)
	})

	return r
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = domain.DefaultServerAddr
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("Server stopped")
		return nil
	})

	return g.Wait()
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("%s %s %d %s [%s]",
			r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}
