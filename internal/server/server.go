// Package server serves shielded activity charts, series and donation
// requests over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/internal/log"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests may take once the server stops.
const ShutdownTimeout = 10 * time.Second

//go:embed templates/*.html
var templatesFS embed.FS

// Server is an http.Server wired to one dataset. Query parameters pick the
// aggregation; the data URL is fixed by configuration so callers cannot make
// the server fetch arbitrary hosts.
type Server struct {
	http.Server
	cfg       *contract.Config
	loader    contract.Loader
	renderer  contract.Renderer
	logger    *log.Logger
	templates *template.Template
}

// New configures routes and templates, returning a ready-to-run server.
// The loader is usually a loader.CachingLoader shared by all requests.
func New(cfg *contract.Config, loader contract.Loader, renderer contract.Renderer, logger *log.Logger) (*Server, error) {
	if loader == nil || renderer == nil {
		return nil, errors.New("server needs a loader and a renderer")
	}
	t, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		loader:    loader,
		renderer:  renderer,
		logger:    logger,
		templates: t,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /api/series", s.handleSeries)
	mux.HandleFunc("GET /chart.svg", s.handleChart)
	mux.HandleFunc("GET /chart.png", s.handleChart)
	mux.HandleFunc("GET /api/donate", s.handleDonate)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	s.Server = http.Server{
		Addr:              cfg.ServeAddr,
		Handler:           log.Middleware(logger)(withSecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("HTTP server listening", log.FieldAddr, s.Addr, log.FieldDataURL, s.cfg.DataURL)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		s.logger.Info("HTTP server shutting down")
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// withSecurityHeaders adds security headers to responses.
func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		next.ServeHTTP(w, r)
	})
}
