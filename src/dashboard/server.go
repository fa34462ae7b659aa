// Package dashboard serves the interactive selectivity web page, a JSON curve API, chart PNGs,
// a health check and Prometheus metrics.
package dashboard

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tkok3/AMS/src/config"
	"github.com/tkok3/AMS/src/logging"
)

//go:embed templates/index.html
var templatesFS embed.FS

// ServerConfig contains the options for NewServer.
type ServerConfig struct {
	Config   *config.Config
	Registry *prometheus.Registry
}

// Server is the dashboard HTTP server. The configuration can be swapped at runtime with
// SetConfig; requests already in flight keep the config they started with.
type Server struct {
	cfg     atomic.Pointer[config.Config]
	metrics *Metrics
	page    *template.Template
	server  *http.Server
}

// NewServer builds the server and its routes. A nil Config means config.Default().
func NewServer(sc ServerConfig) (*Server, error) {
	cfg := sc.Config
	if cfg == nil {
		cfg = config.Default()
	}
	page, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	s := &Server{metrics: NewMetrics(sc.Registry), page: page}
	s.cfg.Store(cfg.Clone())
	s.server = &http.Server{
		Addr:         cfg.Web.ListenAddress,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
	}
	return s, nil
}

// Config returns the configuration currently in effect.
func (s *Server) Config() *config.Config { return s.cfg.Load() }

// SetConfig replaces the configuration used for defaults, slider ranges and chart size.
// The listen address and timeouts only take effect on the next start.
func (s *Server) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.cfg.Store(cfg.Clone())
	logging.SetLogLevel(cfg.LogLevel)
	logging.Infof("dashboard defaults now pmax=%g perm=%g x1=%g",
		cfg.Web.Defaults.PMaxExponent, cfg.Web.Defaults.RelativePermeability, cfg.Web.Defaults.MoleFraction)
}

// Metrics exposes the server's instruments (used by tests and embedding programs).
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the routed handler with request-ID middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", s.instrument("index", s.handleIndex))
	mux.Handle("GET /api/curves", s.instrument("curves", s.handleCurves))
	mux.Handle("GET /api/chart.png", s.instrument("chart", s.handleChart))
	mux.Handle("GET /health", s.instrument("health", s.handleHealth))
	mux.Handle("GET /metrics", s.metrics.Handler())
	return withRequestID(mux)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Infof("starting dashboard on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("dashboard listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Infof("shutting down dashboard...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config().Web.ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		logging.Warnf("dashboard shutdown: %v", err)
		if err := s.server.Close(); err != nil {
			return fmt.Errorf("dashboard force close: %w", err)
		}
	}
	logging.Infof("dashboard stopped")
	return nil
}

type requestIDKey struct{}

// RequestID returns the ID assigned to the request by the middleware, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h(rec, r)
		s.metrics.observeRequest(route, strconv.Itoa(rec.code))
		logging.Debugf("[%s] %s %s -> %d in %s", RequestID(r.Context()), r.Method, r.URL.RequestURI(), rec.code, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warnf("write json response: %v", err)
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if _, outcome := classify(err); outcome != "" {
		s.metrics.observeComputation(outcome)
	}
	s.writeRequestError(w, r, err)
}

// writeRequestError answers with the error status without recording a computation outcome.
func (s *Server) writeRequestError(w http.ResponseWriter, r *http.Request, err error) {
	status, outcome := classify(err)
	if status >= http.StatusInternalServerError {
		logging.Errorf("[%s] %s: %v", RequestID(r.Context()), r.URL.Path, err)
	} else {
		logging.Debugf("[%s] rejected %s: %v", RequestID(r.Context()), r.URL.RawQuery, err)
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Kind: errorKind(outcome)})
}
