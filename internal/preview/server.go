package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goliatone/go-uibuilder/internal/config"
	"github.com/goliatone/go-uibuilder/pkg/builder"
	"github.com/goliatone/go-uibuilder/pkg/elements"
	"github.com/goliatone/go-uibuilder/pkg/render"
	"github.com/goliatone/go-uibuilder/pkg/structure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodyBytes bounds POST /render payloads.
const MaxBodyBytes = 1 << 20

// Option search limits for /options/{type}.
const (
	DefaultOptionLimit = 50
	MaxOptionLimit     = 200
)

// ErrNoStructure is returned when GET routes are hit without a structure file.
var ErrNoStructure = errors.New("preview: no structure file configured")

// Server renders structures on request. The configured structure file
// renders with the project options; request bodies always go through the
// default HTML policy.
type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	metrics     *prometheus.Registry
	builder     *builder.Builder
	bodyBuilder *builder.Builder
	router      chi.Router
	readFile    func(string) ([]byte, error)
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the request and render logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry replaces the Prometheus registry backing /metrics.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.metrics = registry
		}
	}
}

// WithReadFile swaps the function used to read the structure file.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(s *Server) {
		if fn != nil {
			s.readFile = fn
		}
	}
}

// New builds a Server from the project config.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.New()
	}
	s := &Server{
		cfg:      cfg,
		logger:   slog.Default(),
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.metrics == nil {
		s.metrics = prometheus.NewRegistry()
		s.metrics.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	builderOpts, err := cfg.BuilderOptions(s.logger, s.metrics)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	b, err := builder.New(builderOpts...)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	sanitized := builder.WithRenderOptions(render.WithHTMLSanitizer(render.DefaultHTMLPolicy()))
	body, err := builder.New(append(builderOpts, sanitized)...)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	s.builder = b
	s.bodyBuilder = body
	s.router = s.routes()
	return s, nil
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/render", s.handleRenderFile)
	r.Post("/render", s.handleRenderBody)
	r.Get("/views", s.handleViews)
	r.Get("/options/{type}", s.handleOptions)
	r.Head("/options/{type}", s.handleOptions)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", srv.Addr, "structure", s.cfg.Structure)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("preview server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	out, err := s.renderFile(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, s.page(out))
}

func (s *Server) handleRenderFile(w http.ResponseWriter, r *http.Request) {
	out, err := s.renderFile(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeFragment(w, out)
}

func (s *Server) handleRenderBody(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.fail(w, r, &requestError{err: fmt.Errorf("read body: %w", err)})
		return
	}
	st, err := structure.LoadYAML(data, "request")
	if err != nil {
		s.fail(w, r, &requestError{err: err})
		return
	}
	if err := checkViews(st); err != nil {
		s.fail(w, r, &requestError{err: err})
		return
	}
	out, err := s.bodyBuilder.RenderStructure(r.Context(), st)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeFragment(w, out)
}

func (s *Server) handleViews(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"views": s.builder.Renderer().Views().Names(),
	})
}

type optionsResponse struct {
	Data []elements.Option `json:"data"`
}

// handleOptions searches the option source of an element type with the q and
// limit query parameters.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	typ := chi.URLParam(r, "type")
	registry := s.builder.Elements()
	if registry == nil {
		s.fail(w, r, &notFoundError{what: "element " + strconv.Quote(typ)})
		return
	}
	source, ok := registry.OptionSource(typ)
	if !ok {
		s.fail(w, r, &notFoundError{what: "options for element " + strconv.Quote(typ)})
		return
	}

	limit := DefaultOptionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.fail(w, r, &requestError{err: fmt.Errorf("limit %q must be a positive integer", raw)})
			return
		}
		limit = min(n, MaxOptionLimit)
	}

	options, err := source.Options(r.Context(), elements.OptionQuery{
		Search: r.URL.Query().Get("q"),
		Limit:  limit,
	})
	if err != nil {
		s.fail(w, r, fmt.Errorf("preview: options for %q: %w", typ, err))
		return
	}
	if options == nil {
		options = []elements.Option{}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	json.NewEncoder(w).Encode(optionsResponse{Data: options})
}

// checkViews rejects view overrides that would load templates outside the
// template roots.
func checkViews(st *structure.Structure) error {
	var err error
	st.Each(func(key string, d structure.Descriptor) bool {
		view := strings.TrimSpace(d.View)
		if view == "" {
			return true
		}
		if path.IsAbs(view) || filepath.IsAbs(view) || strings.Contains(view, `\`) ||
			slices.Contains(strings.Split(view, "/"), "..") {
			err = fmt.Errorf("entry %q: view %q must be a relative template name", key, view)
			return false
		}
		return true
	})
	return err
}

func (s *Server) renderFile(ctx context.Context) (string, error) {
	if s.cfg.Structure == "" {
		return "", ErrNoStructure
	}
	data, err := s.readFile(s.cfg.Structure)
	if err != nil {
		return "", fmt.Errorf("preview: read structure: %w", err)
	}
	st, err := structure.LoadYAML(data, s.cfg.Structure)
	if err != nil {
		return "", err
	}
	return s.builder.RenderStructure(ctx, st)
}

func (s *Server) page(body string) string {
	var style string
	if cfg := s.builder.Renderer().Theme(); cfg != nil && len(cfg.CSSVars) > 0 {
		keys := make([]string, 0, len(cfg.CSSVars))
		for key := range cfg.CSSVars {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var sb strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&sb, "%s:%s;", key, cfg.CSSVars[key])
		}
		style = fmt.Sprintf(` style="%s"`, html.EscapeString(sb.String()))
	}
	return fmt.Sprintf("<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>uibuilder preview</title></head><body%s>%s</body></html>\n", style, body)
}

type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

type notFoundError struct {
	what string
}

func (e *notFoundError) Error() string { return "preview: no " + e.what }

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var reqErr *requestError
	var maxErr *http.MaxBytesError
	var notFound *notFoundError
	switch {
	case errors.As(err, &maxErr):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &reqErr):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNoStructure), errors.As(err, &notFound):
		status = http.StatusNotFound
	}
	s.logger.Error("preview render failed",
		"path", r.URL.Path,
		"status", status,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	http.Error(w, err.Error(), status)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("preview request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeFragment(w http.ResponseWriter, out string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, out)
}
