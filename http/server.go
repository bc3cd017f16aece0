package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/passivleads/leadscout"
)

// DefaultAddr is the default bind address for the API server.
const DefaultAddr = ":5000"

// ShutdownTimeout is how long Close waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// CrawlFunc runs an email crawl for an API request.
type CrawlFunc func(ctx context.Context, target leadscout.Target) (*leadscout.Result, error)

// Server exposes the crawler over HTTP. Construct with NewServer, assign
// dependencies, then call Open.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *chi.Mux

	// Addr is the bind address. Defaults to DefaultAddr.
	Addr string

	// CrawlFn runs a crawl on behalf of a request. Required.
	CrawlFn CrawlFunc

	// ScanService records completed crawls. Optional; when nil, results
	// are not persisted and the history endpoints answer 503.
	ScanService leadscout.ScanService

	Logger *slog.Logger
}

// NewServer creates a Server with routes and middleware registered.
func NewServer() *Server {
	s := &Server{
		Addr:   DefaultAddr,
		router: chi.NewRouter(),
		Logger: slog.Default(),
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/api", s.handleIndex)
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/api/find-emails", s.handleFindEmails)
	s.router.Post("/api/find-emails", s.handleFindEmails)
	s.router.Get("/api/scans", s.handleListScans)
	s.router.Get("/api/scans/{id}", s.handleGetScan)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// ServeHTTP dispatches to the server's router, so a Server can be mounted
// directly in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open begins listening on Addr. It returns immediately; requests are
// served on a background goroutine.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server terminated", "err", err)
		}
	}()

	return nil
}

// URL returns the base URL of the listening server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts the server down, waiting up to ShutdownTimeout
// for in-flight requests.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "leadscout",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":      "GET /health",
			"find_emails": "GET|POST /api/find-emails?url=<URL>&max_pages=<N>&timeout=<SECONDS>&max_workers=<N>",
			"scans":       "GET /api/scans",
			"scan":        "GET /api/scans/{id}",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "leadscout",
	})
}

// findEmailsRequest is the POST body for /api/find-emails. Timeout is in
// seconds. Zero values fall back to query parameters, then to defaults.
type findEmailsRequest struct {
	URL        string  `json:"url"`
	MaxPages   int     `json:"max_pages"`
	Timeout    float64 `json:"timeout"`
	MaxWorkers int     `json:"max_workers"`
}

// findEmailsResponse is the success envelope for /api/find-emails.
type findEmailsResponse struct {
	Success bool              `json:"success"`
	URL     string            `json:"url"`
	Results *leadscout.Result `json:"results"`
}

func (s *Server) handleFindEmails(w http.ResponseWriter, r *http.Request) {
	var req findEmailsRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, leadscout.Errorf(leadscout.EINVALID, "Request body must be valid JSON."))
			return
		}
	}

	q := r.URL.Query()
	if req.URL == "" {
		req.URL = q.Get("url")
	}
	if req.MaxPages == 0 {
		req.MaxPages, _ = strconv.Atoi(q.Get("max_pages"))
	}
	if req.Timeout == 0 {
		req.Timeout, _ = strconv.ParseFloat(q.Get("timeout"), 64)
	}
	if req.MaxWorkers == 0 {
		req.MaxWorkers, _ = strconv.Atoi(q.Get("max_workers"))
	}

	if req.URL == "" {
		writeError(w, leadscout.Errorf(leadscout.EINVALID, "Missing required parameter: url."))
		return
	}

	target := leadscout.NewTarget(req.URL)
	if req.MaxPages != 0 {
		target.MaxPages = req.MaxPages
	}
	if req.Timeout != 0 {
		target.Timeout = time.Duration(req.Timeout * float64(time.Second))
	}
	if req.MaxWorkers != 0 {
		target.MaxWorkers = req.MaxWorkers
	}
	if err := target.Validate(); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.CrawlFn(r.Context(), target)
	if err != nil {
		s.Logger.Error("crawl failed", "url", target.BaseURL, "err", err)
		writeError(w, err)
		return
	}

	s.recordScan(r.Context(), result)

	writeJSON(w, http.StatusOK, findEmailsResponse{
		Success: true,
		URL:     req.URL,
		Results: result,
	})
}

// recordScan persists a completed crawl. Persistence failures are logged
// and never surfaced to the API caller.
func (s *Server) recordScan(ctx context.Context, result *leadscout.Result) {
	if s.ScanService == nil {
		return
	}
	scan := &leadscout.Scan{
		BaseURL:      result.BaseURL,
		PagesScraped: result.PagesScraped,
		TotalEmails:  result.TotalEmails,
		Emails:       result.Emails,
	}
	if err := s.ScanService.CreateScan(ctx, scan); err != nil {
		s.Logger.Error("recording scan failed", "url", result.BaseURL, "err", err)
	}
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	if s.ScanService == nil {
		writeError(w, leadscout.Errorf(leadscout.EUNAVAILABLE, "Scan history is not enabled."))
		return
	}

	q := r.URL.Query()
	filter := leadscout.ScanFilter{}
	if baseURL := q.Get("base_url"); baseURL != "" {
		filter.BaseURL = &baseURL
	}
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	scans, err := s.ScanService.FindScans(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scans": scans,
		"count": len(scans),
	})
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	if s.ScanService == nil {
		writeError(w, leadscout.Errorf(leadscout.EUNAVAILABLE, "Scan history is not enabled."))
		return
	}

	scan, err := s.ScanService.FindScanByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scan)
}

// statusFromCode maps application error codes to HTTP status codes.
func statusFromCode(code string) int {
	switch code {
	case leadscout.EINVALID:
		return http.StatusBadRequest
	case leadscout.ENOTFOUND:
		return http.StatusNotFound
	case leadscout.ECONFLICT:
		return http.StatusConflict
	case leadscout.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := leadscout.ErrorCode(err)
	writeJSON(w, statusFromCode(code), map[string]string{
		"error":   code,
		"message": leadscout.ErrorMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
