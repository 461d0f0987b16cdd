package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobdesk/internal/api"
	"github.com/jonathan/jobdesk/internal/server/middleware"
	"github.com/jonathan/jobdesk/internal/server/ratelimit"
)

// DefaultHost is the interface the console binds to unless told otherwise.
const DefaultHost = "127.0.0.1"

// requestIDHeader correlates console log lines with backend requests.
const requestIDHeader = "X-Request-ID"

// Server represents the console HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	apiURL      string
	proxyClient *http.Client
	rateLimiter *ratelimit.Limiter
	boards      *boardStore
}

// Config holds server configuration
type Config struct {
	// Host defaults to DefaultHost, so the console is only reachable locally.
	Host string
	Port int
	// APIURL is the backend base URL, e.g. http://localhost:8066/api/v1.
	APIURL string
	// ATSTimeout bounds a proxied ATS analysis.
	ATSTimeout time.Duration
	// RateLimit defaults to ratelimit.LoadConfig().
	RateLimit *ratelimit.Config
	// Validator defaults to a middleware.BackendValidator that asks the
	// backend who owns each token.
	Validator middleware.TokenValidator
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q", cfg.APIURL)
	}
	if cfg.ATSTimeout <= 0 {
		cfg.ATSTimeout = 5 * time.Minute
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}

	s := &Server{
		apiURL:      strings.TrimRight(cfg.APIURL, "/"),
		proxyClient: &http.Client{Timeout: cfg.ATSTimeout},
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		boards:      newBoardStore(),
	}
	if cfg.Validator == nil {
		cfg.Validator = middleware.NewBackendValidator(s.lookupUser, middleware.DefaultVerifyTTL)
	}

	auth := middleware.AuthMiddleware(cfg.Validator)
	authed := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/ats-analyze", s.handleATSAnalyze)

	// Board endpoints
	mux.Handle("GET /board", authed(s.handleGetBoard))
	mux.Handle("POST /board/load", authed(s.handleLoadBoard))
	mux.Handle("POST /board/jobs", authed(s.handleAddJob))
	mux.Handle("POST /board/jobs/{id}/drag", authed(s.handleDragStart))
	mux.Handle("DELETE /board/drag", authed(s.handleDragCancel))
	mux.Handle("POST /board/drop/{stage}", authed(s.handleDrop))
	mux.Handle("PUT /board/jobs/{id}/stage", authed(s.handleMoveJob))
	mux.Handle("DELETE /board/jobs/{id}", authed(s.handleRemoveJob))

	// Chart endpoints
	mux.HandleFunc("GET /charts/score-ring", s.handleScoreRing)
	mux.HandleFunc("GET /charts/sparkline", s.handleSparkline)
	mux.HandleFunc("GET /charts/donut", s.handleDonut)
	mux.HandleFunc("GET /charts/radar", s.handleRadar)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ATSTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[console] listening on %s, backend %s", s.httpServer.Addr, s.apiURL)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[console] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("[console] stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging assigns a request id when the caller did not send one and logs
// each request with its status and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %s %d in %v (%s)", r.Method, r.URL.Path, r.RemoteAddr, rec.status, time.Since(start), id)
	})
}

// withRateLimit rejects clients over their budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID identifies the caller by remote IP.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	body := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
		"limit":   info.Limit,
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds())
		body["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	log.Printf("[rate-limit] %s %s from %s rejected (limit %d)", r.Method, r.URL.Path, clientID(r), info.Limit)
	s.jsonResponse(w, http.StatusTooManyRequests, body)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[console] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response. The "detail" key matches the
// backend's error shape so clients parse both the same way.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"detail": message})
}

// fail writes err with the status HTTPStatus assigns it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= 500 {
		log.Printf("[console] %v", err)
	}
	s.errorResponse(w, status, errorMessage(err))
}

func errorMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return api.UserMessage(err, "Internal server error")
	}
	return api.UserMessage(err, err.Error())
}
