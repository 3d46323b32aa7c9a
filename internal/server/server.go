// Package server provides the HTTP REST API for the job tracker.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/job-tracker/internal/config"
	"github.com/jonathan/job-tracker/internal/server/middleware"
	"github.com/jonathan/job-tracker/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	handler         http.Handler
	store           Store
	parser          JobParser
	mail            MailSource
	research        CompanyResearcher
	mailLimit       int64
	shutdownTimeout time.Duration
	rateLimiter     *ratelimit.Limiter
	jwtService      *JWTService
	authHandler     *AuthHandler
}

// Options holds the server's collaborators. Mail and Research are optional.
type Options struct {
	Config   *config.Config
	Store    Store
	Parser   JobParser
	Mail     MailSource
	Research CompanyResearcher
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Parser == nil {
		return nil, errors.New("job parser is required")
	}
	cfg := opts.Config

	passwordConfig, err := config.NewPasswordConfig(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtService, err := NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	s := &Server{
		store:           opts.Store,
		parser:          opts.Parser,
		mail:            opts.Mail,
		research:        opts.Research,
		mailLimit:       cfg.Gmail.MaxMessages,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
		rateLimiter:     ratelimit.NewLimiter(ratelimit.NewConfig(cfg.Server.RateLimit, cfg.Server.RateBurst)),
		jwtService:      jwtService,
	}
	s.authHandler = NewAuthHandler(NewUserService(opts.Store, passwordConfig), jwtService)

	authed := middleware.AuthMiddleware(jwtService.AsTokenValidator())
	protect := func(h http.HandlerFunc) http.Handler { return authed(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	mux.Handle("GET /me", protect(s.handleMe))
	mux.Handle("POST /privacy/delete-account", protect(s.handleDeleteAccount))
	mux.Handle("POST /parse-job", protect(s.handleParseJob))

	// Jobs
	mux.Handle("GET /jobs", protect(s.handleListJobs))
	mux.Handle("POST /jobs", protect(s.handleCreateJob))
	mux.Handle("GET /jobs/{id}", protect(s.handleGetJob))
	mux.Handle("PATCH /jobs/{id}", protect(s.handleUpdateJob))
	mux.Handle("DELETE /jobs/{id}", protect(s.handleDeleteJob))

	// Resumes
	mux.Handle("GET /resumes", protect(s.handleListResumes))
	mux.Handle("POST /resumes", protect(s.handleCreateResume))
	mux.Handle("GET /resumes/{id}", protect(s.handleGetResume))
	mux.Handle("PATCH /resumes/{id}", protect(s.handleUpdateResume))
	mux.Handle("DELETE /resumes/{id}", protect(s.handleDeleteResume))

	// Analysis
	mux.Handle("POST /recommend", protect(s.handleRecommend))
	mux.Handle("POST /tailor", protect(s.handleTailor))
	mux.Handle("POST /interview/prepare", protect(s.handleInterviewPrepare))

	// Debriefs
	mux.Handle("GET /debriefs", protect(s.handleListDebriefs))
	mux.Handle("POST /debriefs", protect(s.handleCreateDebrief))
	mux.Handle("GET /debriefs/{id}", protect(s.handleGetDebrief))
	mux.Handle("PATCH /debriefs/{id}", protect(s.handleUpdateDebrief))
	mux.Handle("DELETE /debriefs/{id}", protect(s.handleDeleteDebrief))

	// Outreach
	mux.Handle("POST /negotiate", protect(s.handleNegotiate))
	mux.Handle("POST /network", protect(s.handleNetwork))
	mux.Handle("POST /company", protect(s.handleCompany))

	// Insights
	mux.Handle("GET /analytics", protect(s.handleAnalytics))
	mux.Handle("GET /export", protect(s.handleExport))

	mux.Handle("POST /gmail-import", protect(s.handleGmailImport))

	s.handler = s.withLogging(s.withRateLimit(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		log.Warn().Err(err).Msg("health check: database unreachable")
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("error encoding JSON response")
	}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to a status and writes it. Internal errors are logged and hidden.
func (s *Server) failure(w http.ResponseWriter, err error, msg string) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg(msg)
		s.errorResponse(w, status, msg)
		return
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	log.Warn().Int("limit", info.Limit).Time("reset", info.ResetTime).Msg("rate limit exceeded")
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// owner returns the authenticated user for r, writing 401 when there is none.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}
