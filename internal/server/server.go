// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// APIName is reported by GET /.
	APIName = "chatterm chat API"

	// APIVersion is the wire contract version.
	APIVersion = "1.0.0"

	// MaxMessageLength is the longest accepted message, in characters.
	MaxMessageLength = 2000

	// MaxRequestBodySize caps POST bodies.
	MaxRequestBodySize = 64 * 1024

	// DefaultReplyTimeout bounds a single responder call.
	DefaultReplyTimeout = 120 * time.Second
)

// Fixed details returned by POST /chat.
const (
	DetailEmptyMessage = "Message cannot be empty"
	DetailChatFailed   = "Failed to process chat message"
)

// ============================================================================
// WIRE TYPES
// ============================================================================

// ChatRequest is the POST /chat body.
type ChatRequest struct {
	Message *string `json:"message"`
}

// ChatResponse is the POST /chat success body.
type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// InfoResponse is the GET / body.
type InfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Responder string            `json:"responder"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorResponse is the body of 5xx failures.
type ErrorResponse struct {
	Error     string `json:"error"`
	Detail    string `json:"detail"`
	Timestamp string `json:"timestamp"`
}

// DetailResponse is the body of 4xx failures.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// ============================================================================
// SERVER STATS
// ============================================================================

// ServerStats tracks server usage statistics.
type ServerStats struct {
	ChatRequests int64     `json:"chat_requests"`
	Replies      int64     `json:"replies"`
	Rejected     int64     `json:"rejected"`
	Failures     int64     `json:"failures"`
	StartTime    time.Time `json:"start_time"`
	Uptime       string    `json:"uptime"`
}

type statsCounter struct {
	chat     atomic.Int64
	replies  atomic.Int64
	rejected atomic.Int64
	failures atomic.Int64
	start    time.Time
}

func (s *statsCounter) snapshot(now time.Time) ServerStats {
	return ServerStats{
		ChatRequests: s.chat.Load(),
		Replies:      s.replies.Load(),
		Rejected:     s.rejected.Load(),
		Failures:     s.failures.Load(),
		StartTime:    s.start,
		Uptime:       now.Sub(s.start).Round(time.Second).String(),
	}
}

// ============================================================================
// SERVER
// ============================================================================

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. 127.0.0.1:8000.
	Addr string

	// AllowedOrigins feeds the CORS allowlist. Nil allows no cross-origin use.
	AllowedOrigins []string

	// Responder produces replies. Nil selects EchoResponder.
	Responder Responder

	// ReplyTimeout bounds each responder call. Zero selects DefaultReplyTimeout.
	ReplyTimeout time.Duration

	// RateLimit is requests per RateWindow per client IP. Zero disables it.
	RateLimit  int
	RateWindow time.Duration

	Logger zerolog.Logger
}

// Server is the chat backend HTTP server.
type Server struct {
	addr         string
	responder    Responder
	replyTimeout time.Duration
	logger       zerolog.Logger
	limiter      *RateLimiter
	handler      http.Handler
	stats        *statsCounter
	now          func() time.Time

	mu     sync.Mutex
	server *http.Server
	closed bool
}

// New creates a Server from opts. Routes are ready immediately; nothing
// listens until Start or Serve.
func New(opts Options) *Server {
	s := &Server{
		addr:         opts.Addr,
		responder:    opts.Responder,
		replyTimeout: opts.ReplyTimeout,
		logger:       opts.Logger,
		stats:        &statsCounter{start: time.Now()},
		now:          time.Now,
	}
	if s.responder == nil {
		s.responder = EchoResponder{}
	}
	if s.replyTimeout <= 0 {
		s.replyTimeout = DefaultReplyTimeout
	}
	if opts.RateLimit > 0 {
		window := opts.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		s.limiter = NewRateLimiter(opts.RateLimit, window)
	}

	s.handler = s.routes(opts.AllowedOrigins)
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Responder returns the active responder.
func (s *Server) Responder() Responder {
	return s.responder
}

// Stats returns a snapshot of the request counters.
func (s *Server) Stats() ServerStats {
	return s.stats.snapshot(s.now())
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) routes(origins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware(s.logger))
	r.Use(LoggingMiddleware(s.logger))
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware(DefaultCORSConfig(origins)))
	if s.limiter != nil {
		r.Use(RateLimitMiddleware(s.limiter, s.logger))
	}

	r.Get("/", s.handleInfo)
	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Post("/chat", s.handleChat)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Message:   APIName,
		Version:   APIVersion,
		Responder: s.responder.Name(),
		Endpoints: map[string]string{
			"chat":   "/chat",
			"health": "/health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: timestamp(s.now()),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Stats())
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	s.stats.chat.Add(1)
	reqID := middleware.GetReqID(r.Context())

	var req ChatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodySize))
	if err := dec.Decode(&req); err != nil {
		s.stats.rejected.Add(1)
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body: "+decodeProblem(err))
		return
	}
	if req.Message == nil {
		s.stats.rejected.Add(1)
		writeDetail(w, http.StatusUnprocessableEntity, "Field required: message")
		return
	}

	message := strings.TrimSpace(*req.Message)
	if message == "" {
		s.stats.rejected.Add(1)
		writeDetail(w, http.StatusBadRequest, DetailEmptyMessage)
		return
	}
	if n := utf8.RuneCountInString(message); n > MaxMessageLength {
		s.stats.rejected.Add(1)
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Message exceeds %d characters", MaxMessageLength))
		return
	}

	s.logger.Info().
		Str("request_id", reqID).
		Str("responder", s.responder.Name()).
		Int("chars", utf8.RuneCountInString(message)).
		Msg("CHAT_RECEIVED")

	ctx, cancel := context.WithTimeout(r.Context(), s.replyTimeout)
	defer cancel()

	start := time.Now()
	reply, err := s.responder.Reply(ctx, message)
	if err != nil {
		s.stats.failures.Add(1)
		s.logger.Error().
			Err(err).
			Str("request_id", reqID).
			Str("responder", s.responder.Name()).
			Msg("CHAT_FAILED")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:     "Internal server error",
			Detail:    DetailChatFailed + ": " + err.Error(),
			Timestamp: timestamp(s.now()),
		})
		return
	}

	s.stats.replies.Add(1)
	s.logger.Info().
		Str("request_id", reqID).
		Int("chars", utf8.RuneCountInString(reply)).
		Dur("elapsed", time.Since(start)).
		Msg("CHAT_REPLIED")

	writeJSON(w, http.StatusOK, ChatResponse{
		Response:  reply,
		Timestamp: timestamp(s.now()),
	})
}

// decodeProblem describes a JSON decode failure without echoing the body.
func decodeProblem(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return "body too large"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %q must be a %s", typeErr.Field, typeErr.Type)
	case errors.Is(err, io.EOF):
		return "empty body"
	default:
		return "malformed JSON"
	}
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown. It returns nil after a clean shutdown,
// including when Shutdown ran first.
func (s *Server) Serve(ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.replyTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ln.Close()
	}
	s.server = srv
	s.mu.Unlock()

	s.logger.Info().
		Str("addr", ln.Addr().String()).
		Str("version", APIVersion).
		Str("responder", s.responder.Name()).
		Msg("SERVER_START")

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}

	s.mu.Lock()
	srv := s.server
	s.closed = true
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	stats := s.Stats()
	s.logger.Info().
		Int64("chat_requests", stats.ChatRequests).
		Int64("failures", stats.Failures).
		Msg("SERVER_SHUTDOWN")

	return srv.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, DetailResponse{Detail: detail})
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
