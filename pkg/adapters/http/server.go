package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/concierge"
	"github.com/aretw0/concierge/internal/logging"
	"github.com/aretw0/concierge/pkg/domain"
	"github.com/aretw0/concierge/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

// maxBodyBytes bounds request bodies and websocket frames.
const maxBodyBytes = 64 << 10

// Server serves the conversation engine over HTTP, websocket and SSE.
type Server struct {
	Engine  ports.Conversation
	Streams *StreamManager

	logger         *slog.Logger
	metrics        http.Handler
	jwtSecret      []byte
	limiter        *RateLimiter
	allowedOrigins []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and connection logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler exposes the given handler on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithJWTSecret enables bearer authentication with HS256 tokens signed by secret.
// An empty secret leaves authentication disabled.
func WithJWTSecret(secret string) Option {
	return func(s *Server) {
		if secret != "" {
			s.jwtSecret = []byte(secret)
		}
	}
}

// WithRateLimit limits every user to perSecond messages with the given burst.
// A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		s.limiter = NewRateLimiter(perSecond, burst)
	}
}

// WithAllowedOrigins sets the CORS and websocket origin allow-list. Defaults to "*".
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

// NewServer creates a server for the engine.
func NewServer(engine ports.Conversation, opts ...Option) *Server {
	s := &Server{
		Engine:         engine,
		Streams:        NewStreamManager(),
		logger:         logging.NewNop(),
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Conversation, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Handler()
}

// Handler returns the routed handler wrapped in CORS.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/api/hotels", s.ListHotels)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Group(func(r chi.Router) {
		if s.jwtSecret != nil {
			r.Use(s.authenticate)
		}
		r.Post("/chat", s.Chat)
		r.Get("/ws", s.ServeWS)
		r.Get("/events", s.SubscribeEvents)
		r.Get("/sessions/{userID}", s.GetSession)
		r.Delete("/sessions/{userID}", s.DeleteSession)
	})

	return cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler(r)
}

// ChatRequest is the body of POST /chat. Message is passed to the engine untyped.
type ChatRequest struct {
	UserID  string `json:"userId"`
	Message any    `json:"message"`
}

// ChatResponse is the reply to POST /chat.
type ChatResponse struct {
	Response string                `json:"response"`
	Session  domain.SessionState   `json:"session"`
	Booking  *domain.BookingRecord `json:"booking,omitempty"`
}

// Chat handles the POST /chat request.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var body ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("Chat: invalid request body", "err", err)
		return
	}

	userID, status, err := s.resolveUser(r, body.UserID)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	if !s.limiter.Allow(userID) {
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	turn, err := s.turn(r, userID, body.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not process message")
		s.logger.Error("Chat: turn failed", "user_id", userID, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response: turn.Response,
		Session:  turn.Session,
		Booking:  turn.Booking,
	})
}

// turn processes a message and publishes the resulting state change to subscribers.
func (s *Server) turn(r *http.Request, userID string, message any) (*domain.Turn, error) {
	var prior *domain.SessionState
	if sess, err := s.Engine.Session(r.Context(), userID); err == nil {
		prior = &sess.State
	}

	s.logger.Debug("message received", "user_id", userID, "message", message)
	turn, err := s.Engine.ProcessTurn(r.Context(), userID, message)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("response generated", "user_id", userID, "response", turn.Response)

	s.Streams.Publish(userID, prior, turn)
	return turn, nil
}

// ListHotels handles the GET /api/hotels request.
func (s *Server) ListHotels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Engine.Catalog().Accommodations())
}

// GetSession handles the GET /sessions/{userID} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, status, err := s.resolveUser(r, chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	sess, err := s.Engine.Session(r.Context(), userID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load session")
		s.logger.Error("GetSession failed", "user_id", userID, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// DeleteSession handles the DELETE /sessions/{userID} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, status, err := s.resolveUser(r, chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	if err := s.Engine.Reset(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "could not reset session")
		s.logger.Error("DeleteSession failed", "user_id", userID, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":      "concierge-http",
		"version":  strings.TrimSpace(concierge.Version),
		"auth":     s.jwtSecret != nil,
		"currency": s.Engine.Catalog().Currency(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
