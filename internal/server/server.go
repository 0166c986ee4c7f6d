// Package server exposes the inspection toolkit over HTTP. One session
// per client (X-Session-ID header) owns its history and AI quota;
// sessions never share state.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"

	"jsonspect/internal/ai"
	"jsonspect/internal/config"
	"jsonspect/internal/errors"
	"jsonspect/internal/history"
	"jsonspect/internal/logger"
	"jsonspect/internal/models"
)

const sessionHeader = "X-Session-ID"

// Server is the HTTP API for the inspection toolkit
type Server struct {
	cfg    *config.Config
	store  *history.Store
	ai     *ai.Client
	router *chi.Mux
}

// NewServer wires the API together
func NewServer(cfg *config.Config) (*Server, error) {
	aiClient, err := ai.NewClient(cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	s := &Server{
		cfg:   cfg,
		store: history.NewStore(),
		ai:    aiClient,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(s.cfg.Server.TimeoutSeconds) * time.Second))

	r.Get("/api/v1/health", s.handleHealth)

	r.Post("/api/v1/format", s.handleFormat)
	r.Post("/api/v1/diff", s.handleDiff)
	r.Post("/api/v1/mock", s.handleMock)
	r.Post("/api/v1/schema", s.handleSchema)
	r.Post("/api/v1/typedefs", s.handleTypedefs)
	r.Post("/api/v1/ask", s.handleAsk)

	r.Route("/api/v1/history", func(r chi.Router) {
		r.Get("/", s.handleGetHistory)
		r.Delete("/", s.handleClearHistory)
	})
	r.Get("/api/v1/mock/export", s.handleExportCSV)

	s.router = r
}

// ServeHTTP makes the Server usable with httptest and custom listeners
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", s.cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// session resolves the request's session, allocating one when the client
// did not send an ID, and echoes the ID back.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *history.Session {
	sess := s.store.Session(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, sess.ID())
	return sess
}

// newRNG seeds a fresh random source per request so concurrent sessions
// never share generator state.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case stderrors.Is(err, errors.ErrQuotaExceeded):
		status = http.StatusTooManyRequests
	case stderrors.Is(err, errors.ErrOffTopicQuestion),
		stderrors.Is(err, errors.ErrNoDocument),
		stderrors.Is(err, errors.ErrCountNotPositive),
		stderrors.Is(err, errors.ErrCountTooLarge),
		stderrors.Is(err, errors.ErrUnknownLanguage):
		status = http.StatusBadRequest
	case stderrors.Is(err, errors.ErrMissingAPIKey):
		status = http.StatusServiceUnavailable
	default:
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			switch appErr.Type {
			case errors.ErrorTypeInput, errors.ErrorTypeParsing, errors.ErrorTypeSchema,
				errors.ErrorTypeMock, errors.ErrorTypeEmit, errors.ErrorTypeDiff:
				status = http.StatusBadRequest
			case errors.ErrorTypeAI:
				status = http.StatusBadGateway
			}
		}
	}

	if status >= 500 {
		logger.Error("request failed", "error", err)
	} else {
		logger.Debug("request rejected", "error", err)
	}
	respondJSON(w, status, map[string]string{"error": errors.UserFriendlyError(err)})
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewInputError("invalid request body", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// parseExample decodes an embedded example document, which may arrive
// either as a JSON value or as a JSON-encoded string of JSON.
func parseExample(raw json.RawMessage) (models.Value, error) {
	if len(raw) == 0 {
		return nil, errors.NewInputError("missing example document", errors.ErrEmptyInput)
	}
	payload := string(raw)
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		payload = asString
	}
	return parseDocument(payload)
}
