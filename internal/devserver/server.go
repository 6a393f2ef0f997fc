// Package devserver is a local stand-in for the remote analysis service.
// It speaks the same wire format and classifies with a keyword heuristic.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yildizm/smishguard/internal/api"
	"github.com/yildizm/smishguard/internal/logger"
	"github.com/yildizm/smishguard/internal/submission"
)

const (
	// DefaultAddr matches the default API origin of the client
	DefaultAddr = "localhost:8000"

	maxBodyBytes    = 64 << 10
	shutdownTimeout = 5 * time.Second
)

// Options configure the stand-in service
type Options struct {
	// Delay is added before every analysis answer, handy for exercising the analyzing screen
	Delay time.Duration

	NewID  submission.IDGenerator
	Logger *logger.Logger
}

// Server serves the analysis endpoints
type Server struct {
	router chi.Router
	delay  time.Duration
	newID  submission.IDGenerator
	log    *logger.Logger
}

type analyzeRequest struct {
	Text      string `json:"text"`
	RequestID string `json:"request_id"`
	Channel   string `json:"channel"`
}

type analyzeResponse struct {
	RequestID string             `json:"request_id"`
	Success   bool               `json:"success"`
	Result    api.AnalysisResult `json:"result"`
}

// New creates the server and its routes
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	newID := opts.NewID
	if newID == nil {
		newID = submission.DefaultIDGenerator
	}

	s := &Server{
		delay: opts.Delay,
		newID: newID,
		log:   log.WithComponent("devserver"),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/v1/analyze", s.handleAnalyze)
	r.Post("/v1/analyze", s.handleAnalyze)

	s.router = r
	return s
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", logger.F("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "smishguard-devserver",
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request payload"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "text is required"})
		return
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
	}

	id := req.RequestID
	if id == "" {
		id = s.newID()
	}

	result := Classify(req.Text)
	s.log.Debug("classified message",
		logger.F("request_id", id),
		logger.F("label", result.Label.English()),
		logger.Count(len(result.Reasons)))

	writeJSON(w, http.StatusOK, analyzeResponse{RequestID: id, Success: true, Result: result})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			logger.F("method", r.Method),
			logger.F("path", r.URL.Path),
			logger.F("status", ww.Status()),
			logger.Duration(time.Since(start)))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
