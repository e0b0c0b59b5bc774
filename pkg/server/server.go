package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/yurifrl/finscore/pkg/config"
	"github.com/yurifrl/finscore/pkg/models"
	"github.com/yurifrl/finscore/pkg/parser"
	"github.com/yurifrl/finscore/pkg/reader"
	"github.com/yurifrl/finscore/pkg/service"
)

const (
	requestIDHeader = "X-Request-ID"
	defaultMaxBody  = 10 << 20
)

type ctxKey struct{}

// Server exposes the analyzer over HTTP.
type Server struct {
	config   *config.Config
	logger   *log.Logger
	router   *mux.Router
	analyzer *service.Analyzer
}

// TextRequest is the body of /api/parse and /api/score.
type TextRequest struct {
	Text string `json:"text"`
}

type ParseResponse struct {
	Format       parser.Format        `json:"format"`
	Transactions []models.Transaction `json:"transactions"`
}

type UploadResponse struct {
	File string `json:"file"`
	service.Report
}

func New(cfg *config.Config, logger *log.Logger, analyzer *service.Analyzer) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		router:   mux.NewRouter(),
		analyzer: analyzer,
	}
	s.setupRoutes()
	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
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
		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupRoutes() {
	s.router.Use(s.withRequestID, s.withLogging)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
	})
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, http.StatusNotFound, "not found", nil)
	})

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	for _, prefix := range []string{"/api", ""} {
		s.router.HandleFunc(prefix+"/parse", s.handleParse).Methods(http.MethodPost)
		s.router.HandleFunc(prefix+"/score", s.handleScore).Methods(http.MethodPost)
	}
	s.router.HandleFunc("/api/upload", s.handleUpload).Methods(http.MethodPost)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readText(w, r)
	if !ok {
		return
	}
	txs, format := s.analyzer.Parse(text)
	if txs == nil {
		txs = []models.Transaction{}
	}
	s.respond(w, r, http.StatusOK, ParseResponse{Format: format, Transactions: txs})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readText(w, r)
	if !ok {
		return
	}
	s.respond(w, r, http.StatusOK, s.analyzer.Analyze(text))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody())

	file, header, err := r.FormFile("statement")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "statement file required", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "failed to read file", err)
		return
	}

	text, err := reader.Read(header.Filename, data)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, reader.ErrUnsupported) {
			status = http.StatusUnsupportedMediaType
		}
		s.respondError(w, r, status, "failed to read statement", err)
		return
	}

	s.respond(w, r, http.StatusOK, UploadResponse{File: header.Filename, Report: s.analyzer.Analyze(text)})
}

// readText decodes a TextRequest and rejects blank text.
func (s *Server) readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody())
	var req TextRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid json body", err)
		return "", false
	}
	if strings.TrimSpace(req.Text) == "" {
		s.respondError(w, r, http.StatusBadRequest, "text required", nil)
		return "", false
	}
	return req.Text, true
}

// --- helpers ---

func (s *Server) maxBody() int64 {
	if s.config == nil || s.config.Server.MaxUploadBytes <= 0 {
		return defaultMaxBody
	}
	return s.config.Server.MaxUploadBytes
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		s.requestLogger(r).Warn("failed to write json response", "err", err)
	}
}

// writeJSON encodes v as JSON with the given status and writes headers.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	logger := s.requestLogger(r)
	if err != nil {
		logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withRequestID propagates or assigns a request id.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// withLogging wraps a handler to log the request and recover panics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.requestLogger(r)
		start := time.Now()
		logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
				return
			}
			logger.Debug("http response", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(r *http.Request) *log.Logger {
	if id, ok := r.Context().Value(ctxKey{}).(string); ok {
		return s.logger.With("request_id", id)
	}
	return s.logger
}
