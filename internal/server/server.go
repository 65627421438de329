// Package server exposes the statement upload and analysis queries over
// HTTP. Uploaded files are stored under a configurable directory with a
// UUID-prefixed name; the calculation endpoints re-read the stored file on
// every request.
package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"golang-statement-analyzer/internal/parsers"
	"golang-statement-analyzer/internal/service"
	apperrors "golang-statement-analyzer/pkg/errors"
	"golang-statement-analyzer/pkg/logger"
)

// Server wires the analysis service to an HTTP listener
type Server struct {
	http.Server

	config  *Config
	service *service.AnalysisService
	logger  logger.Logger
}

// NewServer builds a server around the given configuration, creating the
// upload directory if it does not exist
func NewServer(config *Config) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		return nil, apperrors.FileError(apperrors.CodeDirectoryError, config.UploadDir, err)
	}

	svc, err := service.NewAnalysisService(parsers.DefaultParseConfig())
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         config.Addr,
			Handler:      mux,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
		},
		config:  config,
		service: svc,
		logger:  logger.GetGlobalLogger().WithComponent("http_server"),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("POST /finance/upload", s.withRequestLogging(s.handleUpload))
	mux.HandleFunc("GET /finance/calculate/execution-types-sums/{fileName}",
		s.withRequestLogging(s.handleExecutionTypeSums))
	mux.HandleFunc("GET /finance/calculate/top-spending-categories/{fileName}",
		s.withRequestLogging(s.handleTopSpendingCategories))
	mux.HandleFunc("GET /finance/calculate/most-amount-per-weekday/{fileName}",
		s.withRequestLogging(s.handleMostAmountPerWeekday))
	mux.HandleFunc("GET /finance/calculate/highest-spending-day/{fileName}",
		s.withRequestLogging(s.handleHighestSpendingDay))

	return s, nil
}

// Run starts the listener and blocks until the context is cancelled or the
// listener fails. On cancellation the server drains in-flight requests for
// up to the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.WithField("addr", s.config.Addr).Info("HTTP server listening")
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// withRequestLogging logs request start and completion with status and
// duration
func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		s.logger.WithFields(logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Request completed")
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
