// Package server exposes the factorial digit-sum calculator over HTTP,
// with Prometheus metrics and basic security hardening.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/factcalc/internal/errors"
	"github.com/agbru/factcalc/internal/factorial"
	"github.com/agbru/factcalc/internal/logging"
	"github.com/agbru/factcalc/internal/orchestration"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 5 * time.Minute
	shutdownTimeout = 10 * time.Second

	// valueDigitLimit caps the size of the "value" field in responses.
	// Larger factorials are still computed and summarized, but the full
	// decimal expansion is only returned when it fits under the limit.
	valueDigitLimit = 100_000
)

// Server is the HTTP front end. It owns its listener lifecycle and its
// metrics registry.
type Server struct {
	addr       string
	factory    factorial.CalculatorFactory
	logger     logging.Logger
	metrics    *Metrics
	security   SecurityConfig
	httpServer *http.Server
}

// New builds a Server listening on addr with the default security config.
func New(addr string, factory factorial.CalculatorFactory, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		factory:  factory,
		logger:   logger,
		metrics:  NewMetrics(),
		security: DefaultSecurityConfig(),
	}
}

// factorialResponse is the JSON body for a successful calculation.
type factorialResponse struct {
	N          int64  `json:"n"`
	Algorithm  string `json:"algorithm"`
	Digits     int    `json:"digits"`
	DigitSum   int64  `json:"digit_sum"`
	DurationMs int64  `json:"duration_ms"`
	Value      string `json:"value,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/factorial", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleFactorial)))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// metricsMiddleware tracks active requests and per-path request counts.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)
		s.metrics.CountRequest(r.URL.Path, strconv.Itoa(sw.status))
	}
}

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleFactorial(w http.ResponseWriter, r *http.Request) {
	nParam := r.URL.Query().Get("n")
	if nParam == "" {
		s.writeError(w, http.StatusBadRequest, "missing required query parameter: n")
		return
	}
	n, err := strconv.ParseInt(nParam, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid value for n: %q", nParam))
		return
	}
	if n > s.security.MaxNValue {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("n exceeds the maximum allowed value (%d)", s.security.MaxNValue))
		return
	}

	algo := r.URL.Query().Get("algo")
	if algo == "" {
		algo = "iterative"
	}
	calc, err := s.factory.Get(algo)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	summary, err := orchestration.Run(r.Context(), calc, n, factorial.Options{})
	if err != nil {
		if apperrors.IsInvalidBound(err) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if apperrors.IsContextError(err) {
			s.writeError(w, http.StatusServiceUnavailable, "calculation aborted")
			return
		}
		s.logger.Error("calculation failed", err, logging.Int64("n", n))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	elapsed := time.Since(start)
	s.metrics.ObserveComputation(elapsed.Seconds(), summary.DigitSum)

	value := summary.Factorial.String()
	resp := factorialResponse{
		N:          summary.N,
		Algorithm:  summary.Algorithm,
		Digits:     len(value),
		DigitSum:   summary.DigitSum,
		DurationMs: elapsed.Milliseconds(),
	}
	if len(value) <= valueDigitLimit {
		resp.Value = value
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      s.routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", logging.String("addr", s.addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
