package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/fpcore/internal/config"
	apperrors "github.com/agbru/fpcore/internal/errors"
	"github.com/agbru/fpcore/internal/logging"
	"github.com/agbru/fpcore/internal/metrics"
	"github.com/agbru/fpcore/internal/selfcheck"
)

const (
	// ShutdownTimeout bounds graceful shutdown after the serve context ends.
	ShutdownTimeout = 10 * time.Second
	// ReadHeaderTimeout bounds the time allowed to read request headers.
	ReadHeaderTimeout = 5 * time.Second
)

// Server serves the self-check battery over HTTP.
type Server struct {
	cfg      config.AppConfig
	security SecurityConfig
	runner   *selfcheck.Runner
	metrics  *Metrics
	logger   logging.Logger
}

// NewServer creates a Server with its own metrics registry and runner.
//
// Parameters:
//   - cfg: The validated configuration. Addr is the listen address; Samples,
//     Workers and Oracle are the /check defaults; Timeout bounds each /check.
//   - logger: The logger shared by the server and its runner.
//
// Returns:
//   - *Server: A server ready for Start or Serve.
func NewServer(cfg config.AppConfig, logger logging.Logger) *Server {
	checks := metrics.NewCheckMetrics()
	return &Server{
		cfg:      cfg,
		security: DefaultSecurityConfig(),
		runner:   selfcheck.NewRunner(selfcheck.WithLogger(logger), selfcheck.WithMetrics(checks)),
		metrics:  NewMetrics(checks),
		logger:   logger,
	}
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	mux.HandleFunc("/check", s.wrap(s.handleCheck))
	return mux
}

func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(h))
}

// Start listens on the configured address and serves until ctx ends.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return apperrors.WrapError(err, "listen on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("serving", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, rec.code, time.Since(start))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// PropertyResponse is the JSON form of selfcheck.PropertyResult.
type PropertyResponse struct {
	Name           string `json:"name"`
	Passed         int    `json:"passed"`
	Failed         int    `json:"failed"`
	Counterexample string `json:"counterexample,omitempty"`
}

// CheckResponse is the JSON body returned by /check.
type CheckResponse struct {
	Oracle     string             `json:"oracle"`
	Samples    int                `json:"samples"`
	Passed     bool               `json:"passed"`
	DurationMs float64            `json:"duration_ms"`
	Properties []PropertyResponse `json:"properties"`
	Error      string             `json:"error,omitempty"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	opts, err := s.checkOptions(r)
	if err != nil {
		s.logger.Debug("rejected check request", logging.Err(err), logging.String("query", r.URL.RawQuery))
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()
	report, err := s.runner.Run(ctx, opts, nil)

	var (
		configErr apperrors.ConfigError
		checkErr  apperrors.CheckError
	)
	status := http.StatusOK
	switch {
	case err == nil:
	case errors.As(err, &configErr):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.As(err, &checkErr):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	default:
		status = http.StatusServiceUnavailable
	}

	resp := newCheckResponse(report, err)
	s.logger.Info("check served",
		logging.Int("samples", resp.Samples),
		logging.Bool("passed", resp.Passed),
		logging.Float64("duration_ms", resp.DurationMs))
	writeJSON(w, status, resp)
}

func (s *Server) checkOptions(r *http.Request) (selfcheck.Options, error) {
	q := r.URL.Query()
	opts := selfcheck.Options{
		Samples: s.cfg.Samples,
		Workers: s.cfg.Workers,
		Oracle:  s.cfg.Oracle,
	}
	if v := q.Get("samples"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, apperrors.ValidationError{Field: "samples", Message: "must be a positive integer"}
		}
		opts.Samples = n
	}
	if opts.Samples > s.security.MaxSamples {
		return opts, apperrors.ValidationError{Field: "samples", Message: "exceeds " + strconv.Itoa(s.security.MaxSamples)}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, apperrors.ValidationError{Field: "seed", Message: "must be an integer"}
		}
		opts.Seed = seed
	}
	if v := q.Get("oracle"); v != "" {
		opts.Oracle = v
	}
	return opts, nil
}

func newCheckResponse(report selfcheck.Report, err error) CheckResponse {
	resp := CheckResponse{
		Oracle:     report.Oracle,
		Samples:    report.Samples,
		Passed:     err == nil,
		DurationMs: float64(report.Duration.Microseconds()) / 1000,
		Properties: make([]PropertyResponse, 0, len(report.Results)),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	for _, res := range report.Results {
		pr := PropertyResponse{Name: res.Name, Passed: res.Passed, Failed: res.Failed}
		if res.FirstFailure != nil {
			pr.Counterexample = res.FirstFailure.Counterexample
		}
		resp.Properties = append(resp.Properties, pr)
	}
	return resp
}

func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	s.logger.Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
