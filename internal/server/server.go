package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/example/go-tonegen/internal/audio"
	"github.com/example/go-tonegen/internal/config"
	"github.com/example/go-tonegen/internal/synth"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// ToneGenerator produces an encoded WAV for a preset, format and duration.
type ToneGenerator interface {
	Generate(ctx context.Context, preset string, format audio.Format, dur time.Duration) ([]byte, error)
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	workers        int
	requestTimeout time.Duration
	maxSeconds     float64
	defaultSeconds float64
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		workers:        2,
		requestTimeout: 10 * time.Second,
		maxSeconds:     30,
		defaultSeconds: 3,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithWorkers sets the maximum number of concurrent generation calls.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request generation deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithMaxSeconds caps the tone duration a request may ask for.
func WithMaxSeconds(s float64) Option {
	return func(o *options) { o.maxSeconds = s }
}

// WithDefaultSeconds sets the duration used when a request omits seconds.
func WithDefaultSeconds(s float64) Option {
	return func(o *options) { o.defaultSeconds = s }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

type handler struct {
	gen  ToneGenerator
	opts options
	sem  chan struct{} // semaphore bounding concurrent generations
	log  *slog.Logger
}

// NewHandler returns an http.Handler serving /health, /presets and /tone.
func NewHandler(gen ToneGenerator, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		gen:  gen,
		opts: opts,
		log:  opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/presets", h.handlePresets)
	mux.HandleFunc("/tone", h.handleTone)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

func (h *handler) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, synth.PresetNames())
}

func (h *handler) handleTone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()

	preset := q.Get("preset")
	if preset == "" {
		preset = "clean"
	}

	formatStr := q.Get("format")
	if formatStr == "" {
		formatStr = "pcm8"
	}
	format, err := audio.ParseFormat(formatStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	seconds := h.opts.defaultSeconds
	if s := q.Get("seconds"); s != "" {
		seconds, err = strconv.ParseFloat(s, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid seconds: "+s)
			return
		}
	}
	if seconds <= 0 || seconds > h.opts.maxSeconds {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("seconds must be in (0, %g]", h.opts.maxSeconds))
		return
	}

	// Acquire a worker slot, honoring cancellation while waiting.
	if h.sem != nil {
		select {
		case h.sem <- struct{}{}:
		case <-r.Context().Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return
		}
		defer func() { <-h.sem }()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	start := time.Now()
	data, err := h.gen.Generate(ctx, preset, format, time.Duration(seconds*float64(time.Second)))
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			h.log.WarnContext(r.Context(), "generation timed out",
				slog.String("preset", preset),
				slog.String("format", format.String()),
				slog.Int64("duration_ms", durationMS),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusGatewayTimeout, "generation timed out")
			return
		}
		h.log.ErrorContext(r.Context(), "generation failed",
			slog.String("preset", preset),
			slog.String("format", format.String()),
			slog.Int64("duration_ms", durationMS),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.log.InfoContext(r.Context(), "tone generated",
		slog.String("preset", preset),
		slog.String("format", format.String()),
		slog.Float64("seconds", seconds),
		slog.Int64("duration_ms", durationMS),
		slog.Int("wav_bytes", len(data)),
	)

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server wires the handler into net/http with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the tone handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	gen             ToneGenerator
	shutdownTimeout time.Duration
}

func New(cfg config.Config, gen ToneGenerator) *Server {
	return &Server{
		cfg:             cfg,
		gen:             gen,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	h := NewHandler(s.gen,
		WithWorkers(s.cfg.Server.Workers),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout)*time.Second),
		WithMaxSeconds(s.cfg.Server.MaxSeconds),
		WithDefaultSeconds(s.cfg.Tone.Seconds),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", slog.String("addr", httpServer.Addr))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	slog.Info("shutting down http server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// ProbeHTTP performs a GET against the /health endpoint of addr and returns
// an error unless it answers 200.
func ProbeHTTP(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	if host == "" {
		host = "localhost"
	}

	client := &http.Client{Timeout: 5 * time.Second}
	url := fmt.Sprintf("http://%s/health", net.JoinHostPort(host, port))
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("probe %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("probe %s: status %d", url, resp.StatusCode)
	}
	return nil
}
