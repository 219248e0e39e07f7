// Package main runs the chart service: an HTTP API that normalizes birth
// data, fetches tropical positions from the ephemeris service, and serves
// assembled sidereal chart bundles, with Prometheus metrics alongside.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"astro-chart-lab/internal/birth"
	"astro-chart-lab/internal/chart"
	"astro-chart-lab/internal/compat"
	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/ephemeris"
	"astro-chart-lab/internal/observability"
	"astro-chart-lab/internal/pipeline"
	"astro-chart-lab/internal/storage"
	"astro-chart-lab/internal/storage/memory"
	"astro-chart-lab/internal/storage/migrations"
	pgstore "astro-chart-lab/internal/storage/postgres"
)

// Server holds the chart service components.
type Server struct {
	generator  *pipeline.Generator
	chartStore storage.ChartStore
	metrics    *observability.Metrics
	logger     *log.Logger
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	ephemerisEndpoint := flag.String("ephemeris-endpoint", os.Getenv("EPHEMERIS_ENDPOINT"), "Ephemeris service HTTP endpoint")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	useStub := flag.Bool("use-stub-ephemeris", false, "Serve fixture positions instead of calling the ephemeris service")
	listenAddr := flag.String("listen-addr", ":8080", "API listen address")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if *ephemerisEndpoint == "" && !*useStub {
		logger.Fatal("--ephemeris-endpoint is required (or pass --use-stub-ephemeris)")
	}
	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create chart store
	var chartStore storage.ChartStore
	if *useMemory {
		chartStore = memory.NewChartStore()
	} else {
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			logger.Fatalf("Failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
		chartStore = pgstore.NewChartStore(pool)
	}

	// Create ephemeris client
	var client ephemeris.Client
	if *useStub {
		client = pipeline.ExampleEphemerisClient()
		logger.Println("Using stub ephemeris with fixture positions")
	} else {
		client = ephemeris.NewHTTPClient(*ephemerisEndpoint)
	}

	metrics := observability.NewMetrics("")

	server := &Server{
		generator:  pipeline.NewGenerator(client, chartStore).WithMetrics(metrics),
		chartStore: chartStore,
		metrics:    metrics,
		logger:     logger,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	go server.startMetricsServer(*metricsAddr)

	if err := server.run(ctx, *listenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}
	logger.Println("Shutdown complete")
}

// run serves the API until the context is cancelled.
func (s *Server) run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/charts", s.handleGenerateChart)
	mux.HandleFunc("GET /v1/charts/{id}", s.handleGetChart)
	mux.HandleFunc("POST /v1/compatibility/validate", s.handleValidateCompatibility)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Printf("Serving chart API on %s", addr)
	return srv.ListenAndServe()
}

// startMetricsServer serves Prometheus metrics.
func (s *Server) startMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())

	s.logger.Printf("Serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		s.logger.Printf("Metrics server error: %v", err)
	}
}

// errorResponse is the JSON error envelope. Kind distinguishes validation
// failures from missing external data so clients can pick different
// fallbacks.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"` // "validation" | "ephemeris" | "internal"
}

func (s *Server) handleGenerateChart(w http.ResponseWriter, r *http.Request) {
	var raw birth.RawBirthData
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}

	start := time.Now()
	bundle, err := s.generator.Generate(r.Context(), raw)
	if err != nil {
		switch {
		case pipeline.IsValidationError(err):
			s.metrics.ValidationErrors.WithLabelValues(validationKind(err)).Inc()
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: "validation"})
		case errors.Is(err, chart.ErrIncompleteEphemerisData):
			s.metrics.EphemerisErrors.Inc()
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: "ephemeris"})
		default:
			s.metrics.EphemerisErrors.Inc()
			s.logger.Printf("generate chart: %v", err)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "chart generation failed", Kind: "ephemeris"})
		}
		return
	}

	s.metrics.ChartsGenerated.Inc()
	s.metrics.GenerationLatency.Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	chartID := r.PathValue("id")

	bundle, err := s.chartStore.GetByID(r.Context(), chartID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "chart not found", Kind: "validation"})
			return
		}
		s.metrics.DBQueryErrors.WithLabelValues("chart").Inc()
		s.logger.Printf("get chart %s: %v", chartID, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "storage error", Kind: "internal"})
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleValidateCompatibility(w http.ResponseWriter, r *http.Request) {
	var report domain.CompatibilityReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Kind: "validation"})
		return
	}

	if err := compat.Validate(&report); err != nil {
		s.metrics.CompatibilityRejected.WithLabelValues(rejectReason(err)).Inc()
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: "validation"})
		return
	}

	s.metrics.CompatibilityValidated.Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// validationKind maps a validation error to a metrics label.
func validationKind(err error) string {
	switch {
	case errors.Is(err, birth.ErrFutureBirthDate):
		return "future_birth_date"
	case errors.Is(err, birth.ErrBirthDateTooOld):
		return "birth_date_too_old"
	case errors.Is(err, birth.ErrIncompleteBirthData):
		return "incomplete_birth_data"
	case errors.Is(err, birth.ErrMalformedPlaceName):
		return "malformed_place_name"
	default:
		return "invalid_date"
	}
}

// rejectReason maps a compatibility validation error to a metrics label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, compat.ErrScoreOutOfRange):
		return "score_out_of_range"
	case errors.Is(err, compat.ErrEmptyAspectList):
		return "empty_aspect_list"
	default:
		return "nil_report"
	}
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
