// Package main maintains the transit timeseries: it backfills daily
// planetary longitudes over a date range and optionally follows the live
// position stream.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"astro-chart-lab/internal/astro"
	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/ephemeris"
	"astro-chart-lab/internal/ingestion"
	"astro-chart-lab/internal/observability"
	"astro-chart-lab/internal/storage"
	chstore "astro-chart-lab/internal/storage/clickhouse"
	"astro-chart-lab/internal/storage/memory"
	"astro-chart-lab/internal/storage/migrations"
)

func main() {
	endpoint := flag.String("ephemeris-endpoint", os.Getenv("EPHEMERIS_ENDPOINT"), "Ephemeris service HTTP endpoint")
	wsEndpoint := flag.String("ws-endpoint", os.Getenv("EPHEMERIS_WS_ENDPOINT"), "Ephemeris streaming endpoint (enables live mode)")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of ClickHouse")
	from := flag.String("from", "", "Backfill start date, YYYY-MM-DD")
	to := flag.String("to", "", "Backfill end date, YYYY-MM-DD (inclusive)")

	flag.Parse()

	logger := log.New(os.Stdout, "[transits] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && *clickhouseDSN == "" {
		logger.Fatal("--clickhouse-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	var transitStore storage.TransitStore
	if *useMemory {
		transitStore = memory.NewTransitStore()
	} else {
		conn, err := migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("Failed to prepare clickhouse: %v", err)
		}
		defer conn.Close()
		transitStore = chstore.NewTransitStore(conn)
	}

	metrics := observability.NewMetrics("")

	if *from != "" || *to != "" {
		if *endpoint == "" {
			logger.Fatal("--ephemeris-endpoint is required for backfill")
		}
		if err := backfill(ctx, logger, *endpoint, transitStore, metrics, *from, *to); err != nil {
			logger.Fatalf("Backfill failed: %v", err)
		}
	}

	if *wsEndpoint != "" {
		if err := follow(ctx, logger, *wsEndpoint, transitStore, metrics); err != nil && ctx.Err() == nil {
			logger.Fatalf("Live ingestion failed: %v", err)
		}
	}

	logger.Println("Done")
}

// backfill samples one position set per day over [from, to] and stores
// the derived transit points.
func backfill(
	ctx context.Context,
	logger *log.Logger,
	endpoint string,
	transitStore storage.TransitStore,
	metrics *observability.Metrics,
	from, to string,
) error {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return err
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return err
	}

	client := ephemeris.NewHTTPClient(endpoint)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		positions, err := client.Positions(ctx, ephemeris.PositionRequest{
			Year:       day.Year(),
			Month:      int(day.Month()),
			Day:        day.Day(),
			TimezoneID: "UTC",
			Planets:    domain.DefaultPlanets,
		})
		if err != nil {
			return err
		}

		ayanamsa := astro.Ayanamsa(day.Year())
		points := make([]*domain.TransitPoint, 0, len(positions))
		for _, tp := range positions {
			points = append(points, &domain.TransitPoint{
				Planet:            tp.Planet,
				TimestampMs:       day.UnixMilli(),
				TropicalLongitude: tp.LongitudeDegrees,
				SiderealLongitude: astro.SiderealLongitude(tp.LongitudeDegrees, ayanamsa),
			})
		}

		if err := transitStore.InsertBulk(ctx, points); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				logger.Printf("Skipping %s, already backfilled", day.Format("2006-01-02"))
				continue
			}
			return err
		}
		metrics.TransitPointsStored.Add(float64(len(points)))
	}

	logger.Printf("Backfilled %s through %s", from, to)
	return nil
}

// follow consumes the live stream until the context is cancelled.
func follow(
	ctx context.Context,
	logger *log.Logger,
	wsEndpoint string,
	transitStore storage.TransitStore,
	metrics *observability.Metrics,
) error {
	stream, err := ephemeris.NewWSClient(ctx, wsEndpoint, nil)
	if err != nil {
		return err
	}
	defer stream.Close()

	runner := ingestion.NewRunner(ingestion.RunnerOptions{
		Stream:       stream,
		TransitStore: transitStore,
		Logger:       logger,
		Metrics:      metrics,
	})

	logger.Printf("Following live positions from %s", wsEndpoint)
	return runner.Run(ctx)
}
