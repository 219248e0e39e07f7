// Package ingestion turns live ephemeris position frames into stored
// transit timeseries points.
package ingestion

import (
	"context"
	"errors"
	"log"
	"time"

	"astro-chart-lab/internal/astro"
	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/ephemeris"
	"astro-chart-lab/internal/observability"
	"astro-chart-lab/internal/storage"
)

// Runner subscribes to the streaming ephemeris feed and periodically
// flushes batched transit points to storage. Frames carry tropical
// longitudes; the sidereal longitude is derived here with the ayanamsa of
// the frame's calendar year.
type Runner struct {
	stream        ephemeris.StreamClient
	transitStore  storage.TransitStore
	planets       []domain.Planet
	flushInterval time.Duration
	logger        *log.Logger
	metrics       *observability.Metrics

	buffer []*domain.TransitPoint
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	Stream        ephemeris.StreamClient
	TransitStore  storage.TransitStore
	Planets       []domain.Planet
	FlushInterval time.Duration // Default: 5s
	Logger        *log.Logger
	Metrics       *observability.Metrics
}

// NewRunner creates a new transit ingestion runner.
func NewRunner(opts RunnerOptions) *Runner {
	planets := opts.Planets
	if len(planets) == 0 {
		planets = domain.DefaultPlanets
	}

	flushInterval := opts.FlushInterval
	if flushInterval == 0 {
		flushInterval = 5 * time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		stream:        opts.Stream,
		transitStore:  opts.TransitStore,
		planets:       planets,
		flushInterval: flushInterval,
		logger:        logger,
		metrics:       opts.Metrics,
	}
}

// Run consumes frames until the context is cancelled or the stream
// closes. Remaining buffered points are flushed before returning.
func (r *Runner) Run(ctx context.Context) error {
	frames, err := r.stream.SubscribePositions(ctx, r.planets)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.flush(context.Background())
			return ctx.Err()

		case frame, ok := <-frames:
			if !ok {
				r.flush(context.Background())
				return nil
			}
			r.ingest(frame)

		case <-ticker.C:
			r.flush(ctx)
		}
	}
}

// ingest converts one frame into a transit point and buffers it.
func (r *Runner) ingest(frame ephemeris.PositionFrame) {
	if r.metrics != nil {
		r.metrics.TransitFramesIngested.Inc()
	}

	year := time.UnixMilli(frame.TimestampMs).UTC().Year()
	r.buffer = append(r.buffer, &domain.TransitPoint{
		Planet:            frame.Planet,
		TimestampMs:       frame.TimestampMs,
		TropicalLongitude: frame.TropicalLongitude,
		SiderealLongitude: astro.SiderealLongitude(frame.TropicalLongitude, astro.Ayanamsa(year)),
	})
}

// flush writes buffered points to the store. Duplicate batches (replayed
// frames after a reconnect) are dropped whole, matching the append-only
// store contract.
func (r *Runner) flush(ctx context.Context) {
	if len(r.buffer) == 0 {
		return
	}

	err := r.transitStore.InsertBulk(ctx, r.buffer)
	switch {
	case err == nil:
		if r.metrics != nil {
			r.metrics.TransitPointsStored.Add(float64(len(r.buffer)))
		}
	case errors.Is(err, storage.ErrDuplicateKey):
		r.logger.Printf("dropping %d replayed transit points", len(r.buffer))
	default:
		r.logger.Printf("flush transit points: %v", err)
		// Keep the buffer for the next attempt
		return
	}

	r.buffer = r.buffer[:0]
}
