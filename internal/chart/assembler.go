// Package chart assembles validated birth moments and ephemeris positions
// into complete chart bundles.
package chart

import (
	"errors"
	"fmt"
	"time"

	"astro-chart-lab/internal/astro"
	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/idhash"
)

// ErrIncompleteEphemerisData is returned when the ephemeris collaborator
// supplies fewer positions than requested, a duplicate planet, or a planet
// that was never requested. The assembler surfaces the gap to the caller;
// it never retries and never substitutes defaults.
var ErrIncompleteEphemerisData = errors.New("incomplete ephemeris data")

// Assembler combines birth data with ephemeris output.
// Stateless; safe for concurrent use.
type Assembler struct {
	clock func() time.Time
}

// NewAssembler creates an Assembler using the real clock.
func NewAssembler() *Assembler {
	return &Assembler{clock: func() time.Time { return time.Now().UTC() }}
}

// WithClock sets a custom clock for deterministic output.
func (a *Assembler) WithClock(clock func() time.Time) *Assembler {
	a.clock = clock
	return a
}

// Assemble builds a ChartBundle from a validated BirthMoment, the planets
// that were requested from the ephemeris, and the tropical positions it
// returned. The Julian Date is computed from the UTC birth instant and the
// ayanamsa from the local birth year. Output positions follow the request
// order regardless of the ephemeris response order.
func (a *Assembler) Assemble(
	moment *domain.BirthMoment,
	requested []domain.Planet,
	tropical []domain.TropicalPosition,
) (*domain.ChartBundle, error) {
	byPlanet := make(map[domain.Planet]domain.TropicalPosition, len(tropical))
	for _, tp := range tropical {
		if _, dup := byPlanet[tp.Planet]; dup {
			return nil, fmt.Errorf("%w: duplicate position for %s", ErrIncompleteEphemerisData, tp.Planet)
		}
		byPlanet[tp.Planet] = tp
	}

	ordered := make([]domain.TropicalPosition, 0, len(requested))
	for _, p := range requested {
		tp, ok := byPlanet[p]
		if !ok {
			return nil, fmt.Errorf("%w: missing position for %s", ErrIncompleteEphemerisData, p)
		}
		ordered = append(ordered, tp)
		delete(byPlanet, p)
	}
	if len(byPlanet) > 0 {
		for p := range byPlanet {
			return nil, fmt.Errorf("%w: unrequested position for %s", ErrIncompleteEphemerisData, p)
		}
	}

	utcYear, utcMonth, utcDay, utcHour, utcMinute := moment.UTC()
	jd := astro.JulianDate(utcYear, utcMonth, utcDay, utcHour, utcMinute)
	ayanamsa := astro.Ayanamsa(moment.Year)

	return &domain.ChartBundle{
		ChartID:     idhash.ComputeChartID(moment),
		Moment:      *moment,
		JulianDate:  jd,
		Ayanamsa:    ayanamsa,
		Positions:   astro.ToSidereal(ordered, ayanamsa),
		GeneratedAt: a.clock().UnixMilli(),
	}, nil
}
