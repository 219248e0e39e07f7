// Package lookup provides as-of queries over transit timeseries.
package lookup

import (
	"errors"

	"astro-chart-lab/internal/domain"
)

// ErrNoTransitData is returned when the timeseries slice is empty.
var ErrNoTransitData = errors.New("no transit data available")

// LongitudeAt returns the sidereal longitude at or before the target
// timestamp. Points must be ordered by timestamp ASC, which every
// TransitStore guarantees. If no point precedes the target, the first
// available point is used.
func LongitudeAt(target int64, points []*domain.TransitPoint) (float64, error) {
	if len(points) == 0 {
		return 0, ErrNoTransitData
	}

	// Find closest point at or before target
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].TimestampMs <= target {
			return points[i].SiderealLongitude, nil
		}
	}

	// If no point before target, use first available
	return points[0].SiderealLongitude, nil
}

// SignAt returns the zodiac sign occupied at or before the target
// timestamp, derived from the as-of sidereal longitude.
func SignAt(target int64, points []*domain.TransitPoint) (domain.ZodiacSign, error) {
	lon, err := LongitudeAt(target, points)
	if err != nil {
		return 0, err
	}
	return domain.ZodiacSign(int(lon/domain.DegreesPerSign) % 12), nil
}
