// Package idhash derives deterministic identifiers from domain values.
package idhash

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"

	"astro-chart-lab/internal/domain"
)

// ComputeChartID computes a deterministic chart identifier from the
// normalized birth fields that influence the chart output.
// Formula: base58(SHA256(name|year|month|day|hour|minute|hasTime|offset|lat|lon|tz))
// truncated to the first 16 hash bytes, which keeps the token short enough
// for share links while leaving collisions out of practical reach.
//
// Identical BirthMoment values always map to the same ChartID, so storage
// keyed by ChartID acts as an exact-input cache.
func ComputeChartID(m *domain.BirthMoment) string {
	data := fmt.Sprintf("%s|%d|%d|%d|%d|%d|%t|%d|%.6f|%.6f|%s",
		m.FullName,
		m.Year, m.Month, m.Day,
		m.Hour, m.Minute, m.HasTime,
		m.TimezoneOffsetMinutes,
		m.Place.Latitude, m.Place.Longitude,
		m.Place.ResolvedTimezoneID,
	)

	hash := sha256.Sum256([]byte(data))
	return base58.Encode(hash[:16])
}
