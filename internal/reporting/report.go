// Package reporting renders chart bundles for human consumption.
package reporting

import (
	"fmt"

	"astro-chart-lab/internal/domain"
)

// FormatDegree renders a longitude as degrees and arc-minutes,
// e.g. 7.86 -> "7°51'".
func FormatDegree(deg float64) string {
	whole := int(deg)
	minutes := int((deg - float64(whole)) * 60)
	return fmt.Sprintf("%d°%02d'", whole, minutes)
}

// FormatPosition renders a sidereal position as "7°51' Sagittarius".
func FormatPosition(p domain.SiderealPosition) string {
	return fmt.Sprintf("%s %s", FormatDegree(p.DegreeInSign), p.SignIndex)
}

// birthLine summarizes the birth moment for report headers.
func birthLine(m domain.BirthMoment) string {
	timePart := "time unknown"
	if m.HasTime {
		sign := "+"
		offset := m.TimezoneOffsetMinutes
		if offset < 0 {
			sign = "-"
			offset = -offset
		}
		timePart = fmt.Sprintf("%02d:%02d (UTC%s%02d:%02d)", m.Hour, m.Minute, sign, offset/60, offset%60)
	}
	return fmt.Sprintf("%04d-%02d-%02d %s", m.Year, m.Month, m.Day, timePart)
}
