package astro

// Lahiri ayanamsa linear model constants.
const (
	AyanamsaBaseYear = 1900.0
	AyanamsaBase     = 22.46   // degrees at base year
	AyanamsaRate     = 0.0139  // degrees per year, about 50.3 arc-seconds
)

// Ayanamsa returns the precession offset in degrees for a calendar year.
//
// This is a linear approximation of the Lahiri ayanamsa, NOT the published
// reference table: it drifts from the authoritative values by a few
// arc-minutes over a human lifetime. Callers needing reference-grade
// precession must substitute a lookup table or higher-order polynomial;
// do not tweak the constants here to force agreement with worked examples
// that used rounded figures.
//
// Monotonically non-decreasing in year; positive for all years after the
// model becomes zero (around 284 CE).
func Ayanamsa(year int) float64 {
	return AyanamsaBase + (float64(year)-AyanamsaBaseYear)*AyanamsaRate
}
