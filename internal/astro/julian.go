// Package astro implements the birth-moment astronomical conversions:
// Julian Date from a UTC calendar instant, the linear Lahiri ayanamsa
// approximation, and tropical-to-sidereal longitude mapping.
//
// Every function here is pure and deterministic: no I/O, no shared state,
// safe to call from any goroutine and to memoize by exact input value.
package astro

// JulianDate converts a proleptic Gregorian UTC calendar instant into a
// continuous Julian Date. Hour and minute MUST already be expressed in
// UTC; applying the timezone offset is the caller's responsibility
// (see domain.BirthMoment.UTC).
//
// Standard Gregorian JDN formula; valid for year >= 1. No leap-second
// handling. Reference point: JulianDate(1999, 12, 24, 1, 30) == 2451536.5625.
func JulianDate(year, month, day, hour, minute int) float64 {
	// January and February shift a to 1, rolling the year back for the
	// m/y terms below.
	a := (14 - month) / 12
	y := year - a
	m := month + 12*a - 3

	jdn := day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 + 1721119

	// jdn follows the noon-based JDN convention; shift half a day so the
	// fractional part counts from midnight UTC.
	fractionalDay := (float64(hour) + float64(minute)/60.0) / 24.0
	return float64(jdn) - 0.5 + fractionalDay
}
