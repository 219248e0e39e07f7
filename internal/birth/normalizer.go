// Package birth normalizes raw profile fields into a validated
// domain.BirthMoment. Pure transformation, no side effects.
package birth

import (
	"strings"
	"time"

	"astro-chart-lab/internal/domain"
)

// MaxProfileAgeYears bounds how far in the past a birth date may lie.
const MaxProfileAgeYears = 120

// RawBirthData carries unvalidated profile fields as entered by the user.
type RawBirthData struct {
	FullName string

	Year  int
	Month int
	Day   int

	// Hour/Minute are ignored unless HasTime is set. Charts built without
	// a birth time default to 00:00 and are low-precision.
	Hour    int
	Minute  int
	HasTime bool

	TimezoneOffsetMinutes int

	PlaceName  string // free text, "City, State, Country" best effort
	Latitude   float64
	Longitude  float64
	TimezoneID string // IANA identifier when resolved, may be empty

	// HasCoordinates reports whether Latitude/Longitude were actually
	// resolved, as (0, 0) is a valid ocean coordinate.
	HasCoordinates bool
}

// Normalize validates raw profile fields against the clock instant "now"
// and produces an immutable BirthMoment.
//
// The calendar date must be a real date not in the future and within
// MaxProfileAgeYears of now. A missing birth time is permitted: the moment
// defaults to 00:00 local with HasTime=false, which keeps the Julian Date
// computable at reduced precision.
func Normalize(raw RawBirthData, now time.Time) (*domain.BirthMoment, error) {
	if !validDate(raw.Year, raw.Month, raw.Day) {
		return nil, ErrInvalidDate
	}

	birthDate := time.Date(raw.Year, time.Month(raw.Month), raw.Day, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if birthDate.After(today) {
		return nil, ErrFutureBirthDate
	}
	if birthDate.Before(today.AddDate(-MaxProfileAgeYears, 0, 0)) {
		return nil, ErrBirthDateTooOld
	}

	place, err := parsePlace(raw)
	if err != nil {
		return nil, err
	}

	m := &domain.BirthMoment{
		FullName:              strings.TrimSpace(raw.FullName),
		Year:                  raw.Year,
		Month:                 raw.Month,
		Day:                   raw.Day,
		TimezoneOffsetMinutes: raw.TimezoneOffsetMinutes,
		Place:                 place,
	}
	if raw.HasTime {
		if raw.Hour < 0 || raw.Hour > 23 || raw.Minute < 0 || raw.Minute > 59 {
			return nil, ErrInvalidDate
		}
		m.Hour = raw.Hour
		m.Minute = raw.Minute
		m.HasTime = true
	}
	return m, nil
}

// RequireComplete verifies that a moment carries everything a full chart
// generation needs: resolved coordinates and a timezone identifier.
// Returns ErrIncompleteBirthData otherwise.
func RequireComplete(m *domain.BirthMoment) error {
	if m == nil {
		return ErrIncompleteBirthData
	}
	if m.Place.ResolvedTimezoneID == "" {
		return ErrIncompleteBirthData
	}
	if m.Place.City == "" {
		return ErrIncompleteBirthData
	}
	return nil
}

// parsePlace applies the comma-split heuristic to the free-text place
// name. Documented limitation: "City, State, Country" ordering is assumed;
// other conventions may mis-assign segments. This is accepted behavior,
// not corrected silently.
func parsePlace(raw RawBirthData) (domain.Place, error) {
	p := domain.Place{
		RawName:            raw.PlaceName,
		Country:            "Unknown",
		ResolvedTimezoneID: raw.TimezoneID,
	}
	if raw.HasCoordinates {
		p.Latitude = raw.Latitude
		p.Longitude = raw.Longitude
	}

	trimmed := strings.TrimSpace(raw.PlaceName)
	if trimmed == "" {
		// Place is optional; an absent place is not malformed.
		return p, nil
	}

	var segments []string
	for _, seg := range strings.Split(trimmed, ",") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return domain.Place{}, ErrMalformedPlaceName
	}

	p.City = segments[0]
	p.Country = segments[len(segments)-1]
	if len(segments) >= 3 {
		p.State = segments[len(segments)-2]
	}
	return p, nil
}

func validDate(year, month, day int) bool {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
