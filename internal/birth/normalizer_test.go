package birth

import (
	"errors"
	"testing"
	"time"

	"astro-chart-lab/internal/domain"
)

var now = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func validRaw() RawBirthData {
	return RawBirthData{
		FullName:              "Test Person",
		Year:                  1999,
		Month:                 12,
		Day:                   24,
		Hour:                  7,
		Minute:                0,
		HasTime:               true,
		TimezoneOffsetMinutes: 330,
		PlaceName:             "Chennai, Tamil Nadu, India",
		Latitude:              13.0827,
		Longitude:             80.2707,
		TimezoneID:            "Asia/Kolkata",
		HasCoordinates:        true,
	}
}

func TestNormalize_Valid(t *testing.T) {
	m, err := Normalize(validRaw(), now)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if m.FullName != "Test Person" {
		t.Errorf("FullName = %q", m.FullName)
	}
	if !m.HasTime || m.Hour != 7 || m.Minute != 0 {
		t.Errorf("time = %d:%d hasTime=%v, want 7:00 true", m.Hour, m.Minute, m.HasTime)
	}
	if m.Place.City != "Chennai" || m.Place.State != "Tamil Nadu" || m.Place.Country != "India" {
		t.Errorf("place = %+v", m.Place)
	}
}

func TestNormalize_FutureBirthDate(t *testing.T) {
	raw := validRaw()
	// One day in the future
	raw.Year, raw.Month, raw.Day = 2026, 8, 31

	_, err := Normalize(raw, now)
	if !errors.Is(err, ErrFutureBirthDate) {
		t.Errorf("expected ErrFutureBirthDate, got %v", err)
	}
}

func TestNormalize_TodayAccepted(t *testing.T) {
	raw := validRaw()
	raw.Year, raw.Month, raw.Day = 2026, 8, 30

	if _, err := Normalize(raw, now); err != nil {
		t.Errorf("birth today should be accepted, got %v", err)
	}
}

func TestNormalize_BirthDateTooOld(t *testing.T) {
	raw := validRaw()
	// 121 years ago
	raw.Year, raw.Month, raw.Day = 1905, 8, 29

	_, err := Normalize(raw, now)
	if !errors.Is(err, ErrBirthDateTooOld) {
		t.Errorf("expected ErrBirthDateTooOld, got %v", err)
	}

	// Exactly 120 years ago is still accepted
	raw.Year, raw.Month, raw.Day = 1906, 8, 30
	if _, err := Normalize(raw, now); err != nil {
		t.Errorf("120 years ago should be accepted, got %v", err)
	}
}

func TestNormalize_InvalidDates(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
	}{
		{"month 13", 1999, 13, 1},
		{"feb 30", 1999, 2, 30},
		{"day 0", 1999, 1, 0},
		{"year 0", 0, 1, 1},
		{"feb 29 non-leap", 1999, 2, 29},
	}

	for _, tt := range tests {
		raw := validRaw()
		raw.Year, raw.Month, raw.Day = tt.year, tt.month, tt.day
		if _, err := Normalize(raw, now); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("%s: expected ErrInvalidDate, got %v", tt.name, err)
		}
	}
}

func TestNormalize_MissingTimeDefaults(t *testing.T) {
	raw := validRaw()
	raw.HasTime = false
	raw.Hour, raw.Minute = 17, 45 // must be ignored

	m, err := Normalize(raw, now)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if m.HasTime || m.Hour != 0 || m.Minute != 0 {
		t.Errorf("missing time: got %d:%d hasTime=%v, want 0:00 false", m.Hour, m.Minute, m.HasTime)
	}
}

func TestParsePlace_Heuristic(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		city    string
		state   string
		country string
	}{
		{"city state country", "Chennai, Tamil Nadu, India", "Chennai", "Tamil Nadu", "India"},
		{"city country", "Paris, France", "Paris", "", "France"},
		{"city only", "Tokyo", "Tokyo", "", "Tokyo"},
		{"four segments", "Brooklyn, New York City, New York, USA", "Brooklyn", "New York", "USA"},
		{"empty segments dropped", " , Mumbai, , India, ", "Mumbai", "", "India"},
		{"whitespace trimmed", "  Oslo ,  Norway  ", "Oslo", "", "Norway"},
	}

	for _, tt := range tests {
		raw := validRaw()
		raw.PlaceName = tt.input

		m, err := Normalize(raw, now)
		if err != nil {
			t.Fatalf("%s: Normalize failed: %v", tt.name, err)
		}
		if m.Place.City != tt.city || m.Place.State != tt.state || m.Place.Country != tt.country {
			t.Errorf("%s: got city=%q state=%q country=%q, want %q/%q/%q",
				tt.name, m.Place.City, m.Place.State, m.Place.Country, tt.city, tt.state, tt.country)
		}
	}
}

func TestParsePlace_AbsentPlace(t *testing.T) {
	raw := validRaw()
	raw.PlaceName = ""

	m, err := Normalize(raw, now)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if m.Place.City != "" || m.Place.Country != "Unknown" {
		t.Errorf("absent place: got city=%q country=%q, want \"\"/Unknown", m.Place.City, m.Place.Country)
	}
}

func TestParsePlace_Malformed(t *testing.T) {
	raw := validRaw()
	raw.PlaceName = " , ,, "

	_, err := Normalize(raw, now)
	if !errors.Is(err, ErrMalformedPlaceName) {
		t.Errorf("expected ErrMalformedPlaceName, got %v", err)
	}
}

func TestRequireComplete(t *testing.T) {
	m, err := Normalize(validRaw(), now)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if err := RequireComplete(m); err != nil {
		t.Errorf("complete moment rejected: %v", err)
	}

	noTZ := *m
	noTZ.Place.ResolvedTimezoneID = ""
	if err := RequireComplete(&noTZ); !errors.Is(err, ErrIncompleteBirthData) {
		t.Errorf("expected ErrIncompleteBirthData, got %v", err)
	}

	if err := RequireComplete(nil); !errors.Is(err, ErrIncompleteBirthData) {
		t.Errorf("expected ErrIncompleteBirthData for nil, got %v", err)
	}
}

func TestBirthMoment_UTCConversion(t *testing.T) {
	m, err := Normalize(validRaw(), now)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	// 07:00 IST (+05:30) -> 01:30 UTC same day
	year, month, day, hour, minute := m.UTC()
	if year != 1999 || month != 12 || day != 24 || hour != 1 || minute != 30 {
		t.Errorf("UTC = %d-%d-%d %d:%d, want 1999-12-24 01:30", year, month, day, hour, minute)
	}
}

func TestBirthMoment_UTCCrossesDayBoundary(t *testing.T) {
	tests := []struct {
		name   string
		moment domain.BirthMoment
		year   int
		month  int
		day    int
		hour   int
		minute int
	}{
		{
			"east of greenwich rolls back",
			domain.BirthMoment{Year: 2000, Month: 1, Day: 1, Hour: 2, Minute: 0, TimezoneOffsetMinutes: 330},
			1999, 12, 31, 20, 30,
		},
		{
			"west of greenwich rolls forward",
			domain.BirthMoment{Year: 1999, Month: 12, Day: 31, Hour: 23, Minute: 0, TimezoneOffsetMinutes: -120},
			2000, 1, 1, 1, 0,
		},
		{
			"leap day boundary",
			domain.BirthMoment{Year: 2000, Month: 3, Day: 1, Hour: 1, Minute: 0, TimezoneOffsetMinutes: 330},
			2000, 2, 29, 19, 30,
		},
	}

	for _, tt := range tests {
		year, month, day, hour, minute := tt.moment.UTC()
		if year != tt.year || month != tt.month || day != tt.day || hour != tt.hour || minute != tt.minute {
			t.Errorf("%s: UTC = %d-%02d-%02d %02d:%02d, want %d-%02d-%02d %02d:%02d",
				tt.name, year, month, day, hour, minute, tt.year, tt.month, tt.day, tt.hour, tt.minute)
		}
	}
}
