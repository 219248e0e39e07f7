package domain

// Place is a structured birth location parsed from a free-text place name.
// City/State/Country come from a best-effort comma-split heuristic and are
// not guaranteed correct for every naming convention.
type Place struct {
	RawName            string  // original free-text input, e.g. "Chennai, Tamil Nadu, India"
	City               string  // first non-empty segment
	State              string  // second-to-last segment when three or more remain, else empty
	Country            string  // last non-empty segment, "Unknown" when none remain
	Latitude           float64 // decimal degrees, north positive
	Longitude          float64 // decimal degrees, east positive
	ResolvedTimezoneID string  // IANA identifier, e.g. "Asia/Kolkata"
}

// BirthMoment is a validated, unambiguous birth record.
// Corresponds to birth_profiles table in PostgreSQL.
// Immutable once submitted for chart generation except through explicit re-edit.
type BirthMoment struct {
	FullName string

	// Local calendar date of birth (proleptic Gregorian, year >= 1).
	Year  int
	Month int // 1..12
	Day   int // 1..31

	// Local wall-clock time of birth. When HasTime is false the time
	// defaults to 00:00 and downstream consumers must treat derived
	// values as low-precision.
	Hour    int // 0..23
	Minute  int // 0..59
	HasTime bool

	// Offset of local time from UTC in minutes, east positive
	// (e.g. +330 for IST).
	TimezoneOffsetMinutes int

	Place Place
}

// UTC returns the birth instant expressed as a UTC calendar date and
// fractional time, obtained by subtracting the timezone offset.
// The result feeds the Julian Date conversion, which requires UTC input.
func (b *BirthMoment) UTC() (year, month, day, hour, minute int) {
	totalMin := b.Hour*60 + b.Minute - b.TimezoneOffsetMinutes

	year, month, day = b.Year, b.Month, b.Day
	for totalMin < 0 {
		totalMin += 24 * 60
		year, month, day = previousDay(year, month, day)
	}
	for totalMin >= 24*60 {
		totalMin -= 24 * 60
		year, month, day = nextDay(year, month, day)
	}
	return year, month, day, totalMin / 60, totalMin % 60
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func previousDay(year, month, day int) (int, int, int) {
	day--
	if day < 1 {
		month--
		if month < 1 {
			month = 12
			year--
		}
		day = daysInMonth(year, month)
	}
	return year, month, day
}

func nextDay(year, month, day int) (int, int, int) {
	day++
	if day > daysInMonth(year, month) {
		day = 1
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return year, month, day
}
