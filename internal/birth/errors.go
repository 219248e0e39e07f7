package birth

import "errors"

// Validation errors. All are pure-validation failures, distinct from the
// missing-external-data errors in internal/chart, so callers can choose
// different fallbacks for each class.
var (
	// ErrFutureBirthDate is returned when the birth date is later than
	// the current date.
	ErrFutureBirthDate = errors.New("birth date is in the future")

	// ErrBirthDateTooOld is returned when the birth date is more than
	// 120 years before the current date.
	ErrBirthDateTooOld = errors.New("birth date is more than 120 years ago")

	// ErrIncompleteBirthData is returned when a required coordinate or
	// timezone is missing and the caller requested full chart generation.
	ErrIncompleteBirthData = errors.New("incomplete birth data")

	// ErrMalformedPlaceName is returned when a place string is present
	// but yields no usable city segment.
	ErrMalformedPlaceName = errors.New("malformed place name")

	// ErrInvalidDate is returned when the calendar fields do not form a
	// real date (month 13, February 30, year 0).
	ErrInvalidDate = errors.New("invalid calendar date")
)
