package domain

// TropicalPosition is an ecliptic longitude measured from the vernal
// equinox, as supplied by the ephemeris service. This system consumes
// tropical positions, it never computes them.
type TropicalPosition struct {
	Planet           Planet
	LongitudeDegrees float64 // [0, 360) from the ephemeris; the mapper normalizes regardless
}

// SiderealPosition is a tropical position shifted by the ayanamsa into the
// fixed-star zodiac and decomposed into (sign, degree-within-sign).
type SiderealPosition struct {
	Planet           Planet
	LongitudeDegrees float64    // normalized, [0, 360)
	SignIndex        ZodiacSign // 0..11, Aries=0
	DegreeInSign     float64    // [0, 30)
}
