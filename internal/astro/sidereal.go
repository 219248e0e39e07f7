package astro

import (
	"math"

	"astro-chart-lab/internal/domain"
)

// NormalizeLongitude maps any real longitude into [0, 360).
// Handles inputs far outside one revolution in either direction.
func NormalizeLongitude(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// A negative value within one ulp of zero rounds to exactly 360 after
	// the correction above; fold it back so the result stays in [0, 360).
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// SiderealLongitude shifts a tropical longitude by the ayanamsa and
// normalizes into [0, 360).
func SiderealLongitude(tropical, ayanamsa float64) float64 {
	return NormalizeLongitude(tropical - ayanamsa)
}

// SignDegree decomposes a normalized sidereal longitude into a zodiac sign
// index and the degree within that sign. For normalized input the
// invariants 0 <= sign <= 11 and 0 <= degreeInSign < 30 always hold, and
// sign*30 + degreeInSign reproduces the longitude.
func SignDegree(siderealLongitude float64) (sign domain.ZodiacSign, degreeInSign float64) {
	idx := int(math.Floor(siderealLongitude/domain.DegreesPerSign)) % 12
	sign = domain.ZodiacSign(idx)
	degreeInSign = siderealLongitude - float64(idx)*domain.DegreesPerSign
	return sign, degreeInSign
}

// ToSidereal converts ephemeris-supplied tropical positions into sidereal
// positions under a single ayanamsa value. Output order matches input
// order and planet names are carried through unchanged. Input longitudes
// outside [0, 360), including negative values, are normalized; the
// ephemeris contract promises [0, 360) but the mapper does not rely on it.
func ToSidereal(tropical []domain.TropicalPosition, ayanamsa float64) []domain.SiderealPosition {
	if len(tropical) == 0 {
		return nil
	}

	out := make([]domain.SiderealPosition, len(tropical))
	for i, tp := range tropical {
		lon := SiderealLongitude(tp.LongitudeDegrees, ayanamsa)
		sign, deg := SignDegree(lon)
		out[i] = domain.SiderealPosition{
			Planet:           tp.Planet,
			LongitudeDegrees: lon,
			SignIndex:        sign,
			DegreeInSign:     deg,
		}
	}
	return out
}
