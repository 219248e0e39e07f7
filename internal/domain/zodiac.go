package domain

// ZodiacSign is a sidereal zodiac sign index, Aries=0 through Pisces=11.
type ZodiacSign int

const (
	SignAries ZodiacSign = iota
	SignTaurus
	SignGemini
	SignCancer
	SignLeo
	SignVirgo
	SignLibra
	SignScorpio
	SignSagittarius
	SignCapricorn
	SignAquarius
	SignPisces
)

// signNames indexed by ZodiacSign.
var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// DegreesPerSign is the angular width of one zodiac sign.
const DegreesPerSign = 30.0

// String returns the sign name, or "Unknown" for an out-of-range index.
func (z ZodiacSign) String() string {
	if z < 0 || z > 11 {
		return "Unknown"
	}
	return signNames[z]
}

// IsValid checks if the sign index is within 0..11.
func (z ZodiacSign) IsValid() bool {
	return z >= 0 && z <= 11
}
