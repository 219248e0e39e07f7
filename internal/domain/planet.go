package domain

// Planet identifies a celestial body in a chart request.
type Planet string

const (
	PlanetSun     Planet = "SUN"
	PlanetMoon    Planet = "MOON"
	PlanetMercury Planet = "MERCURY"
	PlanetVenus   Planet = "VENUS"
	PlanetMars    Planet = "MARS"
	PlanetJupiter Planet = "JUPITER"
	PlanetSaturn  Planet = "SATURN"
	PlanetRahu    Planet = "RAHU"
	PlanetKetu    Planet = "KETU"
)

// DefaultPlanets is the canonical request order for a full natal chart.
// Chart positions are always emitted in this order.
var DefaultPlanets = []Planet{
	PlanetSun,
	PlanetMoon,
	PlanetMercury,
	PlanetVenus,
	PlanetMars,
	PlanetJupiter,
	PlanetSaturn,
	PlanetRahu,
	PlanetKetu,
}

// String returns the string representation of Planet.
func (p Planet) String() string {
	return string(p)
}

// IsValid checks if the planet is a known value.
func (p Planet) IsValid() bool {
	switch p {
	case PlanetSun, PlanetMoon, PlanetMercury, PlanetVenus, PlanetMars,
		PlanetJupiter, PlanetSaturn, PlanetRahu, PlanetKetu:
		return true
	}
	return false
}
