package pipeline

import (
	"astro-chart-lab/internal/birth"
	"astro-chart-lab/internal/domain"
	"astro-chart-lab/internal/ephemeris/stub"
)

// Illustrative example profile shown by the UI before a real profile
// exists. It lives here as a fixture, never inside the algorithms.
//
// Birth 24 Dec 1999, 07:00 IST (+05:30) in Chennai: UTC 01:30, Julian
// Date 2451536.5625. The stub Sun longitude 271.7 deg tropical maps to
// roughly 247.86 deg sidereal, Sagittarius 7.86 deg, under the 1999
// ayanamsa of the linear model.
func ExampleRawBirthData() birth.RawBirthData {
	return birth.RawBirthData{
		FullName:              "Example Seeker",
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

// ExampleEphemerisClient returns a stub ephemeris loaded with tropical
// longitudes for the example profile's birth instant.
func ExampleEphemerisClient() *stub.Client {
	c := stub.NewClient()
	c.SetLongitude(domain.PlanetSun, 271.7)
	c.SetLongitude(domain.PlanetMoon, 145.2)
	c.SetLongitude(domain.PlanetMercury, 255.4)
	c.SetLongitude(domain.PlanetVenus, 230.9)
	c.SetLongitude(domain.PlanetMars, 326.1)
	c.SetLongitude(domain.PlanetJupiter, 28.3)
	c.SetLongitude(domain.PlanetSaturn, 40.5)
	c.SetLongitude(domain.PlanetRahu, 124.8)
	c.SetLongitude(domain.PlanetKetu, 304.8)
	return c
}
