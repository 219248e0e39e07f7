package domain

// TransitPoint is one sampled planetary longitude in the transit
// timeseries. Corresponds to transit_timeseries table in ClickHouse.
type TransitPoint struct {
	Planet            Planet
	TimestampMs       int64   // sample instant, Unix milliseconds UTC
	TropicalLongitude float64 // degrees, as supplied by the ephemeris
	SiderealLongitude float64 // degrees, normalized [0, 360)
}

// Supported transit sampling intervals (in seconds).
const (
	TransitInterval1Hour = 3600
	TransitInterval1Day  = 86400
)
