package domain

// ChartBundle aggregates everything derived from one birth moment.
// Corresponds to chart_bundles table in PostgreSQL.
// Not persisted by the compute core itself; storage is the caller's cache,
// keyed by ChartID (a hash over the normalized birth fields).
type ChartBundle struct {
	ChartID     string // deterministic base58 hash, see internal/idhash
	Moment      BirthMoment
	JulianDate  float64 // UTC birth instant as a continuous day count
	Ayanamsa    float64 // degrees, linear Lahiri approximation for the birth year
	Positions   []SiderealPosition // one per requested planet, request order
	GeneratedAt int64              // Unix timestamp in milliseconds
}
