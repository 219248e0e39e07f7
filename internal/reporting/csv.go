package reporting

import (
	"fmt"
	"strings"

	"astro-chart-lab/internal/domain"
)

// RenderCSV renders a bundle's sidereal positions as CSV string.
func RenderCSV(b *domain.ChartBundle) string {
	var sb strings.Builder

	// Header
	sb.WriteString("chart_id,planet,sidereal_longitude,sign_index,sign,degree_in_sign\n")

	// Rows
	for _, p := range b.Positions {
		sb.WriteString(fmt.Sprintf("%s,%s,%.6f,%d,%s,%.6f\n",
			b.ChartID,
			p.Planet,
			p.LongitudeDegrees,
			int(p.SignIndex),
			p.SignIndex,
			p.DegreeInSign,
		))
	}

	return sb.String()
}
