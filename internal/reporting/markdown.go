package reporting

import (
	"fmt"
	"strings"

	"astro-chart-lab/internal/domain"
)

// RenderMarkdown renders a chart bundle as a Markdown document.
func RenderMarkdown(b *domain.ChartBundle) string {
	var sb strings.Builder

	// Header
	name := b.Moment.FullName
	if name == "" {
		name = "Unnamed"
	}
	sb.WriteString(fmt.Sprintf("# Natal Chart: %s\n\n", name))
	sb.WriteString(fmt.Sprintf("Chart ID: `%s`\n\n", b.ChartID))

	// Birth data
	sb.WriteString("## Birth Data\n\n")
	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Born | %s |\n", birthLine(b.Moment)))
	if b.Moment.Place.RawName != "" {
		sb.WriteString(fmt.Sprintf("| Place | %s |\n", b.Moment.Place.RawName))
	}
	if b.Moment.Place.ResolvedTimezoneID != "" {
		sb.WriteString(fmt.Sprintf("| Timezone | %s |\n", b.Moment.Place.ResolvedTimezoneID))
	}
	sb.WriteString(fmt.Sprintf("| Julian Date | %.4f |\n", b.JulianDate))
	sb.WriteString(fmt.Sprintf("| Ayanamsa | %s (linear Lahiri approximation) |\n", FormatDegree(b.Ayanamsa)))
	sb.WriteString("\n")

	if !b.Moment.HasTime {
		sb.WriteString("**Birth time unknown.** Positions assume 00:00 local and are low-precision.\n\n")
	}

	// Positions
	sb.WriteString("## Sidereal Positions\n\n")
	sb.WriteString("| Planet | Longitude | Sign | Degree |\n")
	sb.WriteString("|--------|-----------|------|--------|\n")
	for _, p := range b.Positions {
		sb.WriteString(fmt.Sprintf("| %s | %.4f | %s | %s |\n",
			p.Planet, p.LongitudeDegrees, p.SignIndex, FormatDegree(p.DegreeInSign)))
	}
	sb.WriteString("\n")

	return sb.String()
}
