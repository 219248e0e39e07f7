// Package main computes a single natal chart from command-line birth data
// and prints it as Markdown or CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"astro-chart-lab/internal/birth"
	"astro-chart-lab/internal/ephemeris"
	"astro-chart-lab/internal/pipeline"
	"astro-chart-lab/internal/reporting"
	"astro-chart-lab/internal/storage/memory"
)

func main() {
	name := flag.String("name", "", "Full name")
	year := flag.Int("year", 0, "Birth year")
	month := flag.Int("month", 0, "Birth month (1-12)")
	day := flag.Int("day", 0, "Birth day")
	hour := flag.Int("hour", -1, "Birth hour (0-23), omit if unknown")
	minute := flag.Int("minute", 0, "Birth minute (0-59)")
	tzOffset := flag.Int("tz-offset", 0, "Timezone offset from UTC in minutes, east positive")
	place := flag.String("place", "", "Birth place, \"City, State, Country\"")
	lat := flag.Float64("lat", 0, "Latitude, north positive")
	lon := flag.Float64("lon", 0, "Longitude, east positive")
	tzID := flag.String("tz", "", "IANA timezone identifier, e.g. Asia/Kolkata")
	endpoint := flag.String("ephemeris-endpoint", os.Getenv("EPHEMERIS_ENDPOINT"), "Ephemeris service HTTP endpoint (omit to use fixture positions)")
	format := flag.String("format", "markdown", "Output format: markdown or csv")
	example := flag.Bool("example", false, "Render the illustrative example chart")

	flag.Parse()

	logger := log.New(os.Stderr, "[chart] ", log.LstdFlags)

	var raw birth.RawBirthData
	if *example {
		raw = pipeline.ExampleRawBirthData()
	} else {
		if *year == 0 || *month == 0 || *day == 0 {
			logger.Fatal("--year, --month and --day are required (or pass --example)")
		}
		raw = birth.RawBirthData{
			FullName:              *name,
			Year:                  *year,
			Month:                 *month,
			Day:                   *day,
			TimezoneOffsetMinutes: *tzOffset,
			PlaceName:             *place,
			Latitude:              *lat,
			Longitude:             *lon,
			TimezoneID:            *tzID,
			HasCoordinates:        *lat != 0 || *lon != 0,
		}
		if *hour >= 0 {
			raw.Hour = *hour
			raw.Minute = *minute
			raw.HasTime = true
		}
	}

	var client ephemeris.Client
	if *endpoint == "" {
		client = pipeline.ExampleEphemerisClient()
		logger.Println("No ephemeris endpoint configured, using fixture positions")
	} else {
		client = ephemeris.NewHTTPClient(*endpoint)
	}

	gen := pipeline.NewGenerator(client, memory.NewChartStore())
	bundle, err := gen.Generate(context.Background(), raw)
	if err != nil {
		logger.Fatalf("Chart generation failed: %v", err)
	}

	switch *format {
	case "markdown":
		fmt.Print(reporting.RenderMarkdown(bundle))
	case "csv":
		fmt.Print(reporting.RenderCSV(bundle))
	default:
		logger.Fatalf("Unknown format %q", *format)
	}
}
