// Command polyinfo summarizes an exported polygons file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"clickshapes/internal/logging"
	"clickshapes/internal/project"
	"clickshapes/pkg/geometry"

	"github.com/rs/zerolog"
)

func main() {
	path := flag.String("file", project.FileName("", ""), "Path to exported polygons file")
	wkt := flag.Bool("wkt", false, "Also print each polygon as WKT")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logging.NewConsole(level)

	polygons, err := project.ReadFile(*path)
	if err != nil {
		log.Error().Err(err).Str("file", *path).Msg("Failed to read polygons")
		os.Exit(1)
	}
	log.Debug().Int("count", len(polygons)).Msg("Loaded polygons")

	if invalid := report(os.Stdout, polygons, *wkt); invalid > 0 {
		os.Exit(2)
	}
}

// report prints one line per polygon and returns the number that fail validation.
func report(w io.Writer, polygons [][]geometry.Point2D, withWKT bool) int {
	fmt.Fprintf(w, "%d polygons\n", len(polygons))

	invalid := 0
	for i, points := range polygons {
		status := "ok"
		if err := geometry.Validate(points); err != nil {
			status = err.Error()
			invalid++
		}
		fmt.Fprintf(w, "[%d] vertices=%d area=%.2f perimeter=%.2f bbox=%s: %s\n",
			i, len(points), geometry.Area(points), geometry.Perimeter(points),
			geometry.BoundingBox(points), status)

		if withWKT {
			if text, err := geometry.WKT(points); err == nil {
				fmt.Fprintf(w, "    %s\n", text)
			}
		}
	}
	return invalid
}
