// Command render loads a JSON document (base_requests plus
// render_settings) and writes a standalone SVG file: the full network
// map, or — when --from/--to are given — a single route's highlighted
// overlay. Grounded on cmd/batch/main.go's flag/logging style and
// pkg/document.Document's BuildMap/GetRoute; repurposed from
// cmd/visualize/main.go, the teacher's HTTP routing-comparison UI,
// which has no ORS/Google-API analogue in this domain.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mlyundin/bus-db/pkg/busdoc"
	"github.com/mlyundin/bus-db/pkg/document"
)

func main() {
	inputPath := flag.String("input", "", "Path to input JSON document (base_requests, render_settings)")
	outputPath := flag.String("output", "map.svg", "Path to write the rendered SVG file")
	from := flag.String("from", "", "Render only the route from this stop...")
	to := flag.String("to", "", "...to this stop, instead of the full network map")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: render --input <document.json> [--output map.svg] [--from stop --to stop]")
		os.Exit(1)
	}
	if (*from == "") != (*to == "") {
		fmt.Fprintln(os.Stderr, "render: --from and --to must be given together")
		os.Exit(1)
	}

	if err := run(*inputPath, *outputPath, *from, *to); err != nil {
		log.Fatalf("render: %v", err)
	}
}

func run(inputPath, outputPath, from, to string) error {
	start := time.Now()

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	in, err := busdoc.Parse(raw)
	if err != nil {
		return err
	}

	doc := document.New()
	log.Printf("Ingesting %d base requests...", len(in.BaseRequests))
	if err := busdoc.Ingest(doc, in); err != nil {
		return fmt.Errorf("ingesting base requests: %w", err)
	}

	var svgText string
	if from != "" {
		log.Printf("Rendering route %s -> %s...", from, to)
		result, ok := doc.GetRoute(from, to)
		if !ok {
			return fmt.Errorf("no route from %q to %q", from, to)
		}
		svgText = result.Overlay
	} else {
		log.Println("Rendering full network map...")
		svgText = doc.BuildMap().String()
	}

	if err := os.WriteFile(outputPath, []byte(svgText), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	log.Printf("Wrote %s in %s", outputPath, time.Since(start).Round(time.Millisecond))
	return nil
}
