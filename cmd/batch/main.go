// Command batch runs one offline query batch: it loads a JSON document
// of base_requests/stat_requests from stdin (or --input), seals the
// transit network, answers every stat request, and writes the JSON
// response document to stdout (or --output). Grounded on
// cmd/preprocess/main.go's structured step logging and flag usage, and
// original_source/main.cpp's ReadSettings → ProcessModifyRequest →
// ProcessReadRequestsParallel → Save flow.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mlyundin/bus-db/pkg/busdoc"
	"github.com/mlyundin/bus-db/pkg/document"
)

func main() {
	input := flag.String("input", "", "Path to input JSON document (default: stdin)")
	output := flag.String("output", "", "Path to write the output JSON document (default: stdout)")
	flag.Parse()

	if err := run(*input, *output); err != nil {
		log.Fatalf("batch: %v", err)
	}
}

func run(inputPath, outputPath string) error {
	start := time.Now()

	in, err := readInput(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	log.Println("Decoding input document...")
	data, err := busdoc.Parse(in)
	if err != nil {
		return err
	}

	doc := document.New()
	log.Printf("Ingesting %d base requests...", len(data.BaseRequests))
	if err := busdoc.Ingest(doc, data); err != nil {
		return fmt.Errorf("ingesting base requests: %w", err)
	}
	numStops, numBuses := doc.Stats()
	log.Printf("Network sealed in %s: %d stops, %d buses", time.Since(start).Round(time.Millisecond), numStops, numBuses)
	reachable, total := doc.ConnectivityReport()
	log.Printf("Largest connected component: %d/%d stops reachable from some other stop", reachable, total)

	requests, err := busdoc.DecodeStatRequests(data)
	if err != nil {
		return fmt.Errorf("decoding stat requests: %w", err)
	}
	log.Printf("Answering %d stat requests...", len(requests))

	answerStart := time.Now()
	responses := busdoc.Answer(doc, requests)
	log.Printf("Answered in %s", time.Since(answerStart).Round(time.Millisecond))

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer closeOut()

	if err := busdoc.Write(out, responses); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	log.Printf("Done in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
