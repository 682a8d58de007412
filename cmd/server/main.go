// Command server serves POST /api/v1/document over HTTP: each request
// carries a full structured document (routing_settings, render_settings,
// base_requests, stat_requests), which is ingested into a fresh network
// and answered independently, the same one-shot contract cmd/batch runs
// over a file. Grounded on the teacher's cmd/server/main.go (flag
// setup, structured startup logging, graceful shutdown via
// pkg/api.ListenAndServe), repointed at pkg/api's document-processing
// handler instead of the preprocessed road graph.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mlyundin/bus-db/pkg/api"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	handlers := api.NewHandlers()
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
