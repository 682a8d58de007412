package api

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"sync/atomic"

	"github.com/mlyundin/bus-db/pkg/busdoc"
	"github.com/mlyundin/bus-db/pkg/document"
)

// Handlers holds the HTTP handlers. Each POST /api/v1/document call is
// self-contained: it ingests its own document into a fresh
// document.Document and seals it, mirroring cmd/batch's one-shot
// ingest-then-answer flow rather than keeping network state across
// requests. Only the request/answer counters persist between calls.
type Handlers struct {
	documentsProcessed   int64
	statRequestsAnswered int64
}

// NewHandlers creates a fresh set of handlers.
func NewHandlers() *Handlers {
	return &Handlers{}
}

// HandleDocument handles POST /api/v1/document.
func (h *Handlers) HandleDocument(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	in, err := busdoc.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_document")
		return
	}

	doc := document.New()
	if err := busdoc.Ingest(doc, in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_base_request")
		return
	}

	requests, err := busdoc.DecodeStatRequests(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_stat_request")
		return
	}

	responses := busdoc.Answer(doc, requests)

	atomic.AddInt64(&h.documentsProcessed, 1)
	atomic.AddInt64(&h.statRequestsAnswered, int64(len(requests)))

	w.Header().Set("Content-Type", "application/json")
	busdoc.Write(w, responses)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatsResponse{
		DocumentsProcessed:   atomic.LoadInt64(&h.documentsProcessed),
		StatRequestsAnswered: atomic.LoadInt64(&h.statRequestsAnswered),
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}
