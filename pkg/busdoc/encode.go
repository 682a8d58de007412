package busdoc

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strconv"
	"sync"

	"github.com/mlyundin/bus-db/pkg/document"
	"github.com/mlyundin/bus-db/pkg/legs"
	"github.com/mlyundin/bus-db/pkg/svg"
)

// Response is one stat_requests answer. Its shape depends on kind: an
// error response carries only ErrorMessage; every other field set is
// exclusive to one request type. MarshalJSON emits only the fields
// that apply, so a legitimate zero value (total_time: 0 on a
// same-source Route query) is never dropped the way a blanket
// `omitempty` struct would drop it.
type Response struct {
	kind responseKind

	RequestID int

	ErrorMessage string

	// Bus
	StopCount       int
	UniqueStopCount int
	RouteLength     json.Number
	Curvature       float64

	// Stop
	Buses []string

	// Route
	TotalTime float64
	Items     []RouteItem

	// Route, Map. Already backslash-escaped (svg.Escape) and
	// pre-quoted as a literal JSON string, since the SVG body must not
	// be run through encoding/json's own string escaper a second time.
	Map json.RawMessage
}

type responseKind int

const (
	kindError responseKind = iota
	kindBus
	kindStop
	kindRoute
	kindMap
)

// RouteItem is one WAIT or BUS leg in a Route response.
type RouteItem struct {
	Type      string  `json:"type"`
	Time      float64 `json:"time"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
}

// MarshalJSON emits the field subset appropriate to r.kind. HTML
// escaping is off here as well as in Write: json.Marshal would rewrite
// the SVG's '<', '>' and '&' before Write's encoder ever sees them.
func (r Response) MarshalJSON() ([]byte, error) {
	marshal := func(v interface{}) ([]byte, error) {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
	switch r.kind {
	case kindError:
		return marshal(struct {
			RequestID    int    `json:"request_id"`
			ErrorMessage string `json:"error_message"`
		}{r.RequestID, r.ErrorMessage})
	case kindBus:
		return marshal(struct {
			RequestID       int         `json:"request_id"`
			StopCount       int         `json:"stop_count"`
			UniqueStopCount int         `json:"unique_stop_count"`
			RouteLength     json.Number `json:"route_length"`
			Curvature       float64     `json:"curvature"`
		}{r.RequestID, r.StopCount, r.UniqueStopCount, r.RouteLength, r.Curvature})
	case kindStop:
		return marshal(struct {
			RequestID int      `json:"request_id"`
			Buses     []string `json:"buses"`
		}{r.RequestID, r.Buses})
	case kindRoute:
		return marshal(struct {
			RequestID int             `json:"request_id"`
			TotalTime float64         `json:"total_time"`
			Items     []RouteItem     `json:"items"`
			Map       json.RawMessage `json:"map"`
		}{r.RequestID, r.TotalTime, r.Items, r.Map})
	default: // kindMap
		return marshal(struct {
			RequestID int             `json:"request_id"`
			Map       json.RawMessage `json:"map"`
		}{r.RequestID, r.Map})
	}
}

// quotedSVG wraps an already-escaped SVG string as a literal JSON
// string value, bypassing encoding/json's own escaping.
func quotedSVG(escaped string) json.RawMessage {
	return json.RawMessage(`"` + escaped + `"`)
}

const notFound = "not found"

// Answer processes every stat request against doc. Independent
// requests are dispatched across a worker pool, paginated the way
// main.cpp's ProcessReadRequestsParallel splits requests across
// hardware_concurrency() goroutines, then results are reassembled in
// request order — parallel dispatch never changes a single query's
// deterministic answer (spec.md §5).
func Answer(doc *document.Document, requests []StatRequest) []Response {
	responses := make([]Response, len(requests))
	if len(requests) == 0 {
		return responses
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > len(requests) {
		workers = len(requests)
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				responses[i] = answerOne(doc, requests[i])
			}
		}()
	}
	for i := range requests {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return responses
}

func answerOne(doc *document.Document, req StatRequest) Response {
	switch req.Type {
	case "Bus":
		return answerBus(doc, req)
	case "Stop":
		return answerStop(doc, req)
	case "Route":
		return answerRoute(doc, req)
	case "Map":
		return answerMap(doc, req)
	default:
		return errorResponse(req.ID)
	}
}

func errorResponse(requestID int) Response {
	return Response{kind: kindError, RequestID: requestID, ErrorMessage: notFound}
}

func answerBus(doc *document.Document, req StatRequest) Response {
	stats, ok := doc.GetBusRoute(req.Name)
	if !ok {
		return errorResponse(req.ID)
	}
	return Response{
		kind:            kindBus,
		RequestID:       req.ID,
		StopCount:       stats.StopCount,
		UniqueStopCount: stats.UniqueStopCount,
		RouteLength:     routeLengthNumber(stats.RouteLength),
		Curvature:       stats.Curvature,
	}
}

// routeLengthNumber renders route_length as an integer literal when
// the distance is integral, otherwise as a float — matching route.cpp's
// `distance - int(distance) > 0 ? json[...] = distance : int(distance)`.
func routeLengthNumber(distance float64) json.Number {
	if distance == float64(int64(distance)) {
		return json.Number(strconv.FormatInt(int64(distance), 10))
	}
	return json.Number(strconv.FormatFloat(distance, 'g', -1, 64))
}

func answerStop(doc *document.Document, req StatRequest) Response {
	buses, ok := doc.GetStopBuses(req.Name)
	if !ok {
		return errorResponse(req.ID)
	}
	if buses == nil {
		buses = []string{}
	}
	return Response{kind: kindStop, RequestID: req.ID, Buses: buses}
}

func answerRoute(doc *document.Document, req StatRequest) Response {
	result, ok := doc.GetRoute(req.From, req.To)
	if !ok {
		return errorResponse(req.ID)
	}
	items := make([]RouteItem, 0, len(result.Legs))
	for _, l := range result.Legs {
		if l.Type == legs.WaitLeg {
			items = append(items, RouteItem{Type: "Wait", Time: l.Weight, StopName: l.StopName})
		} else {
			items = append(items, RouteItem{Type: "Bus", Time: l.Weight, Bus: l.Bus, SpanCount: l.Span})
		}
	}
	return Response{
		kind:      kindRoute,
		RequestID: req.ID,
		TotalTime: result.TotalTime,
		Items:     items,
		Map:       quotedSVG(svg.Escape(result.Overlay)),
	}
}

func answerMap(doc *document.Document, req StatRequest) Response {
	return Response{kind: kindMap, RequestID: req.ID, Map: quotedSVG(svg.Escape(doc.BuildMap().String()))}
}
