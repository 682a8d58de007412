// Package legacy implements the count-prefixed plain-text line
// protocol: a secondary input/output surface with feature parity
// limited to Stop/Bus ingestion and Bus/Stop queries (no Route or Map
// requests — spec.md §9 treats this as by-design). Grounded on
// original_source/request.cpp's StopModifyRequest/BusModifyRequest/
// BusReadRequest/StopReadRequest and original_source/common.cpp's
// SplitTwo/ReadToken/ConvertToInt/ConvertToDouble tokenizer.
package legacy

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mlyundin/bus-db/pkg/catalogue"
	"github.com/mlyundin/bus-db/pkg/document"
	"github.com/mlyundin/bus-db/pkg/geo"
	"github.com/mlyundin/bus-db/pkg/route"
)

// splitTwo splits s on the first occurrence of delim, returning (s, "")
// the way common.cpp's SplitTwo does for an absent delimiter (the
// right half defaults to "").
func splitTwo(s, delim string) (string, string) {
	if idx := strings.Index(s, delim); idx >= 0 {
		return s[:idx], s[idx+len(delim):]
	}
	return s, ""
}

// readToken consumes and returns the token before delim, advancing *s
// past it — common.cpp's ReadToken.
func readToken(s *string, delim string) string {
	lhs, rhs := splitTwo(*s, delim)
	*s = rhs
	return lhs
}

// convertToInt parses str as a bare integer, rejecting trailing
// garbage — common.cpp's ConvertToInt.
func convertToInt(str string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return 0, fmt.Errorf("legacy: %q is not a valid integer", str)
	}
	return n, nil
}

// convertToDouble parses str as a bare float, rejecting trailing
// garbage — common.cpp's ConvertToDouble.
func convertToDouble(str string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("legacy: %q is not a valid number", str)
	}
	return f, nil
}

// ModifyRequest is one parsed Stop or Bus ingestion line.
type ModifyRequest struct {
	isStop    bool
	name      string
	location  geo.Point
	distances []catalogue.NeighborDistance
	route     *route.Route
}

// ParseModifyLine parses one base-request line: "Stop name: lat, lon,
// d1m to A, d2m to B" or "Bus name: s1 > s2 > …" / "Bus name: s1 - s2 - …".
func ParseModifyLine(line string) (ModifyRequest, error) {
	kind, rest := splitTwo(line, " ")
	switch kind {
	case "Stop":
		return parseStopLine(rest)
	case "Bus":
		return parseBusLine(rest)
	default:
		return ModifyRequest{}, fmt.Errorf("legacy: unknown request kind %q", kind)
	}
}

func parseStopLine(rest string) (ModifyRequest, error) {
	name := readToken(&rest, ": ")

	latStr := readToken(&rest, ", ")
	lat, err := convertToDouble(latStr)
	if err != nil {
		return ModifyRequest{}, err
	}
	lonStr := readToken(&rest, ", ")
	lon, err := convertToDouble(lonStr)
	if err != nil {
		return ModifyRequest{}, err
	}

	var distances []catalogue.NeighborDistance
	for rest != "" {
		entry := readToken(&rest, ", ")
		meters, err := convertToInt(readToken(&entry, "m to "))
		if err != nil {
			return ModifyRequest{}, err
		}
		distances = append(distances, catalogue.NeighborDistance{Stop: entry, Meters: float64(meters)})
	}

	return ModifyRequest{isStop: true, name: name, location: geo.NewPoint(lat, lon), distances: distances}, nil
}

func parseBusLine(rest string) (ModifyRequest, error) {
	name := readToken(&rest, ": ")
	r, err := route.ParseString(rest)
	if err != nil {
		return ModifyRequest{}, fmt.Errorf("legacy: bus %q: %w", name, err)
	}
	return ModifyRequest{isStop: false, name: name, route: r}, nil
}

// Apply ingests a parsed modify request into doc. Callers must call
// doc.BuildRoutes() once after applying every request.
func (m ModifyRequest) Apply(doc *document.Document) {
	if m.isStop {
		doc.AddStop(m.name, m.location, m.distances)
		return
	}
	doc.AddBus(m.name, m.route)
}

// ReadRequest is one parsed Bus or Stop query line.
type ReadRequest struct {
	isBus bool
	name  string
}

// ParseReadLine parses one stat-request line: "Bus name" or "Stop name".
func ParseReadLine(line string) (ReadRequest, error) {
	kind, name := splitTwo(line, " ")
	switch kind {
	case "Bus":
		return ReadRequest{isBus: true, name: name}, nil
	case "Stop":
		return ReadRequest{isBus: false, name: name}, nil
	default:
		return ReadRequest{}, fmt.Errorf("legacy: unknown request kind %q", kind)
	}
}

// Answer renders a read request's answer in the original text format:
// "Bus X: N stops on route, M unique stops, K route length, C curvature"
// or "not found"; "Stop X: buses A B …", "no buses", or "not found".
func (r ReadRequest) Answer(doc *document.Document) string {
	if r.isBus {
		stats, ok := doc.GetBusRoute(r.name)
		if !ok {
			return fmt.Sprintf("Bus %s: not found", r.name)
		}
		return fmt.Sprintf("Bus %s: %d stops on route, %d unique stops, %d route length, %v curvature",
			r.name, stats.StopCount, stats.UniqueStopCount, int(stats.RouteLength), stats.Curvature)
	}

	buses, ok := doc.GetStopBuses(r.name)
	if !ok {
		return fmt.Sprintf("Stop %s: not found", r.name)
	}
	if len(buses) == 0 {
		return fmt.Sprintf("Stop %s: no buses", r.name)
	}
	sorted := append([]string(nil), buses...)
	sort.Strings(sorted)
	return fmt.Sprintf("Stop %s: buses %s ", r.name, strings.Join(sorted, " "))
}

// ReadCountPrefixed reads a count line followed by that many request
// lines, parsing each with parseLine. A line that fails to parse is a
// malformed-input error surfaced to the caller, per spec.md §7.
func ReadCountPrefixed[T any](r *bufio.Reader, parseLine func(string) (T, error)) ([]T, error) {
	countLine, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("legacy: read count line: %w", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil {
		return nil, fmt.Errorf("legacy: invalid request count %q: %w", countLine, err)
	}

	requests := make([]T, 0, count)
	for i := 0; i < count; i++ {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("legacy: read request line %d: %w", i, err)
		}
		line = strings.TrimRight(line, "\r\n")
		req, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}
