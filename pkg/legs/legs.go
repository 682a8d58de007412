// Package legs decodes a recovered router path into the alternating
// WAIT/BUS legs a route query reports.
package legs

import (
	"fmt"

	"github.com/mlyundin/bus-db/pkg/router"
	"github.com/mlyundin/bus-db/pkg/transit"
)

// Type distinguishes a wait leg from a bus leg.
type Type int

const (
	WaitLeg Type = iota
	BusLeg
)

// Leg is one step of a decoded route: either waiting at a stop or
// riding a bus for some span of stops.
type Leg struct {
	Type     Type
	Weight   float64
	StopName string // set for WaitLeg
	Bus      string // set for BusLeg
	Span     int    // set for BusLeg
}

// Decode walks a route handle's edges and emits alternating WAIT/BUS
// legs, starting with WAIT. An empty handle (same-source query)
// decodes to no legs. Grounded on pkg/routing/unpack.go's edge-array
// walk, simplified since transit edges are never shortcuts.
func Decode(r *router.Router, g *transit.Graph, idx *transit.StopIndex, h *router.RouteHandle) []Leg {
	if h.EdgeCount == 0 {
		return nil
	}
	if h.EdgeCount < 2 {
		panic(fmt.Sprintf("legs: invariant violated: edge_count=%d on a non-trivial route", h.EdgeCount))
	}

	legs := make([]Leg, 0, h.EdgeCount)
	for i := 0; i < h.EdgeCount; i++ {
		eid, ok := r.GetRouteEdge(h.ID, i)
		if !ok {
			panic(fmt.Sprintf("legs: invariant violated: missing edge at position %d", i))
		}
		e := g.Edge(eid)

		if i%2 == 0 {
			if e.Kind != transit.Wait {
				panic(fmt.Sprintf("legs: invariant violated: expected WAIT at even position %d", i))
			}
			legs = append(legs, Leg{Type: WaitLeg, Weight: e.Weight, StopName: idx.StopAt(e.To)})
			continue
		}

		if e.Kind != transit.Travel {
			panic(fmt.Sprintf("legs: invariant violated: expected BUS at odd position %d", i))
		}
		legs = append(legs, Leg{Type: BusLeg, Weight: e.Weight, Bus: e.Bus, Span: e.Span})
	}
	return legs
}

// TotalWeight sums the leg weights — callers can use this to cross-
// check against the handle's own Weight, per the testable property
// that reported total_time equals the sum of its legs' time fields.
func TotalWeight(legs []Leg) float64 {
	var total float64
	for _, l := range legs {
		total += l.Weight
	}
	return total
}
