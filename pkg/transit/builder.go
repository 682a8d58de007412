package transit

import "github.com/mlyundin/bus-db/pkg/route"

// RouteSettings configures wait cost and travel speed.
type RouteSettings struct {
	BusWaitTime    float64 // minutes
	BusVelocityKmh float64 // km/h
}

// CatalogueView is the slice of *catalogue.Catalogue the builder
// needs. A narrow interface at the point of use, so this package never
// imports the catalogue package.
type CatalogueView interface {
	StopNames() []string
	BusNumbers() []string
	GetBusRoute(number string) (*route.Route, bool)
	Distance(a, b string) float64
}

// StopIndex maps stop names to their dense vertex indices and back.
type StopIndex struct {
	StopToVertex map[string]uint32
	VertexToStop []string
	NumStops     uint32
}

// ArrivedVertex is stop i's "arrived" vertex (index i).
func (idx *StopIndex) ArrivedVertex(stop string) (uint32, bool) {
	v, ok := idx.StopToVertex[stop]
	return v, ok
}

// WaitVertex is stop i's "waiting" vertex (index i+|stops|).
func (idx *StopIndex) WaitVertex(stop string) (uint32, bool) {
	v, ok := idx.StopToVertex[stop]
	if !ok {
		return 0, false
	}
	return v + idx.NumStops, true
}

// StopAt returns the stop name for either an "arrived" or "waiting"
// vertex.
func (idx *StopIndex) StopAt(vertex uint32) string {
	if vertex >= idx.NumStops {
		vertex -= idx.NumStops
	}
	return idx.VertexToStop[vertex]
}

// IsWaitVertex reports whether vertex is a "waiting" (not "arrived") vertex.
func (idx *StopIndex) IsWaitVertex(vertex uint32) bool {
	return vertex >= idx.NumStops
}

type mergeCell struct {
	bus  string
	span int
	time float64
	set  bool
}

// Build runs the six-step construction: index assignment, wait edges,
// the |S|² edge-merge scratch table, append-edge, and hands back the
// sealed graph plus the stop index needed to decode paths later.
func Build(cat CatalogueView, settings RouteSettings) (*Graph, *StopIndex) {
	names := cat.StopNames()
	numStops := uint32(len(names))

	idx := &StopIndex{
		StopToVertex: make(map[string]uint32, numStops),
		VertexToStop: names,
		NumStops:     numStops,
	}
	for i, name := range names {
		idx.StopToVertex[name] = uint32(i)
	}

	g := NewGraph(2 * numStops)

	for i := uint32(0); i < numStops; i++ {
		g.AddEdge(Edge{From: i + numStops, To: i, Weight: settings.BusWaitTime, Kind: Wait})
	}

	cells := make([][]mergeCell, numStops)
	for i := range cells {
		cells[i] = make([]mergeCell, numStops)
	}

	for _, busNumber := range cat.BusNumbers() {
		r, ok := cat.GetBusRoute(busNumber)
		if !ok {
			continue
		}
		stops := r.Stops()
		for i := 0; i < len(stops); i++ {
			cumulative := 0.0
			for j := i + 1; j < len(stops); j++ {
				cumulative += cat.Distance(stops[j-1], stops[j])
				span := j - i
				travelTime := cumulative / settings.BusVelocityKmh / 1000 * 60

				u := idx.StopToVertex[stops[i]]
				v := idx.StopToVertex[stops[j]]
				cell := &cells[u][v]
				if !cell.set || travelTime < cell.time {
					*cell = mergeCell{bus: busNumber, span: span, time: travelTime, set: true}
				}
			}
		}
	}

	for u := uint32(0); u < numStops; u++ {
		for v := uint32(0); v < numStops; v++ {
			c := cells[u][v]
			if !c.set {
				continue
			}
			g.AddEdge(Edge{
				From:   u,
				To:     v + numStops,
				Weight: c.time,
				Kind:   Travel,
				Bus:    c.bus,
				Span:   c.span,
			})
		}
	}

	return g, idx
}
