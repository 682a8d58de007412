// Package document is the facade gluing the catalogue, transit graph,
// router, and renderer into the two-phase ingest-then-query contract:
// AddStop/AddBus/SetRouteSettings/SetRenderSettings during ingestion,
// then BuildRoutes seals the network, after which GetBusRoute/
// GetStopBuses/GetRoute/BuildMap answer queries. Grounded on
// original_source/include/database.h and src/database.cpp, which plays
// the same role in the original system.
package document

import (
	"fmt"

	"github.com/mlyundin/bus-db/pkg/catalogue"
	"github.com/mlyundin/bus-db/pkg/geo"
	"github.com/mlyundin/bus-db/pkg/legs"
	"github.com/mlyundin/bus-db/pkg/render"
	"github.com/mlyundin/bus-db/pkg/route"
	"github.com/mlyundin/bus-db/pkg/router"
	"github.com/mlyundin/bus-db/pkg/svg"
	"github.com/mlyundin/bus-db/pkg/transit"
)

// BusStats is GetBusRoute's reporting shape.
type BusStats struct {
	StopCount       int
	UniqueStopCount int
	RouteLength     float64
	Curvature       float64
}

// RouteResult is GetRoute's reporting shape. TotalTime is -1 when the
// destination is unreachable (or the network hasn't been built yet).
type RouteResult struct {
	TotalTime float64
	Legs      []legs.Leg
	Overlay   string
}

// Document is the facade. The zero value is not usable; construct with New.
type Document struct {
	cat            *catalogue.Catalogue
	routeSettings  transit.RouteSettings
	renderSettings render.Settings
	hasRender      bool

	sealed bool
	graph  *transit.Graph
	idx    *transit.StopIndex
	router *router.Router
}

// New creates an empty Document, ready for ingestion.
func New() *Document {
	return &Document{cat: catalogue.New()}
}

func invariant(cond bool, format string, args ...interface{}) {
	if !cond {
		panic("document: invariant violated: " + fmt.Sprintf(format, args...))
	}
}

// AddStop ingests a stop's location and explicit neighbour distances.
func (d *Document) AddStop(name string, location geo.Point, distances []catalogue.NeighborDistance) {
	d.cat.AddStop(name, location, distances)
}

// AddBus ingests a bus's route.
func (d *Document) AddBus(number string, r *route.Route) {
	d.cat.AddBus(number, r)
}

// SetRouteSettings configures the wait-time/velocity pair BuildRoutes uses.
func (d *Document) SetRouteSettings(s transit.RouteSettings) {
	d.routeSettings = s
}

// SetRenderSettings configures the renderer. Until called, BuildMap and
// a route's overlay both produce an empty SVG document, per the
// "configuration-missing" failure mode.
func (d *Document) SetRenderSettings(s render.Settings) {
	d.renderSettings = s
	d.hasRender = true
}

// BuildRoutes seals the catalogue, builds the transit graph, and runs
// the all-pairs router. Idempotent: calling it again with unchanged
// ingested data rebuilds identical tables.
func (d *Document) BuildRoutes() {
	d.graph, d.idx = transit.Build(d.cat, d.routeSettings)
	d.router = router.Build(d.graph)
	d.sealed = true
}

// GetBusRoute reports a bus's stats, or ok=false if the bus is unknown.
func (d *Document) GetBusRoute(number string) (BusStats, bool) {
	r, ok := d.cat.GetBusRoute(number)
	if !ok {
		return BusStats{}, false
	}
	return BusStats{
		StopCount:       r.StopCount(),
		UniqueStopCount: r.UniqueStopCount(),
		RouteLength:     r.Distance(d.cat),
		Curvature:       r.Curvature(d.cat),
	}, true
}

// GetStopBuses reports the sorted bus numbers serving a stop. ok=false
// means the stop itself is unknown, distinct from a known stop served
// by no bus (ok=true, empty slice).
func (d *Document) GetStopBuses(name string) ([]string, bool) {
	return d.cat.GetStopBuses(name)
}

// GetRoute answers a fastest-route query. ok=false means unreachable
// (including: not yet built, or either stop unknown); TotalTime is -1
// in that case. from==to short-circuits to a zero-cost, zero-leg route
// with the full-map overlay (only the dim rectangle added) — this is a
// stop-name-level short-circuit, distinct from the router's own
// vertex-level from==to case, since a stop's "waiting" and "arrived"
// vertices are never the same vertex.
func (d *Document) GetRoute(from, to string) (RouteResult, bool) {
	if !d.sealed {
		return RouteResult{TotalTime: -1}, false
	}
	if _, ok := d.idx.StopToVertex[from]; !ok {
		return RouteResult{TotalTime: -1}, false
	}
	if _, ok := d.idx.StopToVertex[to]; !ok {
		return RouteResult{TotalTime: -1}, false
	}
	if from == to {
		return RouteResult{TotalTime: 0, Overlay: d.overlaySVG(nil, to)}, true
	}

	fromV, _ := d.idx.WaitVertex(from)
	toV, _ := d.idx.WaitVertex(to)

	h, ok := d.router.BuildRoute(fromV, toV)
	if !ok {
		return RouteResult{TotalTime: -1}, false
	}
	defer d.router.ReleaseRoute(h.ID)

	decoded := legs.Decode(d.router, d.graph, d.idx, h)
	invariant(approxEqual(legs.TotalWeight(decoded), h.Weight), "leg total %f != handle weight %f", legs.TotalWeight(decoded), h.Weight)

	return RouteResult{
		TotalTime: h.Weight,
		Legs:      decoded,
		Overlay:   d.overlaySVG(decoded, to),
	}, true
}

func approxEqual(a, b float64) bool {
	const eps = 1e-6
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func (d *Document) overlaySVG(decoded []legs.Leg, to string) string {
	if !d.hasRender {
		return svg.NewDocument().String()
	}
	return render.BuildOverlay(d.cat, d.renderSettings, decoded, to).String()
}

// BuildMap renders the full network. Before SetRenderSettings is
// called, it returns an empty document.
func (d *Document) BuildMap() *svg.Document {
	if !d.hasRender {
		return svg.NewDocument()
	}
	return render.BuildMap(d.cat, d.renderSettings)
}

// Stats reports the ingested stop and bus counts, for cmd/batch's
// startup log line.
func (d *Document) Stats() (numStops, numBuses int) {
	return len(d.cat.StopNames()), len(d.cat.BusNumbers())
}

// ConnectivityReport reports how many stops are reachable from each
// other through some chain of wait/travel edges, and the total stop
// count, for a startup diagnostic. Must be called after BuildRoutes;
// before that it reports 0/0.
func (d *Document) ConnectivityReport() (reachable, total int) {
	if !d.sealed {
		return 0, 0
	}
	return len(transit.LargestComponent(d.graph, d.idx)), len(d.cat.StopNames())
}
