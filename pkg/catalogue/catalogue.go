// Package catalogue is the stop/bus entity store: the mutable ingestion
// side of the system, coupling three mappings — stop→location,
// stop→buses, (stop,stop)→road-distance — kept consistent as stops and
// buses are added in any order.
package catalogue

import (
	"sort"
	"sync"

	"github.com/mlyundin/bus-db/pkg/geo"
	"github.com/mlyundin/bus-db/pkg/route"
)

// NeighborDistance is one explicit road distance supplied alongside a
// stop, in the order it appeared in the input.
type NeighborDistance struct {
	Stop   string
	Meters float64
}

type stopEntry struct {
	location geo.Point
	hasLoc   bool
}

// Catalogue is the stop/bus entity store. The zero value is not usable;
// construct with New.
type Catalogue struct {
	stops map[string]*stopEntry
	buses map[string]*route.Route
	// stopBuses[stop] is nil only for a stop that has never been
	// referenced; GetStopBuses distinguishes that from a known stop
	// served by no bus (an allocated, empty set).
	stopBuses map[string]map[string]struct{}

	memoMu sync.RWMutex
	memo   map[string]map[string]float64
}

// New creates an empty Catalogue.
func New() *Catalogue {
	return &Catalogue{
		stops:     make(map[string]*stopEntry),
		buses:     make(map[string]*route.Route),
		stopBuses: make(map[string]map[string]struct{}),
		memo:      make(map[string]map[string]float64),
	}
}

func (c *Catalogue) ensureStop(name string) *stopEntry {
	e, ok := c.stops[name]
	if !ok {
		e = &stopEntry{}
		c.stops[name] = e
	}
	if _, ok := c.stopBuses[name]; !ok {
		c.stopBuses[name] = make(map[string]struct{})
	}
	return e
}

// AddStop upserts the stop's location and records its explicit
// neighbour distances. A neighbour stop not yet known is inserted with
// a zero location (to be filled in by its own later AddStop call).
// memo[name][neighbour] is always written; memo[neighbour][name] is
// written only if absent, so an explicit asymmetric override is never
// silently mirrored away.
func (c *Catalogue) AddStop(name string, location geo.Point, distances []NeighborDistance) {
	e := c.ensureStop(name)
	e.location = location
	e.hasLoc = true

	c.memoMu.Lock()
	defer c.memoMu.Unlock()

	if c.memo[name] == nil {
		c.memo[name] = make(map[string]float64)
	}
	for _, nd := range distances {
		c.ensureStop(nd.Stop)
		c.memo[name][nd.Stop] = nd.Meters

		if c.memo[nd.Stop] == nil {
			c.memo[nd.Stop] = make(map[string]float64)
		}
		if _, ok := c.memo[nd.Stop][name]; !ok {
			c.memo[nd.Stop][name] = nd.Meters
		}
	}
}

// AddBus registers a bus number with its route and indexes the route's
// unique stops into the reverse stop→buses map. Any stop the route
// mentions that was never explicitly added is registered with a zero
// location, the same neighbour-insertion rule AddStop applies.
func (c *Catalogue) AddBus(number string, r *route.Route) {
	c.buses[number] = r
	for _, s := range r.UniqueStops() {
		c.ensureStop(s)
		c.stopBuses[s][number] = struct{}{}
	}
}

// Location returns the stop's stored point and whether the stop is known.
func (c *Catalogue) Location(name string) (geo.Point, bool) {
	e, ok := c.stops[name]
	if !ok {
		return geo.Point{}, false
	}
	return e.location, true
}

// LineDistance is the haversine distance between two stops' stored
// points. Unknown stops yield 0.
func (c *Catalogue) LineDistance(a, b string) float64 {
	pa, ok := c.Location(a)
	if !ok {
		return 0
	}
	pb, ok := c.Location(b)
	if !ok {
		return 0
	}
	return geo.Haversine(pa, pb)
}

// Distance looks up the memoised road distance between a and b. On a
// miss for two known stops it computes the great-circle distance,
// caches it under memo[a][b] only (the reverse direction is left for
// its own future on-demand fill), and returns it. Unknown stops yield 0.
func (c *Catalogue) Distance(a, b string) float64 {
	c.memoMu.RLock()
	if d, ok := c.memo[a][b]; ok {
		c.memoMu.RUnlock()
		return d
	}
	c.memoMu.RUnlock()

	if _, ok := c.stops[a]; !ok {
		return 0
	}
	if _, ok := c.stops[b]; !ok {
		return 0
	}

	d := c.LineDistance(a, b)

	c.memoMu.Lock()
	if c.memo[a] == nil {
		c.memo[a] = make(map[string]float64)
	}
	if _, ok := c.memo[a][b]; !ok {
		c.memo[a][b] = d
	}
	c.memoMu.Unlock()

	return d
}

// GetBusRoute returns the bus's route, or ok=false if unknown.
func (c *Catalogue) GetBusRoute(number string) (*route.Route, bool) {
	r, ok := c.buses[number]
	return r, ok
}

// GetStopBuses returns the sorted bus numbers serving the stop, and
// ok=false if the stop itself is unknown — distinct from a known stop
// served by no bus (ok=true, empty slice).
func (c *Catalogue) GetStopBuses(name string) ([]string, bool) {
	set, ok := c.stopBuses[name]
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, true
}

// StopNames returns every known stop name, ascending.
func (c *Catalogue) StopNames() []string {
	names := make([]string, 0, len(c.stops))
	for n := range c.stops {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BusNumbers returns every known bus number, ascending.
func (c *Catalogue) BusNumbers() []string {
	names := make([]string, 0, len(c.buses))
	for n := range c.buses {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
