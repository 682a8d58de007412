package render

import (
	"sort"

	"github.com/mlyundin/bus-db/pkg/geo"
	"github.com/mlyundin/bus-db/pkg/svg"
)

// projection holds the canvas-space point assigned to every stop and
// is what BuildMap/BuildOverlay consume.
type projection struct {
	points map[string]svg.Point
}

// project implements §4.6.1's adjacency-based uniform compression:
// build route adjacency, pick pivot stops, geographically interpolate
// the rest, then independently sweep-assign each axis.
func project(cat CatalogueView, buses []busView, cfg Settings) projection {
	adj := buildAdjacency(buses)
	pivots := pivotStops(cat, buses)
	smoothed := smoothLocations(cat, buses, pivots)

	xIdx := sweepAxis(smoothed, adj, func(p geo.Point) float64 { return p.Lon() })
	yIdx := sweepAxis(smoothed, adj, func(p geo.Point) float64 { return p.Lat() })

	points := make(map[string]svg.Point, len(smoothed))
	xStep := axisStep(cfg.Width, cfg.Padding, maxIndex(xIdx))
	yStep := axisStep(cfg.Height, cfg.Padding, maxIndex(yIdx))
	for name := range smoothed {
		x := float64(xIdx[name])*xStep + cfg.Padding
		y := cfg.Height - cfg.Padding - float64(yIdx[name])*yStep
		points[name] = svg.Point{X: x, Y: y}
	}

	return projection{points: points}
}

func axisStep(dim, padding float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return (dim - 2*padding) / float64(n)
}

func maxIndex(idx map[string]int) int {
	m := 0
	for _, v := range idx {
		if v > m {
			m = v
		}
	}
	return m
}

// buildAdjacency relates two stops that are consecutive on at least one
// bus route (undirected).
func buildAdjacency(buses []busView) map[string]map[string]struct{} {
	adj := make(map[string]map[string]struct{})
	addEdge := func(a, b string) {
		if adj[a] == nil {
			adj[a] = make(map[string]struct{})
		}
		adj[a][b] = struct{}{}
	}
	for _, b := range buses {
		for i := 1; i < len(b.stops); i++ {
			addEdge(b.stops[i-1], b.stops[i])
			addEdge(b.stops[i], b.stops[i-1])
		}
	}
	return adj
}

// pivotStops selects the stops whose geographic position survives axis
// compression unsmoothed: route terminals, stops served by two or more
// distinct buses, and stops served by no bus at all. The original
// source tracks this with a counter where a first bus contributes +1
// and each subsequent distinct bus contributes +11, so ">2" selects
// multi-bus stops; checking "served by ≥2 distinct buses" directly is
// the same selection without reproducing that bookkeeping.
func pivotStops(cat CatalogueView, buses []busView) map[string]struct{} {
	pivots := make(map[string]struct{})
	for _, b := range buses {
		pivots[b.first] = struct{}{}
		pivots[b.last] = struct{}{}
	}
	for _, name := range cat.StopNames() {
		servingBuses, known := cat.GetStopBuses(name)
		if !known {
			continue
		}
		if len(servingBuses) >= 2 || len(servingBuses) == 0 {
			pivots[name] = struct{}{}
		}
	}
	return pivots
}

// smoothLocations returns, for every known stop, the location to use
// for axis compression: pivots keep their catalogue location; non-pivot
// stops between two pivots on a bus route are linearly interpolated
// between those pivots' geographic coordinates.
func smoothLocations(cat CatalogueView, buses []busView, pivots map[string]struct{}) map[string]geo.Point {
	smoothed := make(map[string]geo.Point)
	for _, name := range cat.StopNames() {
		if p, ok := cat.Location(name); ok {
			smoothed[name] = p
		}
	}

	for _, b := range buses {
		lastPivot := -1
		for i, name := range b.stops {
			if _, ok := pivots[name]; !ok {
				continue
			}
			if lastPivot >= 0 && i > lastPivot+1 {
				interpolateRun(b.stops, lastPivot, i, smoothed)
			}
			lastPivot = i
		}
	}
	return smoothed
}

func interpolateRun(stops []string, from, to int, smoothed map[string]geo.Point) {
	a := smoothed[stops[from]]
	b := smoothed[stops[to]]
	span := float64(to - from)
	for i := from + 1; i < to; i++ {
		t := float64(i-from) / span
		lat := a.Lat() + (b.Lat()-a.Lat())*t
		lon := a.Lon() + (b.Lon()-a.Lon())*t
		smoothed[stops[i]] = geo.NewPoint(lat, lon)
	}
}

// sweepAxis assigns a single-axis compression index to every stop:
// sort by the axis coordinate, then walk forward assigning
// idx[stop] = 1 + max(idx[neighbour]) over adjacent stops that sorted
// earlier, or 0 if none. Ties in the sort are broken by stop name for
// determinism.
func sweepAxis(locations map[string]geo.Point, adj map[string]map[string]struct{}, axis func(geo.Point) float64) map[string]int {
	names := make([]string, 0, len(locations))
	for name := range locations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := axis(locations[names[i]]), axis(locations[names[j]])
		if ci != cj {
			return ci < cj
		}
		return names[i] < names[j]
	})

	idx := make(map[string]int, len(names))
	for _, name := range names {
		best := -1
		for neighbor := range adj[name] {
			if v, ok := idx[neighbor]; ok && v > best {
				best = v
			}
		}
		idx[name] = best + 1
	}
	return idx
}
