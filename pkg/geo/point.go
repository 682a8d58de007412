// Package geo provides the coordinate type and great-circle distance
// function shared by the catalogue, transit-graph builder, and renderer.
package geo

import "github.com/paulmach/orb"

// Point is a geographic coordinate in degrees.
type Point struct {
	coord orb.Point
}

// NewPoint builds a Point from latitude/longitude in degrees.
func NewPoint(lat, lon float64) Point {
	return Point{coord: orb.Point{lon, lat}}
}

// Lat returns the latitude in degrees.
func (p Point) Lat() float64 { return p.coord[1] }

// Lon returns the longitude in degrees.
func (p Point) Lon() float64 { return p.coord[0] }

// IsZero reports whether this is the zero-value point (latitude and
// longitude both 0) — the location a stop holds when it was referenced
// as a neighbour but never given its own location via AddStop.
func (p Point) IsZero() bool { return p.coord == orb.Point{} }
