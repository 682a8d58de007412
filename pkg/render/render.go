// Package render turns a sealed catalogue and its buses into an SVG
// document: a uniform-grid coordinate projection followed by layered
// emission, plus a dimmed-background route overlay. Grounded on
// original_source/src/render_impl.h, which has no analogue in this
// codebase's teacher lineage — this is new domain logic.
package render

import (
	"github.com/mlyundin/bus-db/pkg/geo"
	"github.com/mlyundin/bus-db/pkg/route"
	"github.com/mlyundin/bus-db/pkg/svg"
)

// CatalogueView is the slice of *catalogue.Catalogue the renderer
// needs, named at the point of use so this package never imports
// catalogue directly.
type CatalogueView interface {
	StopNames() []string
	BusNumbers() []string
	GetBusRoute(number string) (*route.Route, bool)
	Location(name string) (geo.Point, bool)
	GetStopBuses(name string) ([]string, bool)
}

// LayerName identifies one of the four configured rendering layers.
type LayerName string

const (
	LayerBusLines   LayerName = "bus_lines"
	LayerBusLabels  LayerName = "bus_labels"
	LayerStopPoints LayerName = "stop_points"
	LayerStopLabels LayerName = "stop_labels"
)

// Settings is render_settings from the input document.
type Settings struct {
	Width, Height    float64
	Padding          float64
	StopRadius       float64
	LineWidth        float64
	UnderlayerWidth  float64
	OuterMargin      float64
	StopLabelFontSize int
	BusLabelFontSize  int
	StopLabelOffset  [2]float64
	BusLabelOffset   [2]float64
	UnderlayerColor  svg.Color
	ColorPalette     []svg.Color
	Layers           []LayerName
}

// busView is the projection-and-rendering-relevant slice of a bus's
// route: its realised stop sequence and shape-specific terminals.
type busView struct {
	name        string
	stops       []string
	first, last string
}

func collectBuses(cat CatalogueView) []busView {
	numbers := cat.BusNumbers()
	buses := make([]busView, 0, len(numbers))
	for _, number := range numbers {
		r, ok := cat.GetBusRoute(number)
		if !ok {
			continue
		}
		first, last := r.EdgeStops()
		buses = append(buses, busView{name: number, stops: r.Stops(), first: first, last: last})
	}
	return buses
}

// busColors assigns each bus a palette colour by walking buses in
// sorted-name order and cycling the configured palette.
func busColors(buses []busView, palette []svg.Color) map[string]svg.Color {
	colors := make(map[string]svg.Color, len(buses))
	if len(palette) == 0 {
		for _, b := range buses {
			colors[b.name] = svg.NoColor
		}
		return colors
	}
	for i, b := range buses {
		colors[b.name] = palette[i%len(palette)]
	}
	return colors
}
