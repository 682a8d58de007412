package render

import (
	"github.com/mlyundin/bus-db/pkg/legs"
	"github.com/mlyundin/bus-db/pkg/svg"
)

// BuildOverlay draws a specific journey on top of a dimmed copy of the
// full network. destStop is the query's destination stop name, needed
// because the decoded legs only name the boarding/transfer stops
// (every WAIT leg's stop) — the final arrival never gets a trailing
// WAIT leg to name it.
func BuildOverlay(cat CatalogueView, cfg Settings, decodedLegs []legs.Leg, destStop string) *svg.Document {
	doc := svg.NewDocument()
	doc.AddRect(dimRect(cfg))

	if len(decodedLegs) == 0 {
		return doc
	}

	buses := collectBuses(cat)
	byName := make(map[string]busView, len(buses))
	for _, b := range buses {
		byName[b.name] = b
	}
	proj := project(cat, buses, cfg)
	colors := busColors(buses, cfg.ColorPalette)

	transferStops := waitStopNames(decodedLegs)
	boundary := append(append([]string(nil), transferStops...), destStop)

	var (
		polylines  []overlayLeg
		traversed  []string
		seenStop   = make(map[string]struct{})
		labelStops []labelSpot
	)
	busIdx := 0
	for _, l := range decodedLegs {
		if l.Type != legs.BusLeg {
			continue
		}
		from, to := boundary[busIdx], boundary[busIdx+1]
		busIdx++

		b := byName[l.Bus]
		window := findWindow(b.stops, from, to, l.Span)

		polylines = append(polylines, overlayLeg{bus: l.Bus, stops: window})
		for _, s := range window {
			if _, ok := seenStop[s]; !ok {
				seenStop[s] = struct{}{}
				traversed = append(traversed, s)
			}
		}

		if from == b.first || from == b.last {
			labelStops = append(labelStops, labelSpot{bus: l.Bus, stop: from})
		}
		if to == b.first || to == b.last {
			labelStops = append(labelStops, labelSpot{bus: l.Bus, stop: to})
		}
	}

	for _, layer := range cfg.Layers {
		switch layer {
		case LayerBusLines:
			for _, pl := range polylines {
				points := make([]svg.Point, 0, len(pl.stops))
				for _, s := range pl.stops {
					points = append(points, proj.points[s])
				}
				doc.AddPolyline(svg.Polyline{Points: points, Style: svg.Style{Fill: svg.NoColor, Stroke: colors[pl.bus], StrokeWidth: cfg.LineWidth}})
			}
		case LayerBusLabels:
			for _, spot := range labelStops {
				addBusLabel(doc, proj, colors[spot.bus], cfg, spot.bus, spot.stop)
			}
		case LayerStopPoints:
			renderStopPoints(doc, traversed, proj, cfg)
		case LayerStopLabels:
			renderStopLabels(doc, boundary, proj, cfg)
		}
	}

	return doc
}

type overlayLeg struct {
	bus   string
	stops []string
}

type labelSpot struct {
	bus, stop string
}

func dimRect(cfg Settings) svg.Rect {
	return svg.Rect{
		TopLeft:     svg.Point{X: -cfg.OuterMargin, Y: -cfg.OuterMargin},
		BottomRight: svg.Point{X: cfg.Width + cfg.OuterMargin, Y: cfg.Height + cfg.OuterMargin},
		Fill:        cfg.UnderlayerColor,
	}
}

func waitStopNames(decodedLegs []legs.Leg) []string {
	var names []string
	for _, l := range decodedLegs {
		if l.Type == legs.WaitLeg {
			names = append(names, l.StopName)
		}
	}
	return names
}

// findWindow locates the first contiguous run in stops of length
// span+1 starting at `from` and ending at `to`.
func findWindow(stops []string, from, to string, span int) []string {
	for i := 0; i+span < len(stops); i++ {
		if stops[i] == from && stops[i+span] == to {
			return stops[i : i+span+1]
		}
	}
	return nil
}
