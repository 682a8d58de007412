package render

import (
	"github.com/mlyundin/bus-db/pkg/svg"
)

// BuildMap renders the full network: every bus line, every bus
// terminal label, every stop point, every stop label — in the order
// configured by cfg.Layers.
func BuildMap(cat CatalogueView, cfg Settings) *svg.Document {
	buses := collectBuses(cat)
	proj := project(cat, buses, cfg)
	colors := busColors(buses, cfg.ColorPalette)

	doc := svg.NewDocument()
	for _, layer := range cfg.Layers {
		switch layer {
		case LayerBusLines:
			renderBusLines(doc, buses, proj, colors, cfg)
		case LayerBusLabels:
			renderBusLabels(doc, buses, proj, colors, cfg)
		case LayerStopPoints:
			renderStopPoints(doc, cat.StopNames(), proj, cfg)
		case LayerStopLabels:
			renderStopLabels(doc, cat.StopNames(), proj, cfg)
		}
	}
	return doc
}

func renderBusLines(doc *svg.Document, buses []busView, proj projection, colors map[string]svg.Color, cfg Settings) {
	for _, b := range buses {
		points := make([]svg.Point, 0, len(b.stops))
		for _, s := range b.stops {
			points = append(points, proj.points[s])
		}
		doc.AddPolyline(svg.Polyline{
			Points: points,
			Style: svg.Style{
				Fill:        svg.NoColor,
				Stroke:      colors[b.name],
				StrokeWidth: cfg.LineWidth,
			},
		})
	}
}

func renderBusLabels(doc *svg.Document, buses []busView, proj projection, colors map[string]svg.Color, cfg Settings) {
	for _, b := range buses {
		addBusLabel(doc, proj, colors[b.name], cfg, b.name, b.first)
		if b.last != b.first {
			addBusLabel(doc, proj, colors[b.name], cfg, b.name, b.last)
		}
	}
}

func addBusLabel(doc *svg.Document, proj projection, color svg.Color, cfg Settings, name, stop string) {
	pos := proj.points[stop]
	offset := svg.Point{X: cfg.BusLabelOffset[0], Y: cfg.BusLabelOffset[1]}

	doc.AddText(svg.Text{
		Pos: pos, Offset: offset, FontSize: cfg.BusLabelFontSize,
		FontFamily: "Verdana", FontWeight: "bold",
		Style: svg.Style{Fill: cfg.UnderlayerColor, Stroke: cfg.UnderlayerColor, StrokeWidth: cfg.UnderlayerWidth, LineCap: "round", LineJoin: "round"},
		Data:  name,
	})
	doc.AddText(svg.Text{
		Pos: pos, Offset: offset, FontSize: cfg.BusLabelFontSize,
		FontFamily: "Verdana", FontWeight: "bold",
		Style: svg.Style{Fill: color, Stroke: svg.NoColor},
		Data:  name,
	})
}

func renderStopPoints(doc *svg.Document, stops []string, proj projection, cfg Settings) {
	for _, s := range stops {
		doc.AddCircle(svg.Circle{
			Center: proj.points[s],
			Radius: cfg.StopRadius,
			Style:  svg.Style{Fill: svg.NamedColor("white"), Stroke: svg.NoColor},
		})
	}
}

func renderStopLabels(doc *svg.Document, stops []string, proj projection, cfg Settings) {
	for _, s := range stops {
		addStopLabel(doc, proj, cfg, s)
	}
}

func addStopLabel(doc *svg.Document, proj projection, cfg Settings, stop string) {
	pos := proj.points[stop]
	offset := svg.Point{X: cfg.StopLabelOffset[0], Y: cfg.StopLabelOffset[1]}

	doc.AddText(svg.Text{
		Pos: pos, Offset: offset, FontSize: cfg.StopLabelFontSize,
		FontFamily: "Verdana",
		Style:      svg.Style{Fill: cfg.UnderlayerColor, Stroke: cfg.UnderlayerColor, StrokeWidth: cfg.UnderlayerWidth, LineCap: "round", LineJoin: "round"},
		Data:       stop,
	})
	doc.AddText(svg.Text{
		Pos: pos, Offset: offset, FontSize: cfg.StopLabelFontSize,
		FontFamily: "Verdana",
		Style:      svg.Style{Fill: svg.NamedColor("black"), Stroke: svg.NoColor},
		Data:       stop,
	})
}
