package busdoc

import (
	"encoding/json"
	"fmt"

	"github.com/mlyundin/bus-db/pkg/catalogue"
	"github.com/mlyundin/bus-db/pkg/document"
	"github.com/mlyundin/bus-db/pkg/geo"
	"github.com/mlyundin/bus-db/pkg/render"
	"github.com/mlyundin/bus-db/pkg/route"
	"github.com/mlyundin/bus-db/pkg/transit"
)

// Parse decodes the root input document.
func Parse(data []byte) (*Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("busdoc: decode input: %w", err)
	}
	return &in, nil
}

// Ingest loads an Input's base_requests and settings into doc, then
// seals it with BuildRoutes. Grounded on main.cpp's ReadSettings +
// ProcessModifyRequest(modify_requests, db) followed by db.BuildRoutes().
func Ingest(doc *document.Document, in *Input) error {
	if in.RoutingSettings != nil {
		doc.SetRouteSettings(transit.RouteSettings{
			BusWaitTime:    float64(in.RoutingSettings.BusWaitTime),
			BusVelocityKmh: float64(in.RoutingSettings.BusVelocity),
		})
	}

	if in.RenderSettings != nil {
		settings, err := convertRenderSettings(in.RenderSettings)
		if err != nil {
			return err
		}
		doc.SetRenderSettings(settings)
	}

	// Processed strictly in file order, matching main.cpp's
	// ProcessModifyRequest loop: AddStop's location upsert is
	// idempotent, so a bus naming a stop before that stop's own entry
	// still ends up with the right location once the Stop request runs.
	for _, raw := range in.BaseRequests {
		var hdr requestHeader
		if err := json.Unmarshal(raw, &hdr); err != nil {
			return fmt.Errorf("busdoc: decode base_requests entry: %w", err)
		}
		switch hdr.Type {
		case "Stop":
			if err := ingestStop(doc, raw); err != nil {
				return err
			}
		case "Bus":
			if err := ingestBus(doc, raw); err != nil {
				return err
			}
		default:
			return fmt.Errorf("busdoc: unknown base_requests type %q", hdr.Type)
		}
	}

	doc.BuildRoutes()
	return nil
}

func ingestStop(doc *document.Document, raw json.RawMessage) error {
	var s stopModify
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("busdoc: decode Stop request: %w", err)
	}
	distances := make([]catalogue.NeighborDistance, 0, len(s.RoadDistances))
	for name, meters := range s.RoadDistances {
		distances = append(distances, catalogue.NeighborDistance{Stop: name, Meters: meters})
	}
	doc.AddStop(s.Name, geo.NewPoint(s.Latitude, s.Longitude), distances)
	return nil
}

func ingestBus(doc *document.Document, raw json.RawMessage) error {
	var b busModify
	if err := json.Unmarshal(raw, &b); err != nil {
		return fmt.Errorf("busdoc: decode Bus request: %w", err)
	}
	r, err := route.ParseStops(b.IsRoundtrip, b.Stops)
	if err != nil {
		return fmt.Errorf("busdoc: bus %q: %w", b.Name, err)
	}
	doc.AddBus(b.Name, r)
	return nil
}

// DecodeStatRequests normalizes stat_requests into StatRequest values.
func DecodeStatRequests(in *Input) ([]StatRequest, error) {
	out := make([]StatRequest, 0, len(in.StatRequests))
	for _, raw := range in.StatRequests {
		var h statHeader
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("busdoc: decode stat_requests entry: %w", err)
		}
		switch h.Type {
		case "Stop", "Bus":
			out = append(out, StatRequest{ID: h.ID, Type: h.Type, Name: h.Name})
		case "Route":
			out = append(out, StatRequest{ID: h.ID, Type: h.Type, From: h.From, To: h.To})
		case "Map":
			out = append(out, StatRequest{ID: h.ID, Type: h.Type})
		default:
			return nil, fmt.Errorf("busdoc: unknown stat_requests type %q", h.Type)
		}
	}
	return out, nil
}

func convertRenderSettings(s *RenderSettings) (render.Settings, error) {
	underlayer, err := render.ParseColor(s.UnderlayerColor)
	if err != nil {
		return render.Settings{}, err
	}
	palette, err := render.ParsePalette(s.ColorPalette)
	if err != nil {
		return render.Settings{}, err
	}
	layers := make([]render.LayerName, 0, len(s.Layers))
	for _, l := range s.Layers {
		layers = append(layers, render.LayerName(l))
	}
	return render.Settings{
		Width:             s.Width,
		Height:            s.Height,
		Padding:           s.Padding,
		StopRadius:        s.StopRadius,
		LineWidth:         s.LineWidth,
		UnderlayerWidth:   s.UnderlayerWidth,
		OuterMargin:       s.OuterMargin,
		StopLabelFontSize: s.StopLabelFontSize,
		BusLabelFontSize:  s.BusLabelFontSize,
		StopLabelOffset:   s.StopLabelOffset,
		BusLabelOffset:    s.BusLabelOffset,
		UnderlayerColor:   underlayer,
		ColorPalette:      palette,
		Layers:            layers,
	}, nil
}
