// Package busdoc is the JSON document facade: it decodes the
// structured input document (routing_settings, render_settings,
// base_requests, stat_requests) into a document.Document, and encodes
// query results back into the structured output document. Grounded on
// original_source/src/request.cpp's BusData/StopData/RouteData/MapData
// toJsonObject() methods and original_source/main.cpp's top-level
// ReadSettings/ReadJsonRequests/ProcessModifyRequest flow.
package busdoc

import "encoding/json"

// Input is the root input document.
type Input struct {
	RoutingSettings *RoutingSettings `json:"routing_settings"`
	RenderSettings  *RenderSettings  `json:"render_settings"`
	BaseRequests    []json.RawMessage `json:"base_requests"`
	StatRequests    []json.RawMessage `json:"stat_requests"`
}

// RoutingSettings is routing_settings: wait time in minutes, velocity
// in km/h.
type RoutingSettings struct {
	BusWaitTime int `json:"bus_wait_time"`
	BusVelocity int `json:"bus_velocity"`
}

// RenderSettings is render_settings, verbatim from the input document.
// Colour fields stay untyped (json.RawMessage) since render_settings
// allows three shapes for a colour; render.ParseColor resolves them.
type RenderSettings struct {
	Width             float64           `json:"width"`
	Height            float64           `json:"height"`
	Padding           float64           `json:"padding"`
	StopRadius        float64           `json:"stop_radius"`
	LineWidth         float64           `json:"line_width"`
	UnderlayerWidth   float64           `json:"underlayer_width"`
	OuterMargin       float64           `json:"outer_margin"`
	StopLabelFontSize int               `json:"stop_label_font_size"`
	BusLabelFontSize  int               `json:"bus_label_font_size"`
	StopLabelOffset   [2]float64        `json:"stop_label_offset"`
	BusLabelOffset    [2]float64        `json:"bus_label_offset"`
	UnderlayerColor   interface{}       `json:"underlayer_color"`
	ColorPalette      []interface{}     `json:"color_palette"`
	Layers            []string          `json:"layers"`
}

// requestHeader peeks at a base/stat request's discriminant fields
// before unmarshalling the rest.
type requestHeader struct {
	Type string `json:"type"`
}

// stopModify is a base_requests entry with type "Stop".
type stopModify struct {
	Name           string             `json:"name"`
	Latitude       float64            `json:"latitude"`
	Longitude      float64            `json:"longitude"`
	RoadDistances  map[string]float64 `json:"road_distances"`
}

// busModify is a base_requests entry with type "Bus".
type busModify struct {
	Name        string   `json:"name"`
	IsRoundtrip bool     `json:"is_roundtrip"`
	Stops       []string `json:"stops"`
}

// StatRequest is one decoded stat_requests entry, normalized across
// its four possible types.
type StatRequest struct {
	ID   int
	Type string // "Stop", "Bus", "Route", "Map"
	Name string // Stop/Bus
	From string // Route
	To   string // Route
}

type statHeader struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}
