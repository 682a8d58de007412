package document

import (
	"math"
	"testing"

	"github.com/mlyundin/bus-db/pkg/catalogue"
	"github.com/mlyundin/bus-db/pkg/geo"
	"github.com/mlyundin/bus-db/pkg/legs"
	"github.com/mlyundin/bus-db/pkg/render"
	"github.com/mlyundin/bus-db/pkg/route"
	"github.com/mlyundin/bus-db/pkg/svg"
	"github.com/mlyundin/bus-db/pkg/transit"
)

func approx(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %f, want %f", name, got, want)
	}
}

func mustRoute(t *testing.T, isRoundtrip bool, stops ...string) *route.Route {
	t.Helper()
	r, err := route.ParseStops(isRoundtrip, stops)
	if err != nil {
		t.Fatalf("route.ParseStops: %v", err)
	}
	return r
}

// TestTwoStopTwoWayBus exercises spec scenario 1: two stops, one
// two-way bus.
func TestTwoStopTwoWayBus(t *testing.T) {
	d := New()
	a, b := geo.NewPoint(55.6, 37.6), geo.NewPoint(55.6, 37.7)
	d.AddStop("A", a, []catalogue.NeighborDistance{{Stop: "B", Meters: 1000}})
	d.AddStop("B", b, []catalogue.NeighborDistance{{Stop: "A", Meters: 1000}})
	d.AddBus("B1", mustRoute(t, false, "A", "B"))
	d.SetRouteSettings(transit.RouteSettings{BusWaitTime: 6, BusVelocityKmh: 60})
	d.BuildRoutes()

	stats, ok := d.GetBusRoute("B1")
	if !ok {
		t.Fatal("expected bus B1 to be known")
	}
	if stats.StopCount != 3 {
		t.Errorf("StopCount = %d, want 3", stats.StopCount)
	}
	if stats.UniqueStopCount != 2 {
		t.Errorf("UniqueStopCount = %d, want 2", stats.UniqueStopCount)
	}
	approx(t, "RouteLength", stats.RouteLength, 2000, 1e-9)

	hav := geo.Haversine(a, b)
	wantCurvature := 2000 / (2 * hav)
	approx(t, "Curvature", stats.Curvature, wantCurvature, 1e-9)

	result, ok := d.GetRoute("A", "B")
	if !ok {
		t.Fatal("expected A->B to be reachable")
	}
	wantTime := 6.0 + 1000.0/60/1000*60
	approx(t, "TotalTime", result.TotalTime, wantTime, 1e-9)
	if len(result.Legs) != 2 {
		t.Fatalf("len(Legs) = %d, want 2", len(result.Legs))
	}
	if result.Legs[0].Type != legs.WaitLeg || result.Legs[0].StopName != "A" {
		t.Errorf("leg 0 = %+v, want WAIT@A", result.Legs[0])
	}
	if result.Legs[1].Type != legs.BusLeg || result.Legs[1].Bus != "B1" || result.Legs[1].Span != 1 {
		t.Errorf("leg 1 = %+v, want BUS B1 span=1", result.Legs[1])
	}
}

// TestAsymmetricDistances exercises spec scenario 2: explicit,
// different distances in each direction.
func TestAsymmetricDistances(t *testing.T) {
	d := New()
	d.AddStop("A", geo.NewPoint(55.6, 37.6), []catalogue.NeighborDistance{{Stop: "B", Meters: 1000}})
	d.AddStop("B", geo.NewPoint(55.6, 37.7), []catalogue.NeighborDistance{{Stop: "A", Meters: 1500}})
	d.AddBus("B1", mustRoute(t, false, "A", "B"))
	d.SetRouteSettings(transit.RouteSettings{BusWaitTime: 6, BusVelocityKmh: 60})
	d.BuildRoutes()

	stats, ok := d.GetBusRoute("B1")
	if !ok {
		t.Fatal("expected bus B1 to be known")
	}
	approx(t, "RouteLength", stats.RouteLength, 2500, 1e-9)
}

// TestTransferShortestPath exercises spec scenario 3: A-B-C via two
// buses, requiring a transfer.
func TestTransferShortestPath(t *testing.T) {
	d := New()
	d.AddStop("A", geo.NewPoint(55.70, 37.60), nil)
	d.AddStop("B", geo.NewPoint(55.71, 37.61), nil)
	d.AddStop("C", geo.NewPoint(55.72, 37.62), nil)
	d.AddBus("bus1", mustRoute(t, false, "A", "B"))
	d.AddBus("bus2", mustRoute(t, false, "B", "C"))
	d.SetRouteSettings(transit.RouteSettings{BusWaitTime: 5, BusVelocityKmh: 40})
	d.BuildRoutes()

	result, ok := d.GetRoute("A", "C")
	if !ok {
		t.Fatal("expected A->C to be reachable")
	}
	if len(result.Legs) != 4 {
		t.Fatalf("len(Legs) = %d, want 4", len(result.Legs))
	}
	wantTypes := []legs.Type{legs.WaitLeg, legs.BusLeg, legs.WaitLeg, legs.BusLeg}
	for i, want := range wantTypes {
		if result.Legs[i].Type != want {
			t.Errorf("leg %d type = %v, want %v", i, result.Legs[i].Type, want)
		}
	}
	if result.Legs[1].Bus != "bus1" || result.Legs[3].Bus != "bus2" {
		t.Errorf("unexpected bus assignment: %+v", result.Legs)
	}
	approx(t, "TotalTime", result.TotalTime, legs.TotalWeight(result.Legs), 1e-9)
}

// TestSameSourceRoute exercises spec scenario 4.
func TestSameSourceRoute(t *testing.T) {
	d := New()
	d.AddStop("A", geo.NewPoint(55.6, 37.6), nil)
	d.SetRouteSettings(transit.RouteSettings{BusWaitTime: 6, BusVelocityKmh: 60})
	d.SetRenderSettings(render.Settings{
		Width: 100, Height: 100, OuterMargin: 10,
		UnderlayerColor: svg.RGBAColor(255, 255, 255, 0.8),
	})
	d.BuildRoutes()

	result, ok := d.GetRoute("A", "A")
	if !ok {
		t.Fatal("same-source route should always be reachable")
	}
	if result.TotalTime != 0 {
		t.Errorf("TotalTime = %f, want 0", result.TotalTime)
	}
	if len(result.Legs) != 0 {
		t.Errorf("len(Legs) = %d, want 0", len(result.Legs))
	}
	want := `<?xml version="1.0" encoding="UTF-8" ?><svg xmlns="http://www.w3.org/2000/svg" version="1.1">` +
		`<rect x="-10" y="-10" width="120" height="120" fill="rgba(255,255,255,0.8)"/></svg>`
	if result.Overlay != want {
		t.Errorf("Overlay = %q, want %q", result.Overlay, want)
	}
}

// TestRoundtripBus exercises spec scenario 6.
func TestRoundtripBus(t *testing.T) {
	d := New()
	d.AddStop("A", geo.NewPoint(55.60, 37.60), []catalogue.NeighborDistance{{Stop: "B", Meters: 500}})
	d.AddStop("B", geo.NewPoint(55.61, 37.61), []catalogue.NeighborDistance{{Stop: "C", Meters: 500}})
	d.AddStop("C", geo.NewPoint(55.62, 37.62), []catalogue.NeighborDistance{{Stop: "A", Meters: 500}})
	d.AddBus("R", mustRoute(t, true, "A", "B", "C", "A"))
	d.SetRouteSettings(transit.RouteSettings{BusWaitTime: 5, BusVelocityKmh: 30})
	d.BuildRoutes()

	r, ok := d.cat.GetBusRoute("R")
	if !ok {
		t.Fatal("expected bus R")
	}
	first, last := r.EdgeStops()
	if first != "A" || last != "A" {
		t.Errorf("EdgeStops = (%s,%s), want (A,A)", first, last)
	}

	stats, ok := d.GetBusRoute("R")
	if !ok {
		t.Fatal("expected bus R stats")
	}
	if stats.StopCount != 4 {
		t.Errorf("StopCount = %d, want 4", stats.StopCount)
	}
	if stats.UniqueStopCount != 3 {
		t.Errorf("UniqueStopCount = %d, want 3", stats.UniqueStopCount)
	}
}

func TestGetRouteBeforeBuildIsUnreachable(t *testing.T) {
	d := New()
	d.AddStop("A", geo.NewPoint(55.6, 37.6), nil)
	result, ok := d.GetRoute("A", "A")
	if ok {
		t.Fatal("expected unreachable before BuildRoutes")
	}
	if result.TotalTime != -1 {
		t.Errorf("TotalTime = %f, want -1", result.TotalTime)
	}
}

func TestBuildMapWithoutRenderSettingsIsEmpty(t *testing.T) {
	d := New()
	d.AddStop("A", geo.NewPoint(55.6, 37.6), nil)
	d.BuildRoutes()

	doc := d.BuildMap()
	want := `<?xml version="1.0" encoding="UTF-8" ?><svg xmlns="http://www.w3.org/2000/svg" version="1.1"></svg>`
	if got := doc.String(); got != want {
		t.Errorf("BuildMap() without render settings = %q, want %q", got, want)
	}
}

func TestGetBusRouteUnknown(t *testing.T) {
	d := New()
	d.BuildRoutes()
	if _, ok := d.GetBusRoute("nope"); ok {
		t.Error("expected unknown bus to report ok=false")
	}
}

func TestGetStopBusesUnknownVsUnserved(t *testing.T) {
	d := New()
	d.AddStop("A", geo.NewPoint(55.6, 37.6), nil)
	d.BuildRoutes()

	if _, ok := d.GetStopBuses("ghost"); ok {
		t.Error("expected an unknown stop to report ok=false")
	}
	buses, ok := d.GetStopBuses("A")
	if !ok {
		t.Fatal("expected known stop A to report ok=true")
	}
	if len(buses) != 0 {
		t.Errorf("buses = %v, want empty", buses)
	}
}
