package catalogue

import (
	"math"
	"testing"

	"github.com/mlyundin/bus-db/pkg/geo"
	"github.com/mlyundin/bus-db/pkg/route"
)

func TestAddStopNeighborInsertion(t *testing.T) {
	c := New()
	c.AddStop("A", geo.NewPoint(55.6, 37.6), []NeighborDistance{{Stop: "B", Meters: 1000}})

	if _, ok := c.Location("B"); !ok {
		t.Fatal("neighbour stop B should be auto-inserted")
	}
	if got := c.Distance("A", "B"); got != 1000 {
		t.Errorf("Distance(A,B) = %f, want 1000", got)
	}
	// B->A mirrors A->B since not yet set explicitly.
	if got := c.Distance("B", "A"); got != 1000 {
		t.Errorf("Distance(B,A) = %f, want 1000 (mirrored)", got)
	}
}

func TestAddStopAsymmetricOverride(t *testing.T) {
	c := New()
	c.AddStop("A", geo.NewPoint(55.6, 37.6), []NeighborDistance{{Stop: "B", Meters: 1000}})
	c.AddStop("B", geo.NewPoint(55.6, 37.7), []NeighborDistance{{Stop: "A", Meters: 1500}})

	if got := c.Distance("A", "B"); got != 1000 {
		t.Errorf("Distance(A,B) = %f, want 1000", got)
	}
	if got := c.Distance("B", "A"); got != 1500 {
		t.Errorf("Distance(B,A) = %f, want 1500 (explicit override preserved)", got)
	}
}

func TestDistanceFallsBackToGreatCircle(t *testing.T) {
	c := New()
	c.AddStop("A", geo.NewPoint(55.6, 37.6), nil)
	c.AddStop("B", geo.NewPoint(55.6, 37.7), nil)

	got := c.Distance("A", "B")
	want := geo.Haversine(geo.NewPoint(55.6, 37.6), geo.NewPoint(55.6, 37.7))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Distance(A,B) = %f, want %f", got, want)
	}
}

func TestDistanceUnknownStopsYieldZero(t *testing.T) {
	c := New()
	if got := c.Distance("ghost-a", "ghost-b"); got != 0 {
		t.Errorf("Distance() on unknown stops = %f, want 0", got)
	}
}

func TestAddBusIndexesStopBuses(t *testing.T) {
	c := New()
	r, err := route.ParseString("A - B")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	c.AddBus("B1", r)

	buses, ok := c.GetStopBuses("A")
	if !ok {
		t.Fatal("stop A should be known after AddBus")
	}
	if len(buses) != 1 || buses[0] != "B1" {
		t.Errorf("GetStopBuses(A) = %v, want [B1]", buses)
	}

	if _, ok := c.GetStopBuses("ghost"); ok {
		t.Error("GetStopBuses(ghost) should report unknown stop")
	}
}

func TestGetStopBusesKnownButUnserved(t *testing.T) {
	c := New()
	c.AddStop("A", geo.NewPoint(1, 1), nil)

	buses, ok := c.GetStopBuses("A")
	if !ok {
		t.Fatal("stop A should be known")
	}
	if len(buses) != 0 {
		t.Errorf("GetStopBuses(A) = %v, want empty slice", buses)
	}
}

func TestSortedIteration(t *testing.T) {
	c := New()
	c.AddStop("Charlie", geo.NewPoint(0, 0), nil)
	c.AddStop("Alpha", geo.NewPoint(0, 0), nil)
	c.AddStop("Bravo", geo.NewPoint(0, 0), nil)

	names := c.StopNames()
	want := []string{"Alpha", "Bravo", "Charlie"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("StopNames() = %v, want %v", names, want)
		}
	}
}
