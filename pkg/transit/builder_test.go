package transit

import (
	"math"
	"testing"

	"github.com/mlyundin/bus-db/pkg/route"
)

// fakeCatalogue is a tiny stand-in for *catalogue.Catalogue used to
// exercise the builder without pulling in the whole package.
type fakeCatalogue struct {
	stopNames []string
	busNames  []string
	routes    map[string]*route.Route
	distances map[[2]string]float64
}

func (f *fakeCatalogue) StopNames() []string { return f.stopNames }
func (f *fakeCatalogue) BusNumbers() []string { return f.busNames }
func (f *fakeCatalogue) GetBusRoute(number string) (*route.Route, bool) {
	r, ok := f.routes[number]
	return r, ok
}
func (f *fakeCatalogue) Distance(a, b string) float64 { return f.distances[[2]string{a, b}] }

func newTwoStopCatalogue(t *testing.T) *fakeCatalogue {
	t.Helper()
	r, err := route.ParseString("A - B")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return &fakeCatalogue{
		stopNames: []string{"A", "B"},
		busNames:  []string{"B1"},
		routes:    map[string]*route.Route{"B1": r},
		distances: map[[2]string]float64{
			{"A", "B"}: 1000,
			{"B", "A"}: 1000,
		},
	}
}

func TestBuildWaitEdges(t *testing.T) {
	cat := newTwoStopCatalogue(t)
	g, idx := Build(cat, RouteSettings{BusWaitTime: 6, BusVelocityKmh: 60})

	if g.NumVertices != 4 {
		t.Fatalf("NumVertices = %d, want 4", g.NumVertices)
	}

	waitA, _ := idx.WaitVertex("A")
	arrivedA, _ := idx.ArrivedVertex("A")
	found := false
	for _, eid := range g.EdgesFrom(waitA) {
		e := g.Edge(eid)
		if e.Kind == Wait && e.To == arrivedA && e.Weight == 6 {
			found = true
		}
	}
	if !found {
		t.Error("expected a wait edge waitA -> arrivedA with weight 6")
	}
}

func TestBuildTravelEdgeWeight(t *testing.T) {
	cat := newTwoStopCatalogue(t)
	g, idx := Build(cat, RouteSettings{BusWaitTime: 6, BusVelocityKmh: 60})

	arrivedA, _ := idx.ArrivedVertex("A")
	waitB, _ := idx.WaitVertex("B")

	var travel *Edge
	for _, eid := range g.EdgesFrom(arrivedA) {
		e := g.Edge(eid)
		if e.Kind == Travel && e.To == waitB {
			ec := e
			travel = &ec
		}
	}
	if travel == nil {
		t.Fatal("expected a travel edge arrivedA -> waitB")
	}
	want := 1000.0 / 60 / 1000 * 60 // 1 minute
	if math.Abs(travel.Weight-want) > 1e-9 {
		t.Errorf("travel weight = %f, want %f", travel.Weight, want)
	}
	if travel.Bus != "B1" || travel.Span != 1 {
		t.Errorf("travel edge bus/span = %s/%d, want B1/1", travel.Bus, travel.Span)
	}
}

func TestBuildEdgeMergeKeepsMinimum(t *testing.T) {
	rAB, _ := route.ParseString("A - B")
	rABslow, _ := route.ParseStops(false, []string{"A", "X", "B"})

	cat := &fakeCatalogue{
		stopNames: []string{"A", "B", "X"},
		busNames:  []string{"fast", "slow"},
		routes:    map[string]*route.Route{"fast": rAB, "slow": rABslow},
		distances: map[[2]string]float64{
			{"A", "B"}: 600,
			{"B", "A"}: 600,
			{"A", "X"}: 600,
			{"X", "A"}: 600,
			{"X", "B"}: 600,
			{"B", "X"}: 600,
		},
	}

	g, idx := Build(cat, RouteSettings{BusWaitTime: 1, BusVelocityKmh: 60})

	arrivedA, _ := idx.ArrivedVertex("A")
	waitB, _ := idx.WaitVertex("B")

	var winner *Edge
	count := 0
	for _, eid := range g.EdgesFrom(arrivedA) {
		e := g.Edge(eid)
		if e.Kind == Travel && e.To == waitB {
			count++
			ec := e
			winner = &ec
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one merged travel edge A->B, got %d", count)
	}
	if winner.Bus != "fast" {
		t.Errorf("winning bus = %s, want fast (600m direct beats 1200m via X)", winner.Bus)
	}
}
