package legacy

import (
	"bufio"
	"strings"
	"testing"

	"github.com/mlyundin/bus-db/pkg/document"
	"github.com/mlyundin/bus-db/pkg/transit"
)

func TestParseStopLine(t *testing.T) {
	req, err := ParseModifyLine("Stop Tolstopaltsevo: 55.611087, 37.20829, 3000m to Marushkino")
	if err != nil {
		t.Fatalf("ParseModifyLine: %v", err)
	}
	if !req.isStop || req.name != "Tolstopaltsevo" {
		t.Fatalf("got %+v", req)
	}
	if len(req.distances) != 1 || req.distances[0].Stop != "Marushkino" || req.distances[0].Meters != 3000 {
		t.Fatalf("distances = %+v", req.distances)
	}
}

func TestParseBusLineRoundtrip(t *testing.T) {
	req, err := ParseModifyLine("Bus 256: Biryulyovo Zapadnoye > Biryusinka > Biryulyovo Zapadnoye")
	if err != nil {
		t.Fatalf("ParseModifyLine: %v", err)
	}
	if req.isStop || req.route.StopCount() != 3 {
		t.Fatalf("got %+v", req)
	}
}

func TestConvertToIntRejectsTrailingGarbage(t *testing.T) {
	if _, err := convertToInt("12x"); err == nil {
		t.Fatal("expected error on trailing garbage")
	}
}

func TestEndToEnd(t *testing.T) {
	doc := document.New()
	doc.SetRouteSettings(transit.RouteSettings{BusWaitTime: 6, BusVelocityKmh: 60})

	modifyInput := "2\n" +
		"Stop A: 55.6, 37.6, 1000m to B\n" +
		"Bus B1: A - B\n"
	r := bufio.NewReader(strings.NewReader(modifyInput))
	modifies, err := ReadCountPrefixed(r, ParseModifyLine)
	if err != nil {
		t.Fatalf("ReadCountPrefixed modify: %v", err)
	}
	for _, m := range modifies {
		m.Apply(doc)
	}
	doc.BuildRoutes()

	readInput := "2\nBus B1\nStop Nowhere\n"
	r2 := bufio.NewReader(strings.NewReader(readInput))
	reads, err := ReadCountPrefixed(r2, ParseReadLine)
	if err != nil {
		t.Fatalf("ReadCountPrefixed read: %v", err)
	}
	if len(reads) != 2 {
		t.Fatalf("got %d read requests, want 2", len(reads))
	}
	if got := reads[0].Answer(doc); !strings.HasPrefix(got, "Bus B1: 3 stops on route") {
		t.Errorf("Bus answer = %q", got)
	}
	if got := reads[1].Answer(doc); got != "Stop Nowhere: not found" {
		t.Errorf("Stop answer = %q", got)
	}
}
