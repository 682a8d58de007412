package svg

import (
	"strings"
	"testing"
)

func TestDocumentEnvelope(t *testing.T) {
	doc := NewDocument()
	got := doc.String()
	want := `<?xml version="1.0" encoding="UTF-8" ?><svg xmlns="http://www.w3.org/2000/svg" version="1.1"></svg>`
	if got != want {
		t.Errorf("empty document = %q, want %q", got, want)
	}
}

func TestCircleAlwaysEmitsFillStroke(t *testing.T) {
	doc := NewDocument()
	doc.AddCircle(Circle{Center: Point{1, 2}, Radius: 3, Style: Style{Fill: NamedColor("white"), Stroke: NoColor, StrokeWidth: 0}})
	got := doc.String()
	if !strings.Contains(got, `fill="white"`) {
		t.Errorf("missing fill attribute: %s", got)
	}
	if !strings.Contains(got, `stroke="none"`) {
		t.Errorf("missing explicit stroke=none: %s", got)
	}
	if !strings.Contains(got, `stroke-width="0"`) {
		t.Errorf("missing stroke-width attribute: %s", got)
	}
}

func TestPolylinePointsTrailingSpace(t *testing.T) {
	p := Polyline{Points: []Point{{0, 0}, {1, 1}}, Style: Style{Fill: NoColor, Stroke: RGBColor(255, 0, 0), StrokeWidth: 2}}
	var sb strings.Builder
	p.render(&sb)
	if !strings.Contains(sb.String(), `points="0,0 1,1 "`) {
		t.Errorf("unexpected points attribute: %s", sb.String())
	}
}

func TestTextDataUnescaped(t *testing.T) {
	tx := Text{Pos: Point{5, 5}, FontSize: 10, Style: Style{Fill: NamedColor("black"), Stroke: NoColor}, Data: "Bus 42"}
	var sb strings.Builder
	tx.render(&sb)
	if !strings.Contains(sb.String(), ">Bus 42</text>") {
		t.Errorf("text data not rendered raw: %s", sb.String())
	}
}

func TestEscape(t *testing.T) {
	got := Escape(`he said "hi\there"`)
	want := `he said \"hi\\there\"`
	if got != want {
		t.Errorf("Escape() = %q, want %q", got, want)
	}
}

func TestRectFillOnly(t *testing.T) {
	r := Rect{TopLeft: Point{-10, -10}, BottomRight: Point{110, 110}, Fill: RGBAColor(0, 0, 0, 0.7)}
	var sb strings.Builder
	r.render(&sb)
	got := sb.String()
	want := `<rect x="-10" y="-10" width="120" height="120" fill="rgba(0,0,0,0.7)"/>`
	if got != want {
		t.Errorf("Rect.render() = %q, want %q", got, want)
	}
}
