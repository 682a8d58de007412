// Package svg is a small hand-rolled SVG document builder. It exists
// because the renderer's output format is pinned byte-for-byte (fill
// and stroke attributes always present, even as "none"; a specific
// point-list format; no incidental whitespace) — a contract a
// general-purpose SVG library does not hold by default. The original
// system this was distilled from hand-rolls its own svg.h/svg.cpp for
// the same reason; this package follows that lead in Go.
package svg

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a canvas-space coordinate. It serializes as "x,y".
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return formatFloat(p.X) + "," + formatFloat(p.Y)
}

// Color is a CSS-like colour: absent ("none"), a literal name passed
// through as-is, or an rgb()/rgba() triple/quad.
type Color struct {
	kind  colorKind
	name  string
	r, g, b int
	a     float64
}

type colorKind int

const (
	colorNone colorKind = iota
	colorName
	colorRGB
	colorRGBA
)

// NoColor is the absent colour, serialized as "none".
var NoColor = Color{kind: colorNone}

// NamedColor passes a CSS colour name through unchanged.
func NamedColor(name string) Color { return Color{kind: colorName, name: name} }

// RGBColor is an opaque rgb(r,g,b) colour.
func RGBColor(r, g, b int) Color { return Color{kind: colorRGB, r: r, g: g, b: b} }

// RGBAColor is an rgba(r,g,b,a) colour, a in [0,1].
func RGBAColor(r, g, b int, a float64) Color { return Color{kind: colorRGBA, r: r, g: g, b: b, a: a} }

func (c Color) String() string {
	switch c.kind {
	case colorName:
		return c.name
	case colorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.r, c.g, c.b)
	case colorRGBA:
		return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.r, c.g, c.b, formatFloat(c.a))
	default:
		return "none"
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Style is the common stroke/fill styling every primitive carries.
// Fill, Stroke, and StrokeWidth are always emitted (even when Fill or
// Stroke is NoColor); LineCap and LineJoin are omitted when empty.
type Style struct {
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	LineCap     string
	LineJoin    string
}

func (s Style) writeAttrs(sb *strings.Builder) {
	fmt.Fprintf(sb, ` fill="%s" stroke="%s" stroke-width="%s"`, s.Fill, s.Stroke, formatFloat(s.StrokeWidth))
	if s.LineCap != "" {
		fmt.Fprintf(sb, ` stroke-linecap="%s"`, s.LineCap)
	}
	if s.LineJoin != "" {
		fmt.Fprintf(sb, ` stroke-linejoin="%s"`, s.LineJoin)
	}
}

// Circle is a <circle> element.
type Circle struct {
	Center Point
	Radius float64
	Style  Style
}

func (c Circle) render(sb *strings.Builder) {
	fmt.Fprintf(sb, `<circle cx="%s" cy="%s" r="%s"`, formatFloat(c.Center.X), formatFloat(c.Center.Y), formatFloat(c.Radius))
	c.Style.writeAttrs(sb)
	sb.WriteString(`/>`)
}

// Polyline is a <polyline> element; Points renders as a space-joined
// "x,y" list with a trailing space, matching the original emitter.
type Polyline struct {
	Points []Point
	Style  Style
}

func (p Polyline) render(sb *strings.Builder) {
	sb.WriteString(`<polyline points="`)
	for _, pt := range p.Points {
		sb.WriteString(pt.String())
		sb.WriteByte(' ')
	}
	sb.WriteString(`"`)
	p.Style.writeAttrs(sb)
	sb.WriteString(`/>`)
}

// Text is a <text> element. Data is written unescaped, matching the
// original emitter (callers are responsible for well-formed stop/bus
// names — the input document never carries raw markup).
type Text struct {
	Pos        Point
	Offset     Point
	FontSize   int
	FontFamily string
	FontWeight string
	Style      Style
	Data       string
}

func (t Text) render(sb *strings.Builder) {
	fmt.Fprintf(sb, `<text x="%s" y="%s" dx="%s" dy="%s" font-size="%d"`,
		formatFloat(t.Pos.X), formatFloat(t.Pos.Y), formatFloat(t.Offset.X), formatFloat(t.Offset.Y), t.FontSize)
	if t.FontFamily != "" {
		fmt.Fprintf(sb, ` font-family="%s"`, t.FontFamily)
	}
	if t.FontWeight != "" {
		fmt.Fprintf(sb, ` font-weight="%s"`, t.FontWeight)
	}
	t.Style.writeAttrs(sb)
	sb.WriteString(`>`)
	sb.WriteString(t.Data)
	sb.WriteString(`</text>`)
}

// Rect is a <rect> element, used only for the route overlay's dimming
// background — the original only ever sets a fill colour on it.
type Rect struct {
	TopLeft     Point
	BottomRight Point
	Fill        Color
}

func (r Rect) render(sb *strings.Builder) {
	width := r.BottomRight.X - r.TopLeft.X
	height := r.BottomRight.Y - r.TopLeft.Y
	fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
		formatFloat(r.TopLeft.X), formatFloat(r.TopLeft.Y), formatFloat(width), formatFloat(height), r.Fill)
}

type element interface {
	render(sb *strings.Builder)
}

// Document is an ordered sequence of SVG elements.
type Document struct {
	elements []element
}

// NewDocument returns an empty document.
func NewDocument() *Document { return &Document{} }

// AddCircle appends a circle, in draw order.
func (d *Document) AddCircle(c Circle) { d.elements = append(d.elements, c) }

// AddPolyline appends a polyline, in draw order.
func (d *Document) AddPolyline(p Polyline) { d.elements = append(d.elements, p) }

// AddText appends a text node, in draw order.
func (d *Document) AddText(t Text) { d.elements = append(d.elements, t) }

// AddRect appends a rect, in draw order.
func (d *Document) AddRect(r Rect) { d.elements = append(d.elements, r) }

// String renders the full envelope: XML prolog, the <svg> root with no
// width/height/viewBox attributes, every element in draw order, and
// the closing tag — with no incidental whitespace anywhere.
func (d *Document) String() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" ?>`)
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1">`)
	for _, e := range d.elements {
		e.render(&sb)
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

// Escape backslash-escapes '"' and '\' — used when embedding a
// document's serialized form inside a JSON string field.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, c := range s {
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}
