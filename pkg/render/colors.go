package render

import (
	"fmt"

	"github.com/mlyundin/bus-db/pkg/svg"
)

// ParseColor turns one render_settings colour value into an svg.Color.
// The input document allows three shapes for a colour, following
// database.cpp's variant handling: a bare CSS name string, a [r,g,b]
// triple of integers, or a [r,g,b,a] quad with a float alpha.
func ParseColor(v interface{}) (svg.Color, error) {
	switch val := v.(type) {
	case string:
		return svg.NamedColor(val), nil
	case []interface{}:
		switch len(val) {
		case 3:
			r, g, b, err := rgbInts(val)
			if err != nil {
				return svg.Color{}, err
			}
			return svg.RGBColor(r, g, b), nil
		case 4:
			r, g, b, err := rgbInts(val[:3])
			if err != nil {
				return svg.Color{}, err
			}
			a, ok := asFloat(val[3])
			if !ok {
				return svg.Color{}, fmt.Errorf("render: alpha component must be a number, got %T", val[3])
			}
			return svg.RGBAColor(r, g, b, a), nil
		default:
			return svg.Color{}, fmt.Errorf("render: colour array must have 3 or 4 elements, got %d", len(val))
		}
	default:
		return svg.Color{}, fmt.Errorf("render: colour must be a string or array, got %T", v)
	}
}

// ParsePalette parses render_settings.color_palette: an array of colour
// values in any of ParseColor's shapes.
func ParsePalette(v []interface{}) ([]svg.Color, error) {
	palette := make([]svg.Color, 0, len(v))
	for i, entry := range v {
		c, err := ParseColor(entry)
		if err != nil {
			return nil, fmt.Errorf("render: color_palette[%d]: %w", i, err)
		}
		palette = append(palette, c)
	}
	return palette, nil
}

func rgbInts(v []interface{}) (r, g, b int, err error) {
	ints := make([]int, 3)
	for i, comp := range v {
		f, ok := asFloat(comp)
		if !ok {
			return 0, 0, 0, fmt.Errorf("render: colour component must be a number, got %T", comp)
		}
		ints[i] = int(f)
	}
	return ints[0], ints[1], ints[2], nil
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
