package geo

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name             string
		a, b             Point
		wantMeters       float64
		tolerancePercent float64
	}{
		{
			name:             "Moscow centre to a point east",
			a:                NewPoint(55.6, 37.6),
			b:                NewPoint(55.6, 37.7),
			wantMeters:       6_280,
			tolerancePercent: 2,
		},
		{
			name:       "same point",
			a:          NewPoint(1.3521, 103.8198),
			b:          NewPoint(1.3521, 103.8198),
			wantMeters: 0,
		},
		{
			name:             "London to Paris",
			a:                NewPoint(51.5074, -0.1278),
			b:                NewPoint(48.8566, 2.3522),
			wantMeters:       343_500,
			tolerancePercent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.a, tt.b)
			if tt.wantMeters == 0 {
				if got != 0 {
					t.Errorf("Haversine() = %f, want 0", got)
				}
				return
			}
			diff := math.Abs(got-tt.wantMeters) / tt.wantMeters * 100
			if diff > tt.tolerancePercent {
				t.Errorf("Haversine() = %f m, want ~%f m (diff %.1f%%)", got, tt.wantMeters, diff)
			}
		})
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := NewPoint(55.611087, 37.20829)
	b := NewPoint(55.595884, 37.209755)
	if Haversine(a, b) != Haversine(b, a) {
		t.Errorf("Haversine is not symmetric: %f vs %f", Haversine(a, b), Haversine(b, a))
	}
}

func BenchmarkHaversine(b *testing.B) {
	p1 := NewPoint(1.3521, 103.8198)
	p2 := NewPoint(1.2905, 103.8520)
	for b.Loop() {
		Haversine(p1, p2)
	}
}
