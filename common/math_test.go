package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestArctan(t *testing.T) {
	tests := []struct {
		name     string
		opp, adj float64
		want     float64
	}{
		{"zero_vector", 0, 0, 0},
		{"right", 0, 1, 0},
		{"up", 1, 0, math.Pi / 2},
		{"left", 0, -1, math.Pi},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Arctan(tc.opp, tc.adj); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("Arctan(%v, %v) = %v, want %v", tc.opp, tc.adj, got, tc.want)
			}
		})
	}
}

func TestDirIsLeft(t *testing.T) {
	if DirIsLeft(0) || DirIsLeft(math.Pi/4) {
		t.Fatalf("right-facing angles reported left")
	}
	if !DirIsLeft(math.Pi) || !DirIsLeft(-3*math.Pi/4) {
		t.Fatalf("left-facing angles reported right")
	}
}

func TestPolarAndClamp(t *testing.T) {
	v := Polar(10, math.Pi/2)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-10) > 1e-9 {
		t.Fatalf("unexpected polar vector %v", v)
	}
	bb := cp.BB{L: -5, B: -5, R: 5, T: 5}
	if got := ClampToBox(bb, cp.Vector{X: 9, Y: -7}); got != (cp.Vector{X: 5, Y: -5}) {
		t.Fatalf("unexpected clamp %v", got)
	}
	if Magnitude(3, 4, 0) != 5 {
		t.Fatalf("magnitude")
	}
}
