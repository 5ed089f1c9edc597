package common

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		wantX  float64
		wantY  float64
		wantOK bool
	}{
		{name: "unit x", x: 5, y: 0, wantX: 1, wantY: 0, wantOK: true},
		{name: "diagonal", x: 3, y: -4, wantX: 0.6, wantY: -0.8, wantOK: true},
		{name: "below eps", x: 1e-6, y: 0, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := Normalize(tt.x, tt.y, 1e-3)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
				t.Fatalf("got (%v,%v), want (%v,%v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("Clamp high = %v", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Fatalf("Clamp low = %v", got)
	}
	if got := Clamp(7, 10, 0); got != 7 {
		t.Fatalf("inverted bounds should pass through, got %v", got)
	}
}
