package dot

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ajroetker/go-conv2d/hwy"
)

func TestDot(t *testing.T) {
	lanes := hwy.MaxLanes[float32]()
	ramp := func(n int, scale float32) []float32 {
		s := make([]float32, n)
		for i := range s {
			s[i] = float32(i+1) * scale
		}
		return s
	}

	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"empty", nil, nil, 0},
		{"one tap", []float32{3}, []float32{-2}, -6},
		{"3-tap row", []float32{1, 2, 3}, []float32{4, 5, 6}, 32},
		{"mismatched lengths use the shorter", []float32{1, 2, 3, 4, 5}, []float32{1, 2, 3}, 14},
		{"zero weights", []float32{5, 6, 7, 8}, []float32{0, 0, 0, 0}, 0},
		// Σ i·(i/2) for i = 1..lanes
		{"one full vector", ramp(lanes, 1), ramp(lanes, 0.5), float32(lanes*(lanes+1)*(2*lanes+1)) / 12},
		// full vector plus a 3-element tail
		{"vector and tail", ramp(lanes+3, 1), ramp(lanes+3, 1), float32((lanes+3)*(lanes+4)*(2*lanes+7)) / 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dot(tt.a, tt.b); math.Abs(float64(got-tt.want)) > 1e-4 {
				t.Errorf("Dot() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestDotMatchesScalar checks the lane-wide path against a strict
// left-to-right sum for the short lengths kernel rows usually have.
func TestDotMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for n := 1; n <= 40; n++ {
		a := make([]float32, n)
		b := make([]float32, n)
		var want float64
		for i := range a {
			a[i] = rng.Float32()
			b[i] = rng.Float32()*2 - 1
			want += float64(a[i]) * float64(b[i])
		}
		got := Dot(a, b)
		if math.Abs(float64(got)-want) > 1e-5 {
			t.Errorf("n=%d: Dot() = %v, want %v", n, got, want)
		}
	}
}

func TestDotFloat64(t *testing.T) {
	a := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
	b := []float64{0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	var want float64
	for i := range a {
		want += a[i] * b[i]
	}
	if got := DotFloat64(a, b); math.Abs(got-want) > 1e-12 {
		t.Errorf("DotFloat64() = %v, want %v", got, want)
	}
	if got := DotFloat64(nil, b); got != 0 {
		t.Errorf("DotFloat64(nil, b) = %v, want 0", got)
	}
}

func BenchmarkDot(b *testing.B) {
	// Kernel row widths, then long rows.
	for _, size := range []int{3, 5, 8, 16, 64, 1024} {
		x := make([]float32, size)
		y := make([]float32, size)
		for i := range x {
			x[i] = float32(i)
			y[i] = float32(size - i)
		}
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			var sink float32
			for i := 0; i < b.N; i++ {
				sink += Dot(x, y)
			}
			_ = sink
		})
	}
}
