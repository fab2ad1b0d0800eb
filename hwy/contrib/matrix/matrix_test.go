package matrix

import (
	"errors"
	"math"
	"testing"

	"github.com/ajroetker/go-conv2d/hwy"
)

func TestNew(t *testing.T) {
	m, err := New[float32](5, 7)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Height() != 5 || m.Width() != 7 {
		t.Errorf("dimensions: got %dx%d, want 5x7", m.Height(), m.Width())
	}
	if m.Stride() != 7 {
		t.Errorf("Stride: got %d, want 7", m.Stride())
	}
	if m.Len() != 35 || len(m.Data()) != 35 {
		t.Errorf("Len: got %d (data %d), want 35", m.Len(), len(m.Data()))
	}
	if m.PaddingBytes() != 0 {
		t.Errorf("PaddingBytes: got %d, want 0", m.PaddingBytes())
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 4}, {3, -2}} {
		if _, err := New[float32](dims[0], dims[1]); !errors.Is(err, ErrShape) {
			t.Errorf("New(%d, %d): err = %v, want ErrShape", dims[0], dims[1], err)
		}
		if _, err := NewPadded[float32](dims[0], dims[1]); !errors.Is(err, ErrShape) {
			t.Errorf("NewPadded(%d, %d): err = %v, want ErrShape", dims[0], dims[1], err)
		}
	}
}

func TestNew_OverflowingDimensions(t *testing.T) {
	// Each product exceeds math.MaxInt, so the element count would wrap.
	for _, dims := range [][2]int{
		{math.MaxInt, 2},
		{2, math.MaxInt/2 + 1},
		{math.MaxInt/3 + 1, 3},
		{math.MaxInt>>16 + 1, 1 << 16},
	} {
		h, w := dims[0], dims[1]
		if err := CheckShape(h, w); !errors.Is(err, ErrShape) {
			t.Errorf("CheckShape(%d, %d): err = %v, want ErrShape", h, w, err)
		}
		if m, err := New[float32](h, w); !errors.Is(err, ErrShape) {
			t.Errorf("New(%d, %d) = %v, %v; want ErrShape", h, w, m, err)
		}
		if m, err := NewPadded[float32](h, w); !errors.Is(err, ErrShape) {
			t.Errorf("NewPadded(%d, %d) = %v, %v; want ErrShape", h, w, m, err)
		}
		if m, err := FromSlice[float32](h, w, nil); !errors.Is(err, ErrShape) {
			t.Errorf("FromSlice(%d, %d) = %v, %v; want ErrShape", h, w, m, err)
		}
		if m, err := Random(h, w, 1, 1); !errors.Is(err, ErrShape) {
			t.Errorf("Random(%d, %d) = %v, %v; want ErrShape", h, w, m, err)
		}
	}

	if err := CheckShape(math.MaxInt, 1); err != nil {
		t.Errorf("CheckShape(MaxInt, 1) = %v, want nil", err)
	}
}

func TestNew_AllocationFailure(t *testing.T) {
	// Representable as an int, but far beyond what the runtime will allocate.
	n := math.MaxInt / 8
	if _, err := New[float32](n, 1); !errors.Is(err, hwy.ErrAllocation) {
		t.Errorf("New(%d, 1): err = %v, want hwy.ErrAllocation", n, err)
	}
	if _, err := NewPadded[float32](1, n); !errors.Is(err, hwy.ErrAllocation) {
		t.Errorf("NewPadded(1, %d): err = %v, want hwy.ErrAllocation", n, err)
	}
}

func TestNewPadded(t *testing.T) {
	tests := []struct {
		height, width int
		wantPad       int
	}{
		{1, 1, 60},
		{2, 8, 0},  // 64 bytes
		{3, 5, 4},  // 60 bytes
		{4, 4, 0},  // 64 bytes
		{7, 3, 44}, // 84 bytes
	}

	for _, tt := range tests {
		m, err := NewPadded[float32](tt.height, tt.width)
		if err != nil {
			t.Fatalf("NewPadded(%d, %d): %v", tt.height, tt.width, err)
		}
		if m.PaddingBytes() != tt.wantPad {
			t.Errorf("NewPadded(%d, %d): PaddingBytes = %d, want %d",
				tt.height, tt.width, m.PaddingBytes(), tt.wantPad)
		}
		if !hwy.IsAligned(m.Data()) {
			t.Errorf("NewPadded(%d, %d): data not cache line aligned", tt.height, tt.width)
		}
		if len(m.Data()) != tt.height*tt.width {
			t.Errorf("NewPadded(%d, %d): len = %d", tt.height, tt.width, len(m.Data()))
		}
	}
}

func TestFromSlice(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6}
	m, err := FromSlice(2, 3, data)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if got := m.At(1, 2); got != 6 {
		t.Errorf("At(1, 2) = %v, want 6", got)
	}

	// FromSlice shares storage.
	m.Set(0, 0, 42)
	if data[0] != 42 {
		t.Error("FromSlice should not copy data")
	}

	if _, err := FromSlice(2, 2, data); !errors.Is(err, ErrShape) {
		t.Errorf("FromSlice with wrong length: err = %v, want ErrShape", err)
	}
	if _, err := FromSlice[float32](1, 1, nil); !errors.Is(err, ErrShape) {
		t.Errorf("FromSlice(nil): err = %v, want ErrShape", err)
	}
}

func TestFromStrided(t *testing.T) {
	// A 2x3 region at (1, 1) of a 4x5 buffer; -1 marks cells outside it.
	data := []float32{
		-1, -1, -1, -1, -1,
		-1, 1, 2, 3, -1,
		-1, 4, 5, 6, -1,
		-1, -1, -1, -1, -1,
	}
	m, err := FromStrided(2, 3, 5, data[6:])
	if err != nil {
		t.Fatalf("FromStrided: %v", err)
	}
	if m.Stride() != 5 || m.Len() != 6 {
		t.Errorf("Stride, Len = %d, %d; want 5, 6", m.Stride(), m.Len())
	}
	if got := m.At(1, 0); got != 4 {
		t.Errorf("At(1, 0) = %v, want 4", got)
	}
	if got := m.Row(1); len(got) != 3 || got[2] != 6 {
		t.Errorf("Row(1) = %v, want [4 5 6]", got)
	}

	c := m.Clone()
	if c.Stride() != 3 {
		t.Errorf("Clone Stride = %d, want 3", c.Stride())
	}
	want := []float32{1, 2, 3, 4, 5, 6}
	for i, v := range c.Data() {
		if v != want[i] {
			t.Fatalf("Clone Data = %v, want %v", c.Data(), want)
		}
	}
	if d, err := MaxAbsDiff(m, c); err != nil || d != 0 {
		t.Errorf("MaxAbsDiff(view, clone) = %v, %v; want 0, nil", d, err)
	}

	m.Fill(9)
	for i, v := range data {
		r, col := i/5, i%5
		inside := r >= 1 && r <= 2 && col >= 1 && col <= 3
		if inside && v != 9 || !inside && v != -1 {
			t.Fatalf("after Fill, data[%d] = %v", i, v)
		}
	}
}

func TestFromStrided_Errors(t *testing.T) {
	data := make([]float32, 12)
	tests := []struct {
		name                  string
		height, width, stride int
		n                     int
	}{
		{"stride below width", 2, 4, 3, 12},
		{"short data", 3, 4, 5, 12},
		{"zero height", 0, 4, 4, 12},
		{"overflowing stride", 2, 1, math.MaxInt, 12},
	}
	for _, tt := range tests {
		if _, err := FromStrided(tt.height, tt.width, tt.stride, data[:tt.n]); !errors.Is(err, ErrShape) {
			t.Errorf("%s: err = %v, want ErrShape", tt.name, err)
		}
	}
	// The last row only needs width elements, not a full stride.
	if _, err := FromStrided(3, 2, 5, data[:12]); err != nil {
		t.Errorf("FromStrided(3, 2, 5) over 12 elements: %v", err)
	}
}

func TestMatrix_AtSet(t *testing.T) {
	m, _ := New[float32](3, 4)
	for r := range 3 {
		for c := range 4 {
			m.Set(r, c, float32(r*10+c))
		}
	}

	for r := range 3 {
		for c := range 4 {
			want := float32(r*10 + c)
			if got := m.At(r, c); got != want {
				t.Errorf("At(%d, %d) = %v, want %v", r, c, got, want)
			}
			if got := m.Data()[m.Index(r, c)]; got != want {
				t.Errorf("Data()[Index(%d, %d)] = %v, want %v", r, c, got, want)
			}
		}
	}

	// Out of bounds reads are zero, writes are ignored.
	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 4}} {
		if got := m.At(rc[0], rc[1]); got != 0 {
			t.Errorf("At(%d, %d) = %v, want 0", rc[0], rc[1], got)
		}
		if m.InBounds(rc[0], rc[1]) {
			t.Errorf("InBounds(%d, %d) = true", rc[0], rc[1])
		}
		m.Set(rc[0], rc[1], 99)
	}
	for i, v := range m.Data() {
		if v == 99 {
			t.Errorf("out of bounds Set wrote index %d", i)
		}
	}
}

func TestMatrix_Row(t *testing.T) {
	m, _ := New[float32](3, 2)
	row := m.Row(1)
	if len(row) != 2 {
		t.Fatalf("Row length: got %d, want 2", len(row))
	}
	row[1] = 5
	if m.At(1, 1) != 5 {
		t.Error("Row should alias matrix storage")
	}
	if m.Row(-1) != nil || m.Row(3) != nil {
		t.Error("out of range Row should return nil")
	}
}

func TestMatrix_CloneFill(t *testing.T) {
	m, _ := NewPadded[float32](3, 3)
	m.Fill(2)

	c := m.Clone()
	if !SameShape(m, c) {
		t.Fatalf("Clone shape: got %v, want %v", c, m)
	}
	c.Set(0, 0, 7)
	if m.At(0, 0) != 2 {
		t.Error("Clone should not share storage")
	}
	if c.PaddingBytes() != 0 {
		t.Errorf("Clone PaddingBytes = %d, want 0", c.PaddingBytes())
	}
	if m.String() != "Matrix[3x3]" {
		t.Errorf("String() = %q", m.String())
	}
}

func TestRandom(t *testing.T) {
	a, err := Random(16, 9, 7, 1)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	b, _ := Random(16, 9, 7, 1)
	c, _ := Random(16, 9, 7, 2)

	same, differs := true, false
	for i, v := range a.Data() {
		if v < 0 || v >= 1 {
			t.Errorf("value %d = %v outside [0, 1)", i, v)
		}
		if v != b.Data()[i] {
			same = false
		}
		if v != c.Data()[i] {
			differs = true
		}
	}
	if !same {
		t.Error("same seed and stream should produce identical matrices")
	}
	if !differs {
		t.Error("different streams should produce different matrices")
	}

	if _, err := Random(0, 3, 1, 1); !errors.Is(err, ErrShape) {
		t.Errorf("Random(0, 3): err = %v, want ErrShape", err)
	}
}
