// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matrix

import (
	"errors"
	"fmt"
	"math"

	"github.com/ajroetker/go-conv2d/hwy"
	"github.com/samber/lo"
)

// ErrShape reports non-positive dimensions, dimensions whose element count
// does not fit in an int, or a backing slice whose length does not match them.
var ErrShape = errors.New("matrix: invalid shape")

// CheckShape reports whether height×width is a representable matrix shape.
// The returned error wraps ErrShape.
func CheckShape(height, width int) error {
	if height <= 0 || width <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrShape, height, width)
	}
	if width > math.MaxInt/height {
		return fmt.Errorf("%w: %dx%d elements overflow int", ErrShape, height, width)
	}
	return nil
}

// alloc makes a zeroed slice of n elements, turning the runtime's
// length-out-of-range panic into an error wrapping hwy.ErrAllocation.
func alloc[T hwy.Floats](n int) (data []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: %d elements: %v", hwy.ErrAllocation, n, r)
		}
	}()
	return make([]T, n), nil
}

// Matrix is a dense 2D array stored in row-major order.
type Matrix[T hwy.Floats] struct {
	data     []T
	height   int
	width    int
	stride   int // elements per row
	padBytes int // trailing cache padding owned by data, see NewPadded
}

// New creates a zeroed height×width matrix.
//
// Shapes rejected by CheckShape return an error wrapping ErrShape; a slice
// the runtime refuses to allocate returns one wrapping hwy.ErrAllocation.
func New[T hwy.Floats](height, width int) (*Matrix[T], error) {
	if err := CheckShape(height, width); err != nil {
		return nil, err
	}
	data, err := alloc[T](height * width)
	if err != nil {
		return nil, fmt.Errorf("matrix: %dx%d: %w", height, width, err)
	}
	return &Matrix[T]{
		data:   data,
		height: height,
		width:  width,
		stride: width,
	}, nil
}

// NewPadded creates a zeroed height×width matrix whose storage starts on a
// cache line boundary and is rounded up to a whole number of cache lines.
// The rounding bytes are never touched; they keep the last line of the
// matrix from being shared with unrelated memory.
//
// Allocation failures wrap hwy.ErrAllocation.
func NewPadded[T hwy.Floats](height, width int) (*Matrix[T], error) {
	if err := CheckShape(height, width); err != nil {
		return nil, err
	}
	buf, err := hwy.AllocPadded[T](height * width)
	if err != nil {
		return nil, fmt.Errorf("matrix: %dx%d: %w", height, width, err)
	}
	return &Matrix[T]{
		data:     buf.Data,
		height:   height,
		width:    width,
		stride:   width,
		padBytes: buf.PaddingBytes(),
	}, nil
}

// FromSlice wraps data as a height×width matrix without copying it.
// len(data) must be exactly height*width.
func FromSlice[T hwy.Floats](height, width int, data []T) (*Matrix[T], error) {
	if err := CheckShape(height, width); err != nil {
		return nil, err
	}
	if len(data) != height*width {
		return nil, fmt.Errorf("%w: %dx%d needs %d elements, got %d",
			ErrShape, height, width, height*width, len(data))
	}
	return &Matrix[T]{
		data:   data,
		height: height,
		width:  width,
		stride: width,
	}, nil
}

// FromStrided wraps data as a height×width view whose rows start stride
// elements apart, such as a region of a larger matrix. Elements between the
// end of one row and the start of the next are never read or written.
// data must reach the last cell: len(data) >= (height-1)*stride + width.
func FromStrided[T hwy.Floats](height, width, stride int, data []T) (*Matrix[T], error) {
	if err := CheckShape(height, width); err != nil {
		return nil, err
	}
	if stride < width {
		return nil, fmt.Errorf("%w: stride %d is narrower than width %d", ErrShape, stride, width)
	}
	if err := CheckShape(height, stride); err != nil {
		return nil, err
	}
	if need := (height-1)*stride + width; len(data) < need {
		return nil, fmt.Errorf("%w: %dx%d with stride %d needs %d elements, got %d",
			ErrShape, height, width, stride, need, len(data))
	}
	return &Matrix[T]{
		data:   data,
		height: height,
		width:  width,
		stride: stride,
	}, nil
}

// Height returns the number of rows.
func (m *Matrix[T]) Height() int {
	return m.height
}

// Width returns the number of columns.
func (m *Matrix[T]) Width() int {
	return m.width
}

// Stride returns the number of elements between the starts of two rows.
func (m *Matrix[T]) Stride() int {
	return m.stride
}

// Len returns the number of elements, Height()*Width().
func (m *Matrix[T]) Len() int {
	return m.height * m.width
}

// Data returns the row-major backing slice. Rows start Stride() elements
// apart; for every constructor except FromStrided that equals Width().
func (m *Matrix[T]) Data() []T {
	return m.data
}

// PaddingBytes returns the size of the trailing cache padding region.
// It is zero for matrices not created by NewPadded, and for padded matrices
// whose data already ends on a cache line boundary.
func (m *Matrix[T]) PaddingBytes() int {
	return m.padBytes
}

// Index returns the flat offset of (row, col).
func (m *Matrix[T]) Index(row, col int) int {
	return row*m.stride + col
}

// InBounds reports whether (row, col) lies inside the matrix.
func (m *Matrix[T]) InBounds(row, col int) bool {
	return row >= 0 && row < m.height && col >= 0 && col < m.width
}

// Row returns a mutable slice for the specified row, or nil if row is out of
// range.
func (m *Matrix[T]) Row(row int) []T {
	if row < 0 || row >= m.height {
		return nil
	}
	start := row * m.stride
	return m.data[start : start+m.width]
}

// At returns the value at (row, col), or zero if (row, col) is outside the
// matrix.
func (m *Matrix[T]) At(row, col int) T {
	if !m.InBounds(row, col) {
		return 0
	}
	return m.data[row*m.stride+col]
}

// Set sets the value at (row, col). Out-of-range coordinates are ignored.
func (m *Matrix[T]) Set(row, col int, value T) {
	if !m.InBounds(row, col) {
		return
	}
	m.data[row*m.stride+col] = value
}

// SameShape returns true if both matrices have the same dimensions.
func SameShape[T, U hwy.Floats](a *Matrix[T], b *Matrix[U]) bool {
	return a.height == b.height && a.width == b.width
}

// Rows returns the rows of m, each a mutable slice of Width() elements.
func (m *Matrix[T]) Rows() [][]T {
	return lo.Times(m.height, m.Row)
}

// Clone creates a deep, unpadded, contiguous copy of the matrix.
func (m *Matrix[T]) Clone() *Matrix[T] {
	data := make([]T, 0, m.Len())
	for _, row := range m.Rows() {
		data = append(data, row...)
	}
	return &Matrix[T]{
		data:   data,
		height: m.height,
		width:  m.width,
		stride: m.width,
	}
}

// Fill sets every element to value.
func (m *Matrix[T]) Fill(value T) {
	for _, row := range m.Rows() {
		for i := range row {
			row[i] = value
		}
	}
}

// String returns a short description such as "Matrix[3x4]".
func (m *Matrix[T]) String() string {
	return fmt.Sprintf("Matrix[%dx%d]", m.height, m.width)
}
