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

package conv

import (
	"errors"

	"github.com/ajroetker/go-conv2d/hwy"
	"github.com/ajroetker/go-conv2d/hwy/contrib/matrix"
)

// Serial is the single-goroutine reference engine. The zero value is ready
// to use.
type Serial struct{}

// Convolve computes the "same" correlation of feature with kernel into a
// newly allocated matrix of the feature map's shape.
func (Serial) Convolve(feature, kernel *matrix.Matrix[float32]) (*matrix.Matrix[float32], error) {
	return Convolve(feature, kernel)
}

// ConvolveInto computes the correlation of feature with kernel into dst.
func (Serial) ConvolveInto(dst, feature, kernel *matrix.Matrix[float32]) error {
	return ConvolveInto(dst, feature, kernel)
}

// Close is a no-op; Serial holds no resources.
func (Serial) Close() {}

// Convolve computes the "same" correlation of feature with kernel on the
// calling goroutine and returns the result in a new matrix.
func Convolve(feature, kernel *matrix.Matrix[float32]) (*matrix.Matrix[float32], error) {
	const op = "Convolve"
	if err := checkInputs(op, feature, kernel); err != nil {
		return nil, err
	}
	out, err := allocOutput(op, feature, matrix.New[float32])
	if err != nil {
		return nil, err
	}
	convolveSerial(out, feature, kernel)
	return out, nil
}

// ConvolveInto computes the "same" correlation of feature with kernel on
// the calling goroutine, overwriting dst. dst must have the feature map's
// shape and must not overlap either input.
func ConvolveInto(dst, feature, kernel *matrix.Matrix[float32]) error {
	const op = "ConvolveInto"
	if err := checkInputs(op, feature, kernel); err != nil {
		return err
	}
	if err := checkDestination(op, dst, feature, kernel); err != nil {
		return err
	}
	convolveSerial(dst, feature, kernel)
	return nil
}

// convolveSerial is the reference loop nest. Every feature access goes
// through the zero-padding predicate; the accumulation order is kernel
// row-major, strictly left to right, so repeated calls are bit-identical.
func convolveSerial(dst, feature, kernel *matrix.Matrix[float32]) {
	h, w := feature.Height(), feature.Width()
	f, fs := feature.Data(), feature.Stride()
	g, gs := kernel.Data(), kernel.Stride()
	out, ds := dst.Data(), dst.Stride()

	win := NewWindow(kernel.Height(), kernel.Width())
	iLo, iHi := win.Rows()
	jLo, jHi := win.Cols()

	for n := range h {
		for k := range w {
			var result float32
			for i := iLo; i <= iHi; i++ {
				for j := jLo; j <= jHi; j++ {
					row, col := n+i, k+j

					var fVal float32
					if InBounds(row, h) && InBounds(col, w) {
						fVal = f[Index(row, col, fs)]
					}
					result += fVal * g[win.KernelIndex(i, j, gs)]
				}
			}
			out[Index(n, k, ds)] = result
		}
	}
}

// allocOutput allocates an output matrix shaped like feature, mapping
// allocation failures to KindAllocation.
func allocOutput(op string, feature *matrix.Matrix[float32],
	alloc func(h, w int) (*matrix.Matrix[float32], error)) (out *matrix.Matrix[float32], err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = newError(KindAllocation, op, hwy.ErrAllocation, "output %dx%d: %v",
				feature.Height(), feature.Width(), r)
		}
	}()
	out, err = alloc(feature.Height(), feature.Width())
	if err != nil {
		kind := KindInvalidArgument
		if errors.Is(err, hwy.ErrAllocation) {
			kind = KindAllocation
		}
		return nil, newError(kind, op, err, "output %dx%d", feature.Height(), feature.Width())
	}
	return out, nil
}
