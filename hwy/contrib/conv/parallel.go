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
	"github.com/ajroetker/go-conv2d/hwy/contrib/dot"
	"github.com/ajroetker/go-conv2d/hwy/contrib/matrix"
	"github.com/ajroetker/go-conv2d/hwy/contrib/workerpool"
)

// Parallel is the multi-goroutine engine.
//
// Output rows are claimed dynamically, one full row per claim, by the
// workers of a persistent pool. A row is written by exactly one worker, the
// inputs are only read, and the call returns after every row is done, so no
// locking is needed and no partial result is ever visible to the caller.
//
// Outputs allocated by Convolve are cache line aligned and padded to a whole
// number of cache lines (see matrix.NewPadded).
//
// A Parallel may be used by several goroutines at once.
type Parallel struct {
	pool     *workerpool.Pool
	ownsPool bool
}

// NewParallel creates an engine backed by a new pool of threads workers.
// If threads <= 0, GOMAXPROCS workers are used. Call Close to release them.
func NewParallel(threads int) *Parallel {
	return &Parallel{
		pool:     workerpool.New(threads),
		ownsPool: true,
	}
}

// NewParallelWithPool creates an engine that runs on an existing pool.
// Close does not close a pool supplied this way.
func NewParallelWithPool(pool *workerpool.Pool) *Parallel {
	return &Parallel{pool: pool}
}

// Threads returns the number of workers convolutions are spread over.
func (p *Parallel) Threads() int {
	return p.pool.NumWorkers()
}

// Close releases the worker pool if the engine created it, after waiting
// for convolutions already running on it. Convolutions issued after Close
// still complete, on the calling goroutine.
func (p *Parallel) Close() {
	if p.ownsPool {
		p.pool.Close()
	}
}

// Convolve computes the "same" correlation of feature with kernel into a
// new cache-padded matrix of the feature map's shape.
func (p *Parallel) Convolve(feature, kernel *matrix.Matrix[float32]) (*matrix.Matrix[float32], error) {
	const op = "Parallel.Convolve"
	if err := checkInputs(op, feature, kernel); err != nil {
		return nil, err
	}
	out, err := allocOutput(op, feature, matrix.NewPadded[float32])
	if err != nil {
		return nil, err
	}
	p.convolve(out, feature, kernel)
	return out, nil
}

// ConvolveInto computes the correlation of feature with kernel into dst.
// dst must have the feature map's shape and must not overlap either input.
func (p *Parallel) ConvolveInto(dst, feature, kernel *matrix.Matrix[float32]) error {
	const op = "Parallel.ConvolveInto"
	if err := checkInputs(op, feature, kernel); err != nil {
		return err
	}
	if err := checkDestination(op, dst, feature, kernel); err != nil {
		return err
	}
	p.convolve(dst, feature, kernel)
	return nil
}

func (p *Parallel) convolve(dst, feature, kernel *matrix.Matrix[float32]) {
	win := NewWindow(kernel.Height(), kernel.Width())

	p.pool.ParallelForRows(feature.Height(), feature.Width(), func(n, _, _ int) {
		row := dst.Row(n)
		for k := range row {
			row[k] = windowSum(feature, kernel, win, n, k)
		}
	})
}

// windowSum returns output cell (n, k) of feature convolved with kernel. It
// is a pure function of its arguments.
//
// The window is clipped to the feature map first. Inside the clipped
// window, each kernel row meets a contiguous run of one feature row, and the
// two runs are reduced with a lane-wide dot product.
func windowSum(feature, kernel *matrix.Matrix[float32], win Window, n, k int) float32 {
	iLo, iHi, jLo, jHi := win.Clip(n, k, feature.Height(), feature.Width())
	span := jHi - jLo + 1

	var sum float32
	for i := iLo; i <= iHi; i++ {
		f := feature.Row(n + i)[k+jLo:]
		g := kernel.Row(i + win.PadH)[jLo+win.PadW:]
		sum += dot.Dot(f[:span], g[:span])
	}
	return sum
}
