// Package hwy provides portable SIMD-style vector helpers sized at runtime to
// the widest register the CPU offers.
//
// The helpers are written in pure Go with fixed-size lane arrays so that hot
// loops never allocate. Lane count follows the detected dispatch level
// (AVX-512, AVX2, SSE2, NEON), which keeps the shape of the accumulation
// (number of independent partial sums) close to what a hand-written SIMD
// kernel would use.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-conv2d/hwy"
//
//	acc := hwy.Zero[float32]()
//	for i := 0; i+acc.NumLanes() <= len(a); i += acc.NumLanes() {
//	    acc = hwy.MulAdd(hwy.Load(a[i:]), hwy.Load(b[i:]), acc)
//	}
//	sum := hwy.ReduceSum(acc)
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// maxVecLanes is the lane capacity of Vec: 512 bits of float32.
const maxVecLanes = 16

// Vec is a portable vector handle. Only the first NumLanes elements are
// meaningful.
//
// Vec instances should not be created directly; use Load or Zero instead.
type Vec[T Floats] struct {
	data [maxVecLanes]T
	n    int
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return v.n
}

// Store writes the vector's lanes to dst, truncating if dst is shorter.
func (v Vec[T]) Store(dst []T) {
	n := min(len(dst), v.n)
	copy(dst[:n], v.data[:n])
}
