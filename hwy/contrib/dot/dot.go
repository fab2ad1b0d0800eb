// Package dot provides lane-wide dot products built on the hwy vector helpers.
//
// The convolution kernels use Dot to reduce one kernel row against the
// matching, in-bounds segment of a feature map row.
package dot

import "github.com/ajroetker/go-conv2d/hwy"

// BaseDot computes the dot product of two vectors using hwy primitives.
// The result is the sum of element-wise products: Σ(a[i] * b[i]).
//
// If the slices have different lengths, the computation uses the minimum length.
// Returns 0 if either slice is empty.
//
// Full vectors are accumulated lane-wise and combined with a horizontal
// reduction; the tail is accumulated with scalar code.
func BaseDot[T hwy.Floats](a, b []T) T {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	lanes := hwy.MaxLanes[T]()
	// Windows shorter than a vector skip the vector path entirely.
	if n < lanes {
		var result T
		for i := range n {
			result += a[i] * b[i]
		}
		return result
	}

	sum := hwy.Zero[T]()
	var i int
	for i = 0; i+lanes <= n; i += lanes {
		sum = hwy.MulAdd(hwy.Load(a[i:i+lanes]), hwy.Load(b[i:i+lanes]), sum)
	}
	result := hwy.ReduceSum(sum)

	for ; i < n; i++ {
		result += a[i] * b[i]
	}
	return result
}

// Dot computes the float32 dot product of a and b.
func Dot(a, b []float32) float32 {
	return BaseDot(a, b)
}

// DotFloat64 computes the float64 dot product of a and b.
func DotFloat64(a, b []float64) float64 {
	return BaseDot(a, b)
}
