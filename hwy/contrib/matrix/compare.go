package matrix

import (
	"fmt"
	"math"

	"github.com/ajroetker/go-conv2d/hwy"
)

// MaxAbsDiff returns the largest absolute element-wise difference between a
// and b. NaN in either matrix yields NaN.
func MaxAbsDiff[T hwy.Floats](a, b *Matrix[T]) (float64, error) {
	if !SameShape(a, b) {
		return 0, fmt.Errorf("%w: comparing %v with %v", ErrShape, a, b)
	}
	var worst float64
	for r := range a.height {
		br := b.Row(r)
		for c, av := range a.Row(r) {
			d := math.Abs(float64(av) - float64(br[c]))
			if math.IsNaN(d) {
				return math.NaN(), nil
			}
			worst = max(worst, d)
		}
	}
	return worst, nil
}

// AllClose reports whether a and b have the same shape and every pair of
// elements differs by at most atol + rtol*|b|. NaN never compares close.
func AllClose[T hwy.Floats](a, b *Matrix[T], atol, rtol float64) bool {
	if !SameShape(a, b) {
		return false
	}
	for r := range a.height {
		br := b.Row(r)
		for c, av := range a.Row(r) {
			bv := float64(br[c])
			if !(math.Abs(float64(av)-bv) <= atol+rtol*math.Abs(bv)) {
				return false
			}
		}
	}
	return true
}
