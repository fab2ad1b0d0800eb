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

package hwy

// This file provides the arithmetic subset the convolution kernels need.
// Every operation works on value-type vectors, so none of them allocate.

// Zero returns a vector with all lanes set to zero.
func Zero[T Floats]() Vec[T] {
	return Vec[T]{n: MaxLanes[T]()}
}

// Load loads up to MaxLanes elements from src. Missing lanes are zero.
func Load[T Floats](src []T) Vec[T] {
	v := Vec[T]{n: MaxLanes[T]()}
	copy(v.data[:v.n], src)
	return v
}

// Set creates a vector with all lanes set to the same value.
func Set[T Floats](value T) Vec[T] {
	v := Vec[T]{n: MaxLanes[T]()}
	for i := range v.n {
		v.data[i] = value
	}
	return v
}

// Add performs element-wise addition.
func Add[T Floats](a, b Vec[T]) Vec[T] {
	n := min(a.n, b.n)
	r := Vec[T]{n: n}
	for i := range n {
		r.data[i] = a.data[i] + b.data[i]
	}
	return r
}

// Mul performs element-wise multiplication.
func Mul[T Floats](a, b Vec[T]) Vec[T] {
	n := min(a.n, b.n)
	r := Vec[T]{n: n}
	for i := range n {
		r.data[i] = a.data[i] * b.data[i]
	}
	return r
}

// MulAdd computes a*b + c per lane.
//
// The product is rounded before the addition (no fused multiply-add), so
// results agree with scalar code that accumulates the same lanes in the
// same order.
func MulAdd[T Floats](a, b, c Vec[T]) Vec[T] {
	n := min(a.n, b.n, c.n)
	r := Vec[T]{n: n}
	for i := range n {
		r.data[i] = T(a.data[i]*b.data[i]) + c.data[i]
	}
	return r
}

// ReduceSum returns the sum of all lanes.
//
// Lanes are combined pairwise, the way a horizontal add tree does it.
func ReduceSum[T Floats](v Vec[T]) T {
	lanes := v.data
	for width := v.n; width > 1; width = (width + 1) / 2 {
		half := width / 2
		for i := range half {
			lanes[i] += lanes[i+half+width%2]
		}
	}
	if v.n == 0 {
		return 0
	}
	return lanes[0]
}
