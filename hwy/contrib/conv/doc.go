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

// Package conv computes "same" 2D convolutions of a float32 feature map with
// a small kernel.
//
// The operation is a correlation: the kernel is applied as given, without
// flipping. Callers that need true convolution semantics must flip the kernel
// themselves. The output has the shape of the feature map; cells of the
// feature map outside its bounds read as zero (logical zero padding), so no
// padded copy of the input is ever built.
//
// For output cell (n, k) and a kH×kW kernel g:
//
//	out[n,k] = Σ_i Σ_j f(n+i, k+j) · g[i+kH/2, j+kW/2]
//
// where i runs over [-kH/2, kH/2-offH] and j over [-kW/2, kW/2-offW], with
// off = 1 for an even kernel axis and 0 for an odd one.
//
// # Even kernels
//
// An even axis has no middle cell, so the window is shifted: the extra cell
// falls on the negative side. For kH = 2 the window covers rows n-1 and n,
// kernel row 0 weighting the row above the output cell. A 2×1 kernel [1; 0]
// therefore moves the feature map down by one row, and [0; 1] is the identity.
// Both engines use this convention.
//
// # Engines
//
// Convolve is the single-goroutine reference implementation. Parallel spreads
// the output rows over a persistent worker pool and reduces each kernel row
// against the in-bounds feature segment with a lane-wide dot product. The two
// agree to within float32 rounding; they do not promise bit-identical results
// because the parallel engine sums in a different order.
//
//	eng := conv.New(conv.Config{Parallel: true, Threads: 8})
//	defer eng.Close()
//	out, err := eng.Convolve(feature, kernel)
package conv
