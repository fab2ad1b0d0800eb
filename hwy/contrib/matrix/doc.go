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

// Package matrix provides the dense, row-major 2D matrix type the
// convolution engines operate on, together with the helpers that surround a
// convolution: random generation, a plain-text codec and tolerance
// comparison.
//
// A Matrix stores height×width elements contiguously. Element (row, col)
// lives at flat offset row*Stride()+col, and Stride() always equals Width():
// rows are not padded, so the whole matrix is one cache-friendly run of
// memory that can be handed to vector code unchanged.
//
// # Accessors
//
// At and Set are bounds-checked. At returns zero for coordinates outside the
// matrix, which is exactly the logical zero padding a "same" convolution
// needs; Set ignores them.
//
// # Text format
//
// The first line holds "<height> <width>", followed by height lines of width
// space-separated decimal values:
//
//	2 3
//	0.594 0.934 0.212
//	0.101 0.500 0.733
//
// WriteText formats values with three decimals.
package matrix
