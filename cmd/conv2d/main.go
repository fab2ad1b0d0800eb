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

// Command conv2d computes the "same" 2D convolution of a feature map with a
// kernel, using either the serial reference engine or the parallel engine.
//
// Usage:
//
//	conv2d -H 1000 -W 1000 --kH 3 --kW 3 -p -b          # random inputs, parallel, timed
//	conv2d -f feature.txt -g kernel.txt -o output.txt   # inputs from files
//	conv2d -H 64 -W 64 -f f.txt --kH 5 --kW 5 -g g.txt  # generate and save inputs
//
// Giving either dimension of an input generates it with uniform random values
// in [0, 1) (a missing dimension defaults to 1); the matching path flag then
// names where the generated input is saved. Without dimensions, the input is
// read from the path flag. Matrices are stored as a "<height> <width>" line
// followed by one line of space-separated values per row.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
