package matrix

import "math/rand/v2"

// Random returns a height×width matrix of values drawn uniformly from [0, 1).
//
// The generator is fully determined by (seed, stream): equal arguments give
// equal matrices, and two matrices generated from the same seed on different
// streams are independent.
func Random(height, width int, seed, stream uint64) (*Matrix[float32], error) {
	m, err := New[float32](height, width)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(seed, stream))
	for i := range m.data {
		m.data[i] = rng.Float32()
	}
	return m, nil
}
