package conv

import "github.com/ajroetker/go-conv2d/hwy/contrib/matrix"

// Engine is implemented by Serial and *Parallel.
type Engine interface {
	// Convolve returns the "same" correlation of feature with kernel in a
	// new matrix shaped like feature.
	Convolve(feature, kernel *matrix.Matrix[float32]) (*matrix.Matrix[float32], error)

	// ConvolveInto writes the correlation of feature with kernel into dst.
	ConvolveInto(dst, feature, kernel *matrix.Matrix[float32]) error

	// Close releases any resources held by the engine.
	Close()
}

// Config selects and sizes an engine.
type Config struct {
	// Parallel selects the parallel engine; otherwise the serial reference
	// engine is used.
	Parallel bool

	// Threads is the parallel engine's worker count. Values <= 0 mean
	// GOMAXPROCS. Ignored by the serial engine.
	Threads int
}

// New returns the engine described by cfg.
func New(cfg Config) Engine {
	if cfg.Parallel {
		return NewParallel(cfg.Threads)
	}
	return Serial{}
}
