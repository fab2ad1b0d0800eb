package hwy

import (
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel names the SIMD instruction set the vector helpers are sized
// for. It is detected once at start-up.
type DispatchLevel int

const (
	DispatchScalar DispatchLevel = iota // no SIMD; 16-byte vectors emulated in Go
	DispatchSSE2                        // x86-64 baseline, 128-bit
	DispatchAVX2                        // 256-bit, with FMA
	DispatchAVX512                      // 512-bit (F + DQ)
	DispatchNEON                        // ARM ASIMD, 128-bit
)

var levelNames = [...]string{
	DispatchScalar: "scalar",
	DispatchSSE2:   "sse2",
	DispatchAVX2:   "avx2",
	DispatchAVX512: "avx512",
	DispatchNEON:   "neon",
}

func (d DispatchLevel) String() string {
	if d < 0 || int(d) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[d]
}

// width is the register width in bytes for the level.
func (d DispatchLevel) width() int {
	switch d {
	case DispatchAVX512:
		return 64
	case DispatchAVX2:
		return 32
	default:
		return 16
	}
}

// current is set by the architecture's init.
var current = DispatchScalar

func use(level DispatchLevel) {
	if NoSimdEnv() {
		level = DispatchScalar
	}
	current = level
}

// CurrentLevel returns the detected instruction set.
func CurrentLevel() DispatchLevel { return current }

// CurrentWidth returns the vector width in bytes: 16 for scalar, SSE2 and
// NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int { return current.width() }

// CurrentName returns the name of the current target, e.g. "avx2".
func CurrentName() string { return current.String() }

// NoSimdEnv reports whether HWY_NO_SIMD asks for the scalar configuration.
// Any value other than one strconv.ParseBool reads as false counts as set.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// MaxLanes returns how many T fit in one vector of the current width, e.g. 8
// float32 lanes or 4 float64 lanes under AVX2.
func MaxLanes[T Floats]() int {
	var zero T
	return min(CurrentWidth()/int(unsafe.Sizeof(zero)), maxVecLanes)
}
