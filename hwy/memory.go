package hwy

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// CacheLineSize is the cache line size, in bytes, that allocations are
// padded and aligned to. Fixed at 64 bytes, the line size of every amd64 and
// arm64 core we dispatch for.
const CacheLineSize = 64

// ErrAllocation reports that a buffer could not be allocated.
var ErrAllocation = errors.New("hwy: allocation failed")

// CachePadding returns the number of bytes that round size up to the next
// multiple of CacheLineSize. It returns 0 when size already ends on a line
// boundary.
func CachePadding(size int) int {
	if rem := size % CacheLineSize; rem != 0 {
		return CacheLineSize - rem
	}
	return 0
}

// Padded is a buffer of n elements that starts on a cache line boundary and
// owns every byte of its last cache line. The bytes between len(Data) and the
// end of that line are the padding region: they belong to the allocation so no
// unrelated object can share the line, and they are never read or written.
type Padded[T Floats] struct {
	// Data holds the n logical elements. cap(Data) extends over the padding.
	Data []T

	padBytes int
}

// PaddingBytes returns the size of the trailing padding region in bytes.
// It is zero when the data already ends exactly on a cache line boundary.
func (p Padded[T]) PaddingBytes() int {
	return p.padBytes
}

// AllocPadded allocates a zeroed, cache-line aligned buffer of n elements whose
// size is rounded up to a multiple of CacheLineSize.
//
// Errors wrap ErrAllocation, both for sizes that cannot be represented and for
// allocations the runtime refuses.
func AllocPadded[T Floats](n int) (p Padded[T], err error) {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if n <= 0 {
		return Padded[T]{}, fmt.Errorf("%w: non-positive length %d", ErrAllocation, n)
	}
	if n > (math.MaxInt-2*CacheLineSize)/elem {
		return Padded[T]{}, fmt.Errorf("%w: %d elements overflow the address space", ErrAllocation, n)
	}

	size := n * elem
	pad := CachePadding(size)
	// One extra line of slack lets us slide the start onto a line boundary.
	total := (size + pad + CacheLineSize) / elem

	defer func() {
		if r := recover(); r != nil {
			p = Padded[T]{}
			err = fmt.Errorf("%w: %d bytes: %v", ErrAllocation, size+pad, r)
		}
	}()
	buf := make([]T, total)

	skip := 0
	if mis := int(uintptr(unsafe.Pointer(&buf[0])) % CacheLineSize); mis != 0 {
		skip = (CacheLineSize - mis) / elem
	}
	end := skip + n
	return Padded[T]{
		Data:     buf[skip:end:(end + pad/elem)],
		padBytes: pad,
	}, nil
}

// IsAligned reports whether the first element of s starts on a cache line
// boundary. Empty slices are never aligned.
func IsAligned[T Floats](s []T) bool {
	if len(s) == 0 {
		return false
	}
	return uintptr(unsafe.Pointer(&s[0]))%CacheLineSize == 0
}
