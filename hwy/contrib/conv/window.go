package conv

// Index returns the flat offset of (row, col) in a row-major buffer with the
// given stride.
func Index(row, col, stride int) int {
	return row*stride + col
}

// InBounds is the logical zero-padding predicate: coord addresses real data
// only when 0 <= coord < bound.
func InBounds(coord, bound int) bool {
	return coord >= 0 && coord < bound
}

// AsymmetricOffset returns 1 for an even kernel dimension and 0 for an odd
// one. It shrinks the positive side of the window so that an even axis
// still has a single center cell.
func AsymmetricOffset(size int) int {
	return 1 - size%2
}

// Window describes where a kH×kW kernel sits relative to the output cell it
// produces. Offsets are relative to that cell and inclusive on both ends.
type Window struct {
	KH, KW     int // kernel height and width
	PadH, PadW int // kH/2, kW/2: reach of the window on the negative side
	OffH, OffW int // AsymmetricOffset of each axis
}

// NewWindow returns the window of a kH×kW kernel.
func NewWindow(kH, kW int) Window {
	return Window{
		KH:   kH,
		KW:   kW,
		PadH: kH / 2,
		PadW: kW / 2,
		OffH: AsymmetricOffset(kH),
		OffW: AsymmetricOffset(kW),
	}
}

// Rows returns the range of row offsets covered by the window.
func (w Window) Rows() (lo, hi int) {
	return -w.PadH, w.PadH - w.OffH
}

// Cols returns the range of column offsets covered by the window.
func (w Window) Cols() (lo, hi int) {
	return -w.PadW, w.PadW - w.OffW
}

// KernelIndex returns the flat offset, in a kernel buffer with the given
// row stride, of the weight applied at window offset (i, j).
func (w Window) KernelIndex(i, j, stride int) int {
	return Index(i+w.PadH, j+w.PadW, stride)
}

// Clip narrows the window around output cell (n, k) of an h×width feature
// map to the offsets that land inside it. Every offset it drops reads a
// zero-padding cell, so summing over the clipped window gives the same
// result as the full one.
//
// The returned ranges are never empty: offset 0 is always inside.
func (w Window) Clip(n, k, h, width int) (iLo, iHi, jLo, jHi int) {
	iLo, iHi = w.Rows()
	jLo, jHi = w.Cols()
	return max(iLo, -n), min(iHi, h-1-n), max(jLo, -k), min(jHi, width-1-k)
}
