package conv

import (
	"unsafe"

	"github.com/ajroetker/go-conv2d/hwy/contrib/matrix"
)

// checkInput rejects a nil or malformed matrix.
func checkInput(op, name string, m *matrix.Matrix[float32]) error {
	if m == nil {
		return newError(KindInvalidArgument, op, nil, "%s is nil", name)
	}
	if err := matrix.CheckShape(m.Height(), m.Width()); err != nil {
		return newError(KindInvalidArgument, op, err, "%s is %dx%d", name, m.Height(), m.Width())
	}
	if m.Stride() < m.Width() {
		return newError(KindInvalidArgument, op, nil, "%s stride %d is narrower than its width %d",
			name, m.Stride(), m.Width())
	}
	if len(m.Data()) < extent(m) {
		return newError(KindInvalidArgument, op, nil, "%s holds %d elements, %dx%d needs %d",
			name, len(m.Data()), m.Height(), m.Width(), extent(m))
	}
	return nil
}

// extent is the number of elements from the first cell of m to its last.
func extent(m *matrix.Matrix[float32]) int {
	return (m.Height()-1)*m.Stride() + m.Width()
}

// checkInputs validates the feature map and kernel of a call.
//
// A kernel larger than the feature map is accepted: cells it reaches beyond
// the feature map read as zero like any other padding cell.
func checkInputs(op string, feature, kernel *matrix.Matrix[float32]) error {
	if err := checkInput(op, "feature map", feature); err != nil {
		return err
	}
	return checkInput(op, "kernel", kernel)
}

// checkDestination validates dst against the feature map and kernel. The
// destination must not share memory with either input, since inputs are
// read while the output is being written.
func checkDestination(op string, dst, feature, kernel *matrix.Matrix[float32]) error {
	if err := checkInput(op, "destination", dst); err != nil {
		return err
	}
	if !matrix.SameShape(dst, feature) {
		return newError(KindShapeMismatch, op, nil, "destination is %dx%d, feature map is %dx%d",
			dst.Height(), dst.Width(), feature.Height(), feature.Width())
	}
	out := dst.Data()[:extent(dst)]
	if overlaps(out, feature.Data()[:extent(feature)]) || overlaps(out, kernel.Data()[:extent(kernel)]) {
		return newError(KindInvalidArgument, op, nil, "destination overlaps an input")
	}
	return nil
}

func overlaps(a, b []float32) bool {
	aStart := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bStart := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	aEnd := aStart + uintptr(len(a))*4
	bEnd := bStart + uintptr(len(b))*4
	return aStart < bEnd && bStart < aEnd
}
