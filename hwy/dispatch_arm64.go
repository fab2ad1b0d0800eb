//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	// ASIMD is part of ARMv8-A; the check guards odd emulators.
	if cpu.ARM64.HasASIMD {
		use(DispatchNEON)
		return
	}
	use(DispatchScalar)
}
