//go:build arm64

package bv

import "golang.org/x/sys/cpu"

func init() {
	if NoWideEnv() {
		setLevel(DispatchScalar)
		return
	}

	// CNT is an ASIMD instruction.
	if cpu.ARM64.HasASIMD {
		setLevel(DispatchWord)
		return
	}
	setLevel(DispatchScalar)
}
