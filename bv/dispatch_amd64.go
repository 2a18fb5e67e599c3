//go:build amd64

package bv

import "golang.org/x/sys/cpu"

func init() {
	if NoWideEnv() {
		setLevel(DispatchScalar)
		return
	}

	// Word kernels lean on hardware popcount for CountOnes.
	if cpu.X86.HasPOPCNT {
		setLevel(DispatchWord)
		return
	}
	setLevel(DispatchScalar)
}
