//go:build !amd64 && !arm64

package bv

func init() {
	// Other architectures keep scalar kernels; 32-bit targets gain nothing
	// from the 64-bit word view.
	setLevel(DispatchScalar)
}
