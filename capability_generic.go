//go:build !amd64 && !arm64

package ari

// vectorWidth returns a conservative SIMD lane count on architectures
// without a golang.org/x/sys/cpu feature table consulted in
// capability_amd64.go or capability_arm64.go.
func vectorWidth() int {
	return 1
}

func cpuDescription() string {
	return "generic/scalar"
}
