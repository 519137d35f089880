//go:build arm64

package ari

import "golang.org/x/sys/cpu"

// vectorWidth returns the widest SIMD lane count the host CPU offers,
// in 32-bit elements, used to size a work group's thread count.
func vectorWidth() int {
	if cpu.ARM64.HasASIMD {
		return 4
	}
	return 2
}

func cpuDescription() string {
	if cpu.ARM64.HasASIMD {
		return "arm64/neon"
	}
	return "arm64/scalar"
}
