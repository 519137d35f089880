//go:build amd64

package ari

import "golang.org/x/sys/cpu"

// vectorWidth returns the widest SIMD lane count the host CPU offers,
// in 32-bit elements, used to size a work group's thread count.
func vectorWidth() int {
	switch {
	case cpu.X86.HasAVX512F:
		return AVX512VectorSize
	case cpu.X86.HasAVX2:
		return AVX2VectorSize
	default:
		return 4
	}
}

func cpuDescription() string {
	switch {
	case cpu.X86.HasAVX512F:
		return "amd64/avx512f"
	case cpu.X86.HasAVX2:
		return "amd64/avx2"
	case cpu.X86.HasSSE41:
		return "amd64/sse4.1"
	default:
		return "amd64/scalar"
	}
}
