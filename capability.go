package ari

import "runtime"

// Capability describes the sizing policy the host driver derives from
// the running CPU: how many threads to give each work group, and how
// much scratch a work group may use before the driver must refuse the
// launch with ResourceExceeded.
type Capability struct {
	// Description is a short human-readable summary of the detected
	// instruction set, for diagnostics only.
	Description string

	// BlockSize is the threads-per-work-group (T) the driver will use,
	// a multiple of the detected SIMD width capped at
	// MaxThreadsPerBlock.
	BlockSize int

	// ScratchLimit is the maximum number of bytes of Scratch one work
	// group may occupy.
	ScratchLimit int64
}

// detectCapability probes the host CPU and returns the sizing policy
// ComputeARI uses by default. It never fails: every branch has a safe
// fallback, so a degenerate call (K≤1, N=0) still gets a usable
// Capability rather than an error.
func detectCapability() Capability {
	width := vectorWidth()

	blockSize := DefaultBlockSize
	if width > 0 {
		perCore := width * 32
		if perCore > 0 && perCore <= MaxThreadsPerBlock {
			blockSize = perCore
		}
	}
	if blockSize > MaxThreadsPerBlock {
		blockSize = MaxThreadsPerBlock
	}

	return Capability{
		Description:  cpuDescription(),
		BlockSize:    blockSize,
		ScratchLimit: int64(DefaultScratchLimit),
	}
}

// numCPU is a seam over runtime.NumCPU for the worker-count decision
// in alphabet.go.
func numCPU() int {
	return runtime.NumCPU()
}
