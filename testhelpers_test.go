package ari

import (
	"math"
	"testing"
)

// mallocOrFail allocates device memory and fails the test if unsuccessful.
func mallocOrFail(t testing.TB, size int) DevicePtr {
	t.Helper()
	ptr, err := Malloc(size)
	if err != nil {
		t.Fatalf("Failed to allocate %d bytes: %v", size, err)
	}
	return ptr
}

// computeARIOrFail runs ComputeARI and fails the test on error.
func computeARIOrFail(t testing.TB, tensor Tensor) []float32 {
	t.Helper()
	out, err := ComputeARI(tensor)
	if err != nil {
		t.Fatalf("ComputeARI failed: %v", err)
	}
	return out
}

func floatEquals(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

// makeSequence returns [0, 1, ..., n-1] as int32, for building synthetic
// partition labels in tests.
func makeSequence(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i)
	}
	return out
}
