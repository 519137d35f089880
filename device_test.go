package ari

import (
	"testing"
)

func TestMemoryAllocation(t *testing.T) {
	sizes := []int{4, 400, 40000}

	for _, size := range sizes {
		ptr := mallocOrFail(t, size)

		slice := ptr.Byte()
		if len(slice) != size {
			t.Errorf("size %d: expected byte view length %d, got %d", size, size, len(slice))
		}

		for i := 0; i < len(slice); i++ {
			slice[i] = byte(i)
		}
		for i := 0; i < len(slice); i++ {
			if slice[i] != byte(i) {
				t.Errorf("size %d: memory corruption at index %d", size, i)
			}
		}

		if err := Free(ptr); err != nil {
			t.Fatalf("size %d: Free failed: %v", size, err)
		}
	}
}

func TestMallocRejectsNonPositiveSize(t *testing.T) {
	if _, err := Malloc(0); !IsInvalidInput(err) {
		t.Errorf("expected InvalidInput for size 0, got %v", err)
	}
	if _, err := Malloc(-1); !IsInvalidInput(err) {
		t.Errorf("expected InvalidInput for negative size, got %v", err)
	}
}

func TestFreeIsNilSafe(t *testing.T) {
	if err := Free(DevicePtr{}); err != nil {
		t.Errorf("Free on zero DevicePtr should be a no-op, got %v", err)
	}
}

func TestMemcpyRoundTrip(t *testing.T) {
	const n = 256
	src := make([]float32, n)
	for i := range src {
		src[i] = float32(i) * 0.5
	}

	dst := mallocOrFail(t, n*4)
	defer Free(dst)

	if err := Memcpy(dst, src, n*4, MemcpyHostToDevice); err != nil {
		t.Fatalf("H2D copy failed: %v", err)
	}

	back := make([]float32, n)
	if err := Memcpy(back, dst, n*4, MemcpyDeviceToHost); err != nil {
		t.Fatalf("D2H copy failed: %v", err)
	}

	for i := range src {
		if !floatEquals(back[i], src[i], 1e-9) {
			t.Errorf("index %d: got %v, want %v", i, back[i], src[i])
		}
	}
}

func TestLaunchGridCallsEveryBlockExactlyOnce(t *testing.T) {
	const grid = 37
	counts := make([]int, grid)

	fn := func(id BlockID, bar Barrier, scratch Scratch) {
		counts[id.Linear()]++
	}
	alloc := newScratchAllocator(1, 1)

	if err := defaultContext.LaunchGrid(fn, Dim3{X: grid, Y: 1, Z: 1}, Dim3{X: 1, Y: 1, Z: 1}, alloc); err != nil {
		t.Fatalf("LaunchGrid failed: %v", err)
	}
	if err := defaultContext.Synchronize(); err != nil {
		t.Fatalf("Synchronize failed: %v", err)
	}

	for i, c := range counts {
		if c != 1 {
			t.Errorf("block %d ran %d times, want 1", i, c)
		}
	}
}

func TestWorkerPoolRunsAllSubmittedTasks(t *testing.T) {
	pool := NewWorkerPool(4)
	const n = 100
	done := make(chan int, n)

	for i := 0; i < n; i++ {
		i := i
		pool.Submit(func() { done <- i })
	}
	pool.Close()
	close(done)

	seen := make(map[int]bool)
	for v := range done {
		seen[v] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct tasks to run, got %d", n, len(seen))
	}
}

func TestDetectCapabilityReturnsUsableBlockSize(t *testing.T) {
	devCap := detectCapability()
	if devCap.BlockSize <= 0 || devCap.BlockSize > MaxThreadsPerBlock {
		t.Errorf("BlockSize %d out of range (0, %d]", devCap.BlockSize, MaxThreadsPerBlock)
	}
	if devCap.ScratchLimit <= 0 {
		t.Errorf("ScratchLimit must be positive, got %d", devCap.ScratchLimit)
	}
	if devCap.Description == "" {
		t.Errorf("Description should not be empty")
	}
}
