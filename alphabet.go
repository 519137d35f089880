package ari

import (
	"math"
	"sync"
)

// alphabetBound scans the entire partition tensor and returns one plus
// the largest label it contains. It also reports whether any negative
// label was seen, so the driver can fail fast with InvalidInput
// instead of silently dropping out-of-range labels later in the
// contingency builder.
//
// The scan is a slab-parallel reduction over runtime.NumCPU() workers,
// combined sequentially at the end. The alphabet bound is a
// combinatorial bookkeeping value, not a hot numeric kernel, so a
// plain strided scan per worker is enough.
func alphabetBound(labels []int32) (k int, negative bool) {
	n := len(labels)
	if n == 0 {
		return 0, false
	}

	workers := numCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	maxes := make([]int32, workers)
	for i := range maxes {
		maxes[i] = math.MinInt32
	}
	negs := make([]bool, workers)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			localMax := labels[start]
			localNeg := false
			for _, v := range labels[start:end] {
				if v > localMax {
					localMax = v
				}
				if v < 0 {
					localNeg = true
				}
			}
			maxes[w] = localMax
			negs[w] = localNeg
		}(w, start, end)
	}
	wg.Wait()

	max := maxes[0]
	for i, m := range maxes {
		if m > max {
			max = m
		}
		if negs[i] {
			negative = true
		}
	}

	return int(max) + 1, negative
}
