package ari

// buildContingency fills scratch.C with the K×K contingency matrix of
// partA against partB: C[a*K+b] = |{t : partA[t]=a and partB[t]=b}|.
// Both partition vectors have length n. Out-of-range labels are
// skipped rather than erroring — the driver has already validated the
// alphabet bound for the whole tensor before any block runs, so a
// skip here only fires on a caller bug that the driver's up-front
// check did not already catch as InvalidInput.
//
// tile requests the tiled variant, which is only actually used when n
// exceeds the tile staging buffer's capacity; the tiled variant
// streams n through scratch.TileA/TileB in chunks of
// len(scratch.TileA), amortizing repeated global-memory reads the way
// a real device's shared memory would. Both variants produce
// bit-for-bit identical C.
func buildContingency(scratch Scratch, bar Barrier, partA, partB []int32, n int, tile bool) {
	k := scratch.K

	for i := range scratch.C {
		scratch.C[i] = 0
	}
	bar.Wait()

	if tile && len(scratch.TileA) > 0 && n > len(scratch.TileA) {
		buildContingencyTiled(scratch, bar, partA, partB, n, k)
		return
	}
	buildContingencyDirect(scratch, partA, partB, n, k)
	bar.Wait()
}

// buildContingencyDirect accumulates C directly from the input
// vectors, with no intermediate staging.
func buildContingencyDirect(scratch Scratch, partA, partB []int32, n, k int) {
	for t := 0; t < n; t++ {
		accumulate(scratch.C, k, partA[t], partB[t])
	}
}

// buildContingencyTiled streams partA/partB through scratch's tile
// staging buffers S elements at a time before accumulating, and
// accumulates from the staged copy — not from the loop index into the
// original vectors. Staging into TileA/TileB and then reading straight
// through the unstaged index would make the staged load dead code;
// this implementation reads only TileA/TileB.
//
// The accumulate pass walks each staged tile in strides of
// ItemsPerThread, mirroring how a real device's striped load would
// split a tile across a work group's lanes: each stride is the slab
// one lane would own, even though this CPU rendering still runs every
// lane's slab on the same goroutine.
func buildContingencyTiled(scratch Scratch, bar Barrier, partA, partB []int32, n, k int) {
	tileSize := len(scratch.TileA)

	for base := 0; base < n; base += tileSize {
		end := base + tileSize
		if end > n {
			end = n
		}
		width := end - base

		copy(scratch.TileA[:width], partA[base:end])
		copy(scratch.TileB[:width], partB[base:end])
		bar.Wait()

		for lane := 0; lane < width; lane += ItemsPerThread {
			laneEnd := lane + ItemsPerThread
			if laneEnd > width {
				laneEnd = width
			}
			for t := lane; t < laneEnd; t++ {
				accumulate(scratch.C, k, scratch.TileA[t], scratch.TileB[t])
			}
		}
		bar.Wait()
	}
}

// accumulate increments C[a,b] if both labels are within [0,k).
func accumulate(c []int64, k int, a, b int32) {
	if a < 0 || b < 0 || int(a) >= k || int(b) >= k {
		return
	}
	c[int(a)*k+int(b)]++
}
