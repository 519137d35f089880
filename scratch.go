package ari

// Scratch is the fixed-layout record of block-local scratch memory a
// single work group needs: the K×K contingency matrix, its row/column
// marginals, and the 2×2 pair-confusion matrix, plus an optional tile
// staging buffer for the tiled contingency variant.
//
// Every field is private to one block for the duration of one launch;
// no two blocks ever share a Scratch value, so no field here needs to
// be synchronized across goroutines.
type Scratch struct {
	K int

	// C is the K*K contingency matrix, row-major: C[a*K+b].
	C []int64

	// Row and Col are the K-length marginals.
	Row []int64
	Col []int64

	// C2 holds [TN, FP, FN, TP]. It is a slice, like every other
	// scratch field, rather than a fixed array: Scratch values are
	// passed by value through the contingency/confusion/finalize
	// pipeline, and only a slice's shared backing array lets a later
	// stage observe an earlier stage's writes.
	C2 []int64

	// TileA and TileB are the striped staging buffers used by the
	// tiled contingency variant; both have length tileSize.
	TileA []int32
	TileB []int32
}

// ScratchAllocator produces a fresh, zeroed Scratch sized for a call's
// alphabet bound K and tile size. One is invoked per block so that
// concurrently running blocks never alias scratch memory.
type ScratchAllocator func() Scratch

// newScratchAllocator returns a ScratchAllocator that allocates a new
// Scratch record, sized for alphabet bound k and tile size tileSize,
// each time it is called.
func newScratchAllocator(k, tileSize int) ScratchAllocator {
	return func() Scratch {
		return Scratch{
			K:     k,
			C:     make([]int64, k*k),
			Row:   make([]int64, k),
			Col:   make([]int64, k),
			C2:    make([]int64, 4),
			TileA: make([]int32, tileSize),
			TileB: make([]int32, tileSize),
		}
	}
}

// scratchFootprint returns the number of bytes one block's Scratch
// occupies for alphabet bound k: K²·sizeof(int64) for the contingency
// matrix, 2K·sizeof(int64) for the marginals, and 4·sizeof(int64) for
// the pair-confusion matrix.
func scratchFootprint(k int) int64 {
	const wordSize = 8
	return int64(k*k+2*k+4) * wordSize
}
