package ari

// finalizeARI turns a pair-confusion matrix c2 = [TN, FP, FN, TP] into
// a single Adjusted Rand Index score in [-1, 1]. Perfect agreement
// (FN=FP=0) is guarded explicitly to avoid 0/0; no other
// denominator-zero case is possible for a valid partition pair with
// n≥2. The numerator and denominator are both accumulated in 64-bit
// integers and only the final ratio is a float division, avoiding the
// precision loss of casting every count to float before multiplying.
func finalizeARI(c2 []int64) float32 {
	tn, fp, fn, tp := c2[0], c2[1], c2[2], c2[3]

	if fn == 0 && fp == 0 {
		return 1.0
	}

	numerator := 2 * (tp*tn - fn*fp)
	denominator := (tp+fn)*(fn+tn) + (tp+fp)*(fp+tn)
	if denominator == 0 {
		return 1.0
	}

	return float32(float64(numerator) / float64(denominator))
}

// Tensor is a dense row-major (F, P, N) collection of integer
// partition labels: F features, P partition variants per feature, N
// objects. The caller owns Labels; ComputeARI treats it as immutable
// and does not retain a reference after returning.
type Tensor struct {
	Labels  []int32
	F, P, N int
}

// at returns the label vector for feature f, variant p.
func (t Tensor) at(f, p int) []int32 {
	start := (f*t.P + p) * t.N
	return t.Labels[start : start+t.N]
}

func (t Tensor) validate(op string) error {
	if t.Labels == nil {
		return InvalidInput(op, "partition tensor is nil")
	}
	if t.F <= 0 || t.P <= 0 || t.N <= 0 {
		return InvalidInput(op, "F, P, and N must all be strictly positive")
	}
	if len(t.Labels) != t.F*t.P*t.N {
		return InvalidInput(op, "labels length does not match F*P*N")
	}
	return nil
}

// ComputeARI scores every ordered (partition-variant) pairing between
// every unordered feature pair i<j in t, returning a dense vector of
// length A = F(F-1)/2 · P², ordered lexicographically by (i,j) then by
// (m,n) in row-major P×P order.
//
// ComputeARI validates shape, then runs the host capability probe on a
// WorkerPool while it copies the partition tensor to device memory and
// derives the alphabet bound K by a parallel max reduction over that
// device copy. It checks the resulting scratch footprint against the
// probed scratch limit, launches one work group per output score into a
// device-resident score buffer, and copies the buffer back before
// returning.
func ComputeARI(t Tensor) ([]float32, error) {
	const op = "ComputeARI"

	if err := t.validate(op); err != nil {
		return nil, err
	}
	if t.F < 2 {
		return nil, InvalidInput(op, "F must be at least 2 to form a feature pair")
	}

	capPool := NewWorkerPool(1)
	capCh := make(chan Capability, 1)
	capPool.Submit(func() { capCh <- detectCapability() })
	defer capPool.Close()

	devLabels, err := defaultContext.Malloc(len(t.Labels) * 4)
	if err != nil {
		return nil, DeviceError(op, "failed to allocate device memory for partition tensor", err)
	}
	defer defaultContext.Free(devLabels)
	if err := defaultContext.Memcpy(devLabels, t.Labels, len(t.Labels)*4, MemcpyHostToDevice); err != nil {
		return nil, DeviceError(op, "failed to copy partition tensor to device", err)
	}
	dt := Tensor{Labels: devLabels.Int32(), F: t.F, P: t.P, N: t.N}

	k, neg := alphabetBound(dt.Labels)
	if neg {
		return nil, InvalidInput(op, "partition tensor contains a negative label")
	}
	if k == 0 {
		k = 1
	}
	if k > MaxAlphabetBound {
		return nil, InvalidInput(op, "alphabet bound exceeds MaxAlphabetBound")
	}

	devCap := <-capCh
	if footprint := scratchFootprint(k); footprint > devCap.ScratchLimit {
		return nil, ResourceExceeded(op, "per-group scratch footprint exceeds device limit; relabel partitions densely to shrink K")
	}

	a := (t.F * (t.F - 1) / 2) * t.P * t.P

	devOut, err := defaultContext.Malloc(a * 4)
	if err != nil {
		return nil, DeviceError(op, "failed to allocate device memory for score buffer", err)
	}
	defer defaultContext.Free(devOut)
	scores := devOut.Float32()

	alloc := newScratchAllocator(k, tileSizeFor(t.N))
	block := Dim3{X: devCap.BlockSize, Y: 1, Z: 1}
	grid := Dim3{X: a, Y: 1, Z: 1}

	fn := func(id BlockID, bar Barrier, scratch Scratch) {
		b := id.Linear()
		f := b / (t.P * t.P)
		p := b % (t.P * t.P)
		i, j := triangularInverse(t.F, f)
		m, n := unravel(p, t.P)

		partA := dt.at(i, m)
		partB := dt.at(j, n)

		buildContingency(scratch, bar, partA, partB, t.N, t.N > len(scratch.TileA))
		reducePairConfusion(scratch, bar, t.N)
		scores[b] = finalizeARI(scratch.C2)
	}

	if err := defaultContext.LaunchGrid(fn, grid, block, alloc); err != nil {
		return nil, DeviceError(op, "kernel launch failed", err)
	}
	if err := defaultContext.Synchronize(); err != nil {
		return nil, DeviceError(op, "synchronization failed", err)
	}

	out := make([]float32, a)
	if err := defaultContext.Memcpy(out, devOut, a*4, MemcpyDeviceToHost); err != nil {
		return nil, DeviceError(op, "failed to copy score buffer from device", err)
	}

	return out, nil
}

// ComputeARICross scores every (feature in x) × (feature in y) pair —
// not only the unordered i<j pairs ComputeARI covers — since x and y
// may be disjoint partition collections. It shares every other
// invariant with ComputeARI (same contingency/confusion/finalize
// pipeline, same scratch sizing policy).
//
// The result has length x.F * y.F * x.P * y.P, ordered lexicographically
// by (feature in x, feature in y) then by (variant in x, variant in y).
func ComputeARICross(x, y Tensor) ([]float32, error) {
	const op = "ComputeARICross"

	if err := x.validate(op); err != nil {
		return nil, err
	}
	if err := y.validate(op); err != nil {
		return nil, err
	}
	if x.N != y.N {
		return nil, InvalidInput(op, "x and y must describe the same number of objects")
	}

	capPool := NewWorkerPool(1)
	capCh := make(chan Capability, 1)
	capPool.Submit(func() { capCh <- detectCapability() })
	defer capPool.Close()

	devX, err := defaultContext.Malloc(len(x.Labels) * 4)
	if err != nil {
		return nil, DeviceError(op, "failed to allocate device memory for x partition tensor", err)
	}
	defer defaultContext.Free(devX)
	if err := defaultContext.Memcpy(devX, x.Labels, len(x.Labels)*4, MemcpyHostToDevice); err != nil {
		return nil, DeviceError(op, "failed to copy x partition tensor to device", err)
	}
	dx := Tensor{Labels: devX.Int32(), F: x.F, P: x.P, N: x.N}

	devY, err := defaultContext.Malloc(len(y.Labels) * 4)
	if err != nil {
		return nil, DeviceError(op, "failed to allocate device memory for y partition tensor", err)
	}
	defer defaultContext.Free(devY)
	if err := defaultContext.Memcpy(devY, y.Labels, len(y.Labels)*4, MemcpyHostToDevice); err != nil {
		return nil, DeviceError(op, "failed to copy y partition tensor to device", err)
	}
	dy := Tensor{Labels: devY.Int32(), F: y.F, P: y.P, N: y.N}

	combined := make([]int32, len(dx.Labels)+len(dy.Labels))
	copy(combined, dx.Labels)
	copy(combined[len(dx.Labels):], dy.Labels)

	k, neg := alphabetBound(combined)
	if neg {
		return nil, InvalidInput(op, "partition tensor contains a negative label")
	}
	if k == 0 {
		k = 1
	}
	if k > MaxAlphabetBound {
		return nil, InvalidInput(op, "alphabet bound exceeds MaxAlphabetBound")
	}

	devCap := <-capCh
	if footprint := scratchFootprint(k); footprint > devCap.ScratchLimit {
		return nil, ResourceExceeded(op, "per-group scratch footprint exceeds device limit; relabel partitions densely to shrink K")
	}

	a := x.F * y.F * x.P * y.P

	devOut, err := defaultContext.Malloc(a * 4)
	if err != nil {
		return nil, DeviceError(op, "failed to allocate device memory for score buffer", err)
	}
	defer defaultContext.Free(devOut)
	scores := devOut.Float32()

	alloc := newScratchAllocator(k, tileSizeFor(x.N))
	block := Dim3{X: devCap.BlockSize, Y: 1, Z: 1}
	grid := Dim3{X: a, Y: 1, Z: 1}

	fn := func(id BlockID, bar Barrier, scratch Scratch) {
		b := id.Linear()
		pairs := x.P * y.P
		fPair := b / pairs
		variants := b % pairs
		i, j := fPair/y.F, fPair%y.F
		m, n := variants/y.P, variants%y.P

		partA := dx.at(i, m)
		partB := dy.at(j, n)

		buildContingency(scratch, bar, partA, partB, x.N, x.N > len(scratch.TileA))
		reducePairConfusion(scratch, bar, x.N)
		scores[b] = finalizeARI(scratch.C2)
	}

	if err := defaultContext.LaunchGrid(fn, grid, block, alloc); err != nil {
		return nil, DeviceError(op, "kernel launch failed", err)
	}
	if err := defaultContext.Synchronize(); err != nil {
		return nil, DeviceError(op, "synchronization failed", err)
	}

	out := make([]float32, a)
	if err := defaultContext.Memcpy(out, devOut, a*4, MemcpyDeviceToHost); err != nil {
		return nil, DeviceError(op, "failed to copy score buffer from device", err)
	}

	return out, nil
}

// tileSizeFor picks the tiled contingency builder's staging buffer
// length for an object count of n: DefaultTileSize, unless n is small
// enough that the direct variant alone is cheaper to allocate for.
func tileSizeFor(n int) int {
	if n < DefaultTileSize {
		return n
	}
	return DefaultTileSize
}
