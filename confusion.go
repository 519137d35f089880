package ari

// reducePairConfusion collapses scratch.C into scratch.C2 = [TN, FP,
// FN, TP], deriving the row/column marginals in scratch.Row/Col along
// the way. n is the object count; all accumulators are 64-bit, since a
// 32-bit counter would overflow once n² exceeds 2³¹.
func reducePairConfusion(scratch Scratch, bar Barrier, n int) {
	k := scratch.K

	for i := range scratch.Row {
		scratch.Row[i] = 0
		scratch.Col[i] = 0
	}

	for a := 0; a < k; a++ {
		row := int64(0)
		for b := 0; b < k; b++ {
			row += scratch.C[a*k+b]
		}
		scratch.Row[a] = row
	}
	for b := 0; b < k; b++ {
		col := int64(0)
		for a := 0; a < k; a++ {
			col += scratch.C[a*k+b]
		}
		scratch.Col[b] = col
	}
	bar.Wait()

	var ss, sumColWeighted, sumRowWeighted int64
	for a := 0; a < k; a++ {
		for b := 0; b < k; b++ {
			c := scratch.C[a*k+b]
			ss += c * c
			sumColWeighted += c * scratch.Col[b]
			sumRowWeighted += scratch.C[b*k+a] * scratch.Row[b]
		}
	}

	nn := int64(n)
	tp := ss - nn
	fp := sumColWeighted - ss
	fn := sumRowWeighted - ss
	tn := nn*nn - fp - fn - ss

	scratch.C2[0] = tn
	scratch.C2[1] = fp
	scratch.C2[2] = fn
	scratch.C2[3] = tp
	bar.Wait()
}
