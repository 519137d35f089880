package ari

import "math"

// unravel splits a flat row-major index into (row, col) for a matrix
// with c columns.
func unravel(flat, c int) (row, col int) {
	return flat / c, flat % c
}

// triangularInverse maps a linear index idx, 0 ≤ idx < n(n-1)/2, to the
// coordinates (x, y) of the idx-th entry of a row-major enumeration of
// the strict upper triangle (x<y) of an n×n matrix.
//
// The formula inverts the triangular-number closed form using a
// single-precision square root: b = 1-2n, disc = b²-8·idx,
// x = floor((-b-√disc)/2), y = idx + x(b+x+2)/2 + 1. Single-precision
// sqrt can round the wrong way for large n, so the result is verified
// by recomputing idx from the candidate (x,y) and nudging x by ±1 if
// it disagrees.
func triangularInverse(n, idx int) (x, y int) {
	bInt := 1 - 2*n
	b := float32(bInt)
	disc := b*b - 8*float32(idx)
	x0 := int(math.Floor(float64((-b - sqrt32(disc)) / 2)))

	for _, cand := range []int{x0, x0 - 1, x0 + 1, x0 - 2, x0 + 2} {
		if cand < 0 || cand >= n-1 {
			continue
		}
		cy := idx + cand*(bInt+cand+2)/2 + 1
		if cy > cand && cy < n && flatIndex(n, cand, cy) == idx {
			return cand, cy
		}
	}

	// Unreachable for any idx in [0, n(n-1)/2) — fall back to the
	// uncorrected candidate rather than panic on a validated input.
	y0 := idx + x0*(bInt+x0+2)/2 + 1
	return x0, y0
}

// flatIndex is triangularInverse's inverse: given 0≤x<y<n, it returns
// the linear index of (x,y) in the same row-major upper-triangle
// enumeration. Used only to verify/correct triangularInverse's
// candidate.
func flatIndex(n, x, y int) int {
	b := 1 - 2*n
	return y - 1 - (x*(b+x+2))/2
}

// sqrt32 computes a float32 square root. Go has no math.Sqrt32;
// triangularInverse evaluates the discriminant in single precision on
// purpose, and the correction loop there exists precisely to
// compensate for the rounding this introduces.
func sqrt32(x float32) float32 {
	if x < 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}
