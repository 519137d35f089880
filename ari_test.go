package ari

import (
	"math/rand"
	"testing"
	"testing/quick"
)

func tensor(f, p, n int, labels ...[]int32) Tensor {
	flat := make([]int32, 0, f*p*n)
	for _, l := range labels {
		flat = append(flat, l...)
	}
	return Tensor{Labels: flat, F: f, P: p, N: n}
}

func TestComputeARISeedScenarios(t *testing.T) {
	t.Run("identical partitions score 1.0", func(t *testing.T) {
		tn := tensor(2, 1, 4,
			[]int32{0, 0, 1, 1},
			[]int32{0, 0, 1, 1},
		)
		out := computeARIOrFail(t, tn)
		if !floatEquals(out[0], 1.0, 1e-6) {
			t.Errorf("expected 1.0, got %v", out[0])
		}
	})

	t.Run("label permutation still scores 1.0", func(t *testing.T) {
		tn := tensor(2, 1, 4,
			[]int32{0, 0, 1, 1},
			[]int32{1, 1, 0, 0},
		)
		out := computeARIOrFail(t, tn)
		if !floatEquals(out[0], 1.0, 1e-6) {
			t.Errorf("expected 1.0, got %v", out[0])
		}
	})

	t.Run("complete pairwise disagreement scores -0.5", func(t *testing.T) {
		tn := tensor(2, 1, 4,
			[]int32{0, 0, 1, 1},
			[]int32{0, 1, 0, 1},
		)
		out := computeARIOrFail(t, tn)
		if !floatEquals(out[0], -0.5, 1e-6) {
			t.Errorf("expected -0.5, got %v", out[0])
		}
	})

	t.Run("finite middle-ground value", func(t *testing.T) {
		tn := tensor(2, 1, 6,
			[]int32{0, 0, 0, 1, 1, 1},
			[]int32{0, 0, 1, 1, 2, 2},
		)
		out := computeARIOrFail(t, tn)
		if !floatEquals(out[0], 0.24, 5e-3) {
			t.Errorf("expected approx 0.24, got %v", out[0])
		}
	})

	t.Run("all variants identical yields all ones", func(t *testing.T) {
		variant := []int32{0, 0, 1, 1}
		tn := tensor(3, 2, 4,
			variant, variant, variant, variant, variant, variant,
		)
		out := computeARIOrFail(t, tn)
		if len(out) != 12 {
			t.Fatalf("expected 12 scores, got %d", len(out))
		}
		for i, v := range out {
			if !floatEquals(v, 1.0, 1e-6) {
				t.Errorf("score %d: expected 1.0, got %v", i, v)
			}
		}
	})

	t.Run("degenerate single object", func(t *testing.T) {
		tn := tensor(2, 1, 1,
			[]int32{0},
			[]int32{0},
		)
		out := computeARIOrFail(t, tn)
		if !floatEquals(out[0], 1.0, 1e-6) {
			t.Errorf("expected 1.0, got %v", out[0])
		}
	})
}

func TestComputeARIRejectsBadShape(t *testing.T) {
	cases := []struct {
		name string
		t    Tensor
	}{
		{"nil labels", Tensor{F: 2, P: 1, N: 4}},
		{"zero F", Tensor{Labels: make([]int32, 4), F: 0, P: 1, N: 4}},
		{"F less than two", Tensor{Labels: make([]int32, 4), F: 1, P: 1, N: 4}},
		{"length mismatch", Tensor{Labels: make([]int32, 3), F: 2, P: 1, N: 4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ComputeARI(c.t); !IsInvalidInput(err) {
				t.Errorf("expected InvalidInput, got %v", err)
			}
		})
	}
}

func TestComputeARIRejectsNegativeLabel(t *testing.T) {
	tn := tensor(2, 1, 4,
		[]int32{0, 0, 1, 1},
		[]int32{0, -1, 1, 1},
	)
	if _, err := ComputeARI(tn); !IsInvalidInput(err) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

// TestComputeARIBoundedRange checks that every score stays within the
// valid ARI range across randomly generated partitions.
func TestComputeARIBoundedRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		n := 4 + rng.Intn(40)
		k := 1 + rng.Intn(5)
		a := randomLabels(rng, n, k)
		b := randomLabels(rng, n, k)
		tn := tensor(2, 1, n, a, b)
		out := computeARIOrFail(t, tn)
		for _, v := range out {
			if v < -1-1e-3 || v > 1+1e-3 {
				t.Errorf("score %v out of [-1,1+eps] range", v)
			}
		}
	}
}

// TestComputeARISelfScoreIsOne checks that any partition scored against
// itself yields exactly 1.0, for arbitrary labelings.
func TestComputeARISelfScoreIsOne(t *testing.T) {
	f := func(seed int64, n uint8, k uint8) bool {
		nn := int(n%30) + 2
		kk := int(k%6) + 1
		rng := rand.New(rand.NewSource(seed))
		labels := randomLabels(rng, nn, kk)
		tn := tensor(2, 1, nn, labels, append([]int32{}, labels...))
		out, err := ComputeARI(tn)
		if err != nil {
			return false
		}
		return floatEquals(out[0], 1.0, 1e-5)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 50}); err != nil {
		t.Error(err)
	}
}

// TestComputeARIRelabelingInvariant checks that relabeling a partition
// by a bijection on [0,K) leaves its ARI score unchanged.
func TestComputeARIRelabelingInvariant(t *testing.T) {
	f := func(seed int64, n uint8, k uint8) bool {
		nn := int(n%30) + 2
		kk := int(k%6) + 1
		rng := rand.New(rand.NewSource(seed))
		a := randomLabels(rng, nn, kk)
		b := randomLabels(rng, nn, kk)

		perm := rng.Perm(kk)
		relabeledB := make([]int32, nn)
		for i, v := range b {
			relabeledB[i] = int32(perm[v])
		}

		base := tensor(2, 1, nn, a, b)
		relabeled := tensor(2, 1, nn, a, relabeledB)

		outBase, err := ComputeARI(base)
		if err != nil {
			return false
		}
		outRelabeled, err := ComputeARI(relabeled)
		if err != nil {
			return false
		}
		return floatEquals(outBase[0], outRelabeled[0], 1e-4)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 50}); err != nil {
		t.Error(err)
	}
}

func TestComputeARICrossMatchesSinglePair(t *testing.T) {
	x := tensor(1, 1, 4, []int32{0, 0, 1, 1})
	y := tensor(1, 1, 4, []int32{0, 1, 0, 1})

	out, err := ComputeARICross(x, y)
	if err != nil {
		t.Fatalf("ComputeARICross failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 score, got %d", len(out))
	}
	if !floatEquals(out[0], -0.5, 1e-6) {
		t.Errorf("expected -0.5, got %v", out[0])
	}
}

func randomLabels(rng *rand.Rand, n, k int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(rng.Intn(k))
	}
	return out
}

func TestFinalizeARIGuardsZeroDenominator(t *testing.T) {
	score := finalizeARI([]int64{1, 0, 0, 0})
	if !floatEquals(score, 1.0, 1e-9) {
		t.Errorf("expected guarded 1.0, got %v", score)
	}
}

func TestFinalizeARIMatchesHandComputation(t *testing.T) {
	// TN, FP, FN, TP for the N=6 middle-ground seed scenario.
	score := finalizeARI([]int64{16, 2, 8, 4})
	want := float32(2*(4*16-8*2)) / float32((4+8)*(8+16)+(4+2)*(2+16))
	if !floatEquals(score, want, 1e-6) {
		t.Errorf("expected %v, got %v", want, score)
	}
}
