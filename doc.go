// Copyright ©2019 The Gonum Authors. All rights reserved.
// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ari computes the Adjusted Rand Index across many pairs of
// cluster partitions using a CUDA-shaped, CPU-resident execution model.
//
// Inputs are a dense (F, P, N) tensor of integer partition labels: F
// features, P partition variants per feature, N objects. The engine
// produces one ARI score per ordered (partition-variant) pairing for
// every unordered feature pair, by launching one work group per score.
// Each work group runs a contingency build, a pair-confusion reduction,
// and a scalar finalizer against block-local scratch memory, in the
// same grid/block/thread shape CUDA kernels use — ported here to
// goroutines so the decomposition and the numeric pipeline can be
// inspected and tested without a GPU.
package ari
