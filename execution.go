// Copyright ©2019 The Gonum Authors. All rights reserved.
// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ari

import (
	"runtime"
	"sync"
)

// LaunchGrid runs fn once per block across grid, handing each block
// call its own Scratch from alloc. Blocks are independent — no block
// ever communicates with another — so they are distributed across a
// fixed worker pool sized to runtime.NumCPU(), each worker claiming a
// contiguous slab of blocks to maximize cache reuse.
func (ctx *Context) LaunchGrid(fn BlockFunc, grid, block Dim3, alloc ScratchAllocator) error {
	return ctx.launchGridStream(fn, grid, block, alloc, ctx.defaultStream)
}

func (ctx *Context) launchGridStream(fn BlockFunc, grid, block Dim3, alloc ScratchAllocator, stream *Stream) error {
	gridSize := grid.Size()

	if gridSize == 0 {
		stream.Submit(func() {})
		return nil
	}

	numWorkers := runtime.NumCPU()
	if gridSize < numWorkers {
		numWorkers = gridSize
	}

	blocksPerWorker := (gridSize + numWorkers - 1) / numWorkers

	stream.Submit(func() {
		var wg sync.WaitGroup
		wg.Add(numWorkers)

		for workerID := 0; workerID < numWorkers; workerID++ {
			wID := workerID
			startBlock := wID * blocksPerWorker
			endBlock := startBlock + blocksPerWorker
			if endBlock > gridSize {
				endBlock = gridSize
			}

			go func() {
				defer wg.Done()

				for blockID := startBlock; blockID < endBlock; blockID++ {
					blockIdx := linearTo3D(blockID, grid)
					id := BlockID{
						Idx:  blockIdx,
						Dim:  block,
						Grid: grid,
					}
					fn(id, Barrier{}, alloc())
				}
			}()
		}

		wg.Wait()
	})

	return nil
}

// linearTo3D converts a linear block index into 3D grid coordinates.
func linearTo3D(linear int, dim Dim3) Dim3 {
	z := linear / (dim.X * dim.Y)
	y := (linear % (dim.X * dim.Y)) / dim.X
	x := linear % dim.X
	return Dim3{X: x, Y: y, Z: z}
}

// WorkerPool runs submitted tasks on a fixed number of goroutines. The
// host driver uses one internally to overlap the capability probe with
// the host-to-device tensor copy and the alphabet-bound reduction in
// ComputeARI and ComputeARICross; it is also exposed for callers that
// want to batch several ComputeARI calls on a shared pool.
type WorkerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
}

// NewWorkerPool creates a pool of n workers. n<=0 defaults to
// runtime.NumCPU().
func NewWorkerPool(n int) *WorkerPool {
	if n <= 0 {
		n = runtime.NumCPU()
	}

	pool := &WorkerPool{
		workers: n,
		tasks:   make(chan func(), n*2),
	}

	for i := 0; i < n; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		task()
	}
}

// Submit enqueues a task on the pool.
func (wp *WorkerPool) Submit(task func()) {
	wp.tasks <- task
}

// Close drains and shuts down the pool, waiting for in-flight tasks.
func (wp *WorkerPool) Close() {
	close(wp.tasks)
	wp.wg.Wait()
}
