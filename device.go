// Copyright ©2019 The Gonum Authors. All rights reserved.
// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ari

import (
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Device represents the compute device. There is exactly one: the host
// CPU, exposed through its cores and available memory.
type Device struct {
	ID         int
	Name       string
	TotalMem   uint64
	NumCores   int
	MaxThreads int
}

// Context manages device resources, memory allocation, and stream
// execution for a single caller. A Context must be created before any
// operation and does not need to be destroyed; it holds no off-heap
// resources beyond the memory it allocates through Malloc.
type Context struct {
	device        *Device
	streams       map[int]*Stream
	streamID      int32
	memory        *MemoryPool
	defaultStream *Stream
}

// Stream is an ordered sequence of operations executed asynchronously.
// Operations within a stream run in submission order; operations on
// different streams may run concurrently.
type Stream struct {
	id    int
	tasks chan func()
	done  chan struct{}
	wg    sync.WaitGroup
}

// Dim3 is a 3D extent, used for both grid and block dimensions.
type Dim3 struct {
	X, Y, Z int
}

// Size returns the total element count X*Y*Z.
func (d Dim3) Size() int {
	return d.X * d.Y * d.Z
}

// BlockID identifies one work group's position within the launch grid.
// Every ARI score produced by ComputeARI corresponds to exactly one
// BlockID; BlockID.Idx.X is the linear work-group identifier `b`.
type BlockID struct {
	Idx  Dim3 // this block's position in the grid
	Dim  Dim3 // threads per block
	Grid Dim3 // grid dimensions
}

// Linear returns the linear block identifier within a 1D grid.
func (b BlockID) Linear() int {
	return b.Idx.Z*(b.Grid.X*b.Grid.Y) + b.Idx.Y*b.Grid.X + b.Idx.X
}

// Barrier is the explicit synchronization point a cooperative routine
// waits on between phases (zero → accumulate → reduce). Because a work
// group's threads are executed in strict sequence by a single
// goroutine, every thread has already reached any given program point
// by the time Wait returns: Barrier is a documentation device, not a
// scheduling one, and carries no state.
type Barrier struct{}

// Wait blocks until every thread in the calling block has reached this
// point. On this CPU execution model that is always already true.
func (Barrier) Wait() {}

// BlockFunc is a kernel entry point: one call per work group. It
// receives the group's identity, a Barrier for phase sequencing, and
// the block-local Scratch record backing its contingency/confusion
// matrices.
type BlockFunc func(block BlockID, bar Barrier, scratch Scratch)

// DevicePtr is a typed handle to device memory. It supports pointer
// arithmetic via Offset and typed views via Float32/Int32/Byte.
type DevicePtr struct {
	ptr    unsafe.Pointer
	size   int
	offset int
}

// Global runtime state, mirroring CUDA's implicit default context.
var (
	defaultDevice  *Device
	defaultContext *Context
	initOnce       sync.Once
)

func init() {
	initOnce.Do(func() {
		defaultDevice = &Device{
			ID:         0,
			Name:       "CPU",
			TotalMem:   getSystemMemory(),
			NumCores:   runtime.NumCPU(),
			MaxThreads: runtime.NumCPU() * 2,
		}

		defaultContext = &Context{
			device:  defaultDevice,
			streams: make(map[int]*Stream),
			memory:  NewMemoryPool(),
		}

		defaultContext.defaultStream = defaultContext.CreateStream()
	})
}

// NewContext returns a fresh Context with its own memory pool and
// default stream, independent of the package-level default context.
func NewContext() *Context {
	ctx := &Context{
		device:  defaultDevice,
		streams: make(map[int]*Stream),
		memory:  NewMemoryPool(),
	}
	ctx.defaultStream = ctx.CreateStream()
	return ctx
}

// Malloc allocates device memory of the given size in bytes on the
// default context.
func Malloc(size int) (DevicePtr, error) {
	return defaultContext.Malloc(size)
}

// Free releases memory allocated by Malloc. Safe to call with a zero
// DevicePtr.
func Free(ptr DevicePtr) error {
	return defaultContext.Free(ptr)
}

// Memcpy copies size bytes between host and device on the default
// context. In this unified-memory model all directions are equivalent.
func Memcpy(dst, src interface{}, size int, kind MemcpyKind) error {
	return defaultContext.Memcpy(dst, src, size, kind)
}

// LaunchGrid runs fn once per block across a grid of the given
// dimensions, using block dimension `block` purely for bookkeeping
// (BlockID.Dim) — fn is called once per block, not once per thread,
// and the routines in this package walk their data sequentially
// without reading block.X.
func LaunchGrid(fn BlockFunc, grid, block Dim3, scratch ScratchAllocator) error {
	return defaultContext.LaunchGrid(fn, grid, block, scratch)
}

// Synchronize blocks until every stream on the default context has
// drained.
func Synchronize() error {
	return defaultContext.Synchronize()
}

// GetDevice returns the current device; there is always exactly one.
func GetDevice() *Device {
	return defaultDevice
}

// CreateStream creates a new execution stream on ctx.
func (ctx *Context) CreateStream() *Stream {
	id := int(atomic.AddInt32(&ctx.streamID, 1))
	stream := &Stream{
		id:    id,
		tasks: make(chan func(), 1000),
		done:  make(chan struct{}),
	}
	go stream.worker()
	ctx.streams[id] = stream
	return stream
}

// Synchronize waits for every stream on ctx to finish its queued work.
func (ctx *Context) Synchronize() error {
	for _, stream := range ctx.streams {
		stream.Synchronize()
	}
	return nil
}

func (s *Stream) worker() {
	for task := range s.tasks {
		task()
		s.wg.Done()
	}
	close(s.done)
}

// Synchronize waits for all tasks submitted to s to complete.
func (s *Stream) Synchronize() {
	s.wg.Wait()
}

// Submit enqueues a task on s.
func (s *Stream) Submit(task func()) {
	s.wg.Add(1)
	s.tasks <- task
}

func getSystemMemory() uint64 {
	return 16 * 1024 * 1024 * 1024
}
