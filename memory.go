package ari

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"
)

// MemcpyKind specifies the direction of a memory transfer. In this
// unified-memory model every direction performs the same copy; the
// type exists for CUDA-shaped call sites to stay self-documenting.
type MemcpyKind int

const (
	MemcpyHostToHost MemcpyKind = iota
	MemcpyHostToDevice
	MemcpyDeviceToHost
	MemcpyDeviceToDevice
	MemcpyDefault
)

// MemoryPool allocates device memory with a free list to avoid
// repeated allocation for the tensor and score buffers a batch ARI
// call needs. Per-block Scratch records are not allocated from it.
type MemoryPool struct {
	mu         sync.Mutex
	allocated  map[uintptr]*allocation
	freeList   []*allocation
	totalAlloc int64
	peakAlloc  int64
}

type allocation struct {
	ptr  unsafe.Pointer
	size int
	used bool
}

// NewMemoryPool creates an empty pool.
func NewMemoryPool() *MemoryPool {
	return &MemoryPool{
		allocated: make(map[uintptr]*allocation),
	}
}

// Malloc allocates size bytes of device memory on ctx, aligned for
// SIMD-width access.
func (ctx *Context) Malloc(size int) (DevicePtr, error) {
	if size <= 0 {
		return DevicePtr{}, InvalidInput("Malloc", "size must be positive")
	}
	return ctx.memory.Allocate(size)
}

// Free releases memory allocated by Malloc. Safe on a zero DevicePtr.
func (ctx *Context) Free(ptr DevicePtr) error {
	if ptr.ptr == nil {
		return nil
	}
	return ctx.memory.Free(ptr)
}

// Memcpy copies size bytes between dst and src, which may each be a
// DevicePtr or a Go slice of byte/float32/float64/int32.
func (ctx *Context) Memcpy(dst, src interface{}, size int, kind MemcpyKind) error {
	dstPtr, err := resolvePointer(dst)
	if err != nil {
		return DeviceError("Memcpy", "unsupported destination", err)
	}
	srcPtr, err := resolvePointer(src)
	if err != nil {
		return DeviceError("Memcpy", "unsupported source", err)
	}

	if dstPtr != nil && srcPtr != nil && size > 0 {
		copy((*[1 << 30]byte)(dstPtr)[:size:size], (*[1 << 30]byte)(srcPtr)[:size:size])
	}

	return nil
}

func resolvePointer(v interface{}) (unsafe.Pointer, error) {
	switch x := v.(type) {
	case DevicePtr:
		return x.ptr, nil
	case unsafe.Pointer:
		return x, nil
	case []byte:
		if len(x) == 0 {
			return nil, nil
		}
		return unsafe.Pointer(&x[0]), nil
	case []float32:
		if len(x) == 0 {
			return nil, nil
		}
		return unsafe.Pointer(&x[0]), nil
	case []float64:
		if len(x) == 0 {
			return nil, nil
		}
		return unsafe.Pointer(&x[0]), nil
	case []int32:
		if len(x) == 0 {
			return nil, nil
		}
		return unsafe.Pointer(&x[0]), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// Allocate returns size bytes of memory, reused from the free list
// when possible.
func (mp *MemoryPool) Allocate(size int) (DevicePtr, error) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	const alignment = 64
	alignedSize := (size + alignment - 1) &^ (alignment - 1)

	for i, a := range mp.freeList {
		if a.size >= alignedSize {
			mp.freeList = append(mp.freeList[:i], mp.freeList[i+1:]...)
			a.used = true

			mp.totalAlloc += int64(a.size)
			if mp.totalAlloc > mp.peakAlloc {
				mp.peakAlloc = mp.totalAlloc
			}

			return DevicePtr{ptr: a.ptr, size: size}, nil
		}
	}

	buf := make([]byte, alignedSize)
	ptr := unsafe.Pointer(&buf[0])
	runtime.KeepAlive(buf)

	a := &allocation{ptr: ptr, size: alignedSize, used: true}
	mp.allocated[uintptr(ptr)] = a

	mp.totalAlloc += int64(alignedSize)
	if mp.totalAlloc > mp.peakAlloc {
		mp.peakAlloc = mp.totalAlloc
	}

	return DevicePtr{ptr: ptr, size: size}, nil
}

// Free returns ptr's backing allocation to the pool.
func (mp *MemoryPool) Free(ptr DevicePtr) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	a, ok := mp.allocated[uintptr(ptr.ptr)]
	if !ok {
		return DeviceError("Free", "pointer not found in allocation pool", nil)
	}
	if !a.used {
		return DeviceError("Free", "double free detected", nil)
	}

	a.used = false
	mp.freeList = append(mp.freeList, a)
	mp.totalAlloc -= int64(a.size)

	return nil
}

// GetStats reports current and peak pool usage in bytes.
func (mp *MemoryPool) GetStats() (allocated, peak int64) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.totalAlloc, mp.peakAlloc
}

// Float32 views the device memory as a float32 slice.
func (d DevicePtr) Float32() []float32 {
	if d.ptr == nil {
		return nil
	}
	return (*[1 << 28]float32)(d.ptr)[:d.size/4 : d.size/4]
}

// Int32 views the device memory as an int32 slice. ComputeARI and
// ComputeARICross copy the caller's partition labels into a DevicePtr
// and read them back through this view for the lifetime of the call.
func (d DevicePtr) Int32() []int32 {
	if d.ptr == nil {
		return nil
	}
	return (*[1 << 28]int32)(d.ptr)[:d.size/4 : d.size/4]
}

// Byte views the device memory as a raw byte slice.
func (d DevicePtr) Byte() []byte {
	if d.ptr == nil {
		return nil
	}
	return (*[1 << 30]byte)(d.ptr)[:d.size:d.size]
}

// Offset returns a DevicePtr into the same backing memory, advanced by
// bytes.
func (d DevicePtr) Offset(bytes int) DevicePtr {
	return DevicePtr{
		ptr:    unsafe.Pointer(uintptr(d.ptr) + uintptr(bytes)),
		size:   d.size - bytes,
		offset: d.offset + bytes,
	}
}

// Size returns the size in bytes of the memory region.
func (d DevicePtr) Size() int {
	return d.size
}
