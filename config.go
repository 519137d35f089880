// Package ari configuration constants.
package ari

// Cache sizes for different levels (in bytes). L2CacheSize sets the
// per-block scratch limit (DefaultScratchLimit below).
const (
	L1CacheSize = 32 * 1024
	L2CacheSize = 256 * 1024
	L3CacheSize = 8 * 1024 * 1024
)

// SIMD vector widths, used by the capability probe to pick a block
// size (threads per work group) matched to the host's lanes.
const (
	AVX2VectorSize   = 8
	AVX512VectorSize = 16
	SIMDAlignment    = 64
)

// Thread and block dimensions for a ComputeARI launch.
const (
	// DefaultBlockSize is the default threads-per-work-group (T), used
	// when the capability probe can't do better.
	DefaultBlockSize = 256

	// MaxThreadsPerBlock bounds the block size the capability probe
	// may choose.
	MaxThreadsPerBlock = 1024

	// ItemsPerThread is the per-thread unroll factor in the tiled
	// contingency builder's striped load.
	ItemsPerThread = 4

	// DefaultTileSize is the tiled contingency builder's staging
	// buffer length S.
	DefaultTileSize = 2048
)

// Memory pool parameters.
const (
	MinAllocationSize = 64
	MemoryAlignment   = 64
)

// Resource-sizing policy.
const (
	// MaxAlphabetBound is a sanity ceiling on the derived alphabet
	// bound K: large label alphabets are out of scope for this engine,
	// so exceeding this is treated as caller error rather than
	// silently building an enormous contingency matrix.
	MaxAlphabetBound = 1 << 16

	// DefaultScratchLimit is the per-block scratch budget the
	// capability probe reports on every host: one L2 slice, leaving
	// room for the tile staging buffers.
	DefaultScratchLimit = L2CacheSize
)
