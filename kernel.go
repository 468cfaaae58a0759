// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

// Fundamental sizing and tolerance constants shared by every subsystem. These
// mirror the constants pinned down for the reference decision-diagram engine
// this package reimplements: a fixed power-of-two bucket count per hash
// table, chunked arena growth, and a single global floating point tolerance.

const (
	// bucketCount is the number of buckets in every per-level hash table
	// (float pool, vector unique table, matrix unique table). Fixed power
	// of two so that hash-to-bucket is a mask, not a modulo.
	bucketCount = 1 << 15
	bucketMask  = bucketCount - 1

	// defaultTolerance is the global tolerance used for float equality,
	// zero and unit tests throughout the engine. Runtime-settable per
	// package via the Tolerance option.
	defaultTolerance = 1e-13

	// floatInitialAllocation and floatGrowthFactor size the float pool's
	// chunked arena: the first chunk holds floatInitialAllocation entries,
	// each subsequent chunk doubles.
	floatInitialAllocation = 2048
	floatGrowthFactor      = 2
	floatInitialGCLimit    = 50000

	// nodeAllocationSize is the chunk size used by both the vector and the
	// matrix node arenas.
	nodeAllocationSize     = 2000
	nodeInitialGCLimit     = 250000
	nodeDefaultGCIncrement = 0

	// maxRefCount is the saturation point for both node and float
	// reference counts. Once reached, the object is pinned immortal.
	maxRefCount = ^uint32(0)

	// cacheLaneSize bounds the number of outstanding scratch weights a
	// recursive operator call tree may hold open at once. See weight.go.
	cacheLaneSize = 1800

	// qubitMax is the largest qubit index a package can be sized for.
	qubitMax = 127

	// terminalLevel is the variable level of the unique terminal node.
	terminalLevel = -1

	// serializationVersion is written and checked by the snapshot format
	// in serialize.go.
	serializationVersion = 1.0
)
