// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

// configs stores the tunable parameters of a package, following rudd's
// functional-options config.go pattern.
type configs struct {
	qubits          int
	tolerance       float64
	gcIncrement     int
	nodeSize        int
	maxNodeSize     int
	maxNodeIncrease int
	minFreeNodes    int
	cacheSize       int
}

func makeconfigs(qubits int) *configs {
	return &configs{
		qubits:      qubits,
		tolerance:   defaultTolerance,
		gcIncrement: nodeDefaultGCIncrement,
		nodeSize:    nodeInitialGCLimit,
		cacheSize:   defaultComputeTableSize,
	}
}

// Qubits is a configuration option (function). It overrides the qubit
// count passed to New, the same way rudd's own Qubits option lets a
// zero-value constructor call be fully driven by options.
func Qubits(n int) func(*configs) {
	return func(c *configs) {
		if n >= 0 {
			c.qubits = n
		}
	}
}

// Nodesize is a configuration option (function). It sets both unique
// tables' initial garbage-collection threshold: the node population a
// table may reach before a non-forced GarbageCollect actually runs. The
// default is 250000, matching nodeInitialGCLimit.
func Nodesize(n int) func(*configs) {
	return func(c *configs) {
		if n > 0 {
			c.nodeSize = n
		}
	}
}

// Maxnodesize is a configuration option (function). It caps the live node
// population either unique table may hold once a collection has run: if a
// GarbageCollect still finds more than this many reachable nodes
// afterwards, that table panics with an InvariantError rather than let the
// package grow unbounded. Zero (the default) disables the cap.
func Maxnodesize(n int) func(*configs) {
	return func(c *configs) {
		if n >= 0 {
			c.maxNodeSize = n
		}
	}
}

// Maxnodeincrease is a configuration option (function). It caps how much
// GCIncrement is allowed to grow a table's GC threshold by after any single
// collection, regardless of the configured GCIncrement value. Zero (the
// default) leaves GCIncrement unclamped.
func Maxnodeincrease(n int) func(*configs) {
	return func(c *configs) {
		if n >= 0 {
			c.maxNodeIncrease = n
		}
	}
}

// Minfreenodes is a configuration option (function). It records the
// minimum free-list size a unique table's arena is expected to keep in
// reserve, on both unique tables. The setting is recorded only: Stats does
// not report it. The default (0) means no reservation is tracked.
func Minfreenodes(n int) func(*configs) {
	return func(c *configs) {
		if n >= 0 {
			c.minFreeNodes = n
		}
	}
}

// Cachesize is a configuration option (function). It sets the number of
// slots (rounded up to the next power of two) backing every recursive
// operator's compute table. The default is defaultComputeTableSize
// (1<<14).
func Cachesize(n int) func(*configs) {
	return func(c *configs) {
		if n > 0 {
			c.cacheSize = n
		}
	}
}

// Tolerance is a configuration option (function). Used as a parameter to
// New, it overrides the global float-comparison tolerance used by the
// float pool and every normalization check. The default value is 1e-13,
// matching the reference decision-diagram engine this package reimplements.
func Tolerance(tol float64) func(*configs) {
	return func(c *configs) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// GCIncrement is a configuration option (function). Used as a parameter to
// New, it sets the flat additive amount by which both unique tables' GC
// threshold grows after each collection (in contrast to the float pool's
// multiplicative hysteresis, see SPEC_FULL.md §4.3). The default value (0)
// means the threshold never grows and every collection reconsiders the
// full node count.
func GCIncrement(n int) func(*configs) {
	return func(c *configs) {
		if n >= 0 {
			c.gcIncrement = n
		}
	}
}
