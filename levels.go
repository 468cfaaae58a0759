// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import "unsafe"

// levelOfV and levelOfM return the variable level an edge branches on, or
// terminalLevel for a terminal or algebraic-zero edge.
func levelOfV(e vEdge) qubit {
	if e.isTerminal() {
		return terminalLevel
	}
	return e.p.v
}

func levelOfM(e mEdge) qubit {
	if e.isTerminal() {
		return terminalLevel
	}
	return e.p.v
}

func topVLevel(a, b vEdge) qubit {
	la, lb := levelOfV(a), levelOfV(b)
	if la > lb {
		return la
	}
	return lb
}

func topMLevel(a, b mEdge) qubit {
	la, lb := levelOfM(a), levelOfM(b)
	if la > lb {
		return la
	}
	return lb
}

func topMVLevel(m mEdge, v vEdge) qubit {
	lm, lv := levelOfM(m), levelOfV(v)
	if lm > lv {
		return lm
	}
	return lv
}

// lowerVLevel/lowerMLevel/lowerMVLevel name the level a pair of operands
// must be expanded at before recursing: the higher of the two, since a
// reduced diagram silently skips levels a subtree does not depend on. The
// trailing bool is unused, kept for call-site symmetry with the reference
// recursion signatures that also take a "swap" flag; this port never needs
// to swap since both branches are computed unconditionally.
func lowerVLevel(a, b vEdge, _ bool) qubit  { return topVLevel(a, b) }
func lowerMLevel(a, b mEdge, _ bool) qubit  { return topMLevel(a, b) }
func lowerMVLevel(m mEdge, v vEdge) qubit   { return topMVLevel(m, v) }

// childVector/childMatrix return the branch-th child of e at level lvl,
// folding e's own edge weight into the result: the returned edge is the
// actual sub-vector/sub-matrix represented at that point, not a
// weight-stripped structural fragment. Used by the operators that cache on
// full weighted edges (AddVectors, AddMatrices, PartialTrace and friends).
func childVector(pkg *Package, e vEdge, lvl qubit, branch int) vEdge {
	if e.isZero() {
		return vZero
	}
	if e.isTerminal() || e.p.v < lvl {
		return e
	}
	c := e.p.e[branch]
	if c.isZero() {
		return vZero
	}
	return vEdge{p: c.p, w: pkg.wMul(e.w, c.w)}
}

func childMatrix(pkg *Package, e mEdge, lvl qubit, branch int) mEdge {
	if e.isZero() {
		return mZero
	}
	if e.isTerminal() || e.p.v < lvl {
		return e
	}
	c := e.p.e[branch]
	if c.isZero() {
		return mZero
	}
	return mEdge{p: c.p, w: pkg.wMul(e.w, c.w)}
}

// childVectorAt/childMatrixAt are the weight-stripped counterparts, used by
// the homogeneous-linear operators (multiply, kronecker, inner product): the
// caller has already factored the top edge's own weight out, to be
// reapplied once at the end of its own call, so these never look at e.w.
func childVectorAt(e vEdge, lvl qubit, branch int) vEdge {
	if e.isZero() {
		return vZero
	}
	if e.isTerminal() {
		return vEdge{p: e.p, w: ONE}
	}
	if e.p.v < lvl {
		return vEdge{p: e.p, w: ONE}
	}
	return e.p.e[branch]
}

func childMatrixAt(e mEdge, lvl qubit, branch int) mEdge {
	if e.isZero() {
		return mZero
	}
	if e.isTerminal() {
		return mEdge{p: e.p, w: ONE}
	}
	if e.p.v < lvl {
		return mEdge{p: e.p, w: ONE}
	}
	return e.p.e[branch]
}

// hashPtr mixes a pointer's bit pattern the way MurmurHash3's finalizer
// mixes a 64-bit word. Only ever used for hashing, never to recover a
// pointer.
func hashPtr(p unsafe.Pointer) uint64 {
	x := uint64(uintptr(p))
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

func hashVEdge(e vEdge) uint64 {
	h := hashPtr(unsafe.Pointer(e.p))
	h ^= hashPtr(unsafe.Pointer(e.w.Re.entry)) * 0x9E3779B97F4A7C15
	h ^= hashPtr(unsafe.Pointer(e.w.Im.entry)) * 0xC2B2AE3D27D4EB4F
	if e.w.Re.neg {
		h ^= 0x1
	}
	if e.w.Im.neg {
		h ^= 0x2
	}
	return h
}

func hashMEdge(e mEdge) uint64 {
	h := hashPtr(unsafe.Pointer(e.p))
	h ^= hashPtr(unsafe.Pointer(e.w.Re.entry)) * 0x9E3779B97F4A7C15
	h ^= hashPtr(unsafe.Pointer(e.w.Im.entry)) * 0xC2B2AE3D27D4EB4F
	if e.w.Re.neg {
		h ^= 0x1
	}
	if e.w.Im.neg {
		h ^= 0x2
	}
	return h
}

func hashVEdgePair(a, b vEdge) uint64 { return hashVEdge(a) ^ (hashVEdge(b) * 0xff51afd7ed558ccd) }
func hashMEdgePair(a, b mEdge) uint64 { return hashMEdge(a) ^ (hashMEdge(b) * 0xff51afd7ed558ccd) }

func hashVNodePtr(n *vNode) uint64 { return hashPtr(unsafe.Pointer(n)) }
func hashMNodePtr(n *mNode) uint64 { return hashPtr(unsafe.Pointer(n)) }
