// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

// normalizeVector implements the vector-node canonicalization rule from
// SPEC_FULL.md §4.4 step 3: pivot on the first non-zero child (edges[0] if
// non-zero, else edges[1]), set the pivot child's weight to ONE, divide the
// other child's weight by the pivot's, and return the pivot's original
// weight as the returned edge's weight. This mirrors the reference source's argmax loop
// (Package::normalize), which picks the first index it finds rather than
// comparing magnitudes — a different rule than normalizeMatrix's own
// max-magnitude pivot below, which the reference genuinely does apply to
// matrix nodes. A node whose children are all algebraic zero collapses to
// the zero edge instead of being inserted.
func (pkg *Package) normalizeVector(v qubit, e0, e1 vEdge) vEdge {
	if !e0.isZero() && e0.w.equalsZero() {
		e0 = vZero
	}
	if !e1.isZero() && e1.w.equalsZero() {
		e1 = vZero
	}
	if e0.isZero() && e1.isZero() {
		return vZero
	}
	var pivot Weight
	var edges [2]vEdge
	if !e0.isZero() {
		pivot = e0.w
		edges[0] = vEdge{p: e0.p, w: ONE}
		if e1.isZero() {
			edges[1] = vZero
		} else {
			edges[1] = vEdge{p: e1.p, w: pkg.wDiv(e1.w, pivot)}
		}
	} else {
		pivot = e1.w
		edges[1] = vEdge{p: e1.p, w: ONE}
		edges[0] = vZero
	}
	n := pkg.vectors.getNode()
	n.v = v
	n.e = edges
	res := pkg.vectors.lookup(vEdge{p: n, w: ONE}, false)
	return vEdge{p: res.p, w: pivot}
}

// normalizeMatrix implements the matrix-node canonicalization rule: pivot
// on the child of maximal magnitude among all four, then derive the symm
// (symm diagonal children, and edges[2] equal to the transpose of edges[1])
// and ident (zero off-diagonal children, and edges[0] and edges[3] the same
// ident child with weight ONE) flags via checkSpecialMatrices — but only when the lookup below produces a
// genuinely new node, mirroring the reference's "if (l.p == e.p)" guard
// around checkSpecialMatrices (SPEC_FULL.md §4.4/§2.3): recomputing the
// flags on an already-canonical node would be wasted work at best and, for
// ident, observes a stale identity of a node still under construction.
func (pkg *Package) normalizeMatrix(v qubit, e00, e01, e10, e11 mEdge) mEdge {
	edges := [4]mEdge{e00, e01, e10, e11}
	for i, e := range edges {
		if !e.isZero() && e.w.equalsZero() {
			edges[i] = mZero
		}
	}
	if edges[0].isZero() && edges[1].isZero() && edges[2].isZero() && edges[3].isZero() {
		return mZero
	}
	pivotIdx := 0
	pivotMag := -1.0
	for i, e := range edges {
		if e.isZero() {
			continue
		}
		m := e.w.mag2()
		if m > pivotMag {
			pivotMag = m
			pivotIdx = i
		}
	}
	pivot := edges[pivotIdx].w
	var out [4]mEdge
	for i, e := range edges {
		switch {
		case e.isZero():
			out[i] = mZero
		case i == pivotIdx:
			out[i] = mEdge{p: e.p, w: ONE}
		default:
			out[i] = mEdge{p: e.p, w: pkg.wDiv(e.w, pivot)}
		}
	}
	n := pkg.matrices.getNode()
	n.v = v
	n.e = out
	preLookup := n
	res := pkg.matrices.lookup(mEdge{p: n, w: ONE}, false)
	if res.p == preLookup {
		pkg.checkSpecialMatrices(res.p)
	}
	return mEdge{p: res.p, w: pivot}
}

// checkSpecialMatrices derives symm (this node equals its own transpose:
// both diagonal children are themselves symm, or zero, and the off-diagonal
// children are each other's transpose) and ident (this node is an
// incremental one-level identity extension: diagonal children equal to each
// other, weight one and themselves flagged ident, off-diagonal children
// zero). Both flags recurse into the children's own flags rather than
// stopping at shallow sibling equality, matching the original source's
// checkSpecialMatrices (DDpackage.cpp: "if (!(p->e[0].p->ident) || ...)"
// for ident, "if (!p->e[0].p->symm || !p->e[3].p->symm) ... if
// (transpose(p->e[1]) != p->e[2]) return;" for symm) — a node whose
// diagonal blocks merely coincide on a non-identity, non-symmetric child
// must not be flagged either way.
func (pkg *Package) checkSpecialMatrices(n *mNode) {
	n.ident = n.e[1].isZero() && n.e[2].isZero() &&
		n.e[0].p == n.e[3].p && n.e[0].w.equal(n.e[3].w) && n.e[0].w.equalsOne() &&
		!n.e[0].isZero() && n.e[0].p.ident && n.e[3].p.ident

	n.symm = (n.e[0].isZero() || n.e[0].p.symm) &&
		(n.e[3].isZero() || n.e[3].p.symm) &&
		pkg.Transpose(n.e[1]) == n.e[2]
}
