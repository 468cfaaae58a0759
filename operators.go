// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

// This file holds the recursive operators (C7): the largest single
// component. Two families of caching discipline coexist here, per
// SPEC_FULL.md §4.7:
//
//   - Add is not homogeneous in its operands (Add(k1*A, k2*B) depends on
//     the ratio k2/k1, not the product), so its compute tables key on the
//     full weighted edge pair and a hit is returned verbatim, no rescale.
//   - Multiply, kronecker, transpose and conjugate-transpose are linear in
//     each operand, so their compute tables key on weight-stripped node
//     identity and every hit is rescaled by the product of the operands'
//     original edge weights.

// AddVectors returns a + b, both n-qubit state vectors (weighted, so this
// also implements scalar-weighted linear combination).
func (pkg *Package) AddVectors(a, b vEdge) vEdge {
	if a.isZero() {
		return b
	}
	if b.isZero() {
		return a
	}
	if a.isTerminal() && b.isTerminal() {
		w := pkg.wAdd(a.w, b.w)
		if w.equalsZero() {
			return vZero
		}
		return vEdge{p: vTerminal, w: w}
	}
	key := vAddKey{a, b}
	h := hashVEdgePair(a, b)
	if cached, ok := pkg.addV.lookup(key, h); ok {
		return cached
	}
	v := lowerVLevel(a, b, false)
	c0 := pkg.AddVectors(childVector(pkg, a, v, 0), childVector(pkg, b, v, 0))
	c1 := pkg.AddVectors(childVector(pkg, a, v, 1), childVector(pkg, b, v, 1))
	res := pkg.normalizeVector(v, c0, c1)
	pkg.addV.insert(key, h, res)
	return res
}

// AddMatrices is the matrix analog of AddVectors.
func (pkg *Package) AddMatrices(a, b mEdge) mEdge {
	if a.isZero() {
		return b
	}
	if b.isZero() {
		return a
	}
	if a.isTerminal() && b.isTerminal() {
		w := pkg.wAdd(a.w, b.w)
		if w.equalsZero() {
			return mZero
		}
		return mEdge{p: mTerminal, w: w}
	}
	key := mAddKey{a, b}
	h := hashMEdgePair(a, b)
	if cached, ok := pkg.addM.lookup(key, h); ok {
		return cached
	}
	v := lowerMLevel(a, b, false)
	c00 := pkg.AddMatrices(childMatrix(pkg, a, v, 0), childMatrix(pkg, b, v, 0))
	c01 := pkg.AddMatrices(childMatrix(pkg, a, v, 1), childMatrix(pkg, b, v, 1))
	c10 := pkg.AddMatrices(childMatrix(pkg, a, v, 2), childMatrix(pkg, b, v, 2))
	c11 := pkg.AddMatrices(childMatrix(pkg, a, v, 3), childMatrix(pkg, b, v, 3))
	res := pkg.normalizeMatrix(v, c00, c01, c10, c11)
	pkg.addM.insert(key, h, res)
	return res
}

// MultiplyMV returns m*v, an n-qubit matrix applied to an n-qubit vector.
// Identity fast path: multiplying by an ident node at this level short
// circuits straight to the vector operand, unscaled but for the weight
// product (SPEC_FULL.md §2.3).
func (pkg *Package) MultiplyMV(m mEdge, v vEdge) vEdge {
	if m.isZero() || v.isZero() {
		return vZero
	}
	if m.isTerminal() && v.isTerminal() {
		w := pkg.wMul(m.w, v.w)
		if w.equalsZero() {
			return vZero
		}
		return vEdge{p: vTerminal, w: w}
	}
	if !m.isTerminal() && m.p.ident {
		return vEdge{p: v.p, w: pkg.wMul(m.w, v.w)}
	}
	key := vmPairKey{m: m.p, v: v.p}
	h := hashMNodePtr(m.p) ^ (hashVNodePtr(v.p) * 0xff51afd7ed558ccd)
	if cached, ok := pkg.mulMV.lookup(key, h); ok {
		return vEdge{p: cached.p, w: pkg.wMul(pkg.wMul(cached.w, m.w), v.w)}
	}
	lvl := lowerMVLevel(m, v)
	m00, m01 := childMatrixAt(m, lvl, 0), childMatrixAt(m, lvl, 1)
	m10, m11 := childMatrixAt(m, lvl, 2), childMatrixAt(m, lvl, 3)
	v0, v1 := childVectorAt(v, lvl, 0), childVectorAt(v, lvl, 1)
	c0 := pkg.AddVectors(pkg.MultiplyMV(m00, v0), pkg.MultiplyMV(m01, v1))
	c1 := pkg.AddVectors(pkg.MultiplyMV(m10, v0), pkg.MultiplyMV(m11, v1))
	res := pkg.normalizeVector(lvl, c0, c1)
	pkg.mulMV.insert(key, h, res)
	return vEdge{p: res.p, w: pkg.wMul(res.w, pkg.wMul(m.w, v.w))}
}

// MultiplyMM returns the matrix product a*b. Identity fast paths on either
// operand short circuit as in MultiplyMV.
func (pkg *Package) MultiplyMM(a, b mEdge) mEdge {
	if a.isZero() || b.isZero() {
		return mZero
	}
	if a.isTerminal() && b.isTerminal() {
		w := pkg.wMul(a.w, b.w)
		if w.equalsZero() {
			return mZero
		}
		return mEdge{p: mTerminal, w: w}
	}
	if !a.isTerminal() && a.p.ident {
		return mEdge{p: b.p, w: pkg.wMul(a.w, b.w)}
	}
	if !b.isTerminal() && b.p.ident {
		return mEdge{p: a.p, w: pkg.wMul(a.w, b.w)}
	}
	key := mPairKey{a: a.p, b: b.p}
	h := hashMNodePtr(a.p) ^ (hashMNodePtr(b.p) * 0xff51afd7ed558ccd)
	if cached, ok := pkg.mulMM.lookup(key, h); ok {
		return mEdge{p: cached.p, w: pkg.wMul(pkg.wMul(cached.w, a.w), b.w)}
	}
	lvl := lowerMLevel(a, b, false)
	a00, a01 := childMatrixAt(a, lvl, 0), childMatrixAt(a, lvl, 1)
	a10, a11 := childMatrixAt(a, lvl, 2), childMatrixAt(a, lvl, 3)
	b00, b01 := childMatrixAt(b, lvl, 0), childMatrixAt(b, lvl, 1)
	b10, b11 := childMatrixAt(b, lvl, 2), childMatrixAt(b, lvl, 3)
	c00 := pkg.AddMatrices(pkg.MultiplyMM(a00, b00), pkg.MultiplyMM(a01, b10))
	c01 := pkg.AddMatrices(pkg.MultiplyMM(a00, b01), pkg.MultiplyMM(a01, b11))
	c10 := pkg.AddMatrices(pkg.MultiplyMM(a10, b00), pkg.MultiplyMM(a11, b10))
	c11 := pkg.AddMatrices(pkg.MultiplyMM(a10, b01), pkg.MultiplyMM(a11, b11))
	res := pkg.normalizeMatrix(lvl, c00, c01, c10, c11)
	pkg.mulMM.insert(key, h, res)
	return mEdge{p: res.p, w: pkg.wMul(res.w, pkg.wMul(a.w, b.w))}
}

// Transpose swaps the two off-diagonal children at every level. A symm
// node is fixed by transposition, so it short circuits without recursing.
func (pkg *Package) Transpose(a mEdge) mEdge {
	if a.isZero() || a.isTerminal() {
		return a
	}
	if a.p.symm {
		return a
	}
	h := hashMNodePtr(a.p)
	if cached, ok := pkg.transposeT.lookup(a.p, h); ok {
		return mEdge{p: cached.p, w: pkg.wMul(cached.w, a.w)}
	}
	c00 := pkg.Transpose(a.p.e[0])
	c01 := pkg.Transpose(a.p.e[2])
	c10 := pkg.Transpose(a.p.e[1])
	c11 := pkg.Transpose(a.p.e[3])
	res := pkg.normalizeMatrix(a.p.v, c00, c01, c10, c11)
	pkg.transposeT.insert(a.p, h, res)
	return mEdge{p: res.p, w: pkg.wMul(res.w, a.w)}
}

// ConjugateTranspose returns a^dagger: transpose the structure and
// conjugate every weight encountered along the way, including the leaves.
func (pkg *Package) ConjugateTranspose(a mEdge) mEdge {
	if a.isZero() {
		return mZero
	}
	if a.isTerminal() {
		return mEdge{p: mTerminal, w: pkg.wConj(a.w)}
	}
	h := hashMNodePtr(a.p)
	if cached, ok := pkg.conjTransposeT.lookup(a.p, h); ok {
		return mEdge{p: cached.p, w: pkg.wMul(cached.w, pkg.wConj(a.w))}
	}
	c00 := pkg.ConjugateTranspose(a.p.e[0])
	c01 := pkg.ConjugateTranspose(a.p.e[2])
	c10 := pkg.ConjugateTranspose(a.p.e[1])
	c11 := pkg.ConjugateTranspose(a.p.e[3])
	res := pkg.normalizeMatrix(a.p.v, c00, c01, c10, c11)
	pkg.conjTransposeT.insert(a.p, h, res)
	return mEdge{p: res.p, w: pkg.wMul(res.w, pkg.wConj(a.w))}
}

// kroneckerVector returns a (X) b where a is the more-significant operand
// and bQubits is the number of levels b spans, needed to place a's
// structure that many levels above its own.
func (pkg *Package) kroneckerVector(a vEdge, bQubits int, b vEdge) vEdge {
	if a.isZero() || b.isZero() {
		return vZero
	}
	if a.isTerminal() {
		return vEdge{p: b.p, w: pkg.wMul(a.w, b.w)}
	}
	key := vKronKey{a: a.p, b: b.p, bQubits: bQubits}
	h := hashVNodePtr(a.p) ^ (hashVNodePtr(b.p) * 0xff51afd7ed558ccd) ^ uint64(bQubits)
	if cached, ok := pkg.kronV.lookup(key, h); ok {
		return vEdge{p: cached.p, w: pkg.wMul(pkg.wMul(cached.w, a.w), b.w)}
	}
	bs := vEdge{p: b.p, w: ONE}
	c0 := pkg.kroneckerVector(childVectorAt(a, a.p.v, 0), bQubits, bs)
	c1 := pkg.kroneckerVector(childVectorAt(a, a.p.v, 1), bQubits, bs)
	res := pkg.normalizeVector(a.p.v+qubit(bQubits), c0, c1)
	pkg.kronV.insert(key, h, res)
	return vEdge{p: res.p, w: pkg.wMul(res.w, pkg.wMul(a.w, b.w))}
}

// kroneckerMatrix is the matrix analog of kroneckerVector; an identity a
// short circuits to b tensored with identity, matching the reference's
// identity fast path (SPEC_FULL.md §2.3).
func (pkg *Package) kroneckerMatrix(a mEdge, bQubits int, b mEdge) mEdge {
	if a.isZero() || b.isZero() {
		return mZero
	}
	if a.isTerminal() {
		return mEdge{p: b.p, w: pkg.wMul(a.w, b.w)}
	}
	if a.p.ident {
		res := mEdge{p: b.p, w: ONE}
		for l := 0; l <= int(a.p.v); l++ {
			res = pkg.normalizeMatrix(qubit(bQubits+l), res, mZero, mZero, res)
		}
		return mEdge{p: res.p, w: pkg.wMul(res.w, pkg.wMul(a.w, b.w))}
	}
	key := mKronKey{a: a.p, b: b.p, bQubits: bQubits}
	h := hashMNodePtr(a.p) ^ (hashMNodePtr(b.p) * 0xff51afd7ed558ccd) ^ uint64(bQubits)
	if cached, ok := pkg.kronM.lookup(key, h); ok {
		return mEdge{p: cached.p, w: pkg.wMul(pkg.wMul(cached.w, a.w), b.w)}
	}
	var c [4]mEdge
	bs := mEdge{p: b.p, w: ONE}
	for i := 0; i < 4; i++ {
		c[i] = pkg.kroneckerMatrix(childMatrixAt(a, a.p.v, i), bQubits, bs)
	}
	res := pkg.normalizeMatrix(a.p.v+qubit(bQubits), c[0], c[1], c[2], c[3])
	pkg.kronM.insert(key, h, res)
	return mEdge{p: res.p, w: pkg.wMul(res.w, pkg.wMul(a.w, b.w))}
}

// Extend tensors e with n additional |0> qubits above its current top
// level, used to widen a partial state to the full register size.
func (pkg *Package) Extend(e vEdge, n int, eQubits int) vEdge {
	if n <= 0 {
		return e
	}
	zero := pkg.ZeroState(n)
	return pkg.kroneckerVector(zero, eQubits, e)
}

// InnerProduct computes <a|b>, the conjugate-linear inner product of two
// n-qubit state vectors. The right operand's subedges, not a swapped
// argument order, are the ones conjugated at every step (SPEC_FULL.md
// §2.3): this matches the reference's recursion structure exactly and
// keeps the compute table keyed on unconjugated node identity. The
// recursion works on edges, and its base case is a pair of terminal edges,
// as in the other operators.
func (pkg *Package) InnerProduct(a, b vEdge) complexValue {
	if a.isZero() || b.isZero() {
		return complexValue{}
	}
	if a.isTerminal() && b.isTerminal() {
		are, aim := a.w.value()
		bre, bim := b.w.value()
		bre, bim = cConj(bre, bim)
		re, im := cMul(are, aim, bre, bim)
		return complexValue{re, im}
	}
	key := vPairKey{a: a.p, b: b.p}
	h := hashVNodePtr(a.p) ^ (hashVNodePtr(b.p) * 0xff51afd7ed558ccd)
	scaleWith := func(v complexValue) complexValue {
		are, aim := a.w.value()
		bre, bim := b.w.value()
		bre, bim = cConj(bre, bim)
		scale := complexValue{}
		scale.re, scale.im = cMul(are, aim, bre, bim)
		return v.mul(scale)
	}
	if cached, ok := pkg.innerProd.lookup(key, h); ok {
		return scaleWith(cached)
	}
	v := topVLevel(a, b)
	c0 := pkg.InnerProduct(childVectorAt(a, v, 0), childVectorAt(b, v, 0))
	c1 := pkg.InnerProduct(childVectorAt(a, v, 1), childVectorAt(b, v, 1))
	sum := c0.add(c1)
	pkg.innerProd.insert(key, h, sum)
	return scaleWith(sum)
}

// Fidelity returns |<a|b>|^2, the standard state-overlap measure.
func (pkg *Package) Fidelity(a, b vEdge) float64 {
	return pkg.InnerProduct(a, b).mag2()
}

// PartialTrace traces out the qubits listed in traced (by index, 0-based,
// least significant first) from an n-qubit density-operator matrix.
func (pkg *Package) PartialTrace(m mEdge, traced []qubit, n int) mEdge {
	traceSet := make(map[qubit]bool, len(traced))
	for _, q := range traced {
		traceSet[q] = true
	}
	var rec func(e mEdge, lvl int) mEdge
	rec = func(e mEdge, lvl int) mEdge {
		if lvl < 0 {
			return e
		}
		if traceSet[qubit(lvl)] {
			c00 := childMatrix(pkg, e, qubit(lvl), 0)
			c11 := childMatrix(pkg, e, qubit(lvl), 3)
			return rec(pkg.AddMatrices(c00, c11), lvl-1)
		}
		var c [4]mEdge
		for i := 0; i < 4; i++ {
			c[i] = rec(childMatrix(pkg, e, qubit(lvl), i), lvl-1)
		}
		return pkg.normalizeMatrix(qubit(lvl), c[0], c[1], c[2], c[3])
	}
	return rec(m, n-1)
}

// Trace is PartialTrace over every qubit, returning the scalar trace as a
// terminal-only matrix edge.
func (pkg *Package) Trace(m mEdge, n int) mEdge {
	all := make([]qubit, n)
	for i := range all {
		all[i] = qubit(i)
	}
	return pkg.PartialTrace(m, all, n)
}

// ReduceAncillae projects out ancilla qubits assumed to be in |0>,
// discarding (rather than summing over) the |1> branch: this is the
// state-vector analog used after uncomputing scratch qubits, distinct from
// PartialTrace's density-operator sum (SPEC_FULL.md §2.3).
func (pkg *Package) ReduceAncillae(v vEdge, ancillae []qubit, n int) vEdge {
	discard := make(map[qubit]bool, len(ancillae))
	for _, q := range ancillae {
		discard[q] = true
	}
	var rec func(e vEdge, lvl int) vEdge
	rec = func(e vEdge, lvl int) vEdge {
		if lvl < 0 {
			return e
		}
		c0 := rec(childVector(pkg, e, qubit(lvl), 0), lvl-1)
		if discard[qubit(lvl)] {
			return c0
		}
		c1 := rec(childVector(pkg, e, qubit(lvl), 1), lvl-1)
		return pkg.normalizeVector(qubit(lvl), c0, c1)
	}
	return rec(v, n-1)
}

// ReduceGarbage is ReduceAncillae's density-matrix counterpart, summing
// the |0> and |1> branches of each garbage qubit's diagonal blocks instead
// of discarding one. Summing two diagonal blocks can push the resulting
// weight's magnitude above 1, so each sum is clamped back to ONE whenever
// mag2 exceeds 1, mirroring the reference source's own
// reduceGarbageRecursion clamp for both vector and matrix DDs
// (DDpackage.cpp: "if (CN::mag2(f.w) > 1.0) f.w = CN::ONE;").
func (pkg *Package) ReduceGarbage(m mEdge, garbage []qubit, n int) mEdge {
	discard := make(map[qubit]bool, len(garbage))
	for _, q := range garbage {
		discard[q] = true
	}
	var rec func(e mEdge, lvl int) mEdge
	rec = func(e mEdge, lvl int) mEdge {
		if lvl < 0 {
			return e
		}
		if discard[qubit(lvl)] {
			c00 := rec(childMatrix(pkg, e, qubit(lvl), 0), lvl-1)
			c11 := rec(childMatrix(pkg, e, qubit(lvl), 3), lvl-1)
			sum := pkg.AddMatrices(c00, c11)
			if !sum.isZero() && sum.w.mag2() > 1.0 {
				sum = mEdge{p: sum.p, w: ONE}
			}
			return sum
		}
		var c [4]mEdge
		for i := 0; i < 4; i++ {
			c[i] = rec(childMatrix(pkg, e, qubit(lvl), i), lvl-1)
		}
		return pkg.normalizeMatrix(qubit(lvl), c[0], c[1], c[2], c[3])
	}
	return rec(m, n-1)
}
