// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

// ZeroState builds the all-|0...0> basis vector on n qubits.
func (pkg *Package) ZeroState(n int) vEdge {
	e := vOne
	for lvl := 0; lvl < n; lvl++ {
		e = pkg.normalizeVector(qubit(lvl), e, vZero)
	}
	return e
}

// BasisKind enumerates the single-qubit basis states basisState builds,
// supplementing the plain {0,1}-bitstring overload with the four states an
// original_source/-derived test harness commonly seeds circuits with.
type BasisKind int

const (
	BasisZero BasisKind = iota
	BasisOne
	BasisPlus
	BasisMinus
	BasisRight // |+i>
	BasisLeft  // |-i>
)

// BasisState builds a computational, or Hadamard/Y-eigenstate, basis vector
// from a per-qubit kind list, one entry per qubit, index 0 the least
// significant (SPEC_FULL.md §2.3).
func (pkg *Package) BasisState(kinds []BasisKind) vEdge {
	e := vOne
	for lvl := 0; lvl < len(kinds); lvl++ {
		var e0, e1 vEdge
		switch kinds[lvl] {
		case BasisZero:
			e0, e1 = e, vZero
		case BasisOne:
			e0, e1 = vZero, e
		case BasisPlus:
			e0 = vEdge{p: e.p, w: pkg.wMul(e.w, sqrtHalf(pkg))}
			e1 = vEdge{p: e.p, w: pkg.wMul(e.w, sqrtHalf(pkg))}
		case BasisMinus:
			e0 = vEdge{p: e.p, w: pkg.wMul(e.w, sqrtHalf(pkg))}
			e1 = vEdge{p: e.p, w: pkg.wNeg(pkg.wMul(e.w, sqrtHalf(pkg)))}
		case BasisRight:
			e0 = vEdge{p: e.p, w: pkg.wMul(e.w, sqrtHalf(pkg))}
			e1 = vEdge{p: e.p, w: pkg.wMul(e.w, pkg.wMul(sqrtHalf(pkg), imagUnit(pkg)))}
		case BasisLeft:
			e0 = vEdge{p: e.p, w: pkg.wMul(e.w, sqrtHalf(pkg))}
			e1 = vEdge{p: e.p, w: pkg.wNeg(pkg.wMul(e.w, pkg.wMul(sqrtHalf(pkg), imagUnit(pkg))))}
		}
		e = pkg.normalizeVector(qubit(lvl), e0, e1)
	}
	return e
}

// BasisStateBits is the plain computational-basis overload: bits[lvl] is 0
// or 1, least significant qubit first.
func (pkg *Package) BasisStateBits(bits []int) vEdge {
	kinds := make([]BasisKind, len(bits))
	for i, b := range bits {
		if b == 0 {
			kinds[i] = BasisZero
		} else {
			kinds[i] = BasisOne
		}
	}
	return pkg.BasisState(kinds)
}

func sqrtHalf(pkg *Package) Weight {
	return pkg.wFromReal(0.7071067811865476)
}

func imagUnit(pkg *Package) Weight {
	return Weight{Re: weightRef{entry: floatZero}, Im: weightRef{entry: floatOne}}
}

// GateDD builds a single-qubit gate's decision diagram, extended to act as
// the identity on every other qubit of an n-qubit system (SPEC_FULL.md
// §4.6): entries is the gate's 2x2 matrix in row-major order. This is the
// degenerate case of ControlledGateDD where every qubit but target is
// Uninvolved, implemented separately via Kronecker extension since that
// path is worth exercising independently of the general per-level diag
// fold.
func (pkg *Package) GateDD(n int, target qubit, entries [4]complex128) mEdge {
	w := func(c complex128) Weight { return pkg.internComplex(real(c), imag(c)) }
	e := pkg.normalizeMatrix(0,
		mEdge{p: mTerminal, w: w(entries[0])},
		mEdge{p: mTerminal, w: w(entries[1])},
		mEdge{p: mTerminal, w: w(entries[2])},
		mEdge{p: mTerminal, w: w(entries[3])},
	)
	return pkg.extendIdentity(e, target, n)
}

// ControlLine tags a single qubit's role in a ControlledGateDD construction
// (SPEC_FULL.md §4.6): Uninvolved qubits pass the gate through unchanged on
// both branches, NegativeControl/PositiveControl gate on the qubit reading
// 0/1, and exactly one qubit must be tagged Target.
type ControlLine int8

const (
	Uninvolved      ControlLine = -1
	NegativeControl ControlLine = 0
	PositiveControl ControlLine = 1
	Target          ControlLine = 2
)

// ControlledGateDD builds a decision diagram for a 2x2 complex matrix M
// applied to a Target qubit, gated by any number of positive/negative
// controls, over len(controlLine) qubits total (SPEC_FULL.md §4.6):
//
//  1. Start from matrix terminals for the four M[i,j] entries (mZero if the
//     entry is algebraically zero).
//  2. For each level below the target, expand every entry into a 2x2
//     block per that level's control tag: a negative control folds
//     diag(entry, inactive), a positive control diag(inactive, entry), and
//     an uninvolved qubit diag(entry, entry), where inactive is the
//     identity for the diagonal entries M[0,0] and M[1,1] and zero for the
//     off-diagonal ones.
//  3. At the target level, fold the four (by-now multi-level) entries into
//     a single matrix node.
//  4. For each level above the target, wrap the single resulting edge in
//     another 2x2 block per that level's control tag.
func (pkg *Package) ControlledGateDD(controlLine []ControlLine, entries [4]complex128) mEdge {
	n := len(controlLine)
	target := -1
	for q, tag := range controlLine {
		if tag != Target {
			continue
		}
		if target != -1 {
			panic(PreconditionError{Msg: "ControlledGateDD: more than one target qubit"})
		}
		target = q
	}
	if target == -1 {
		panic(PreconditionError{Msg: "ControlledGateDD: no target qubit"})
	}
	edge := func(c complex128) mEdge {
		w := pkg.internComplex(real(c), imag(c))
		if w.equalsZero() {
			return mZero
		}
		return mEdge{p: mTerminal, w: w}
	}
	e := [4]mEdge{edge(entries[0]), edge(entries[1]), edge(entries[2]), edge(entries[3])}
	for z := 0; z < target; z++ {
		for i := range e {
			e[i] = pkg.controlBlock(qubit(z), controlLine[z], e[i], i == 0 || i == 3)
		}
	}
	folded := pkg.normalizeMatrix(qubit(target), e[0], e[1], e[2], e[3])
	for z := target + 1; z < n; z++ {
		folded = pkg.controlBlock(qubit(z), controlLine[z], folded, true)
	}
	return folded
}

// controlBlock wraps entry, spanning levels 0..lvl-1, in a single level's
// 2x2 diagonal block per its control tag. The branch on which a control is
// inactive holds the identity when diagonal is true and zero otherwise.
func (pkg *Package) controlBlock(lvl qubit, tag ControlLine, entry mEdge, diagonal bool) mEdge {
	id := mZero
	if diagonal {
		id = pkg.Identity(int(lvl))
	}
	switch tag {
	case NegativeControl:
		return pkg.normalizeMatrix(lvl, entry, mZero, mZero, id)
	case PositiveControl:
		return pkg.normalizeMatrix(lvl, id, mZero, mZero, entry)
	default:
		return pkg.normalizeMatrix(lvl, entry, mZero, mZero, entry)
	}
}

// Identity returns the n-qubit identity matrix, built incrementally and
// memoized level by level (SPEC_FULL.md §2.3's incremental-extension
// cache): identity(n) is built from identity(n-1) rather than from scratch,
// so repeated calls at increasing sizes reuse all of the previous work.
func (pkg *Package) Identity(n int) mEdge {
	if n == 0 {
		return mOne
	}
	if n < len(pkg.idTable) && !pkg.idTable[n].isZero() {
		return pkg.idTable[n]
	}
	prev := pkg.Identity(n - 1)
	e := pkg.normalizeMatrix(qubit(n-1), prev, mZero, mZero, prev)
	if n >= len(pkg.idTable) {
		grown := make([]mEdge, n+1)
		copy(grown, pkg.idTable)
		pkg.idTable = grown
	}
	pkg.idTable[n] = e
	return e
}

// extendIdentity kronecker-extends a single-level gate edge e (built at
// level 0) up to act on n qubits total: identities are tensored in above
// it, then a final product with the target-qubit identity raises it to
// level target.
func (pkg *Package) extendIdentity(e mEdge, target qubit, n int) mEdge {
	cur := e
	curQubits := 1
	for lvl := int(target) + 1; lvl < n; lvl++ {
		id := pkg.Identity(1)
		cur = pkg.kroneckerMatrix(id, curQubits, cur)
		curQubits++
	}
	if target == 0 {
		return cur
	}
	below := pkg.Identity(int(target))
	return pkg.kroneckerMatrix(cur, int(target), below)
}
