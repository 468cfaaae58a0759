// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

// qubit indexes a variable level; -1 denotes the terminal.
type qubit = int8

// vNode is a vector (state) node: two children, radix 2. v is the qubit
// level; edges[0] is the "line is 0" branch, edges[1] the "line is 1"
// branch. Nodes live in a chunked arena (vectorTable) and are linked into
// hash buckets through next; ref is the node's live incoming-edge count.
type vNode struct {
	v    qubit
	e    [2]vEdge
	ref  uint32
	next *vNode
}

// vEdge is a directed, weighted edge to a vector node (or the terminal).
// p == nil denotes the structural zero edge (weight is always ZERO in that
// case and is never stored in the unique table).
type vEdge struct {
	p *vNode
	w Weight
}

// mNode is a matrix (operator) node: four children, radix 4, ordered
// row-major [(0,0),(0,1),(1,0),(1,1)]. symm and ident are derived flags
// computed once when the node is first canonicalized (see normalize.go).
type mNode struct {
	v     qubit
	e     [4]mEdge
	ref   uint32
	next  *mNode
	symm  bool
	ident bool
}

// mEdge is a directed, weighted edge to a matrix node (or the terminal).
type mEdge struct {
	p *mNode
	w Weight
}

// vTerminal and mTerminal are the unique leaf nodes at level -1. They are
// never stored in a unique table bucket and never garbage collected.
var (
	vTerminal = &vNode{v: terminalLevel, ref: maxRefCount}
	mTerminal = &mNode{v: terminalLevel, ref: maxRefCount, symm: true, ident: true}
)

// vZero/vOne and mZero/mOne are the canonical algebraic-zero and
// multiplicative-identity-weight edges. vZero/mZero carry a nil target and
// must never appear with a non-zero weight; that combination is a bug.
var (
	vZero = vEdge{p: nil, w: ZERO}
	vOne  = vEdge{p: vTerminal, w: ONE}
	mZero = mEdge{p: nil, w: ZERO}
	mOne  = mEdge{p: mTerminal, w: ONE}
)

func (e vEdge) isTerminal() bool { return e.p == nil || e.p.v == terminalLevel }
func (e mEdge) isTerminal() bool { return e.p == nil || e.p.v == terminalLevel }

func (e vEdge) isZero() bool { return e.p == nil }
func (e mEdge) isZero() bool { return e.p == nil }

// Qubit, VEdge and MEdge are the exported names for a variable level and
// for the state-vector/operator edge handles returned by the builders and
// operators in this package. Callers outside the package hold these
// opaquely: there is nothing to construct or inspect on them directly
// beyond passing them to another exported function.
type Qubit = qubit
type VEdge = vEdge
type MEdge = mEdge
