// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import "unsafe"

// matrixTable is the unique table for matrix nodes. It duplicates
// vectorTable's structure rather than sharing it through an abstraction,
// the same way rudd's own bkernel.go/hkernel.go carry two parallel,
// independently readable implementations instead of one generalized one.
type matrixTable struct {
	tables [][bucketCount]*mNode

	available *mNode
	chunks    [][]mNode

	nodeCount     int
	peakNodeCount int
	allocations   int

	lookups, hits, collisions int

	active          []int
	activeNodeCount int
	maxActive       int

	gcCalls, gcRuns int
	gcInitialLimit  int
	gcLimit         int
	gcIncrement     int
	maxGcIncrement  int
	maxNodeCount    int
	minFreeNodes    int
}

func newMatrixTable(nvars int) *matrixTable {
	return &matrixTable{
		tables:         make([][bucketCount]*mNode, nvars),
		active:         make([]int, nvars),
		gcInitialLimit: nodeInitialGCLimit,
		gcLimit:        nodeInitialGCLimit,
		gcIncrement:    nodeDefaultGCIncrement,
	}
}

func (t *matrixTable) resize(nvars int) {
	if nvars <= len(t.tables) {
		return
	}
	grown := make([][bucketCount]*mNode, nvars)
	copy(grown, t.tables)
	t.tables = grown
	grownActive := make([]int, nvars)
	copy(grownActive, t.active)
	t.active = grownActive
}

// hash spreads over all four children, deliberately symmetric across
// edges[2] and edges[3] (see SPEC_FULL.md §9's resolved Open Question:
// the reference source's hash favors edges[3] alone, a hash-quality bug
// not worth reproducing).
func (t *matrixTable) hash(n *mNode) int {
	var key uintptr
	for i := range n.e {
		key += ptrBits(unsafe.Pointer(n.e[i].p)) >> uint(i)
		key += ptrBits(unsafe.Pointer(n.e[i].w.Re.entry)) >> uint(i)
		key += ptrBits(unsafe.Pointer(n.e[i].w.Im.entry)) >> uint(i+1)
	}
	return int(key & bucketMask)
}

func (t *matrixTable) structEqual(a, b *mNode) bool {
	return a.e == b.e
}

func (t *matrixTable) lookup(e mEdge, keepNode bool) mEdge {
	if e.isTerminal() {
		return e
	}
	t.lookups++
	v := int(e.p.v)
	key := t.hash(e.p)
	for p := t.tables[v][key]; p != nil; p = p.next {
		if t.structEqual(e.p, p) {
			t.hits++
			if e.p != p && !keepNode {
				t.returnNode(e.p)
			}
			return mEdge{p: p, w: e.w}
		}
		t.collisions++
	}
	e.p.next = t.tables[v][key]
	t.tables[v][key] = e.p
	t.nodeCount++
	if t.nodeCount > t.peakNodeCount {
		t.peakNodeCount = t.nodeCount
	}
	return e
}

func (t *matrixTable) getNode() *mNode {
	if t.available != nil {
		n := t.available
		t.available = n.next
		n.next = nil
		n.ref = 0
		n.symm, n.ident = false, false
		return n
	}
	chunk := make([]mNode, nodeAllocationSize)
	t.chunks = append(t.chunks, chunk)
	t.allocations += nodeAllocationSize
	for i := 1; i < nodeAllocationSize-1; i++ {
		chunk[i].next = &chunk[i+1]
	}
	t.available = &chunk[1]
	return &chunk[0]
}

func (t *matrixTable) returnNode(n *mNode) {
	n.next = t.available
	t.available = n
}

func (t *matrixTable) incRef(pool *floatPool, e mEdge) {
	pool.incRef(e.w.Re.entry)
	pool.incRef(e.w.Im.entry)
	if e.isTerminal() || e.isZero() {
		return
	}
	if e.p.ref == maxRefCount {
		warnSaturated("matrix node", float64(e.p.v))
		return
	}
	e.p.ref++
	if e.p.ref == 1 {
		for _, c := range e.p.e {
			if !c.isZero() {
				t.incRef(pool, c)
			}
		}
		t.active[e.p.v]++
		t.activeNodeCount++
		if t.activeNodeCount > t.maxActive {
			t.maxActive = t.activeNodeCount
		}
	}
}

func (t *matrixTable) decRef(pool *floatPool, e mEdge) {
	pool.decRef(e.w.Re.entry)
	pool.decRef(e.w.Im.entry)
	if e.isTerminal() || e.isZero() {
		return
	}
	if e.p.ref == maxRefCount {
		return
	}
	if e.p.ref == 0 {
		panic(InvariantError{Msg: "matrix node ref underflow"})
	}
	e.p.ref--
	if e.p.ref == 0 {
		for _, c := range e.p.e {
			if !c.isZero() {
				t.decRef(pool, c)
			}
		}
		t.active[e.p.v]--
		t.activeNodeCount--
	}
}

func (t *matrixTable) garbageCollect(force bool) int {
	t.gcCalls++
	if !force && t.nodeCount < t.gcLimit {
		return 0
	}
	t.gcRuns++
	collected, remaining := 0, 0
	for lvl := range t.tables {
		table := &t.tables[lvl]
		for key := range table {
			var last *mNode
			p := table[key]
			for p != nil {
				if p.ref == 0 {
					if p.v == terminalLevel {
						panic(InvariantError{Msg: "tried to collect a terminal matrix node"})
					}
					next := p.next
					if last == nil {
						table[key] = next
					} else {
						last.next = next
					}
					t.returnNode(p)
					p = next
					collected++
					continue
				}
				last = p
				p = p.next
				remaining++
			}
		}
	}
	increment := t.gcIncrement
	if t.maxGcIncrement > 0 && increment > t.maxGcIncrement {
		increment = t.maxGcIncrement
	}
	t.gcLimit += increment
	t.nodeCount = remaining
	if t.maxNodeCount > 0 && remaining > t.maxNodeCount {
		panic(InvariantError{Msg: "matrix node population exceeds configured maximum after collection"})
	}
	return collected
}

func (t *matrixTable) stats() (population, peak, gcRuns int) {
	return t.nodeCount, t.peakNodeCount, t.gcRuns
}
