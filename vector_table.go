// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import "unsafe"

// vectorTable is the unique table (hash-consing index) for vector nodes,
// one bucket array per qubit level, exactly as described in SPEC_FULL.md
// §4.3. It owns the vNode arena: chunked allocation plus a free list.
type vectorTable struct {
	tables [][bucketCount]*vNode

	available *vNode
	chunks    [][]vNode

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

func newVectorTable(nvars int) *vectorTable {
	return &vectorTable{
		tables:         make([][bucketCount]*vNode, nvars),
		active:         make([]int, nvars),
		gcInitialLimit: nodeInitialGCLimit,
		gcLimit:        nodeInitialGCLimit,
		gcIncrement:    nodeDefaultGCIncrement,
	}
}

func (t *vectorTable) resize(nvars int) {
	if nvars <= len(t.tables) {
		return
	}
	grown := make([][bucketCount]*vNode, nvars)
	copy(grown, t.tables)
	t.tables = grown
	grownActive := make([]int, nvars)
	copy(grownActive, t.active)
	t.active = grownActive
}

// hash spreads over every child's target and weight-component addresses.
// Go pointers are used only for their identity here, never dereferenced
// through the resulting integer, so casting to uintptr is safe (see
// SPEC_FULL.md §4.3).
func (t *vectorTable) hash(n *vNode) int {
	var key uintptr
	for i := range n.e {
		key += ptrBits(unsafe.Pointer(n.e[i].p)) >> uint(i)
		key += ptrBits(unsafe.Pointer(n.e[i].w.Re.entry)) >> uint(i)
		key += ptrBits(unsafe.Pointer(n.e[i].w.Im.entry)) >> uint(i+1)
	}
	return int(key & bucketMask)
}

func ptrBits(p unsafe.Pointer) uintptr { return uintptr(p) }

func (t *vectorTable) structEqual(a, b *vNode) bool {
	return a.e == b.e
}

// lookup canonicalizes candidate e.p: if a structurally equal node already
// exists at this level, the candidate is returned to the free list (unless
// keepNode is set) and the edge is rewritten to point at the canonical
// node. Otherwise the candidate is inserted.
func (t *vectorTable) lookup(e vEdge, keepNode bool) vEdge {
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
			return vEdge{p: p, w: e.w}
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

func (t *vectorTable) getNode() *vNode {
	if t.available != nil {
		n := t.available
		t.available = n.next
		n.next = nil
		n.ref = 0
		return n
	}
	chunk := make([]vNode, nodeAllocationSize)
	t.chunks = append(t.chunks, chunk)
	t.allocations += nodeAllocationSize
	for i := 1; i < nodeAllocationSize-1; i++ {
		chunk[i].next = &chunk[i+1]
	}
	t.available = &chunk[1]
	return &chunk[0]
}

func (t *vectorTable) returnNode(n *vNode) {
	n.next = t.available
	t.available = n
}

// incRef bumps the weight-component refs (delegating to the caller's float
// pool) and, on first acquisition of a non-terminal node, recursively
// incRefs its children.
func (t *vectorTable) incRef(pool *floatPool, e vEdge) {
	pool.incRef(e.w.Re.entry)
	pool.incRef(e.w.Im.entry)
	if e.isTerminal() || e.isZero() {
		return
	}
	if e.p.ref == maxRefCount {
		warnSaturated("vector node", float64(e.p.v))
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

func (t *vectorTable) decRef(pool *floatPool, e vEdge) {
	pool.decRef(e.w.Re.entry)
	pool.decRef(e.w.Im.entry)
	if e.isTerminal() || e.isZero() {
		return
	}
	if e.p.ref == maxRefCount {
		return
	}
	if e.p.ref == 0 {
		panic(InvariantError{Msg: "vector node ref underflow"})
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

func (t *vectorTable) garbageCollect(force bool) int {
	t.gcCalls++
	if !force && t.nodeCount < t.gcLimit {
		return 0
	}
	t.gcRuns++
	collected, remaining := 0, 0
	for lvl := range t.tables {
		table := &t.tables[lvl]
		for key := range table {
			var last *vNode
			p := table[key]
			for p != nil {
				if p.ref == 0 {
					if p.v == terminalLevel {
						panic(InvariantError{Msg: "tried to collect a terminal vector node"})
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
		panic(InvariantError{Msg: "vector node population exceeds configured maximum after collection"})
	}
	return collected
}

func (t *vectorTable) stats() (population, peak, gcRuns int) {
	return t.nodeCount, t.peakNodeCount, t.gcRuns
}
