// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import "github.com/google/uuid"

// Package is the single owner of the float pool, both unique tables and
// every compute table (SPEC_FULL.md §5's "Shared-resource policy": all of
// these belong to one package instance, and running one instance from
// multiple goroutines concurrently is undefined behavior). Every
// public operator in operators.go, builders.go and extract.go is a method
// on *Package.
type Package struct {
	ID     uuid.UUID
	qubits int
	cfg    *configs
	err    error

	floats *floatPool
	lane   *cacheLane

	vectors  *vectorTable
	matrices *matrixTable

	addV           *computeTable[vAddKey, vEdge]
	addM           *computeTable[mAddKey, mEdge]
	mulMV          *computeTable[vmPairKey, vEdge]
	mulMM          *computeTable[mPairKey, mEdge]
	transposeT     *computeTable[*mNode, mEdge]
	conjTransposeT *computeTable[*mNode, mEdge]
	kronV          *computeTable[vKronKey, vEdge]
	kronM          *computeTable[mKronKey, mEdge]
	innerProd      *computeTable[vPairKey, complexValue]

	idTable []mEdge

	toffoli *toffoliTable
	noise   *noiseTable
}

const defaultComputeTableSize = 1 << 14

// New allocates a package sized for qubits variables (levels 0..qubits-1),
// applying any functional options from config.go. Panics with
// PreconditionError if qubits exceeds qubitMax.
func New(qubits int, opts ...func(*configs)) *Package {
	if qubits < 0 || qubits > qubitMax {
		panic(PreconditionError{Msg: "qubit count out of range"})
	}
	cfg := makeconfigs(qubits)
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.qubits < 0 || cfg.qubits > qubitMax {
		panic(PreconditionError{Msg: "qubit count out of range"})
	}

	pkg := &Package{
		ID:       uuid.New(),
		qubits:   cfg.qubits,
		cfg:      cfg,
		floats:   newFloatPool(cfg.tolerance),
		lane:     &cacheLane{},
		vectors:  newVectorTable(cfg.qubits),
		matrices: newMatrixTable(cfg.qubits),

		addV:           newComputeTable[vAddKey, vEdge](cfg.cacheSize),
		addM:           newComputeTable[mAddKey, mEdge](cfg.cacheSize),
		mulMV:          newComputeTable[vmPairKey, vEdge](cfg.cacheSize),
		mulMM:          newComputeTable[mPairKey, mEdge](cfg.cacheSize),
		transposeT:     newComputeTable[*mNode, mEdge](cfg.cacheSize),
		conjTransposeT: newComputeTable[*mNode, mEdge](cfg.cacheSize),
		kronV:          newComputeTable[vKronKey, vEdge](cfg.cacheSize),
		kronM:          newComputeTable[mKronKey, mEdge](cfg.cacheSize),
		innerProd:      newComputeTable[vPairKey, complexValue](cfg.cacheSize),

		idTable: make([]mEdge, cfg.qubits+1),

		toffoli: newToffoliTable(),
		noise:   newNoiseTable(),
	}
	pkg.applyNodeConfig()
	return pkg
}

// Qubits returns the number of qubit levels the package is currently sized
// for.
func (pkg *Package) Qubits() int { return pkg.qubits }

// Resize grows the package to support at least qubits levels. Shrinking is
// not supported (SPEC_FULL.md §6: "larger or equal").
func (pkg *Package) Resize(qubits int) {
	if qubits < pkg.qubits {
		panic(PreconditionError{Msg: "Resize does not support shrinking a package"})
	}
	pkg.qubits = qubits
	pkg.vectors.resize(qubits)
	pkg.matrices.resize(qubits)
	if len(pkg.idTable) < qubits+1 {
		grown := make([]mEdge, qubits+1)
		copy(grown, pkg.idTable)
		pkg.idTable = grown
	}
}

// Reset clears every table (unique tables, compute tables, identity memo)
// while preserving the immortal statics (ZERO, ONE, the terminals). The
// package keeps its identity and configuration.
func (pkg *Package) Reset() {
	pkg.vectors = newVectorTable(pkg.qubits)
	pkg.matrices = newMatrixTable(pkg.qubits)
	pkg.applyNodeConfig()
	pkg.clearComputeTables()
	pkg.idTable = make([]mEdge, pkg.qubits+1)
	pkg.err = nil
}

// applyNodeConfig pushes the Nodesize/Maxnodesize/Maxnodeincrease/
// GCIncrement/Minfreenodes options onto both freshly built unique tables.
func (pkg *Package) applyNodeConfig() {
	for _, t := range []struct {
		gcInitialLimit, gcLimit, gcIncrement, maxGcIncrement, maxNodeCount, minFreeNodes *int
	}{
		{&pkg.vectors.gcInitialLimit, &pkg.vectors.gcLimit, &pkg.vectors.gcIncrement, &pkg.vectors.maxGcIncrement, &pkg.vectors.maxNodeCount, &pkg.vectors.minFreeNodes},
		{&pkg.matrices.gcInitialLimit, &pkg.matrices.gcLimit, &pkg.matrices.gcIncrement, &pkg.matrices.maxGcIncrement, &pkg.matrices.maxNodeCount, &pkg.matrices.minFreeNodes},
	} {
		*t.gcInitialLimit = pkg.cfg.nodeSize
		*t.gcLimit = pkg.cfg.nodeSize
		*t.gcIncrement = pkg.cfg.gcIncrement
		*t.maxGcIncrement = pkg.cfg.maxNodeIncrease
		*t.maxNodeCount = pkg.cfg.maxNodeSize
		*t.minFreeNodes = pkg.cfg.minFreeNodes
	}
}

func (pkg *Package) clearComputeTables() {
	pkg.addV.clear()
	pkg.addM.clear()
	pkg.mulMV.clear()
	pkg.mulMM.clear()
	pkg.transposeT.clear()
	pkg.conjTransposeT.clear()
	pkg.kronV.clear()
	pkg.kronM.clear()
	pkg.innerProd.clear()
}

// IncRef and DecRef expose the unique tables' reference counting to
// callers that hold onto an edge across multiple operations: any edge
// returned by a builder or operator is not yet reference counted by
// itself, so a caller that wants to keep it alive across a GC boundary
// must IncRef it, and DecRef it once done (SPEC_FULL.md §6).
func (pkg *Package) IncRefVector(e vEdge) { pkg.vectors.incRef(pkg.floats, e) }
func (pkg *Package) DecRefVector(e vEdge) { pkg.vectors.decRef(pkg.floats, e) }
func (pkg *Package) IncRefMatrix(e mEdge) { pkg.matrices.incRef(pkg.floats, e) }
func (pkg *Package) DecRefMatrix(e mEdge) { pkg.matrices.decRef(pkg.floats, e) }

// GarbageCollect runs a mark-free, refcount-only sweep of the float pool
// and both unique tables, then wipes every compute table (SPEC_FULL.md
// §5: GC invalidates every compute-table entry). It is call-boundary
// safe only when invoked between top-level public operations, never from
// inside a recursive operator.
func (pkg *Package) GarbageCollect(force bool) int {
	collected := pkg.floats.garbageCollect(force)
	collected += pkg.vectors.garbageCollect(force)
	collected += pkg.matrices.garbageCollect(force)
	pkg.clearComputeTables()
	return collected
}

// weight helpers (C2), implemented as Package methods since every
// arithmetic step interns its result through the package's float pool and
// accounts for it on the cache lane.

func (pkg *Package) internComplex(re, im float64) Weight {
	var w Weight
	if re < 0 {
		w.Re = weightRef{entry: pkg.floats.lookup(-re), neg: true}
	} else {
		w.Re = weightRef{entry: pkg.floats.lookup(re), neg: false}
	}
	if w.Re.entry == floatZero {
		w.Re.neg = false
	}
	if im < 0 {
		w.Im = weightRef{entry: pkg.floats.lookup(-im), neg: true}
	} else {
		w.Im = weightRef{entry: pkg.floats.lookup(im), neg: false}
	}
	if w.Im.entry == floatZero {
		w.Im.neg = false
	}
	return w
}

func (pkg *Package) wAdd(a, b Weight) Weight {
	pkg.lane.acquire()
	defer pkg.lane.release()
	are, aim := a.value()
	bre, bim := b.value()
	re, im := cAdd(are, aim, bre, bim)
	return pkg.internComplex(re, im)
}

func (pkg *Package) wSub(a, b Weight) Weight {
	pkg.lane.acquire()
	defer pkg.lane.release()
	are, aim := a.value()
	bre, bim := b.value()
	re, im := cSub(are, aim, bre, bim)
	return pkg.internComplex(re, im)
}

func (pkg *Package) wMul(a, b Weight) Weight {
	pkg.lane.acquire()
	defer pkg.lane.release()
	are, aim := a.value()
	bre, bim := b.value()
	re, im := cMul(are, aim, bre, bim)
	return pkg.internComplex(re, im)
}

func (pkg *Package) wDiv(a, b Weight) Weight {
	pkg.lane.acquire()
	defer pkg.lane.release()
	are, aim := a.value()
	bre, bim := b.value()
	re, im := cDiv(are, aim, bre, bim)
	return pkg.internComplex(re, im)
}

func (pkg *Package) wConj(a Weight) Weight {
	pkg.lane.acquire()
	defer pkg.lane.release()
	re, im := a.value()
	re, im = cConj(re, im)
	return pkg.internComplex(re, im)
}

func (pkg *Package) wNeg(a Weight) Weight {
	pkg.lane.acquire()
	defer pkg.lane.release()
	re, im := a.value()
	re, im = cNeg(re, im)
	return pkg.internComplex(re, im)
}

func (pkg *Package) wFromReal(v float64) Weight { return pkg.internComplex(v, 0) }
