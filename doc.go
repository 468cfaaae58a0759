// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package qdd implements a decision-diagram engine for representing and
// manipulating the state vectors and unitary (or superoperator) matrices
// used in quantum circuit simulation.
//
// A vector node branches on one qubit's amplitude into two weighted
// children; a matrix node branches into four, one per entry of a 2x2
// block. Every node and every interned complex weight is hash-consed: two
// structurally identical subgraphs are always the same Go value, which is
// what lets equality, and every recursive operator's memoization, run in
// constant time on the pointer rather than walking the structure.
//
// A Package owns every table this involves: the interned float pool, the
// vector and matrix unique tables, and the compute (memoization) tables
// behind AddVectors, MultiplyMV, kroneckerVector and the rest. All of it
// is reclaimed by explicit, reference-counted garbage collection rather
// than by the Go runtime's own collector — a node with a zero refcount is
// eligible the moment GarbageCollect runs, not whenever some later GC
// cycle happens to notice it is unreachable. We manage decision-diagram
// memory ourselves; Go still manages the package's own bookkeeping
// structures (slices, maps) for us.
//
// A Package is not safe for concurrent use from multiple goroutines: every
// table above is mutated in place by every operator.
package qdd
