// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQubitsOptionOverridesConstructorArgument(t *testing.T) {
	pkg := New(1, Qubits(4))
	assert.Equal(t, 4, pkg.Qubits())
}

func TestNodesizeOptionSetsInitialGCThreshold(t *testing.T) {
	pkg := New(2, Nodesize(10))
	assert.Equal(t, 10, pkg.vectors.gcLimit)
	assert.Equal(t, 10, pkg.matrices.gcLimit)
}

func TestMaxnodesizePanicsWhenLiveSetExceedsCap(t *testing.T) {
	pkg := New(3, Maxnodesize(1))
	a := pkg.BasisStateBits([]int{1, 0, 0})
	b := pkg.BasisStateBits([]int{0, 1, 0})
	sum := pkg.AddVectors(a, b)
	pkg.IncRefVector(sum)
	assert.Panics(t, func() { pkg.GarbageCollect(true) })
}

func TestMaxnodeincreaseClampsGCLimitGrowth(t *testing.T) {
	pkg := New(2, GCIncrement(1000), Maxnodeincrease(5))
	pkg.GarbageCollect(true)
	assert.Equal(t, nodeInitialGCLimit+5, pkg.vectors.gcLimit)
}

func TestMinfreenodesIsRecordedOnTables(t *testing.T) {
	pkg := New(2, Minfreenodes(64))
	assert.Equal(t, 64, pkg.vectors.minFreeNodes)
	assert.Equal(t, 64, pkg.matrices.minFreeNodes)
}

func TestCachesizeRoundsUpToPowerOfTwo(t *testing.T) {
	pkg := New(2, Cachesize(100))
	assert.Equal(t, uint64(127), pkg.addV.mask)
}

func TestToleranceOptionRejectsNonPositive(t *testing.T) {
	pkg := New(2, Tolerance(-1))
	assert.Equal(t, defaultTolerance, pkg.floats.tolerance)
}
