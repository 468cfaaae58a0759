// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixTableCanonicalizesStructurallyEqualNodes(t *testing.T) {
	pkg := New(2)

	e1 := pkg.normalizeMatrix(0, mOne, mZero, mZero, mOne)
	e2 := pkg.normalizeMatrix(0, mOne, mZero, mZero, mOne)

	assert.Same(t, e1.p, e2.p)
}

func TestMatrixTableIdentFlagSetOnIdentityShape(t *testing.T) {
	pkg := New(2)
	id := pkg.normalizeMatrix(0, mOne, mZero, mZero, mOne)
	assert.True(t, id.p.ident)
}

func TestMatrixTableSymmFlagSetOnSymmetricShape(t *testing.T) {
	pkg := New(2)
	x := pkg.normalizeMatrix(0, mZero, mOne, mOne, mZero)
	assert.True(t, x.p.symm)
}

func TestMatrixTableSymmFlagUnsetOnAsymmetricShape(t *testing.T) {
	pkg := New(1)
	m := pkg.GateDD(1, 0, [4]complex128{1, 2, 3, 4})
	assert.False(t, m.p.symm)
}

func TestMatrixTableIncDecRefRecurses(t *testing.T) {
	pkg := New(2)
	leaf := pkg.normalizeMatrix(0, mOne, mZero, mZero, mOne)
	root := pkg.normalizeMatrix(1, leaf, mZero, mZero, mZero)

	pkg.IncRefMatrix(root)
	assert.EqualValues(t, 1, root.p.ref)
	assert.EqualValues(t, 1, leaf.p.ref)

	pkg.DecRefMatrix(root)
	assert.EqualValues(t, 0, root.p.ref)
	assert.EqualValues(t, 0, leaf.p.ref)
}

func TestMatrixTableGarbageCollectSweepsUnreferencedNodes(t *testing.T) {
	pkg := New(2)
	e := pkg.normalizeMatrix(0, mOne, mZero, mZero, mZero)

	pkg.IncRefMatrix(e)
	pkg.DecRefMatrix(e)

	collected := pkg.matrices.garbageCollect(true)
	assert.Equal(t, 1, collected)
}
