// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVectorPivotsOnFirstNonZeroChild(t *testing.T) {
	pkg := New(2)
	half := pkg.internComplex(0.5, 0)
	full := pkg.internComplex(1, 0)

	e := pkg.normalizeVector(0, vEdge{p: vTerminal, w: half}, vEdge{p: vTerminal, w: full})
	assert.Equal(t, half, e.w)
	assert.True(t, e.p.e[0].w.equalsOne())

	e2 := pkg.normalizeVector(0, vZero, vEdge{p: vTerminal, w: full})
	assert.Equal(t, full, e2.w)
	assert.True(t, e2.p.e[1].w.equalsOne())
}

func TestNormalizeVectorBothZeroIsStructuralZero(t *testing.T) {
	pkg := New(2)
	e := pkg.normalizeVector(0, vZero, vZero)
	assert.True(t, e.isZero())
}

func TestNormalizeVectorSingleBranchZeroStaysZero(t *testing.T) {
	pkg := New(2)
	one := pkg.internComplex(1, 0)
	e := pkg.normalizeVector(0, vZero, vEdge{p: vTerminal, w: one})
	assert.True(t, e.p.e[0].isZero())
	assert.True(t, e.p.e[1].w.equalsOne())
}

func TestNormalizeMatrixIdentAndSymmFlags(t *testing.T) {
	pkg := New(2)
	id := pkg.normalizeMatrix(0, mOne, mZero, mZero, mOne)
	assert.True(t, id.p.ident)
	assert.True(t, id.p.symm)

	x := pkg.normalizeMatrix(0, mZero, mOne, mOne, mZero)
	assert.False(t, x.p.ident)
	assert.True(t, x.p.symm)
}

func TestNormalizeMatrixAllZeroIsStructuralZero(t *testing.T) {
	pkg := New(2)
	e := pkg.normalizeMatrix(0, mZero, mZero, mZero, mZero)
	assert.True(t, e.isZero())
}
