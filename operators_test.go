// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertNotInDelta(t *testing.T, expected, actual, delta float64) bool {
	if math.Abs(expected-actual) <= delta {
		return assert.Fail(t, "Expected not in delta", "expected %v to not be within %v of %v", actual, delta, expected)
	}
	return true
}

func TestMultiplyMVBellPair(t *testing.T) {
	pkg := New(2)
	h := Hadamard(pkg, 2, 0)
	e := pkg.MultiplyMV(h, pkg.ZeroState(2))
	cx := CNOT(pkg, 2, 0, 1)
	bell := pkg.MultiplyMV(cx, e)

	amps := pkg.GetVector(bell, 2)
	s := 0.7071067811865476
	assert.InDelta(t, s, real(amps[0]), 1e-9)
	assert.InDelta(t, s, real(amps[3]), 1e-9)
	assert.InDelta(t, 0, real(amps[1]), 1e-9)
	assert.InDelta(t, 0, real(amps[2]), 1e-9)
}

func TestMultiplyMVGHZ(t *testing.T) {
	pkg := New(3)
	h := Hadamard(pkg, 3, 0)
	e := pkg.MultiplyMV(h, pkg.ZeroState(3))
	for target := 1; target < 3; target++ {
		e = pkg.MultiplyMV(CNOT(pkg, 3, 0, Qubit(target)), e)
	}
	amps := pkg.GetVector(e, 3)
	s := 0.7071067811865476
	assert.InDelta(t, s, real(amps[0]), 1e-9)
	assert.InDelta(t, s, real(amps[7]), 1e-9)
	assert.InDelta(t, 1.0, normSquared(amps), 1e-9)
}

func TestAddVectorsIsNotHomogeneousInBothScalars(t *testing.T) {
	pkg := New(1)
	a := pkg.BasisStateBits([]int{0})
	b := pkg.BasisStateBits([]int{1})

	scaled := func(e vEdge, r float64) vEdge {
		return vEdge{p: e.p, w: pkg.wMul(e.w, pkg.wFromReal(r))}
	}

	sum1 := pkg.AddVectors(scaled(a, 1), scaled(b, 2))
	sum2 := pkg.AddVectors(scaled(a, 3), scaled(b, 6))

	amps1 := pkg.GetVector(sum1, 1)
	amps2 := pkg.GetVector(sum2, 1)

	// sum2 is 3x sum1 elementwise: same ratio, not the same absolute vector.
	assert.InDelta(t, 3*real(amps1[0]), real(amps2[0]), 1e-9)
	assert.InDelta(t, 3*real(amps1[1]), real(amps2[1]), 1e-9)

	sum3 := pkg.AddVectors(scaled(a, 1), scaled(b, 4))
	amps3 := pkg.GetVector(sum3, 1)
	assertNotInDelta(t, real(amps1[1])/real(amps1[0]+1e-30), real(amps3[1])/real(amps3[0]+1e-30), 1e-9)
}

func TestAddVectorsCacheHitReturnsVerbatim(t *testing.T) {
	pkg := New(1)
	a := pkg.BasisStateBits([]int{0})
	b := pkg.BasisStateBits([]int{1})
	first := pkg.AddVectors(a, b)
	second := pkg.AddVectors(a, b)
	assert.Equal(t, first, second)
}

func TestKroneckerVectorPlacesLeftOperandAsMoreSignificant(t *testing.T) {
	pkg := New(2)
	one := pkg.BasisStateBits([]int{1})
	zero := pkg.BasisStateBits([]int{0})

	res := pkg.kroneckerVector(one, 1, zero)
	amps := pkg.GetVector(res, 2)
	// bit0 (least significant, from zero) = 0, bit1 (from one) = 1 -> index 2
	assert.Equal(t, complex(1, 0), amps[2])
}

func TestExtendWidensStateWithLeadingZeros(t *testing.T) {
	pkg := New(3)
	one := pkg.BasisStateBits([]int{1})
	extended := pkg.Extend(one, 2, 1)
	amps := pkg.GetVector(extended, 3)
	assert.Equal(t, complex(1, 0), amps[1])
}

func TestTransposeFixesSymmetricNode(t *testing.T) {
	pkg := New(1)
	x := PauliX(pkg, 1, 0)
	transposed := pkg.Transpose(x)
	assert.Equal(t, x, transposed)
}

func TestTransposeSwapsOffDiagonal(t *testing.T) {
	pkg := New(1)
	m := pkg.GateDD(1, 0, [4]complex128{1, 2, 3, 4})
	transposed := pkg.Transpose(m)
	orig := pkg.GetMatrix(m, 1)
	tr := pkg.GetMatrix(transposed, 1)
	assert.Equal(t, orig[0][1], tr[1][0])
	assert.Equal(t, orig[1][0], tr[0][1])
}

func TestConjugateTransposeConjugatesWeights(t *testing.T) {
	pkg := New(1)
	m := pkg.GateDD(1, 0, [4]complex128{1, complex(0, 1), complex(0, -1), 1})
	dag := pkg.ConjugateTranspose(m)
	got := pkg.GetMatrix(dag, 1)
	assert.Equal(t, complex(0, -1), got[1][0])
	assert.Equal(t, complex(0, 1), got[0][1])
}

func TestInnerProductOrthogonalBasisStates(t *testing.T) {
	pkg := New(1)
	zero := pkg.BasisStateBits([]int{0})
	one := pkg.BasisStateBits([]int{1})
	assert.InDelta(t, 0, pkg.InnerProduct(zero, one).mag2(), 1e-12)
	assert.InDelta(t, 1, pkg.InnerProduct(zero, zero).mag2(), 1e-12)
}

func TestFidelitySelfOverlapIsOne(t *testing.T) {
	pkg := New(2)
	h := Hadamard(pkg, 2, 0)
	bell := pkg.MultiplyMV(CNOT(pkg, 2, 0, 1), pkg.MultiplyMV(h, pkg.ZeroState(2)))
	assert.InDelta(t, 1.0, pkg.Fidelity(bell, bell), 1e-9)
}

func TestTraceOfIdentity(t *testing.T) {
	pkg := New(2)
	id := pkg.Identity(2)
	tr := pkg.Trace(id, 2)
	re, im := tr.w.value()
	assert.InDelta(t, 4, re, 1e-9)
	assert.InDelta(t, 0, im, 1e-9)
}

func TestReduceAncillaeDiscardsOneBranch(t *testing.T) {
	pkg := New(2)
	state := pkg.BasisStateBits([]int{1, 0})
	reduced := pkg.ReduceAncillae(state, []qubit{1}, 2)
	amps := pkg.GetVector(reduced, 1)
	assert.Equal(t, complex(1, 0), amps[1])
}

func TestReduceGarbageSumsDiagonalBlocksAndClampsWeight(t *testing.T) {
	pkg := New(2)
	id := pkg.Identity(2)
	reduced := pkg.ReduceGarbage(id, []qubit{1}, 2)
	got := pkg.GetMatrix(reduced, 1)
	assert.InDelta(t, 1, real(got[0][0]), 1e-9)
	assert.InDelta(t, 1, real(got[1][1]), 1e-9)
}
