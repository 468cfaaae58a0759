// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroStateAmplitudes(t *testing.T) {
	pkg := New(3)
	e := pkg.ZeroState(3)
	amps := pkg.GetVector(e, 3)
	assert.Equal(t, complex(1, 0), amps[0])
	for i := 1; i < len(amps); i++ {
		assert.Equal(t, complex(0, 0), amps[i])
	}
}

func TestBasisStateBitsPicksOutBasisVector(t *testing.T) {
	pkg := New(3)
	e := pkg.BasisStateBits([]int{1, 0, 1})
	amps := pkg.GetVector(e, 3)
	// index 0 least significant: bits [1,0,1] -> index 1*1 + 0*2 + 1*4 = 5
	assert.Equal(t, complex(1, 0), amps[5])
}

func TestBasisStatePlusMinusAreNormalized(t *testing.T) {
	pkg := New(1)
	plus := pkg.BasisState([]BasisKind{BasisPlus})
	amps := pkg.GetVector(plus, 1)
	assert.InDelta(t, 1.0, normSquared(amps), 1e-9)

	minus := pkg.BasisState([]BasisKind{BasisMinus})
	amps = pkg.GetVector(minus, 1)
	assert.InDelta(t, 1.0, normSquared(amps), 1e-9)
}

func TestGateDDHadamardMatrix(t *testing.T) {
	pkg := New(1)
	h := Hadamard(pkg, 1, 0)
	m := pkg.GetMatrix(h, 1)
	s := 0.7071067811865476
	assert.InDelta(t, s, real(m[0][0]), 1e-9)
	assert.InDelta(t, s, real(m[0][1]), 1e-9)
	assert.InDelta(t, s, real(m[1][0]), 1e-9)
	assert.InDelta(t, -s, real(m[1][1]), 1e-9)
}

func TestGateDDExtendsIdentityOnUnaffectedQubits(t *testing.T) {
	pkg := New(2)
	x := PauliX(pkg, 2, 1)
	m := pkg.GetMatrix(x, 2)
	// X on qubit 1 (the more significant bit), identity on qubit 0:
	// basis order is index = bit0 + 2*bit1, so X flips the high bit.
	assert.Equal(t, complex(1, 0), m[2][0])
	assert.Equal(t, complex(1, 0), m[3][1])
	assert.Equal(t, complex(1, 0), m[0][2])
	assert.Equal(t, complex(1, 0), m[1][3])
}

func TestIdentityIsMemoizedIncrementally(t *testing.T) {
	pkg := New(4)
	id2 := pkg.Identity(2)
	id3 := pkg.Identity(3)
	assert.Same(t, id2.p, id3.p.e[0].p)
}

func TestIdentityMatrixValues(t *testing.T) {
	pkg := New(2)
	id := pkg.Identity(2)
	m := pkg.GetMatrix(id, 2)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if r == c {
				assert.Equal(t, complex(1, 0), m[r][c])
			} else {
				assert.Equal(t, complex(0, 0), m[r][c])
			}
		}
	}
}
