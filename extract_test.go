// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmplitudeSkipsLevelsBelowTheDiagramsTop(t *testing.T) {
	pkg := New(2)
	// vOne is the bare terminal edge: it does not branch on any qubit,
	// so Amplitude must not consume any bits walking down to it.
	assert.Equal(t, complex(1, 0), pkg.Amplitude(vOne, []int{0, 0}))
	assert.Equal(t, complex(1, 0), pkg.Amplitude(vOne, []int{1, 1}))
}

func TestAmplitudeOnBasisState(t *testing.T) {
	pkg := New(3)
	e := pkg.BasisStateBits([]int{1, 1, 0})
	assert.Equal(t, complex(1, 0), pkg.Amplitude(e, []int{1, 1, 0}))
	assert.Equal(t, complex(0, 0), pkg.Amplitude(e, []int{0, 1, 0}))
}

func TestNodeCountVectorSharesSubtrees(t *testing.T) {
	pkg := New(3)
	e := pkg.ZeroState(3)
	// The all-zero state is a single chain with one node per level, so it
	// has at most three nodes.
	assert.LessOrEqual(t, pkg.NodeCountVector(e), 3)
}

func TestNodeCountMatrixCountsIdentityLevels(t *testing.T) {
	pkg := New(3)
	id := pkg.Identity(3)
	assert.LessOrEqual(t, pkg.NodeCountMatrix(id), 3)
}

func TestGetMatrixRoundtripsGateDD(t *testing.T) {
	pkg := New(1)
	z := PauliZ(pkg, 1, 0)
	m := pkg.GetMatrix(z, 1)
	assert.Equal(t, complex(1, 0), m[0][0])
	assert.Equal(t, complex(-1, 0), m[1][1])
	assert.Equal(t, complex(0, 0), m[0][1])
	assert.Equal(t, complex(0, 0), m[1][0])
}
