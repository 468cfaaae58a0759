// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorTableCanonicalizesStructurallyEqualNodes(t *testing.T) {
	pkg := New(2)

	n1 := pkg.vectors.getNode()
	n1.v = 0
	n1.e = [2]vEdge{vOne, vZero}
	e1 := pkg.vectors.lookup(vEdge{p: n1, w: ONE}, false)

	n2 := pkg.vectors.getNode()
	n2.v = 0
	n2.e = [2]vEdge{vOne, vZero}
	e2 := pkg.vectors.lookup(vEdge{p: n2, w: ONE}, false)

	assert.Same(t, e1.p, e2.p)
}

func TestVectorTableDistinguishesDifferentStructure(t *testing.T) {
	pkg := New(2)

	n1 := pkg.vectors.getNode()
	n1.v = 0
	n1.e = [2]vEdge{vOne, vZero}
	e1 := pkg.vectors.lookup(vEdge{p: n1, w: ONE}, false)

	n2 := pkg.vectors.getNode()
	n2.v = 0
	n2.e = [2]vEdge{vZero, vOne}
	e2 := pkg.vectors.lookup(vEdge{p: n2, w: ONE}, false)

	assert.NotSame(t, e1.p, e2.p)
}

func TestVectorTableIncDecRefRecurses(t *testing.T) {
	pkg := New(2)

	leaf := pkg.vectors.getNode()
	leaf.v = 0
	leaf.e = [2]vEdge{vOne, vZero}
	leafEdge := pkg.vectors.lookup(vEdge{p: leaf, w: ONE}, false)

	root := pkg.vectors.getNode()
	root.v = 1
	root.e = [2]vEdge{leafEdge, vZero}
	rootEdge := pkg.vectors.lookup(vEdge{p: root, w: ONE}, false)

	pkg.IncRefVector(rootEdge)
	require.EqualValues(t, 1, rootEdge.p.ref)
	assert.EqualValues(t, 1, leafEdge.p.ref)

	pkg.DecRefVector(rootEdge)
	assert.EqualValues(t, 0, rootEdge.p.ref)
	assert.EqualValues(t, 0, leafEdge.p.ref)
}

func TestVectorTableGarbageCollectSweepsUnreferencedNodes(t *testing.T) {
	pkg := New(2)

	n := pkg.vectors.getNode()
	n.v = 0
	n.e = [2]vEdge{vOne, vZero}
	e := pkg.vectors.lookup(vEdge{p: n, w: ONE}, false)

	pkg.IncRefVector(e)
	pkg.DecRefVector(e)

	collected := pkg.vectors.garbageCollect(true)
	assert.Equal(t, 1, collected)
}
