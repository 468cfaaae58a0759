// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTableInsertLookupRoundtrip(t *testing.T) {
	ct := newComputeTable[vPairKey, vEdge](8)
	key := vPairKey{a: vTerminal, b: vTerminal}
	ct.insert(key, 0, vOne)

	val, ok := ct.lookup(key, 0)
	assert.True(t, ok)
	assert.Equal(t, vOne, val)
}

func TestComputeTableMissReturnsZeroValue(t *testing.T) {
	ct := newComputeTable[vPairKey, vEdge](8)
	_, ok := ct.lookup(vPairKey{a: vTerminal, b: vTerminal}, 0)
	assert.False(t, ok)
}

func TestComputeTableCollisionOverwritesSlot(t *testing.T) {
	ct := newComputeTable[vPairKey, vEdge](4)
	a := vPairKey{a: vTerminal, b: vTerminal}
	b := vPairKey{a: nil, b: vTerminal}

	ct.insert(a, 1, vOne)
	ct.insert(b, 1, vZero)

	_, hitA := ct.lookup(a, 1)
	valB, hitB := ct.lookup(b, 1)
	assert.False(t, hitA)
	assert.True(t, hitB)
	assert.Equal(t, vZero, valB)
}

func TestComputeTableClearWipesAllSlots(t *testing.T) {
	ct := newComputeTable[vPairKey, vEdge](8)
	key := vPairKey{a: vTerminal, b: vTerminal}
	ct.insert(key, 3, vOne)
	ct.clear()

	_, ok := ct.lookup(key, 3)
	assert.False(t, ok)
}

func TestNextPow2(t *testing.T) {
	assert.Equal(t, 1, nextPow2(0))
	assert.Equal(t, 1, nextPow2(1))
	assert.Equal(t, 16, nextPow2(9))
	assert.Equal(t, 1024, nextPow2(1024))
}
