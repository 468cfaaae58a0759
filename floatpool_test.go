// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatPoolInternsWithinTolerance(t *testing.T) {
	p := newFloatPool(1e-9)
	a := p.lookup(0.3333333333)
	b := p.lookup(0.3333333333 + 1e-12)
	assert.Same(t, a, b)
}

func TestFloatPoolDistinguishesBeyondTolerance(t *testing.T) {
	p := newFloatPool(1e-9)
	a := p.lookup(0.1)
	b := p.lookup(0.1 + 1e-6)
	assert.NotSame(t, a, b)
}

func TestFloatPoolZeroAndOneArePinned(t *testing.T) {
	p := newFloatPool(defaultTolerance)
	assert.Same(t, floatZero, p.lookup(0))
	assert.Same(t, floatOne, p.lookup(1))
	assert.Equal(t, maxRefCount, floatZero.ref)
	assert.Equal(t, maxRefCount, floatOne.ref)
}

func TestFloatPoolLookupPanicsOnNaN(t *testing.T) {
	p := newFloatPool(defaultTolerance)
	assert.PanicsWithValue(t, PreconditionError{Msg: "NaN reached the float pool"}, func() {
		p.lookup(math.NaN())
	})
}

func TestFloatPoolRefcountRoundtrip(t *testing.T) {
	p := newFloatPool(defaultTolerance)
	e := p.lookup(42.0)
	require.NotNil(t, e)
	p.incRef(e)
	p.incRef(e)
	assert.EqualValues(t, 2, e.ref)
	p.decRef(e)
	assert.EqualValues(t, 1, e.ref)
	p.decRef(e)
	assert.EqualValues(t, 0, e.ref)
}

func TestFloatPoolDecRefUnderflowPanics(t *testing.T) {
	p := newFloatPool(defaultTolerance)
	e := p.lookup(7.0)
	assert.Panics(t, func() { p.decRef(e) })
}

func TestFloatPoolGarbageCollectSweepsZeroRef(t *testing.T) {
	p := newFloatPool(defaultTolerance)
	e := p.lookup(2.5)
	p.incRef(e)
	p.decRef(e)
	before := p.population
	collected := p.garbageCollect(true)
	assert.Equal(t, 1, collected)
	assert.Equal(t, before-1, p.population)
}
