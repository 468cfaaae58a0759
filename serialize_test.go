// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeVectorRoundtripBinary(t *testing.T) {
	pkg := New(3)
	h := Hadamard(pkg, 3, 0)
	e := pkg.MultiplyMV(h, pkg.ZeroState(3))
	for target := 1; target < 3; target++ {
		e = pkg.MultiplyMV(CNOT(pkg, 3, 0, Qubit(target)), e)
	}
	before := pkg.GetVector(e, 3)

	var buf bytes.Buffer
	require.NoError(t, pkg.SerializeVector(&buf, e, 3, true))

	other := New(3)
	restored, n, err := other.DeserializeVector(&buf, true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	after := other.GetVector(restored, 3)
	for i := range before {
		assert.InDelta(t, real(before[i]), real(after[i]), 1e-9)
		assert.InDelta(t, imag(before[i]), imag(after[i]), 1e-9)
	}
}

func TestSerializeDeserializeVectorRoundtripText(t *testing.T) {
	pkg := New(3)
	h := Hadamard(pkg, 3, 0)
	e := pkg.MultiplyMV(h, pkg.ZeroState(3))
	for target := 1; target < 3; target++ {
		e = pkg.MultiplyMV(CNOT(pkg, 3, 0, Qubit(target)), e)
	}
	before := pkg.GetVector(e, 3)

	var buf bytes.Buffer
	require.NoError(t, pkg.SerializeVector(&buf, e, 3, false))

	other := New(3)
	restored, n, err := other.DeserializeVector(&buf, false)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	after := other.GetVector(restored, 3)
	for i := range before {
		assert.InDelta(t, real(before[i]), real(after[i]), 1e-9)
		assert.InDelta(t, imag(before[i]), imag(after[i]), 1e-9)
	}
}

func TestSerializeDeserializeMatrixRoundtripBinary(t *testing.T) {
	pkg := New(2)
	tof := Toffoli(pkg, 2, []Qubit{0}, nil, 1)
	before := pkg.GetMatrix(tof, 2)

	var buf bytes.Buffer
	require.NoError(t, pkg.SerializeMatrix(&buf, tof, 2, true))

	other := New(2)
	restored, n, err := other.DeserializeMatrix(&buf, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	after := other.GetMatrix(restored, 2)
	for r := range before {
		for c := range before[r] {
			assert.InDelta(t, real(before[r][c]), real(after[r][c]), 1e-9)
			assert.InDelta(t, imag(before[r][c]), imag(after[r][c]), 1e-9)
		}
	}
}

func TestSerializeDeserializeMatrixRoundtripText(t *testing.T) {
	pkg := New(2)
	tof := Toffoli(pkg, 2, []Qubit{0}, nil, 1)
	before := pkg.GetMatrix(tof, 2)

	var buf bytes.Buffer
	require.NoError(t, pkg.SerializeMatrix(&buf, tof, 2, false))

	other := New(2)
	restored, n, err := other.DeserializeMatrix(&buf, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	after := other.GetMatrix(restored, 2)
	for r := range before {
		for c := range before[r] {
			assert.InDelta(t, real(before[r][c]), real(after[r][c]), 1e-9)
			assert.InDelta(t, imag(before[r][c]), imag(after[r][c]), 1e-9)
		}
	}
}

func TestDeserializeVectorRejectsBadVersionBinary(t *testing.T) {
	pkg := New(1)
	var buf bytes.Buffer
	require.NoError(t, pkg.SerializeVector(&buf, pkg.ZeroState(1), 1, true))

	corrupted := buf.Bytes()
	corrupted[0] = 0xff

	_, _, err := pkg.DeserializeVector(bytes.NewReader(corrupted), true)
	require.Error(t, err)
	_, ok := err.(FormatError)
	assert.True(t, ok)
}

func TestDeserializeVectorRejectsBadVersionText(t *testing.T) {
	pkg := New(1)
	var buf bytes.Buffer
	require.NoError(t, pkg.SerializeVector(&buf, pkg.ZeroState(1), 1, false))

	corrupted := bytes.Replace(buf.Bytes(), []byte("1\n"), []byte("2\n"), 1)

	_, _, err := pkg.DeserializeVector(bytes.NewReader(corrupted), false)
	require.Error(t, err)
	_, ok := err.(FormatError)
	assert.True(t, ok)
}

func TestParseComplexRoundtripsFormatComplex(t *testing.T) {
	cases := []complex128{1, -1, complex(0, 1), complex(0, -1), complex(2, 3), complex(-2, -3), complex(1.5, -0.25)}
	for _, c := range cases {
		s := formatComplex(c)
		got, err := parseComplex(s)
		assert.NoError(t, err)
		assert.InDelta(t, real(c), real(got), 1e-12)
		assert.InDelta(t, imag(c), imag(got), 1e-12)
	}
}

func TestParseComplexRejectsGarbage(t *testing.T) {
	_, err := parseComplex("not-a-number")
	assert.Error(t, err)
	_, err = parseComplex("")
	assert.Error(t, err)
}
