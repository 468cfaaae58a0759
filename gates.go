// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import "math"

// This file exports the common single- and multi-qubit gate matrices as
// n-qubit decision diagrams, built on GateDD (single qubit, identity
// elsewhere) and, for multi-qubit controlled gates, on ControlledGateDD's
// per-level diag folding (SPEC_FULL.md §4.6, §2.3's supplemented Toffoli
// table).

func Hadamard(pkg *Package, n int, target Qubit) MEdge {
	s := 0.7071067811865476
	return pkg.GateDD(n, target, [4]complex128{
		complex(s, 0), complex(s, 0),
		complex(s, 0), complex(-s, 0),
	})
}

func PauliX(pkg *Package, n int, target Qubit) MEdge {
	return pkg.GateDD(n, target, [4]complex128{0, 1, 1, 0})
}

func PauliY(pkg *Package, n int, target Qubit) MEdge {
	return pkg.GateDD(n, target, [4]complex128{0, complex(0, -1), complex(0, 1), 0})
}

func PauliZ(pkg *Package, n int, target Qubit) MEdge {
	return pkg.GateDD(n, target, [4]complex128{1, 0, 0, -1})
}

func Phase(pkg *Package, n int, target Qubit, theta float64) MEdge {
	return pkg.GateDD(n, target, [4]complex128{1, 0, 0, complex(math.Cos(theta), math.Sin(theta))})
}

func SGate(pkg *Package, n int, target Qubit) MEdge { return Phase(pkg, n, target, math.Pi/2) }
func TGate(pkg *Package, n int, target Qubit) MEdge { return Phase(pkg, n, target, math.Pi/4) }

func RX(pkg *Package, n int, target Qubit, theta float64) MEdge {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return pkg.GateDD(n, target, [4]complex128{
		complex(c, 0), complex(0, -s),
		complex(0, -s), complex(c, 0),
	})
}

func RY(pkg *Package, n int, target Qubit, theta float64) MEdge {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return pkg.GateDD(n, target, [4]complex128{
		complex(c, 0), complex(-s, 0),
		complex(s, 0), complex(c, 0),
	})
}

func RZ(pkg *Package, n int, target Qubit, theta float64) MEdge {
	return pkg.GateDD(n, target, [4]complex128{
		complex(math.Cos(-theta/2), math.Sin(-theta/2)), 0,
		0, complex(math.Cos(theta/2), math.Sin(theta/2)),
	})
}

var xMatrix = [4]complex128{0, 1, 1, 0}

// CNOT builds the n-qubit controlled-X gate, control acting on target.
func CNOT(pkg *Package, n int, control, target Qubit) MEdge {
	return Toffoli(pkg, n, []Qubit{control}, nil, target)
}

// Toffoli builds the generalized multi-control Toffoli gate: X on target,
// conditioned on every qubit in positiveControls being 1 and every qubit in
// negativeControls being 0. Built through ControlledGateDD's per-level diag
// folding (SPEC_FULL.md §4.6) rather than a tensor-sum construction, and
// memoized in the package's toffoli table, keyed on the exact control set
// and target (SPEC_FULL.md §2.3).
func Toffoli(pkg *Package, n int, positiveControls, negativeControls []Qubit, target Qubit) MEdge {
	mask := encodeControls(n, positiveControls, negativeControls)
	if cached, ok := pkg.toffoli.lookup(n, target, mask); ok {
		return cached
	}
	controlLine := make([]ControlLine, n)
	for lvl := range controlLine {
		controlLine[lvl] = Uninvolved
	}
	controlLine[target] = Target
	for _, q := range positiveControls {
		controlLine[q] = PositiveControl
	}
	for _, q := range negativeControls {
		controlLine[q] = NegativeControl
	}
	res := pkg.ControlledGateDD(controlLine, xMatrix)
	pkg.toffoli.insert(n, target, mask, res)
	return res
}
