// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import "math"

// weightRef is a signed reference to an interned float entry. This is the
// safe, idiomatic-Go substitute for the reference implementation's
// least-significant-bit pointer tagging (see SPEC_FULL.md §9): one extra
// bool per component instead of an unsafe.Pointer trick. Every read of the
// referred magnitude must go through value(), never entry.value directly,
// or the sign is silently dropped.
type weightRef struct {
	entry *floatEntry
	neg   bool
}

func (r weightRef) value() float64 {
	if r.neg {
		return -r.entry.value
	}
	return r.entry.value
}

func (r weightRef) isZero() bool { return r.entry == floatZero }

// Weight is a complex scalar carried by an edge: an independently signed
// pair of interned float references. Equality is reference equality on
// both components, matching the canonicalization contract in §3.
type Weight struct {
	Re, Im weightRef
}

var (
	// ZERO and ONE are the two immortal weight constants.
	ZERO = Weight{Re: weightRef{entry: floatZero}, Im: weightRef{entry: floatZero}}
	ONE  = Weight{Re: weightRef{entry: floatOne}, Im: weightRef{entry: floatZero}}
)

func (w Weight) value() (re, im float64) { return w.Re.value(), w.Im.value() }

// complexValue is a plain, uninterned complex scalar: the return type of
// innerProduct and the payload of its compute table (§4.7 — "because the
// result is scalar, its compute table stores the value directly").
type complexValue struct {
	re, im float64
}

func (c complexValue) mag2() float64 { return c.re*c.re + c.im*c.im }
func (c complexValue) mag() float64  { return math.Sqrt(c.mag2()) }
func (c complexValue) conj() complexValue { return complexValue{c.re, -c.im} }
func (c complexValue) mul(o complexValue) complexValue {
	re, im := cMul(c.re, c.im, o.re, o.im)
	return complexValue{re, im}
}
func (c complexValue) add(o complexValue) complexValue {
	return complexValue{c.re + o.re, c.im + o.im}
}

func (w Weight) equal(o Weight) bool {
	return w.Re.entry == o.Re.entry && w.Re.neg == o.Re.neg &&
		w.Im.entry == o.Im.entry && w.Im.neg == o.Im.neg
}

func (w Weight) equalsZero() bool { return w.Re.entry == floatZero && w.Im.entry == floatZero }
func (w Weight) equalsOne() bool  { return w.Re.entry == floatOne && w.Im.entry == floatZero }

func (w Weight) mag2() float64 {
	re, im := w.value()
	return re*re + im*im
}

func (w Weight) mag() float64 { return math.Sqrt(w.mag2()) }

func (w Weight) arg() float64 {
	re, im := w.value()
	return math.Atan2(im, re)
}

// cacheLane accounts for the "outstanding scratch weight" invariant
// described in §4.2/§9: every recursive operator must balance its
// acquisitions with releases within its own call. Per §9's Design Notes,
// this port keeps the accounting contract but not the literal ring buffer
// of mutable scratch cells — arithmetic below uses ordinary Go locals
// (stack-allocated, reclaimed by escape analysis or the runtime GC) rather
// than a hand-managed cyclic pool, since the pool itself is a performance
// optimization the source's own design notes say is not load-bearing for
// correctness.
type cacheLane struct {
	outstanding int
	peak        int
}

func (l *cacheLane) acquire() {
	l.outstanding++
	if l.outstanding > cacheLaneSize {
		panic(InvariantError{Msg: "cache lane overflow: outstanding scratch weights exceed capacity"})
	}
	if l.outstanding > l.peak {
		l.peak = l.outstanding
	}
}

func (l *cacheLane) release() {
	if l.outstanding == 0 {
		panic(InvariantError{Msg: "cache lane underflow: released more scratch weights than acquired"})
	}
	l.outstanding--
}

// The following are the plain-arithmetic complex operations used to
// compute new interned weights. They operate on raw (re, im) pairs; the
// caller is responsible for interning the result through the package's
// float pool.

func cAdd(are, aim, bre, bim float64) (float64, float64) { return are + bre, aim + bim }
func cSub(are, aim, bre, bim float64) (float64, float64) { return are - bre, aim - bim }

func cMul(are, aim, bre, bim float64) (float64, float64) {
	return are*bre - aim*bim, are*bim + aim*bre
}

func cDiv(are, aim, bre, bim float64) (float64, float64) {
	d := bre*bre + bim*bim
	return (are*bre + aim*bim) / d, (aim*bre - are*bim) / d
}

func cConj(re, im float64) (float64, float64) { return re, -im }
func cNeg(re, im float64) (float64, float64)  { return -re, -im }
func cMag2(re, im float64) float64            { return re*re + im*im }
func cMag(re, im float64) float64             { return math.Sqrt(cMag2(re, im)) }
func cArg(re, im float64) float64             { return math.Atan2(im, re) }
