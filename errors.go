// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"fmt"
	"log"
)

// PreconditionError reports a programmer contract violation: insufficient
// qubit capacity, a basis-state array shorter than required, or a NaN
// reaching the float pool. It is always delivered as a panic, never a
// returned error, matching the failure taxonomy in SPEC_FULL.md §7.
type PreconditionError struct {
	Msg string
}

func (e PreconditionError) Error() string { return "qdd: precondition violation: " + e.Msg }

// InvariantError reports a structural invariant violation discovered at
// runtime: a trace recursion reaching a non-terminal at level -1, a
// refcount going negative, a cache-lane balance violation. Always a panic.
type InvariantError struct {
	Msg string
}

func (e InvariantError) Error() string { return "qdd: invariant violation: " + e.Msg }

// FormatError reports a malformed or version-mismatched serialization
// stream. Unlike the two panics above, this is returned normally: it
// originates from untrusted external input, not from misuse of the API.
type FormatError struct {
	Msg string
}

func (e FormatError) Error() string { return "qdd: format error: " + e.Msg }

// warnSaturated logs the non-fatal warning issued when a node or float
// refcount is saturated at maxRefCount and the object is pinned immortal.
// Mirrors rudd/errors.go's use of the standard log package, except here the
// warning is logged regardless of build tag (it is not a recoverable
// condition to hide, only one not worth aborting for). It is logged on
// every incRef that finds the refcount already saturated, so repeated
// incRefs of the same object log repeated warnings.
func warnSaturated(kind string, value float64) {
	log.Printf("[WARN] %s refcount saturated at %v; object will never be collected", kind, value)
}

// Error returns the package's sticky error string, or "" if none occurred.
// Only seterror records an error here; the deserializers return their
// FormatError directly without recording it, and precondition and
// invariant violations panic instead.
func (pkg *Package) Error() string {
	if pkg.err == nil {
		return ""
	}
	return pkg.err.Error()
}

func (pkg *Package) Errored() bool { return pkg.err != nil }

// seterror chains a new message onto any previously recorded error,
// following rudd/errors.go's seterror convention, and returns the chained
// error so callers can do `return nil, pkg.seterror(...)` in one line.
func (pkg *Package) seterror(format string, a ...interface{}) error {
	if pkg.err != nil {
		format = format + "; " + pkg.err.Error()
	}
	pkg.err = fmt.Errorf(format, a...)
	if debugEnabled {
		log.Println(pkg.err)
	}
	return pkg.err
}
