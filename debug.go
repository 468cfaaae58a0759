// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

//go:build debug

package qdd

import (
	"log"
	"os"
)

// debugEnabled gates the verbose statistics dumps and chained-error
// logging in errors.go. Building with the "debug" tag switches this on,
// mirroring rudd/debug.go's _DEBUG flag.
const debugEnabled = true

func init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ltime | log.Lshortfile)
}

// logTables dumps a one-line summary of the float pool and both unique
// tables' population, hit ratio and GC counters to the log. Intended for
// interactive debugging sessions, not for the metrics surface in
// metrics.go (which is always available regardless of build tag).
func (pkg *Package) logTables() {
	log.Printf("floats: pop=%d peak=%d hits=%d lookups=%d gcRuns=%d",
		pkg.floats.population, pkg.floats.peak, pkg.floats.hits, pkg.floats.lookups, pkg.floats.gcRuns)
	log.Printf("vectors: nodes=%d peak=%d active=%d gcRuns=%d",
		pkg.vectors.nodeCount, pkg.vectors.peakNodeCount, pkg.vectors.activeNodeCount, pkg.vectors.gcRuns)
	log.Printf("matrices: nodes=%d peak=%d active=%d gcRuns=%d",
		pkg.matrices.nodeCount, pkg.matrices.peakNodeCount, pkg.matrices.activeNodeCount, pkg.matrices.gcRuns)
}
