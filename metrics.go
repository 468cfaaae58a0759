// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import "github.com/prometheus/client_golang/prometheus"

// Stats is a point-in-time snapshot of a package's internal bookkeeping,
// surfaced both directly and through the Prometheus collector below.
type Stats struct {
	FloatPopulation int
	FloatPeak       int
	FloatHits       int
	FloatLookups    int
	FloatGCRuns     int

	VectorNodes     int
	VectorPeakNodes int
	VectorActive    int
	VectorGCRuns    int

	MatrixNodes     int
	MatrixPeakNodes int
	MatrixActive    int
	MatrixGCRuns    int

	CacheLaneOutstanding int
	CacheLanePeak        int
}

// Stats returns a snapshot of the package's tables. Cheap: every field is
// already maintained incrementally, this just gathers them.
func (pkg *Package) Stats() Stats {
	return Stats{
		FloatPopulation: pkg.floats.population,
		FloatPeak:       pkg.floats.peak,
		FloatHits:       pkg.floats.hits,
		FloatLookups:    pkg.floats.lookups,
		FloatGCRuns:     pkg.floats.gcRuns,

		VectorNodes:     pkg.vectors.nodeCount,
		VectorPeakNodes: pkg.vectors.peakNodeCount,
		VectorActive:    pkg.vectors.activeNodeCount,
		VectorGCRuns:    pkg.vectors.gcRuns,

		MatrixNodes:     pkg.matrices.nodeCount,
		MatrixPeakNodes: pkg.matrices.peakNodeCount,
		MatrixActive:    pkg.matrices.activeNodeCount,
		MatrixGCRuns:    pkg.matrices.gcRuns,

		CacheLaneOutstanding: pkg.lane.outstanding,
		CacheLanePeak:        pkg.lane.peak,
	}
}

// collector adapts a Package's Stats() to prometheus.Collector, following
// the "describe once, collect on demand" pattern of a custom collector
// rather than pre-registered counters, since every value here is already
// tracked as a gauge internally and there is nothing to increment from the
// metrics package's side.
type collector struct {
	pkg *Package

	floatPopulation *prometheus.Desc
	floatPeak       *prometheus.Desc
	floatHitRatio   *prometheus.Desc

	vectorNodes  *prometheus.Desc
	vectorActive *prometheus.Desc

	matrixNodes  *prometheus.Desc
	matrixActive *prometheus.Desc

	cacheLaneOutstanding *prometheus.Desc
}

// Collector returns a prometheus.Collector reporting this package's table
// occupancy and GC activity, labeled with the package's uuid so that
// several packages registered against the same registry stay
// distinguishable.
func (pkg *Package) Collector() prometheus.Collector {
	labels := prometheus.Labels{"package": pkg.ID.String()}
	ns := "qdd"
	return &collector{
		pkg: pkg,
		floatPopulation: prometheus.NewDesc(ns+"_float_population", "interned float pool population", nil, labels),
		floatPeak:       prometheus.NewDesc(ns+"_float_peak", "interned float pool peak population", nil, labels),
		floatHitRatio:   prometheus.NewDesc(ns+"_float_hit_ratio", "interned float pool lookup hit ratio", nil, labels),
		vectorNodes:     prometheus.NewDesc(ns+"_vector_nodes", "vector unique table population", nil, labels),
		vectorActive:    prometheus.NewDesc(ns+"_vector_active_nodes", "vector nodes reachable from a live root", nil, labels),
		matrixNodes:     prometheus.NewDesc(ns+"_matrix_nodes", "matrix unique table population", nil, labels),
		matrixActive:    prometheus.NewDesc(ns+"_matrix_active_nodes", "matrix nodes reachable from a live root", nil, labels),
		cacheLaneOutstanding: prometheus.NewDesc(ns+"_cache_lane_outstanding", "outstanding scratch weights on the cache lane", nil, labels),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.floatPopulation
	ch <- c.floatPeak
	ch <- c.floatHitRatio
	ch <- c.vectorNodes
	ch <- c.vectorActive
	ch <- c.matrixNodes
	ch <- c.matrixActive
	ch <- c.cacheLaneOutstanding
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	s := c.pkg.Stats()
	ratio := 0.0
	if s.FloatLookups > 0 {
		ratio = float64(s.FloatHits) / float64(s.FloatLookups)
	}
	ch <- prometheus.MustNewConstMetric(c.floatPopulation, prometheus.GaugeValue, float64(s.FloatPopulation))
	ch <- prometheus.MustNewConstMetric(c.floatPeak, prometheus.GaugeValue, float64(s.FloatPeak))
	ch <- prometheus.MustNewConstMetric(c.floatHitRatio, prometheus.GaugeValue, ratio)
	ch <- prometheus.MustNewConstMetric(c.vectorNodes, prometheus.GaugeValue, float64(s.VectorNodes))
	ch <- prometheus.MustNewConstMetric(c.vectorActive, prometheus.GaugeValue, float64(s.VectorActive))
	ch <- prometheus.MustNewConstMetric(c.matrixNodes, prometheus.GaugeValue, float64(s.MatrixNodes))
	ch <- prometheus.MustNewConstMetric(c.matrixActive, prometheus.GaugeValue, float64(s.MatrixActive))
	ch <- prometheus.MustNewConstMetric(c.cacheLaneOutstanding, prometheus.GaugeValue, float64(s.CacheLaneOutstanding))
}
