// Package metrics provides Prometheus instrumentation for the calculation
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SourceCacheHitsTotal counts CachedSource type-record cache hits.
	SourceCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitcalc_source_cache_hits_total",
		Help: "Total static-data type cache hits",
	})

	// SourceCacheMissesTotal counts CachedSource type-record cache misses.
	SourceCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitcalc_source_cache_misses_total",
		Help: "Total static-data type cache misses",
	})

	// AffectorsRegistered tracks the number of live (carrier, modifier)
	// affector pairs currently indexed across all fits in process.
	AffectorsRegistered = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fitcalc_affectors_registered",
		Help: "Current number of live affector registrations",
	})

	// InvalidationsTotal counts fit mutations that trigger an invalidation
	// pass, labeled by trigger (add, remove, state_change, source_change, write).
	InvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitcalc_invalidations_total",
		Help: "Total attribute cache invalidation passes by trigger",
	}, []string{"trigger"})

	// AttributeCacheHitsTotal counts AttributeMap.get calls served from cache.
	AttributeCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitcalc_attribute_cache_hits_total",
		Help: "Total attribute reads served from the per-holder cache",
	})

	// AttributeCacheMissesTotal counts AttributeMap.get calls that triggered
	// a calculation.
	AttributeCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitcalc_attribute_cache_misses_total",
		Help: "Total attribute reads that required calculation",
	})
)
