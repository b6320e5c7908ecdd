package isomorphism

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// lookupTotal counts library lookups by kind and result.
	lookupTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "groupx_library_lookup_total",
		Help: "Total library lookups by kind and result",
	}, []string{"kind", "result"})

	// isomorphismChecks counts generator-image searches that passed the
	// fingerprint filter.
	isomorphismChecks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "groupx_isomorphism_checks_total",
		Help: "Total isomorphism searches run after a fingerprint match",
	})

	// libraryGroups tracks the number of groups in the most recently loaded
	// library.
	libraryGroups = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "groupx_library_groups",
		Help: "Number of groups in the most recently loaded library",
	})
)
