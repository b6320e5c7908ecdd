package solvable

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("groupx.solvable")

var (
	// searchTotal counts decomposition searches by result.
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "groupx_solvable_search_total",
		Help: "Total solvable decomposition searches by result",
	}, []string{"result"})

	// backtrackTotal counts candidate subgroups abandoned after their own
	// search failed.
	backtrackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "groupx_solvable_backtrack_total",
		Help: "Total candidate subgroups abandoned during decomposition search",
	})

	// invariantViolations counts solvable groups that yielded no decomposition.
	invariantViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "groupx_solvable_invariant_violations_total",
		Help: "Total solvable groups for which no decomposition was found",
	})
)
