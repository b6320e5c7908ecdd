package lattice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// latticeSubgroups tracks the size of organised lattices.
var latticeSubgroups = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "groupx_lattice_subgroups",
	Help:    "Number of subgroups per organised lattice",
	Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
})
