package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	acquiresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "framegraph",
		Subsystem: "pool",
		Name:      "acquires_total",
		Help:      "Physical resource acquisitions, labelled by whether a pooled instance was reused.",
	}, []string{"result"})

	releasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "framegraph",
		Subsystem: "pool",
		Name:      "releases_total",
		Help:      "Physical resources returned to the pool.",
	})

	inUse = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "framegraph",
		Subsystem: "pool",
		Name:      "in_use",
		Help:      "Physical resources currently checked out.",
	})

	pooledFree = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "framegraph",
		Subsystem: "pool",
		Name:      "free",
		Help:      "Physical resources sitting idle in the pool.",
	})
)
