package framegraph

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	passesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "framegraph",
		Subsystem: "executor",
		Name:      "passes_executed_total",
		Help:      "Pass callbacks invoked, labelled by pass type.",
	}, []string{"type"})

	transitionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "framegraph",
		Subsystem: "executor",
		Name:      "transitions_total",
		Help:      "Resource state transitions recorded.",
	})
)

func passType(p *pass) string {
	if p.isCompute() {
		return "compute"
	}
	return "graphics"
}
