package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "domaincheck"

var (
	ProbesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "probes_total",
		Help:      "HEAD probes issued, by scheme and outcome.",
	}, []string{"scheme", "outcome"})
	VerdictsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verdicts_total",
		Help:      "Domain verdicts recorded, by sink.",
	}, []string{"verdict"})
	InFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "checks_in_flight",
		Help:      "Domain checks currently holding an admission slot.",
	})
	TaskFaults = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_faults_total",
		Help:      "Domain check tasks that faulted and produced no verdict.",
	})
)

// Init registers collectors; call once from main.
func Init() {
	prometheus.MustRegister(ProbesTotal, VerdictsTotal, InFlight, TaskFaults)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Outcome labels a probe result.
func Outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
