package httpserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// metrics is a per-server registry so several servers (tests) can coexist.
type metrics struct {
	registry *prometheus.Registry
	sessions prometheus.Counter
	outcomes *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wordle_solver_sessions_started_total",
			Help: "Solver sessions started.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_solver_outcomes_total",
			Help: "Outcomes returned to clients, by status.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		m.sessions,
		m.outcomes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) observe(o solver.Outcome) {
	m.outcomes.WithLabelValues(string(o.Status)).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
