package observe

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus instruments for the assignment pipeline.
type Metrics struct {
	Selections        *prometheus.CounterVec
	SelectionDuration *prometheus.HistogramVec
	AssignmentsPosted *prometheus.CounterVec
	RosterSize        *prometheus.GaugeVec
}

// NewMetrics creates and registers all assignment metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assignbot_selections_total",
				Help: "Selection engine invocations by policy and outcome",
			},
			[]string{"policy", "outcome"},
		),
		SelectionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assignbot_selection_duration_seconds",
				Help:    "Wall time of one selection call",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"policy"},
		),
		AssignmentsPosted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assignbot_assignments_posted_total",
				Help: "Assignment messages posted to destinations by result",
			},
			[]string{"result"},
		),
		RosterSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "assignbot_roster_size",
				Help: "Configured roster size per chat",
			},
			[]string{"chat_id"},
		),
	}

	reg.MustRegister(m.Selections, m.SelectionDuration, m.AssignmentsPosted, m.RosterSize)
	return m
}

// Selection outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeDegraded = "degraded"
	OutcomeError    = "error"
)
