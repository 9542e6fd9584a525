package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	rblerrors "runbook-hq/runbook/pkg/rbl/errors"
)

// Metrics contains Prometheus metrics for runbook linting.
type Metrics struct {
	// Files linted, by result (ok / syntax / invalid).
	filesLinted *prometheus.CounterVec

	// Parse failures, by which heuristic note fired. Failures where no
	// heuristic matched are counted under "none"; header-only and
	// fallback outcomes under their own labels.
	parseFailureNotes *prometheus.CounterVec

	// Time spent building diagnostics.
	diagnosisDuration prometheus.Histogram
}

// NewMetrics creates a Metrics instance with collectors registered on
// the given registerer. Pass prometheus.DefaultRegisterer outside of
// tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		filesLinted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runbook_files_linted_total",
				Help: "Total number of runbook files linted",
			},
			[]string{"result"},
		),

		parseFailureNotes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "runbook_parse_failure_notes_total",
				Help: "Total number of parse-failure diagnostics by heuristic note",
			},
			[]string{"note"},
		),

		diagnosisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "runbook_diagnosis_duration_seconds",
				Help:    "Time spent classifying and rendering parse diagnostics",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordLint counts one linted file with the given result.
func (m *Metrics) RecordLint(result string) {
	m.filesLinted.WithLabelValues(result).Inc()
}

// ObserveDiagnosis counts the heuristic outcome of one classified parse
// failure and records how long classification took.
func (m *Metrics) ObserveDiagnosis(d rblerrors.Diagnosis, elapsed time.Duration) {
	m.diagnosisDuration.Observe(elapsed.Seconds())

	switch diag := d.(type) {
	case rblerrors.StandardDiagnosis:
		if len(diag.Notes) == 0 {
			m.parseFailureNotes.WithLabelValues("none").Inc()
			return
		}
		for _, n := range diag.Notes {
			m.parseFailureNotes.WithLabelValues(n.String()).Inc()
		}
	case rblerrors.ShorthandDiagnosis:
		m.parseFailureNotes.WithLabelValues(rblerrors.NoteShorthandMix.String()).Inc()
	case rblerrors.FallbackDiagnosis:
		m.parseFailureNotes.WithLabelValues("fallback").Inc()
	case rblerrors.HeaderDiagnosis:
		m.parseFailureNotes.WithLabelValues("suppressed").Inc()
	}
}
