package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration module.
type Metrics struct {
	// Field changes by section and outcome
	FieldChanges *prometheus.CounterVec

	// Edit lifecycle transitions by section
	EditTransitions *prometheus.CounterVec

	// Submission attempts by outcome
	Submissions *prometheus.CounterVec

	// Registrations currently held in memory
	ActiveRegistrations prometheus.Gauge

	// Time from creation to successful submission
	TimeToSubmit prometheus.Histogram
}

// New creates the registration metrics and registers them with reg. A nil
// reg creates unregistered collectors, which is what tests use.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FieldChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retreat_registration_field_changes_total",
			Help: "Total field changes by section and outcome",
		}, []string{"section", "outcome"}), // outcome: "applied", "rejected"

		EditTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retreat_registration_edit_transitions_total",
			Help: "Total section edit transitions by section and transition",
		}, []string{"section", "transition"}), // transition: "begin", "save", "cancel", "force_cancel"

		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retreat_registration_submissions_total",
			Help: "Total submission attempts by outcome",
		}, []string{"outcome"}), // outcome: "submitted", "repeated", "incomplete", "rejected"

		ActiveRegistrations: factory.NewGauge(prometheus.GaugeOpts{
			Name: "retreat_registration_active",
			Help: "Number of registrations held in memory",
		}),

		TimeToSubmit: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "retreat_registration_time_to_submit_seconds",
			Help:    "Time from registration creation to successful submission",
			Buckets: []float64{30, 60, 120, 300, 600, 1200, 1800, 3600, 7200},
		}),
	}
}

// IncrementFieldChange records a field change attempt.
func (m *Metrics) IncrementFieldChange(section, outcome string) {
	if m != nil {
		m.FieldChanges.WithLabelValues(section, outcome).Inc()
	}
}

// IncrementEditTransition records an edit mode transition.
func (m *Metrics) IncrementEditTransition(section, transition string) {
	if m != nil {
		m.EditTransitions.WithLabelValues(section, transition).Inc()
	}
}

// IncrementSubmission records a submission attempt.
func (m *Metrics) IncrementSubmission(outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(outcome).Inc()
	}
}

// IncrementActive records a newly created registration.
func (m *Metrics) IncrementActive() {
	if m != nil {
		m.ActiveRegistrations.Inc()
	}
}

// ObserveTimeToSubmit records how long a registration took to submit.
func (m *Metrics) ObserveTimeToSubmit(d time.Duration) {
	if m != nil {
		m.TimeToSubmit.Observe(d.Seconds())
	}
}
