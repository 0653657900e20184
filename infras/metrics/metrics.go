package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for booking operations.
type Metrics struct {
	// EventsCreated counts bookings created, labelled by origin
	// (admin form or public inquiry).
	EventsCreated *prometheus.CounterVec

	// EventsUpdated counts staff edits applied.
	EventsUpdated prometheus.Counter

	// EventsDeleted counts irreversible deletions.
	EventsDeleted prometheus.Counter

	// CalendarPushes counts webhook pushes by outcome.
	CalendarPushes *prometheus.CounterVec

	// BriefingsGenerated counts generated staff briefings by outcome.
	BriefingsGenerated *prometheus.CounterVec
}

// Namespace groups every booking metric.
const Namespace = "stillhouse"

// New registers the booking metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer, Namespace)
}

// NewWith registers the booking metrics on the given registerer. Tests
// pass their own registry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_created_total",
				Help:      "Total number of bookings created",
			},
			[]string{"origin"},
		),

		EventsUpdated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_updated_total",
				Help:      "Total number of booking updates applied",
			},
		),

		EventsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_deleted_total",
				Help:      "Total number of bookings deleted",
			},
		),

		CalendarPushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calendar_pushes_total",
				Help:      "Total number of calendar webhook pushes",
			},
			[]string{"status"},
		),

		BriefingsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "briefings_generated_total",
				Help:      "Total number of staff briefings generated",
			},
			[]string{"status"},
		),
	}
}

// Origin label values for EventsCreated.
const (
	OriginAdmin   = "admin"
	OriginInquiry = "inquiry"
)

// Status label values for outcome counters.
const (
	StatusOK    = "ok"
	StatusError = "error"
)
