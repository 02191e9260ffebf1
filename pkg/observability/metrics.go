package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/concierge/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	Turns          *prometheus.CounterVec
	Transitions    *prometheus.CounterVec
	Bookings       *prometheus.CounterVec
	BookingRevenue prometheus.Counter
	BookingPeople  prometheus.Histogram
}

// NewMetrics creates the collectors on a private registry, together with
// the standard Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concierge_turns_total",
				Help: "Total number of processed messages by detected intent",
			},
			[]string{"intent"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concierge_step_transitions_total",
				Help: "Workflow step transitions",
			},
			[]string{"from", "to"},
		),
		Bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concierge_bookings_total",
				Help: "Confirmed bookings by country",
			},
			[]string{"country"},
		),
		BookingRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "concierge_booking_revenue_total",
			Help: "Sum of confirmed booking totals",
		}),
		BookingPeople: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "concierge_booking_people",
			Help:    "Party size of confirmed bookings",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 12},
		}),
	}
	reg.MustRegister(
		m.Turns, m.Transitions, m.Bookings, m.BookingRevenue, m.BookingPeople,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry for additional collectors (e.g. store middleware).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns lifecycle hooks recording into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			m.Turns.WithLabelValues(string(e.Intent)).Inc()
			if e.From != e.To {
				m.Transitions.WithLabelValues(string(e.From), string(e.To)).Inc()
			}
		},
		OnBookingConfirmed: func(ctx context.Context, e *domain.BookingEvent) {
			m.Bookings.WithLabelValues(e.Booking.Country).Inc()
			m.BookingRevenue.Add(e.Booking.TotalPrice)
			m.BookingPeople.Observe(float64(e.Booking.People))
		},
	}
}
