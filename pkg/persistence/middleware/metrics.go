package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/concierge/pkg/domain"
	"github.com/aretw0/concierge/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics counts and times session store operations.
type StoreMetrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewStoreMetrics creates the collectors and registers them on reg.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concierge_store_operations_total",
				Help: "Session store operations by outcome",
			},
			[]string{"op", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "concierge_store_duration_seconds",
				Help:    "Latency of session store operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
	reg.MustRegister(m.Operations, m.Duration)
	return m
}

type metricsMiddleware struct {
	next    ports.SessionStore
	metrics *StoreMetrics
}

// NewMetricsMiddleware instruments every store call.
func NewMetricsMiddleware(metrics *StoreMetrics) Middleware {
	return func(next ports.SessionStore) ports.SessionStore {
		return &metricsMiddleware{next: next, metrics: metrics}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		result = "miss"
	case err != nil:
		result = "error"
	}
	m.metrics.Operations.WithLabelValues(op, result).Inc()
	m.metrics.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *metricsMiddleware) Save(ctx context.Context, userID string, sess *domain.Session) error {
	start := time.Now()
	err := m.next.Save(ctx, userID, sess)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, userID string) (*domain.Session, error) {
	start := time.Now()
	sess, err := m.next.Load(ctx, userID)
	m.observe("load", start, err)
	return sess, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, userID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, userID)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	users, err := m.next.List(ctx)
	m.observe("list", start, err)
	return users, err
}
