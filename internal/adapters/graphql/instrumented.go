package graphql

import (
	"context"
	"encoding/json"
	"iter"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/formbuilder/internal/ports/secondary"
)

// Operation kinds and outcomes used as metric labels.
const (
	KindQuery    = "query"
	KindMutation = "mutation"
	KindWatch    = "watch"

	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeCache = "cache"
)

// Metrics holds the GraphQL operation collectors.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fb_graphql_operations_total",
				Help: "Total number of GraphQL operations",
			},
			[]string{"kind", "operation", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fb_graphql_operation_duration_seconds",
				Help:    "Duration of GraphQL network round trips",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"kind", "operation"},
		),
	}
	reg.MustRegister(m.Operations, m.Duration)
	return m
}

// InstrumentedExecutor records metrics for every operation of the wrapped
// executor.
type InstrumentedExecutor struct {
	next    secondary.Executor
	metrics *Metrics
}

// NewInstrumentedExecutor wraps next.
func NewInstrumentedExecutor(next secondary.Executor, metrics *Metrics) *InstrumentedExecutor {
	return &InstrumentedExecutor{next: next, metrics: metrics}
}

// WatchQuery counts each emission; cached emissions are not timed.
func (e *InstrumentedExecutor) WatchQuery(ctx context.Context, req secondary.Request, policy secondary.FetchPolicy) iter.Seq2[secondary.WatchResult, error] {
	return func(yield func(secondary.WatchResult, error) bool) {
		start := time.Now()
		for res, err := range e.next.WatchQuery(ctx, req, policy) {
			switch {
			case err != nil:
				e.observe(KindWatch, req.Name, start, err)
			case res.FromCache:
				e.metrics.Operations.WithLabelValues(KindWatch, req.Name, OutcomeCache).Inc()
			default:
				e.observe(KindWatch, req.Name, start, nil)
			}
			if !yield(res, err) {
				return
			}
		}
	}
}

// Query runs and records a query.
func (e *InstrumentedExecutor) Query(ctx context.Context, req secondary.Request) (json.RawMessage, error) {
	start := time.Now()
	data, err := e.next.Query(ctx, req)
	e.observe(KindQuery, req.Name, start, err)
	return data, err
}

// Mutate runs and records a mutation.
func (e *InstrumentedExecutor) Mutate(ctx context.Context, req secondary.Request) (json.RawMessage, error) {
	start := time.Now()
	data, err := e.next.Mutate(ctx, req)
	e.observe(KindMutation, req.Name, start, err)
	return data, err
}

func (e *InstrumentedExecutor) observe(kind, operation string, start time.Time, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	e.metrics.Operations.WithLabelValues(kind, operation, outcome).Inc()
	e.metrics.Duration.WithLabelValues(kind, operation).Observe(time.Since(start).Seconds())
}

// Ensure InstrumentedExecutor implements the interface
var _ secondary.Executor = (*InstrumentedExecutor)(nil)
