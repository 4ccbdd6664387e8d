package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics holds the remittance generation collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	GenerationRuns     *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	RemittancesCreated prometheus.Counter
	AmountRemitted     prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GenerationRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "worklogs",
			Name:      "remittance_generation_runs_total",
			Help:      "Remittance generation runs by outcome.",
		}, []string{"outcome"}),
		GenerationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "worklogs",
			Name:      "remittance_generation_duration_seconds",
			Help:      "Wall time of a remittance generation run.",
			Buckets:   prometheus.DefBuckets,
		}),
		RemittancesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "worklogs",
			Name:      "remittances_created_total",
			Help:      "Remittances committed by generation runs.",
		}),
		AmountRemitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "worklogs",
			Name:      "remitted_amount_total",
			Help:      "Sum of committed remittance totals.",
		}),
	}
}

func (m *Metrics) observeRun(err error, result GenerateResult, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.GenerationDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.GenerationRuns.WithLabelValues("failed").Inc()
		return
	}
	m.GenerationRuns.WithLabelValues("succeeded").Inc()
	m.RemittancesCreated.Add(float64(result.Count))
	if result.TotalAmount.GreaterThan(decimal.Zero) {
		m.AmountRemitted.Add(result.TotalAmount.InexactFloat64())
	}
}
