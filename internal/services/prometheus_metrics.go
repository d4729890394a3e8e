package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	ledgerOperations    *prometheus.CounterVec
	ledgerDuration      prometheus.Histogram
	conflictRetries     *prometheus.CounterVec
	transferAmount      prometheus.Histogram
	interestAccruals    prometheus.Counter
	accountsOpened      *prometheus.CounterVec
	authEvents          *prometheus.CounterVec
	savingsSweepCredits prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		ledgerOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total number of ledger operations by type and outcome",
			},
			[]string{"operation", "status"},
		),
		ledgerDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_milliseconds",
				Help:    "Ledger operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		conflictRetries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_conflict_retries_total",
				Help: "Total number of retries after serialization conflicts",
			},
			[]string{"operation"},
		),
		transferAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "transfer_amount",
				Help:    "Transfer amount in base currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		interestAccruals: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "interest_accruals_total",
				Help: "Total number of interest credits applied",
			},
		),
		accountsOpened: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_opened_total",
				Help: "Total number of accounts opened by type",
			},
			[]string{"account_type"},
		),
		authEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		savingsSweepCredits: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "interest_sweep_accounts_credited",
				Help: "Accounts credited during the last interest sweep",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "ledger.operation":
		m.ledgerOperations.WithLabelValues(tags["operation"], tags["status"]).Inc()
	case "ledger.conflict.retry":
		m.conflictRetries.WithLabelValues(tags["operation"]).Inc()
	case "ledger.interest.accrued":
		m.interestAccruals.Inc()
	case "account.opened":
		m.accountsOpened.WithLabelValues(tags["account_type"]).Inc()
	case "auth.event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authEvents.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "ledger.operation":
		m.ledgerDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "ledger.transfer.amount":
		m.transferAmount.Observe(value)
	case "ledger.sweep.credited":
		m.savingsSweepCredits.Set(value)
	}
}
