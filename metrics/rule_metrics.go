package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type RuleMetricsCollector struct {
	Evaluations *prometheus.CounterVec
	Emitted     *prometheus.CounterVec
	Suppressed  *prometheus.CounterVec
	Failures    *prometheus.CounterVec
}

var globalCollector *RuleMetricsCollector

func getCollector() *RuleMetricsCollector {
	if globalCollector == nil {
		globalCollector = &RuleMetricsCollector{
			Evaluations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "notification_rule_evaluations_total",
					Help: "The total number of rule evaluations",
				},
				[]string{"rule"},
			),
			Emitted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "notification_rule_emitted_total",
					Help: "The total number of notifications created by rules",
				},
				[]string{"rule"},
			),
			Suppressed: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "notification_rule_suppressed_total",
					Help: "The total number of notifications suppressed by same-day dedup",
				},
				[]string{"rule"},
			),
			Failures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "notification_rule_failures_total",
					Help: "The total number of rule evaluations that failed and were skipped",
				},
				[]string{"rule"},
			),
		}
	}
	return globalCollector
}

// RuleMetrics records prometheus counters for one rule engine instance
type RuleMetrics struct {
	collector *RuleMetricsCollector
}

func NewRuleMetrics() *RuleMetrics {
	return &RuleMetrics{collector: getCollector()}
}

func (m *RuleMetrics) RecordEvaluation(rule string) {
	m.collector.Evaluations.WithLabelValues(rule).Inc()
}

func (m *RuleMetrics) RecordEmitted(rule string) {
	m.collector.Emitted.WithLabelValues(rule).Inc()
}

func (m *RuleMetrics) RecordSuppressed(rule string) {
	m.collector.Suppressed.WithLabelValues(rule).Inc()
}

func (m *RuleMetrics) RecordFailure(rule string) {
	m.collector.Failures.WithLabelValues(rule).Inc()
}
