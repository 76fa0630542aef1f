// Package metrics holds the Prometheus collectors for ledger queries,
// aggregation merges, balance polls and send submissions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "qwallet"

// Collector owns a private registry so that tests can build as many
// collectors as they like without duplicate registration panics.
type Collector struct {
	registry *prometheus.Registry

	LedgerRequests *prometheus.CounterVec
	LedgerDuration *prometheus.HistogramVec

	Merges       *prometheus.CounterVec
	BalancePolls *prometheus.CounterVec
	Submissions  *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		LedgerRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_requests_total",
				Help:      "Total number of node read requests",
			},
			[]string{"endpoint", "outcome"},
		),
		LedgerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ledger_request_duration_seconds",
				Help:      "Node read request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		Merges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "category_merges_total",
				Help:      "Category merges by outcome; stale results are discarded",
			},
			[]string{"category", "outcome"},
		),
		BalancePolls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "balance_polls_total",
				Help:      "Balance fetches by trigger and outcome",
			},
			[]string{"trigger", "outcome"},
		),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "send_submissions_total",
				Help:      "Send submissions by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		c.LedgerRequests,
		c.LedgerDuration,
		c.Merges,
		c.BalancePolls,
		c.Submissions,
		collectors.NewGoCollector(),
	)

	return c
}

// ObserveLedger records one node request.
func (c *Collector) ObserveLedger(endpoint string, start time.Time, err error) {
	if c == nil {
		return
	}
	c.LedgerRequests.WithLabelValues(endpoint, outcome(err)).Inc()
	c.LedgerDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (c *Collector) ObserveMerge(category string, result string) {
	if c == nil {
		return
	}
	c.Merges.WithLabelValues(category, result).Inc()
}

func (c *Collector) ObserveBalancePoll(trigger string, err error) {
	if c == nil {
		return
	}
	c.BalancePolls.WithLabelValues(trigger, outcome(err)).Inc()
}

func (c *Collector) ObserveSubmission(err error) {
	if c == nil {
		return
	}
	c.Submissions.WithLabelValues(outcome(err)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
