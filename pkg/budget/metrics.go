package budget

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var metrics = []prometheus.Collector{
	messagesFetched,
	messagesAccepted,
	messagesSkipped,
	refreshFailures,
}

// RegisterMetrics registers all Prometheus metrics
// with the default registry.
func RegisterMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus", c)
		}
	}

	return nil
}

// UnregisterMetrics unregisters all Prometheus metrics.
//
// This is needed to cleanly exit.
func UnregisterMetrics() bool {
	for _, c := range metrics {
		if ok := prometheus.Unregister(c); !ok {
			return false
		}
	}

	return true
}

var messagesFetched = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "budget_messages_fetched_total",
		Help: "How many messages were read from the message source.",
	},
)

var messagesAccepted = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "budget_messages_accepted_total",
		Help: "How many fetched messages parsed into a transaction.",
	},
)

var messagesSkipped = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "budget_messages_skipped_total",
		Help: "How many fetched messages were dropped by the sender filter, the amount gate or the classifier.",
	},
)

var refreshFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "budget_refresh_failures_total",
		Help: "How many inbox refreshes failed before committing.",
	},
)
