// Package metrics holds the Prometheus collectors for Splitledger.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitledger"

var (
	// RPCRequests counts RPCs by procedure and connect code ("ok" on success).
	RPCRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "RPC calls by procedure and result code.",
	}, []string{"procedure", "code"})

	// RPCDuration tracks RPC latency.
	RPCDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "RPC latency by procedure.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	// LedgerOperations counts ledger mutations by operation and outcome.
	LedgerOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_operations_total",
		Help:      "Ledger operations by name and outcome.",
	}, []string{"operation", "outcome"})

	// LedgerAmount sums the whole currency units moved by successful operations.
	LedgerAmount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_amount_units_total",
		Help:      "Currency units moved by successful ledger operations.",
	}, []string{"operation"})
)

// Registry is the registry served at /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		RPCRequests,
		RPCDuration,
		LedgerOperations,
		LedgerAmount,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveOperation records the outcome of one ledger operation.
// amount is only counted on success and when positive.
func ObserveOperation(operation string, amount int64, err error) {
	if err != nil {
		LedgerOperations.WithLabelValues(operation, "error").Inc()
		return
	}
	LedgerOperations.WithLabelValues(operation, "ok").Inc()
	if amount > 0 {
		LedgerAmount.WithLabelValues(operation).Add(float64(amount))
	}
}
