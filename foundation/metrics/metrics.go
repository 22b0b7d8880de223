// Package metrics exposes the ledger core's Prometheus instrumentation:
// chain height, mempool size, and counters around block application and
// rollback.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChainHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledgercore",
		Name:      "chain_height",
		Help:      "Number of blocks committed to the local chain.",
	})

	ChainPower = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledgercore",
		Name:      "chain_power",
		Help:      "Cumulative proof-of-work power of the chain tip.",
	})

	MempoolSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledgercore",
		Name:      "mempool_size",
		Help:      "Number of transactions currently pooled.",
	})

	BlocksApplied = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgercore",
		Name:      "blocks_applied_total",
		Help:      "Total blocks committed via Extend.",
	})

	BlocksRolledBack = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgercore",
		Name:      "blocks_rolled_back_total",
		Help:      "Total blocks undone by a chain reorganization.",
	})

	ExtendRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgercore",
		Name:      "extend_rejections_total",
		Help:      "Extend calls rejected, labeled by reason.",
	}, []string{"reason"})

	TransactionsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ledgercore",
		Name:      "mempool_transactions_accepted_total",
		Help:      "Total transactions admitted to the mempool.",
	})
)

func init() {
	prometheus.MustRegister(
		ChainHeight,
		ChainPower,
		MempoolSize,
		BlocksApplied,
		BlocksRolledBack,
		ExtendRejections,
		TransactionsAccepted,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
