package keeper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics mirrors x/dex/keeper/metrics.go's promauto vector pattern,
// trimmed to the operations the Delegator and Relay Listener actually
// perform: swaps, deposits, withdrawals and refunds on timeout or error
// acknowledgement.
var (
	swapsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interchainswap_swaps_total",
			Help: "Total number of left/right swaps acknowledged",
		},
		[]string{"pool_id", "side"},
	)

	swapFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interchainswap_swap_failures_total",
			Help: "Total number of swaps that returned an error acknowledgement",
		},
		[]string{"pool_id", "reason"},
	)

	depositsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interchainswap_deposits_total",
			Help: "Total number of single/double deposits acknowledged",
		},
		[]string{"pool_id", "kind"},
	)

	withdrawalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interchainswap_withdrawals_total",
			Help: "Total number of withdrawals acknowledged",
		},
		[]string{"pool_id"},
	)

	refundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interchainswap_refunds_total",
			Help: "Total number of escrow refunds issued on timeout or error ack",
		},
		[]string{"message_type", "reason"},
	)

	packetLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "interchainswap_packet_round_trip_ms",
			Help:    "Milliseconds between packet send and ack/timeout",
			Buckets: prometheus.ExponentialBuckets(10, 2, 12),
		},
		[]string{"message_type"},
	)
)

// Metrics is a thin per-Keeper handle onto the package-level collectors,
// following MetricsCollector's wrapper shape.
type Metrics struct{}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordSwap(poolID, side string) {
	swapsTotal.WithLabelValues(poolID, side).Inc()
}

func (m *Metrics) RecordSwapFailure(poolID, reason string) {
	swapFailuresTotal.WithLabelValues(poolID, reason).Inc()
}

func (m *Metrics) RecordDeposit(poolID, kind string) {
	depositsTotal.WithLabelValues(poolID, kind).Inc()
}

func (m *Metrics) RecordWithdrawal(poolID string) {
	withdrawalsTotal.WithLabelValues(poolID).Inc()
}

func (m *Metrics) RecordRefund(messageType, reason string) {
	refundsTotal.WithLabelValues(messageType, reason).Inc()
}

func (m *Metrics) ObservePacketLatency(messageType string, ms float64) {
	packetLatency.WithLabelValues(messageType).Observe(ms)
}
