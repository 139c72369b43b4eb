package metrics

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const statusUnavailable = "unavailable"

var (
	nodeRPCCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "node_rpc",
		Name:      "calls_total",
		Help:      "Count of node RPC calls by outcome.",
	}, []string{"coin", "network", "operation", "status"})
	nodeRPCCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "node_rpc",
		Name:      "call_duration_seconds",
		Help:      "Duration of node RPC calls.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"coin", "network", "operation"})
	nodeRPCLastSuccess = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "node_rpc",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful node RPC call.",
	}, []string{"coin", "network"})
)

// NodeRPC tracks calls made through the node RPC wrapper.
type NodeRPC struct {
	coin    string
	network string
}

// NewNodeRPC constructs a NodeRPC collector.
func NewNodeRPC(coin model.Coin, network model.Network) *NodeRPC {
	c, n := labels(coin, network)
	return &NodeRPC{coin: c, network: n}
}

// Observe records one call. Unreachable nodes and timeouts are counted apart
// from calls the node answered with an error.
func (m NodeRPC) Observe(operation string, err error, started time.Time) {
	s := status(err)
	if errors.Is(err, model.ErrUpstreamUnavailable) {
		s = statusUnavailable
	}
	nodeRPCCallsTotal.WithLabelValues(m.coin, m.network, operation, s).Inc()
	nodeRPCCallDuration.WithLabelValues(m.coin, m.network, operation).Observe(time.Since(started).Seconds())
	if err == nil {
		nodeRPCLastSuccess.WithLabelValues(m.coin, m.network).SetToCurrentTime()
	}
}
