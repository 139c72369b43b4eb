package metrics

import (
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	engineStoreBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain_engine",
		Name:      "store_block_total",
		Help:      "Count of blocks submitted to the reorg engine by outcome.",
	}, []string{"coin", "network", "outcome"})
	engineStoreBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain_engine",
		Name:      "store_block_duration_seconds",
		Help:      "Duration of storing a block, writer wait included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "outcome"})
	engineReorgTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain_engine",
		Name:      "reorg_total",
		Help:      "Count of chain reorganizations by fork kind.",
	}, []string{"coin", "network", "kind"})
	engineOrphanedBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain_engine",
		Name:      "orphaned_blocks_total",
		Help:      "Count of blocks removed from the main chain.",
	}, []string{"coin", "network"})
	engineReconnectedBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain_engine",
		Name:      "reconnected_blocks_total",
		Help:      "Count of previously orphaned blocks put back on the main chain.",
	}, []string{"coin", "network"})
	engineTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "chain_engine",
		Name:      "tip_height",
		Help:      "Height of the indexed main chain tip.",
	}, []string{"coin", "network"})
)

// ChainEngine tracks metrics of the reorg resolution engine.
type ChainEngine struct {
	coin    string
	network string
}

// NewChainEngine constructs a ChainEngine collector.
func NewChainEngine(coin model.Coin, network model.Network) *ChainEngine {
	c, n := labels(coin, network)
	return &ChainEngine{coin: c, network: n}
}

// ObserveStoreBlock records the outcome of one StoreTipBlock call.
func (m ChainEngine) ObserveStoreBlock(result *model.StoreResult, err error, started time.Time) {
	outcome := "error"
	switch {
	case err == nil && result != nil:
		outcome = string(result.Kind)
	case errors.Is(err, model.ErrRejected):
		outcome = "rejected"
	case errors.Is(err, model.ErrNeedsResync):
		outcome = "needs_resync"
	case errors.Is(err, model.ErrReorgDepth):
		outcome = "reorg_depth"
	}
	engineStoreBlockTotal.WithLabelValues(m.coin, m.network, outcome).Inc()
	engineStoreBlockDuration.WithLabelValues(m.coin, m.network, outcome).Observe(time.Since(started).Seconds())

	if err != nil || result == nil {
		return
	}
	engineTipHeight.WithLabelValues(m.coin, m.network).Set(float64(result.Height))
	if result.Kind == model.ForkShallow || result.Kind == model.ForkDeep {
		engineReorgTotal.WithLabelValues(m.coin, m.network, string(result.Kind)).Inc()
		engineOrphanedBlocksTotal.WithLabelValues(m.coin, m.network).Add(float64(len(result.Orphaned)))
		engineReconnectedBlocksTotal.WithLabelValues(m.coin, m.network).Add(float64(len(result.Reconnected)))
	}
}
