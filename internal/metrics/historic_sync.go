package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	historicSyncBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "historic_sync",
		Name:      "blocks_total",
		Help:      "Count of blocks fed to the engine during bootstrap.",
	}, []string{"coin", "network", "source", "status"})
	historicSyncRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "historic_sync",
		Name:      "runs_total",
		Help:      "Count of historic sync runs.",
	}, []string{"coin", "network", "source", "status"})
	historicSyncRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "historic_sync",
		Name:      "run_duration_seconds",
		Help:      "Duration of historic sync runs.",
		Buckets:   []float64{1, 5, 30, 60, 300, 900, 3600, 4 * 3600, 12 * 3600, 24 * 3600},
	}, []string{"coin", "network", "source", "status"})
	historicSyncHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "historic_sync",
		Name:      "height",
		Help:      "Height reached by the historic sync.",
	}, []string{"coin", "network"})
	historicSyncChainHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "historic_sync",
		Name:      "chain_height",
		Help:      "Chain height reported by the node.",
	}, []string{"coin", "network"})
)

// HistoricSync tracks metrics of bootstrap ingestion.
type HistoricSync struct {
	coin    string
	network string
}

// NewHistoricSync constructs a HistoricSync collector.
func NewHistoricSync(coin model.Coin, network model.Network) *HistoricSync {
	c, n := labels(coin, network)
	return &HistoricSync{coin: c, network: n}
}

// ObserveBlock records one block handed to the engine.
func (m HistoricSync) ObserveBlock(source string, err error, height int64) {
	historicSyncBlocksTotal.WithLabelValues(m.coin, m.network, source, status(err)).Inc()
	if err == nil {
		historicSyncHeight.WithLabelValues(m.coin, m.network).Set(float64(height))
	}
}

// ObserveRun records a completed or failed sync run.
func (m HistoricSync) ObserveRun(source string, err error, started time.Time) {
	historicSyncRunsTotal.WithLabelValues(m.coin, m.network, source, status(err)).Inc()
	historicSyncRunDuration.WithLabelValues(m.coin, m.network, source, status(err)).Observe(time.Since(started).Seconds())
}

// SetChainHeight records the node's chain height.
func (m HistoricSync) SetChainHeight(height int64) {
	historicSyncChainHeight.WithLabelValues(m.coin, m.network).Set(float64(height))
}
