package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexSkippedOutputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "index_store",
		Name:      "skipped_outputs_total",
		Help:      "Count of outputs not indexed by address.",
	}, []string{"coin", "network", "reason"})
	indexCacheWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "index_store",
		Name:      "confirmation_cache_writes_total",
		Help:      "Count of address entries annotated with the confirmation cache.",
	}, []string{"coin", "network"})
	indexFillConfirmationsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "index_store",
		Name:      "fill_confirmations_duration_seconds",
		Help:      "Duration of resolving confirmations for an address output list.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})
	indexFillConfirmationsSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "index_store",
		Name:      "fill_confirmations_size",
		Help:      "Number of outputs needing chain lookups per call.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"coin", "network"})
)

// IndexStore tracks metrics of the output/spend/address index.
type IndexStore struct {
	coin    string
	network string
}

// NewIndexStore constructs an IndexStore collector.
func NewIndexStore(coin model.Coin, network model.Network) *IndexStore {
	c, n := labels(coin, network)
	return &IndexStore{coin: c, network: n}
}

// ObserveSkippedOutput counts an output left out of the address index.
func (m IndexStore) ObserveSkippedOutput(reason string) {
	indexSkippedOutputsTotal.WithLabelValues(m.coin, m.network, reason).Inc()
}

// ObserveCacheWrites counts confirmation cache annotations.
func (m IndexStore) ObserveCacheWrites(n int) {
	indexCacheWritesTotal.WithLabelValues(m.coin, m.network).Add(float64(n))
}

// ObserveFillConfirmations records a fillConfirmations pass.
func (m IndexStore) ObserveFillConfirmations(err error, outputs int, started time.Time) {
	indexFillConfirmationsDuration.WithLabelValues(m.coin, m.network, status(err)).Observe(time.Since(started).Seconds())
	indexFillConfirmationsSize.WithLabelValues(m.coin, m.network).Observe(float64(outputs))
}
