package metrics

import (
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	liveSyncEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "live_sync",
		Name:      "events_total",
		Help:      "Count of live block and transaction events handled.",
	}, []string{"coin", "network", "event", "status"})
	liveSyncResyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "live_sync",
		Name:      "resync_total",
		Help:      "Count of RPC resyncs triggered by unknown parents.",
	}, []string{"coin", "network", "status"})
	liveSyncTouchedAddresses = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "live_sync",
		Name:      "touched_addresses",
		Help:      "Number of addresses touched per live event.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"coin", "network", "event"})
)

// LiveSync tracks metrics of the live ingestion driver.
type LiveSync struct {
	coin    string
	network string
}

// NewLiveSync constructs a LiveSync collector.
func NewLiveSync(coin model.Coin, network model.Network) *LiveSync {
	c, n := labels(coin, network)
	return &LiveSync{coin: c, network: n}
}

// ObserveEvent records a handled live event.
func (m LiveSync) ObserveEvent(event string, touched int, err error) {
	liveSyncEventsTotal.WithLabelValues(m.coin, m.network, event, status(err)).Inc()
	if err == nil {
		liveSyncTouchedAddresses.WithLabelValues(m.coin, m.network, event).Observe(float64(touched))
	}
}

// ObserveResync records a triggered resync.
func (m LiveSync) ObserveResync(err error) {
	liveSyncResyncTotal.WithLabelValues(m.coin, m.network, status(err)).Inc()
}
