package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exportRepositoryOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "export_repository",
		Name:      "operations_total",
		Help:      "Count of export sink operations by outcome.",
	}, []string{"coin", "network", "operation", "status"})
	exportRepositoryOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "export_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of export sink operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"coin", "network", "operation", "status"})
)

// ExportRepository tracks operations of the block change export sink.
type ExportRepository struct{}

// NewExportRepository constructs an ExportRepository collector.
func NewExportRepository() *ExportRepository {
	return &ExportRepository{}
}

// Observe records one sink operation. The sink passes its own coin and
// network since one collector serves every repository instance.
func (ExportRepository) Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	c, n := labels(coin, network)
	s := status(err)
	exportRepositoryOperationsTotal.WithLabelValues(c, n, operation, s).Inc()
	exportRepositoryOperationDuration.WithLabelValues(c, n, operation, s).Observe(time.Since(started).Seconds())
}
