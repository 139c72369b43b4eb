package ingester

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/pkg/batcher"
	"go.uber.org/zap"
)

// ExportWriter batches height changes into the export repository. It
// implements ChangeSink.
type ExportWriter struct {
	repo    ExportRepository
	logger  *zap.Logger
	batcher *batcher.Batcher[model.HeightChange]
}

// NewExportWriter builds an ExportWriter; call Start before writing.
func NewExportWriter(repo ExportRepository, logger *zap.Logger) (*ExportWriter, error) {
	if repo == nil {
		return nil, errors.New("export repository is required")
	}
	w := &ExportWriter{
		repo:   repo,
		logger: logger.Named("exportWriter"),
	}
	w.batcher = batcher.New[model.HeightChange](
		w.logger.Named("changeBatcher"),
		w.flush,
		exportBatcherCapacity,
		exportBatcherFlushInterval,
		exportBatcherRPS,
	)
	return w, nil
}

// Start begins background flushing.
func (w *ExportWriter) Start(ctx context.Context) {
	w.batcher.Start(ctx)
}

// Stop flushes queued changes and stops the writer.
func (w *ExportWriter) Stop() {
	w.batcher.Stop()
}

// WriteChanges queues changes for the next flush.
func (w *ExportWriter) WriteChanges(ctx context.Context, changes []model.HeightChange) error {
	for _, c := range changes {
		if err := w.batcher.Add(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (w *ExportWriter) flush(ctx context.Context, changes []model.HeightChange) error {
	if err := w.repo.InsertBlockChanges(ctx, changes); err != nil {
		return err
	}
	w.logger.Debug("InsertBlockChanges", zap.Int("count", len(changes)))
	return nil
}
