package ingester

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chainsync"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"go.uber.org/zap"
)

const (
	eventBlock = "block"
	eventTx    = "tx"
)

// LiveSync stores gossiped blocks and transactions as they arrive. A block
// with an unknown parent triggers an RPC resync.
type LiveSync struct {
	source         chain.LiveSource
	engine         Engine
	resync         Resyncer
	sink           ChangeSink
	metrics        LiveSyncMetrics
	logger         *zap.Logger
	sleep          func(context.Context, time.Duration) error
	backoff        clock.Backoff
}

// NewLiveSync builds a LiveSync. sink may be nil to disable export.
func NewLiveSync(
	source chain.LiveSource,
	engine Engine,
	resync Resyncer,
	sink ChangeSink,
	metrics LiveSyncMetrics,
	logger *zap.Logger,
) (*LiveSync, error) {
	if source == nil || engine == nil || resync == nil {
		return nil, errors.New("live source, engine and resyncer are required")
	}
	if metrics == nil {
		return nil, errors.New("live sync metrics is required")
	}
	return &LiveSync{
		source:         source,
		engine:         engine,
		resync:         resync,
		sink:           sink,
		metrics:        metrics,
		logger:         logger.Named("liveSync"),
		sleep:          clock.SleepWithContext,
		backoff:        clock.Backoff{Min: reconnectDelay, Max: maxReconnectDelay},
	}, nil
}

// Run consumes the live source, reconnecting after failures, until ctx is done.
func (s *LiveSync) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		connected := time.Now()
		err := s.consume(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// a session that outlived the longest delay counts as healthy
		if time.Since(connected) > maxReconnectDelay {
			s.backoff.Reset()
		}
		delay := s.backoff.Next()
		s.logger.Warn("live source stopped, reconnecting", zap.Error(err), zap.Duration("sleep", delay))
		if sleepErr := s.sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}
}

func (s *LiveSync) consume(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan chain.LiveEvent, liveEventBuffer)
	done := make(chan error, 1)
	go func() {
		done <- s.source.Run(ctx, events)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-done:
			for {
				select {
				case e := <-events:
					s.handle(ctx, e)
				default:
					return err
				}
			}
		case e := <-events:
			s.handle(ctx, e)
		}
	}
}

func (s *LiveSync) handle(ctx context.Context, e chain.LiveEvent) {
	switch {
	case e.Block != nil:
		s.handleBlock(ctx, e.Block)
	case e.Tx != nil:
		s.handleTx(ctx, e.Tx)
	}
}

func (s *LiveSync) handleBlock(ctx context.Context, block *model.RawBlock) {
	res, err := s.engine.StoreTipBlock(ctx, block, chainsync.StoreOptions{AllowReorgs: true})
	if errors.Is(err, model.ErrNeedsResync) {
		s.metrics.ObserveEvent(eventBlock, 0, err)
		s.logger.Info("block parent unknown, resyncing from rpc", zap.String("hash", block.Hash), zap.String("prev", block.PrevHash))
		resyncErr := s.resync.RunRPC(ctx)
		if errors.Is(resyncErr, errSyncRunning) {
			resyncErr = nil
		}
		s.metrics.ObserveResync(resyncErr)
		if resyncErr != nil {
			s.logger.Error("resync failed", zap.Error(resyncErr))
		}
		return
	}
	if err != nil {
		s.metrics.ObserveEvent(eventBlock, 0, err)
		if errors.Is(err, model.ErrReorgDepth) {
			s.logger.Error("fork point not stored, operator resync required", zap.String("hash", block.Hash), zap.Error(err))
			return
		}
		s.logger.Error("store live block failed", zap.String("hash", block.Hash), zap.Error(err))
		return
	}

	s.metrics.ObserveEvent(eventBlock, len(res.Touched), nil)
	s.logger.Info("new block",
		zap.String("hash", res.Hash),
		zap.Int64("height", res.Height),
		zap.String("kind", string(res.Kind)),
		zap.Int("touched", len(res.Touched)),
	)
	if s.sink != nil && len(res.Changes) > 0 {
		if err := s.sink.WriteChanges(ctx, res.Changes); err != nil {
			s.logger.Error("export block changes failed", zap.String("hash", res.Hash), zap.Error(err))
		}
	}
}

func (s *LiveSync) handleTx(ctx context.Context, tx *model.Transaction) {
	touched, err := s.engine.StoreTx(ctx, tx)
	s.metrics.ObserveEvent(eventTx, len(touched), err)
	if err != nil {
		s.logger.Error("store live transaction failed", zap.String("txid", tx.TxID), zap.Error(err))
		return
	}
	s.logger.Debug("new transaction", zap.String("txid", tx.TxID), zap.Int("touched", len(touched)))
}
