package ingester

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/clock"
	"go.uber.org/zap"
)

// Follower keeps the store caught up with the node after bootstrap by
// re-running the RPC sync on every block signal or poll interval.
type Follower struct {
	logger        *zap.Logger
	syncer        Resyncer
	sleep        func(context.Context, time.Duration) error
	backoff      clock.Backoff
	pollInterval time.Duration
	blockSignal  <-chan struct{}
}

// NewFollower builds a Follower. blockSignal may be nil to rely on polling only.
func NewFollower(syncer Resyncer, blockSignal <-chan struct{}, pollInterval time.Duration, logger *zap.Logger) (*Follower, error) {
	if syncer == nil {
		return nil, errors.New("follower syncer is required")
	}
	if pollInterval <= 0 {
		pollInterval = longSleepDuration
	}
	return &Follower{
		logger:       logger.Named("follower"),
		syncer:       syncer,
		sleep:        clock.SleepWithContext,
		backoff:      clock.Backoff{Min: sleepDuration, Max: maxSleepDuration},
		pollInterval: pollInterval,
		blockSignal:  blockSignal,
	}, nil
}

// Run starts the follower loop until the context is canceled.
func (f *Follower) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := f.run(ctx)
		if err == nil {
			f.backoff.Reset()
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		delay := f.backoff.Next()
		f.logger.Warn("catch-up failed, backing off", zap.Error(err), zap.Duration("sleep", delay))
		if sleepErr := f.sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}
}

func (f *Follower) run(ctx context.Context) error {
	err := f.syncer.RunRPC(ctx)
	if errors.Is(err, errSyncRunning) {
		f.logger.Debug("sync already running, skipping catch-up")
	} else if err != nil {
		return err
	}
	return f.wait(ctx, f.pollInterval)
}

func (f *Follower) wait(ctx context.Context, d time.Duration) error {
	if f.blockSignal == nil {
		return f.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.blockSignal:
		return nil
	case <-timer.C:
		return nil
	}
}
