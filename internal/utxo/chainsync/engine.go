// Package chainsync decides how each incoming block relates to the indexed
// main chain and applies extensions and reorganizations atomically.
package chainsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/kvstore"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
)

const defaultRetryDelay = time.Second

// StoreOptions controls how StoreTipBlock treats a block.
type StoreOptions struct {
	// AllowReorgs enables fork handling. Without it a block is accepted only
	// when it extends the last accepted block, and its parent is not looked up.
	AllowReorgs bool
}

// Engine is the single writer of the chain and output indexes.
type Engine struct {
	db      BatchWriter
	blocks  ChainIndex
	outputs OutputIndex
	metrics Metrics
	logger  *zap.Logger

	retryDelay time.Duration
	sleep      func(context.Context, time.Duration) error
	now        func() time.Time
	writer     chan struct{}

	mu         sync.Mutex
	last       model.Tip
	lastLoaded bool
}

// New builds an engine. retryDelay <= 0 selects one second.
func New(
	db BatchWriter,
	blocks ChainIndex,
	outputs OutputIndex,
	metrics Metrics,
	retryDelay time.Duration,
	logger *zap.Logger,
) (*Engine, error) {
	if metrics == nil {
		return nil, errors.New("chain engine metrics is required")
	}
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	return &Engine{
		db:         db,
		blocks:     blocks,
		outputs:    outputs,
		metrics:    metrics,
		logger:     logger.Named("chainsync"),
		retryDelay: retryDelay,
		sleep:      clock.SleepWithContext,
		now:        time.Now,
		writer:     make(chan struct{}, 1),
	}, nil
}

// acquire takes the writer slot. A caller finding it busy waits retryDelay
// and tries again.
func (e *Engine) acquire(ctx context.Context) error {
	for {
		select {
		case e.writer <- struct{}{}:
			return nil
		default:
		}
		e.logger.Debug("storing a block already, delaying", zap.Duration("delay", e.retryDelay))
		if err := e.sleep(ctx, e.retryDelay); err != nil {
			return err
		}
	}
}

func (e *Engine) release() {
	<-e.writer
}

// LastAccepted returns the block most recently accepted by this engine, or
// the stored tip when nothing was accepted since start or Reset.
func (e *Engine) LastAccepted() (model.Tip, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastLoaded {
		return e.last, nil
	}
	tip, err := e.blocks.GetTip()
	if err != nil {
		return model.Tip{}, fmt.Errorf("get tip: %w", err)
	}
	e.last = tip
	e.lastLoaded = true
	return tip, nil
}

func (e *Engine) setLastAccepted(tip model.Tip) {
	e.mu.Lock()
	e.last = tip
	e.lastLoaded = true
	e.mu.Unlock()
}

// Reset forgets cached chain state. Call it after the store was dropped.
func (e *Engine) Reset() {
	e.blocks.InvalidateTip()
	e.mu.Lock()
	e.last = model.Tip{}
	e.lastLoaded = false
	e.mu.Unlock()
}

// StoreTipBlock stores block as the new main chain tip, reorganizing the
// chain when the block does not extend the current tip. It returns the
// block's height or one of model.ErrRejected, model.ErrNeedsResync and
// model.ErrReorgDepth. The store is left unchanged on error.
func (e *Engine) StoreTipBlock(ctx context.Context, block *model.RawBlock, opts StoreOptions) (result *model.StoreResult, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveStoreBlock(result, err, started)
	}()

	if err := e.acquire(ctx); err != nil {
		return nil, err
	}
	defer e.release()

	known, err := e.blocks.Has(block.Hash)
	if err != nil {
		return nil, fmt.Errorf("check block %s: %w", block.Hash, err)
	}
	if known {
		height, err := e.blocks.GetHeight(block.Hash)
		if err != nil {
			return nil, fmt.Errorf("height of %s: %w", block.Hash, err)
		}
		if height >= 0 {
			return &model.StoreResult{Hash: block.Hash, Height: height, Kind: model.ForkDuplicate}, nil
		}
	}

	var p *plan
	if opts.AllowReorgs {
		p, err = e.planWithReorgs(block)
	} else {
		p, err = e.planWithoutReorgs(block)
	}
	if err != nil {
		return nil, err
	}
	return e.apply(block, p)
}

// plan is the set of chain changes needed to accept one block.
type plan struct {
	kind        model.ForkKind
	height      int64
	orphanFrom  string
	fork        model.Tip
	reconnected []string
}

func (e *Engine) planWithoutReorgs(block *model.RawBlock) (*plan, error) {
	last, err := e.LastAccepted()
	if err != nil {
		return nil, err
	}
	switch {
	case last.IsEmpty() && model.IsGenesisParent(block.PrevHash):
		return &plan{kind: model.ForkGenesis, height: 0}, nil
	case !last.IsEmpty() && block.PrevHash == last.Hash:
		return &plan{kind: model.ForkExtend, height: last.Height + 1}, nil
	}
	return nil, fmt.Errorf("block %s: parent %s is not last accepted %s: %w",
		block.Hash, block.PrevHash, last.Hash, model.ErrRejected)
}

func (e *Engine) planWithReorgs(block *model.RawBlock) (*plan, error) {
	parent := block.PrevHash
	if !model.IsGenesisParent(parent) {
		ok, err := e.blocks.Has(parent)
		if err != nil {
			return nil, fmt.Errorf("check parent %s: %w", parent, err)
		}
		if !ok {
			return nil, &model.LinkageError{Hash: block.Hash, PrevHash: parent}
		}
	}

	tip, err := e.blocks.GetTip()
	if err != nil {
		return nil, fmt.Errorf("get tip: %w", err)
	}
	switch {
	case model.IsGenesisParent(parent) && tip.IsEmpty():
		return &plan{kind: model.ForkGenesis, height: 0}, nil
	case model.IsGenesisParent(parent):
		return nil, &model.ReorgDepthError{From: block.Hash, Missing: parent}
	case parent == tip.Hash:
		return &plan{kind: model.ForkExtend, height: tip.Height + 1}, nil
	}

	parentHeight, err := e.blocks.GetHeight(parent)
	if err != nil {
		return nil, fmt.Errorf("height of %s: %w", parent, err)
	}
	if parentHeight >= 0 {
		next, err := e.next(parent)
		if err != nil {
			return nil, err
		}
		return &plan{kind: model.ForkShallow, height: parentHeight + 1, orphanFrom: next}, nil
	}

	branch, fork, err := e.walkBack(parent)
	if err != nil {
		return nil, err
	}
	next, err := e.next(fork.Hash)
	if err != nil {
		return nil, err
	}
	return &plan{
		kind:        model.ForkDeep,
		height:      fork.Height + int64(len(branch)) + 1,
		orphanFrom:  next,
		fork:        fork,
		reconnected: branch,
	}, nil
}

func (e *Engine) next(hash string) (string, error) {
	next, err := e.blocks.GetNext(hash)
	if errors.Is(err, model.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("next of %s: %w", hash, err)
	}
	return next, nil
}

// walkBack follows previous links from an orphaned block until it reaches a
// main chain block, the fork point. The branch is returned oldest first.
func (e *Engine) walkBack(from string) ([]string, model.Tip, error) {
	var branch []string
	hash := from
	for {
		height, err := e.blocks.GetHeight(hash)
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.Tip{}, &model.ReorgDepthError{From: from, Missing: hash}
		}
		if err != nil {
			return nil, model.Tip{}, fmt.Errorf("height of %s: %w", hash, err)
		}
		if height >= 0 {
			for i, j := 0, len(branch)-1; i < j; i, j = i+1, j-1 {
				branch[i], branch[j] = branch[j], branch[i]
			}
			return branch, model.Tip{Hash: hash, Height: height}, nil
		}
		branch = append(branch, hash)

		prev, err := e.blocks.GetPrev(hash)
		if err != nil {
			return nil, model.Tip{}, fmt.Errorf("prev of %s: %w", hash, err)
		}
		if model.IsGenesisParent(prev) {
			return nil, model.Tip{}, &model.ReorgDepthError{From: from, Missing: prev}
		}
		hash = prev
	}
}

// apply writes the plan in one batch: the abandoned branch is orphaned
// first, so reconnected blocks and the new block win any mapping they share
// with it.
func (e *Engine) apply(block *model.RawBlock, p *plan) (*model.StoreResult, error) {
	b := kvstore.NewBatch()
	result := &model.StoreResult{Hash: block.Hash, Height: p.height, Kind: p.kind}

	if p.orphanFrom != "" && p.orphanFrom != block.Hash {
		orphaned, err := e.blocks.OrphanizeOps(b, p.orphanFrom)
		if err != nil {
			return nil, err
		}
		result.Orphaned = orphaned
		for _, hash := range orphaned {
			change, err := e.change(hash, model.OrphanHeight)
			if err != nil {
				return nil, err
			}
			result.Changes = append(result.Changes, change)
		}
	}

	prev := p.fork.Hash
	for i, hash := range p.reconnected {
		height := p.fork.Height + int64(i) + 1
		if err := e.blocks.SetHeightOps(b, hash, height); err != nil {
			return nil, err
		}
		if err := e.blocks.SetNextOps(b, prev, hash); err != nil {
			return nil, err
		}
		change, err := e.change(hash, height)
		if err != nil {
			return nil, err
		}
		result.Changes = append(result.Changes, change)
		prev = hash
	}
	result.Reconnected = p.reconnected

	if err := e.blocks.PutOps(b, block, p.height); err != nil {
		return nil, fmt.Errorf("put block %s: %w", block.Hash, err)
	}
	seen := make(map[string]struct{})
	for i := range block.Transactions {
		touched, err := e.outputs.RecordTransactionOps(b, &block.Transactions[i], block.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("index block %s: %w", block.Hash, err)
		}
		for _, addr := range touched {
			if _, ok := seen[addr]; !ok {
				seen[addr] = struct{}{}
				result.Touched = append(result.Touched, addr)
			}
		}
	}
	if !model.IsGenesisParent(block.PrevHash) {
		if err := e.blocks.SetNextOps(b, block.PrevHash, block.Hash); err != nil {
			return nil, err
		}
	}
	tip := model.Tip{Hash: block.Hash, Height: p.height}
	if err := e.blocks.SetTipOps(b, tip); err != nil {
		return nil, err
	}
	result.Changes = append(result.Changes, model.HeightChange{
		Hash:      block.Hash,
		PrevHash:  block.PrevHash,
		Height:    p.height,
		Timestamp: block.Timestamp,
		TxCount:   len(block.Transactions),
	})

	if err := e.db.Write(b); err != nil {
		return nil, fmt.Errorf("store block %s: %w", block.Hash, err)
	}
	e.blocks.CommitTip(tip)
	e.setLastAccepted(tip)

	if p.kind == model.ForkShallow || p.kind == model.ForkDeep {
		e.logger.Info("chain reorganized",
			zap.String("kind", string(p.kind)),
			zap.String("hash", block.Hash),
			zap.Int64("height", p.height),
			zap.Int("orphaned", len(result.Orphaned)),
			zap.Int("reconnected", len(result.Reconnected)),
		)
	}
	return result, nil
}

func (e *Engine) change(hash string, height int64) (model.HeightChange, error) {
	rec, err := e.blocks.GetBlock(hash)
	if err != nil {
		return model.HeightChange{}, fmt.Errorf("block %s: %w", hash, err)
	}
	return model.HeightChange{
		Hash:      hash,
		PrevHash:  rec.PrevHash,
		Height:    height,
		Timestamp: rec.Timestamp,
		TxCount:   len(rec.TxIDs),
	}, nil
}

// StoreTx indexes a transaction seen outside a block, e.g. from the mempool.
// It returns the touched addresses.
func (e *Engine) StoreTx(ctx context.Context, tx *model.Transaction) ([]string, error) {
	if err := e.acquire(ctx); err != nil {
		return nil, err
	}
	defer e.release()

	ts := tx.Time
	if ts == 0 {
		ts = e.now().Unix()
	}
	b := kvstore.NewBatch()
	touched, err := e.outputs.RecordTransactionOps(b, tx, ts)
	if err != nil {
		return nil, err
	}
	if err := e.db.Write(b); err != nil {
		return nil, fmt.Errorf("store tx %s: %w", tx.TxID, err)
	}
	return touched, nil
}
