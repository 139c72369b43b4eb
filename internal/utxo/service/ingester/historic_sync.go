package ingester

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chainsync"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/pkg/safe"
	"go.uber.org/zap"
)

const (
	sourceFiles = "files"
	sourceRPC   = "rpc"
)

var errSyncRunning = errors.New("historic sync already running")

// HistoricSyncConfig selects how the bootstrap reads blocks.
type HistoricSyncConfig struct {
	// BlocksDir is the node's blocks directory; empty disables file replay.
	BlocksDir string
	ForceRPC  bool
	// StartFile forces the first block file; negative uses the stored index.
	StartFile int
	// StartAt resumes from this stored main-chain block instead of the tip.
	StartAt string
	// StopAt ends the sync before storing the block with this hash.
	StopAt string
}

// HistoricSync replays the node's chain into the engine, from block files
// when the store is fresh or through RPC otherwise.
type HistoricSync struct {
	cfg         HistoricSyncConfig
	node        Node
	engine      Engine
	blocks      BlockStore
	sink        ChangeSink
	metrics     HistoricSyncMetrics
	genesisHash string
	logger      *zap.Logger
	now         func() time.Time

	newFileSource func(cfg bitcoin.FileSourceConfig) (FileBlockSource, error)
	newRPCSource  func(after string) (chain.BlockSource, error)

	mu      sync.Mutex
	running bool
	info    model.SyncInfo
}

// NewHistoricSync builds a HistoricSync. sink may be nil to disable export.
func NewHistoricSync(
	cfg HistoricSyncConfig,
	node Node,
	engine Engine,
	blocks BlockStore,
	sink ChangeSink,
	decoder *bitcoin.ScriptDecoder,
	metrics HistoricSyncMetrics,
	logger *zap.Logger,
) (*HistoricSync, error) {
	if node == nil || engine == nil || blocks == nil {
		return nil, errors.New("node, engine and block store are required")
	}
	if decoder == nil {
		return nil, errors.New("script decoder is required")
	}
	if metrics == nil {
		return nil, errors.New("historic sync metrics is required")
	}
	logger = logger.Named("historicSync")
	return &HistoricSync{
		cfg:         cfg,
		node:        node,
		engine:      engine,
		blocks:      blocks,
		sink:        sink,
		metrics:     metrics,
		genesisHash: decoder.Params().GenesisHash.String(),
		logger:      logger,
		now:         time.Now,
		newFileSource: func(c bitcoin.FileSourceConfig) (FileBlockSource, error) {
			return bitcoin.NewFileSource(c, decoder, logger)
		},
		newRPCSource: func(after string) (chain.BlockSource, error) {
			return bitcoin.NewRPCSource(node, decoder, after)
		},
	}, nil
}

// Info returns a snapshot of the sync progress.
func (s *HistoricSync) Info() model.SyncInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// Run syncs until the node's tip, the stop hash or ctx cancellation.
func (s *HistoricSync) Run(ctx context.Context) error {
	return s.run(ctx, s.cfg.ForceRPC)
}

// RunRPC catches up with the node through RPC regardless of configuration.
func (s *HistoricSync) RunRPC(ctx context.Context) error {
	return s.run(ctx, true)
}

func (s *HistoricSync) run(ctx context.Context, forceRPC bool) (err error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errSyncRunning
	}
	s.running = true
	s.info = model.SyncInfo{Status: model.SyncStarting}
	s.mu.Unlock()

	started := s.now()
	source := sourceRPC
	defer func() {
		s.finish(err)
		s.metrics.ObserveRun(source, err, started)
	}()

	if err = s.checkGenesis(ctx); err != nil {
		return err
	}
	chainHeight, err := s.node.GetBlockCount(ctx)
	if err != nil {
		return fmt.Errorf("get block count: %w", err)
	}
	s.metrics.SetChainHeight(chainHeight)

	tip, err := s.engine.LastAccepted()
	if err != nil {
		return fmt.Errorf("get last accepted block: %w", err)
	}
	start, moved, err := s.resumePoint(ctx, tip, chainHeight)
	if err != nil {
		return err
	}
	if s.cfg.StartAt != "" {
		if start, err = s.startAt(s.cfg.StartAt); err != nil {
			return err
		}
		moved = true
	}

	blocks, fileSource, err := s.openSource(start, moved, forceRPC)
	if err != nil {
		return err
	}
	defer blocks.Close()

	syncType := model.SyncFromRPC
	allowReorgs := moved
	if fileSource != nil {
		syncType = model.SyncFromFiles
		source = sourceFiles
		allowReorgs = true
	}
	s.begin(syncType, chainHeight, start)
	s.logger.Info("starting historic sync",
		zap.String("type", string(syncType)),
		zap.Int64("height", start.Height),
		zap.Int64("chain_height", chainHeight),
		zap.String("start", start.Hash),
	)

	for {
		block, err := blocks.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read next block: %w", err)
		}
		if s.cfg.StopAt != "" && block.Hash == s.cfg.StopAt {
			s.logger.Info("reached stop block", zap.String("hash", block.Hash))
			return nil
		}

		res, err := s.engine.StoreTipBlock(ctx, block, chainsync.StoreOptions{AllowReorgs: allowReorgs})
		if err != nil {
			s.metrics.ObserveBlock(source, err, 0)
			return fmt.Errorf("store block %s: %w", block.Hash, err)
		}
		s.metrics.ObserveBlock(source, nil, res.Height)
		s.progress(res)

		if fileSource != nil {
			idx, err := safe.Uint32(fileSource.FileIndex())
			if err != nil {
				return fmt.Errorf("file index overflow: %w", err)
			}
			if err := s.blocks.SetLastFileIndex(idx); err != nil {
				return fmt.Errorf("set last file index: %w", err)
			}
		}
		if s.sink != nil && len(res.Changes) > 0 {
			if err := s.sink.WriteChanges(ctx, res.Changes); err != nil {
				return fmt.Errorf("export block changes: %w", err)
			}
		}
	}
}

func (s *HistoricSync) checkGenesis(ctx context.Context) error {
	hash, err := s.node.GetBlockHashAtHeight(ctx, 0)
	if err != nil {
		return fmt.Errorf("get genesis hash: %w", err)
	}
	if hash != s.genesisHash {
		return fmt.Errorf("node genesis %s does not match configured network genesis %s", hash, s.genesisHash)
	}
	return nil
}

// resumePoint walks back from the stored tip over blocks the node no longer
// has on its main chain. moved reports whether the walk left the stored tip.
func (s *HistoricSync) resumePoint(ctx context.Context, tip model.Tip, chainHeight int64) (model.Tip, bool, error) {
	if tip.IsEmpty() {
		return tip, false, nil
	}
	cur := tip
	for {
		if d := tip.Height - cur.Height; d > maxResumeWalkBack {
			return model.Tip{}, false, fmt.Errorf("stored tip %s differs from node by %d blocks, resync required: %w", tip.Hash, d, model.ErrReorgDepth)
		}
		if cur.Height <= chainHeight {
			hash, err := s.node.GetBlockHashAtHeight(ctx, cur.Height)
			if err != nil {
				return model.Tip{}, false, fmt.Errorf("get node block hash at %d: %w", cur.Height, err)
			}
			if hash == cur.Hash {
				moved := cur != tip
				if moved {
					s.logger.Info("resuming below orphaned tip", zap.String("tip", tip.Hash), zap.String("from", cur.Hash))
				}
				return cur, moved, nil
			}
		}
		prev, err := s.blocks.GetPrev(cur.Hash)
		if err != nil {
			return model.Tip{}, false, fmt.Errorf("get prev of %s: %w", cur.Hash, err)
		}
		s.logger.Info("stored block is orphaned on node, walking back", zap.String("hash", cur.Hash), zap.String("prev", prev))
		if model.IsGenesisParent(prev) {
			return model.Tip{}, false, fmt.Errorf("walked back past genesis from %s: %w", tip.Hash, model.ErrReorgDepth)
		}
		cur = model.Tip{Hash: prev, Height: cur.Height - 1}
	}
}

func (s *HistoricSync) startAt(hash string) (model.Tip, error) {
	height, err := s.blocks.GetHeight(hash)
	if err != nil {
		return model.Tip{}, fmt.Errorf("get start block %s: %w", hash, err)
	}
	if height == model.OrphanHeight {
		return model.Tip{}, fmt.Errorf("start block %s is not on the main chain: %w", hash, model.ErrNotFound)
	}
	s.logger.Info("resuming sync from block", zap.String("hash", hash), zap.Int64("height", height))
	return model.Tip{Hash: hash, Height: height}, nil
}

// openSource picks file replay when block files are configured and the
// resume point was not moved by an orphaned tip, RPC otherwise.
func (s *HistoricSync) openSource(start model.Tip, moved, forceRPC bool) (chain.BlockSource, FileBlockSource, error) {
	if !forceRPC && !moved && s.cfg.BlocksDir != "" {
		startFile, err := s.startFile(start)
		if err != nil {
			return nil, nil, err
		}
		cfg := bitcoin.FileSourceConfig{Dir: s.cfg.BlocksDir, StartFile: startFile, After: start.Hash}
		if !start.IsEmpty() {
			// replay restarts before the stored tip, skip what is already indexed
			cfg.Stored = s.blocks
		}
		fs, err := s.newFileSource(cfg)
		if err == nil {
			return fs, fs, nil
		}
		s.logger.Info("disabling file sync", zap.Error(err))
	}
	rs, err := s.newRPCSource(start.Hash)
	if err != nil {
		return nil, nil, fmt.Errorf("create rpc source: %w", err)
	}
	return rs, nil, nil
}

// startFile steps one file back from the stored index because blocks of the
// previous file may still have been pending when the index was written.
func (s *HistoricSync) startFile(start model.Tip) (int, error) {
	if s.cfg.StartFile >= 0 {
		return s.cfg.StartFile, nil
	}
	if start.IsEmpty() {
		return 0, nil
	}
	idx, err := s.blocks.GetLastFileIndex()
	if errors.Is(err, model.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get last file index: %w", err)
	}
	if idx == 0 {
		return 0, nil
	}
	return int(idx) - 1, nil
}

func (s *HistoricSync) begin(syncType model.SyncType, chainHeight int64, start model.Tip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = model.SyncInfo{
		Status:           model.SyncSyncing,
		Type:             syncType,
		BlockChainHeight: chainHeight,
		Height:           start.Height,
		SyncTipHash:      start.Hash,
		StartTs:          s.now().UnixMilli(),
	}
	s.info.SyncPercentage = percentage(s.info.Height, chainHeight)
}

func (s *HistoricSync) progress(res *model.StoreResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.Height >= 0 {
		s.info.Height = res.Height
	}
	s.info.SyncTipHash = res.Hash
	s.info.SyncPercentage = percentage(s.info.Height, s.info.BlockChainHeight)
	if res.Height%progressLogInterval == 0 {
		s.logger.Info("sync progress",
			zap.Int64("height", s.info.Height),
			zap.Float64("percentage", s.info.SyncPercentage),
		)
	}
}

func (s *HistoricSync) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.info.EndTs = s.now().UnixMilli()
	if err != nil {
		s.info.Status = model.SyncAborted
		s.info.Error = err.Error()
		s.logger.Error("historic sync aborted", zap.Error(err), zap.Int64("height", s.info.Height))
		return
	}
	s.info.Status = model.SyncFinished
	s.logger.Info("historic sync finished",
		zap.String("type", string(s.info.Type)),
		zap.Int64("height", s.info.Height),
	)
}

// percentage is height/chainHeight in percent, three decimals, capped at 100.
func percentage(height, chainHeight int64) float64 {
	if chainHeight <= 0 {
		return 0
	}
	p := math.Round(100*float64(height)/float64(chainHeight)*1000) / 1000
	return math.Min(p, 100)
}
