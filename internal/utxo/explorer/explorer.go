// Package explorer answers read queries over the chain and output indexes.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/blockdb"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/pkg/workerpool"
)

const (
	blockListConcurrency = 10
	inputConcurrency     = 5
)

// Explorer is safe for concurrent use alongside ingestion.
type Explorer struct {
	blocks  BlockIndex
	outputs OutputIndex
	node    Node
	sync    SyncReporter
	logger  *zap.Logger
}

// New constructs an Explorer.
func New(blocks BlockIndex, outputs OutputIndex, node Node, sync SyncReporter, logger *zap.Logger) (*Explorer, error) {
	if blocks == nil || outputs == nil {
		return nil, errors.New("explorer indexes are required")
	}
	if node == nil {
		return nil, errors.New("explorer node is required")
	}
	if sync == nil {
		return nil, errors.New("explorer sync reporter is required")
	}
	return &Explorer{
		blocks:  blocks,
		outputs: outputs,
		node:    node,
		sync:    sync,
		logger:  logger.Named("explorer"),
	}, nil
}

// GetBlockInfo returns the linkage and main-chain membership of a block.
func (e *Explorer) GetBlockInfo(_ context.Context, hash string) (*model.BlockRecord, error) {
	rec, err := e.blocks.GetBlock(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	return rec, nil
}

// GetBlockHashAtHeight returns the main-chain block at height.
func (e *Explorer) GetBlockHashAtHeight(_ context.Context, height int64) (string, error) {
	hash, err := e.blocks.GetHashAtHeight(height)
	if err != nil {
		return "", fmt.Errorf("get block at height %d: %w", height, err)
	}
	return hash, nil
}

// ListBlocksByDate lists up to limit blocks with dayStart <= ts < dayEnd,
// highest first. When more blocks remain, MoreTs is the end to pass for the
// next page. A page never splits blocks sharing a timestamp, so it may hold
// more than limit blocks.
func (e *Explorer) ListBlocksByDate(ctx context.Context, dayStart, dayEnd int64, limit int) (*model.BlockPage, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("list blocks: invalid limit %d", limit)
	}
	entries, err := e.blocks.BlocksByTimeRange(dayStart, dayEnd, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list blocks by date: %w", err)
	}
	page := &model.BlockPage{MoreTs: dayEnd}
	if len(entries) > limit {
		page.More = true
		cut := entries[limit].Timestamp
		entries = entries[:limit]
		if entries[limit-1].Timestamp == cut {
			if entries, page.More, err = e.completeTimestamp(entries, dayStart, cut); err != nil {
				return nil, err
			}
		}
	}

	hashes := make([]string, len(entries))
	for i, entry := range entries {
		hashes[i] = entry.Hash
		if entry.Timestamp < page.MoreTs {
			page.MoreTs = entry.Timestamp
		}
	}
	page.Blocks, err = workerpool.Map(ctx, blockListConcurrency, hashes, func(_ context.Context, hash string) (model.BlockSummary, error) {
		rec, err := e.blocks.GetBlock(hash)
		if err != nil {
			return model.BlockSummary{}, fmt.Errorf("get block %s: %w", hash, err)
		}
		return model.BlockSummary{
			Hash:      hash,
			Height:    rec.Height,
			Timestamp: rec.Timestamp,
			TxCount:   len(rec.TxIDs),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(page.Blocks, func(i, j int) bool {
		return page.Blocks[i].Height > page.Blocks[j].Height
	})
	return page, nil
}

// completeTimestamp replaces the entries at ts with every block stored at ts
// and reports whether older blocks remain in the day.
func (e *Explorer) completeTimestamp(entries []blockdb.TimeEntry, dayStart, ts int64) ([]blockdb.TimeEntry, bool, error) {
	newer := entries[:0]
	for _, entry := range entries {
		if entry.Timestamp > ts {
			newer = append(newer, entry)
		}
	}
	group, err := e.blocks.BlocksByTimeRange(ts, ts+1, 0)
	if err != nil {
		return nil, false, fmt.Errorf("list blocks at %d: %w", ts, err)
	}
	older, err := e.blocks.BlocksByTimeRange(dayStart, ts, 1)
	if err != nil {
		return nil, false, fmt.Errorf("list blocks before %d: %w", ts, err)
	}
	return append(newer, group...), len(older) > 0, nil
}

// GetTransactionOwnership returns the address, value and spend state of an output.
func (e *Explorer) GetTransactionOwnership(_ context.Context, txid string, index uint32) (*model.OutputInfo, error) {
	out, err := e.outputs.LookupOutput(txid, index)
	if err != nil {
		return nil, fmt.Errorf("lookup output %s:%d: %w", txid, index, err)
	}
	return out, nil
}

// Status reports node, sync and tip state.
func (e *Explorer) Status(ctx context.Context) (*model.Status, error) {
	node, err := e.node.GetNodeInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("get node info: %w", err)
	}
	tip, err := e.blocks.GetTip()
	if err != nil {
		return nil, fmt.Errorf("get tip: %w", err)
	}
	return &model.Status{Node: node, Sync: e.sync.Info(), Tip: tip}, nil
}

// SendRawTransaction broadcasts a signed transaction through the node.
func (e *Explorer) SendRawTransaction(ctx context.Context, rawHex string) (string, error) {
	txid, err := e.node.SendRawTransaction(ctx, rawHex)
	if err != nil {
		return "", fmt.Errorf("send raw transaction: %w", err)
	}
	e.logger.Info("transaction broadcast", zap.String("txid", txid))
	return txid, nil
}

// VerifyMessage checks a signed message against an address.
func (e *Explorer) VerifyMessage(ctx context.Context, address, signature, message string) (bool, error) {
	ok, err := e.node.VerifyMessage(ctx, address, signature, message)
	if err != nil {
		return false, fmt.Errorf("verify message: %w", err)
	}
	return ok, nil
}
