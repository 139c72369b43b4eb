package explorer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/balance"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/txdb"
)

// GetAddressState aggregates the index entries of addr. With OnlyUnspent
// only the UTXO list is filled.
func (e *Explorer) GetAddressState(ctx context.Context, addr string, opts model.AddressOptions) (*model.AddressState, error) {
	q := txdb.AddressQuery{IgnoreCache: opts.IgnoreCache}
	if opts.TxLimit > 0 {
		q.Limit = opts.TxLimit
	}
	outs, _, err := e.outputs.LookupOutputsByAddress(addr, q)
	if err != nil {
		return nil, fmt.Errorf("lookup outputs of %s: %w", addr, err)
	}
	tip, err := e.blocks.GetTip()
	if err != nil {
		return nil, fmt.Errorf("get tip: %w", err)
	}
	if err := e.outputs.FillConfirmations(ctx, outs, tip.Height); err != nil {
		return nil, fmt.Errorf("fill confirmations of %s: %w", addr, err)
	}
	if !opts.IgnoreCache {
		if err := e.outputs.CacheConfirmations(outs); err != nil {
			// the cache is an optimization, the answer is still complete
			e.logger.Warn("cache confirmations failed", zap.String("address", addr), zap.Error(err))
		}
	}

	if opts.OnlyUnspent {
		unspent := make([]*model.AddressOutput, 0, len(outs))
		for _, o := range outs {
			if !o.IsSpent() {
				unspent = append(unspent, o)
			}
		}
		if err := e.outputs.FillScripts(unspent); err != nil {
			return nil, fmt.Errorf("fill scripts of %s: %w", addr, err)
		}
		return &model.AddressState{
			Address: addr,
			UTXOs:   balance.Unspent(addr, unspent, e.outputs.SafeConfirmations()),
		}, nil
	}
	return balance.Aggregate(addr, outs, opts), nil
}
