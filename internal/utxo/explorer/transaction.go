package explorer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/pkg/workerpool"
)

// GetTransaction returns the node's view of txid with inputs resolved from
// the output index and outputs annotated with observed spends.
func (e *Explorer) GetTransaction(ctx context.Context, txid string) (*model.TxInfo, error) {
	info, err := e.node.GetTxInfo(ctx, txid)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", txid, err)
	}
	if err := e.fillInputs(ctx, info); err != nil {
		return nil, err
	}
	if err := e.fillSpent(info); err != nil {
		return nil, err
	}
	return info, nil
}

type resolvedInput struct {
	input model.TxInfoInput
	ts    int64
}

func (e *Explorer) fillInputs(ctx context.Context, info *model.TxInfo) error {
	if info.Coinbase {
		return nil
	}
	resolved, err := workerpool.Map(ctx, inputConcurrency, info.Inputs, func(_ context.Context, in model.TxInfoInput) (resolvedInput, error) {
		return e.resolveInput(info.TxID, in)
	})
	if err != nil {
		return err
	}

	var valueIn int64
	incomplete := false
	for i, r := range resolved {
		info.Inputs[i] = r.input
		if !r.input.Resolved {
			incomplete = true
			continue
		}
		info.FirstSeenTs = r.ts
		valueIn += r.input.Value
	}
	if incomplete {
		info.IncompleteInputs = true
		return nil
	}
	info.ValueIn = valueIn
	info.Fees = valueIn - info.ValueOut
	return nil
}

func (e *Explorer) resolveInput(txid string, in model.TxInfoInput) (resolvedInput, error) {
	out, err := e.outputs.LookupOutput(in.PrevTxID, in.PrevVout)
	if errors.Is(err, model.ErrNotFound) {
		e.logger.Info("input output not indexed",
			zap.String("txid", txid), zap.String("prev_txid", in.PrevTxID), zap.Uint32("prev_vout", in.PrevVout))
		return resolvedInput{input: in}, nil
	}
	if err != nil {
		return resolvedInput{}, fmt.Errorf("lookup output %s:%d: %w", in.PrevTxID, in.PrevVout, err)
	}

	in.Resolved = true
	in.Address = out.Address
	in.Value = out.Value
	var ts int64
	switch {
	case out.Spend == nil:
		in.SpendNotRegistered = true
	case len(out.MultipleSpendAttempts) > 0:
		for _, attempt := range out.MultipleSpendAttempts {
			if attempt.TxID != txid {
				in.DoubleSpentTxID = attempt.TxID
				in.DoubleSpentIndex = attempt.Index
			}
		}
	case out.Spend.TxID != txid:
		in.DoubleSpentTxID = out.Spend.TxID
		in.DoubleSpentIndex = out.Spend.Index
	}
	if out.Spend != nil {
		ts = out.Spend.Ts
	}
	return resolvedInput{input: in, ts: ts}, nil
}

func (e *Explorer) fillSpent(info *model.TxInfo) error {
	for i := range info.Outputs {
		o := &info.Outputs[i]
		out, err := e.outputs.LookupOutput(info.TxID, o.Index)
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("lookup output %s:%d: %w", info.TxID, o.Index, err)
		}
		if out.Spend == nil {
			continue
		}
		o.SpentTxID = out.Spend.TxID
		o.SpentIndex = out.Spend.Index
		o.SpentTs = out.Spend.Ts
		o.MultipleSpendAttempts = out.MultipleSpendAttempts
	}
	return nil
}
