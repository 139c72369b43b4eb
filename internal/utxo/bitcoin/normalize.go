package bitcoin

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/pkg/safe"
)

// TxFromWire normalizes a wire transaction first observed at ts.
func TxFromWire(tx *wire.MsgTx, ts int64, decoder *ScriptDecoder) model.Transaction {
	out := model.Transaction{
		TxID:     tx.TxHash().String(),
		Time:     ts,
		Coinbase: blockchain.IsCoinBaseTx(tx),
		Outputs:  make([]model.TransactionOutput, 0, len(tx.TxOut)),
	}
	if !out.Coinbase {
		out.Inputs = make([]model.TransactionInput, 0, len(tx.TxIn))
		for i, in := range tx.TxIn {
			out.Inputs = append(out.Inputs, model.TransactionInput{
				Index:    uint32(i),
				PrevTxID: in.PreviousOutPoint.Hash.String(),
				PrevVout: in.PreviousOutPoint.Index,
			})
		}
	}
	for i, txOut := range tx.TxOut {
		out.Outputs = append(out.Outputs, model.TransactionOutput{
			Index:   uint32(i),
			Value:   txOut.Value,
			Address: decodeAddress(decoder, txOut.PkScript),
			Script:  txOut.PkScript,
		})
	}
	return out
}

// BlockFromWire normalizes a wire block. Transactions carry the block timestamp.
func BlockFromWire(block *wire.MsgBlock, decoder *ScriptDecoder) *model.RawBlock {
	ts := block.Header.Timestamp.Unix()
	raw := &model.RawBlock{
		Hash:         block.BlockHash().String(),
		PrevHash:     block.Header.PrevBlock.String(),
		Timestamp:    ts,
		Transactions: make([]model.Transaction, 0, len(block.Transactions)),
	}
	for _, tx := range block.Transactions {
		raw.Transactions = append(raw.Transactions, TxFromWire(tx, ts, decoder))
	}
	return raw
}

// TxFromRPC normalizes a decoded RPC transaction first observed at ts.
func TxFromRPC(tx *btcjson.TxRawResult, ts int64, decoder *ScriptDecoder) (model.Transaction, error) {
	out := model.Transaction{
		TxID:     tx.Txid,
		Time:     ts,
		Coinbase: len(tx.Vin) > 0 && tx.Vin[0].IsCoinBase(),
		Outputs:  make([]model.TransactionOutput, 0, len(tx.Vout)),
	}
	if !out.Coinbase {
		out.Inputs = make([]model.TransactionInput, 0, len(tx.Vin))
		for i, in := range tx.Vin {
			index, err := safe.Uint32(i)
			if err != nil {
				return model.Transaction{}, fmt.Errorf("tx %s input index overflow: %w", tx.Txid, err)
			}
			out.Inputs = append(out.Inputs, model.TransactionInput{
				Index:    index,
				PrevTxID: in.Txid,
				PrevVout: in.Vout,
			})
		}
	}
	for _, vout := range tx.Vout {
		output, err := outputFromRPC(tx.Txid, vout, decoder)
		if err != nil {
			return model.Transaction{}, err
		}
		out.Outputs = append(out.Outputs, output)
	}
	return out, nil
}

// BlockFromRPC normalizes a verbose RPC block.
func BlockFromRPC(src *btcjson.GetBlockVerboseTxResult, decoder *ScriptDecoder) (*model.RawBlock, error) {
	prev := src.PreviousHash
	if prev == "" {
		prev = model.GenesisParentHash
	}
	raw := &model.RawBlock{
		Hash:         src.Hash,
		PrevHash:     prev,
		Timestamp:    src.Time,
		Transactions: make([]model.Transaction, 0, len(src.Tx)),
	}
	for i := range src.Tx {
		tx, err := TxFromRPC(&src.Tx[i], src.Time, decoder)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", src.Hash, err)
		}
		raw.Transactions = append(raw.Transactions, tx)
	}
	return raw, nil
}

// TxInfoFromRPC builds the node part of a transaction detail. Input values and
// addresses are filled later from the local index.
func TxInfoFromRPC(tx *btcjson.TxRawResult, decoder *ScriptDecoder) (*model.TxInfo, error) {
	norm, err := TxFromRPC(tx, tx.Time, decoder)
	if err != nil {
		return nil, err
	}
	confirmations, err := safe.Int64(tx.Confirmations)
	if err != nil {
		return nil, fmt.Errorf("tx %s confirmations overflow: %w", tx.Txid, err)
	}
	info := &model.TxInfo{
		TxID:          tx.Txid,
		BlockHash:     tx.BlockHash,
		Confirmations: confirmations,
		Time:          tx.Time,
		Coinbase:      norm.Coinbase,
		Inputs:        make([]model.TxInfoInput, 0, len(norm.Inputs)),
		Outputs:       make([]model.TxInfoOutput, 0, len(norm.Outputs)),
	}
	for _, in := range norm.Inputs {
		info.Inputs = append(info.Inputs, model.TxInfoInput{PrevTxID: in.PrevTxID, PrevVout: in.PrevVout})
	}
	for _, o := range norm.Outputs {
		info.ValueOut += o.Value
		info.Outputs = append(info.Outputs, model.TxInfoOutput{
			Index:   o.Index,
			Value:   o.Value,
			Address: o.Address,
			Script:  o.Script,
		})
	}
	return info, nil
}

func outputFromRPC(txid string, vout btcjson.Vout, decoder *ScriptDecoder) (model.TransactionOutput, error) {
	if vout.Value < 0 {
		return model.TransactionOutput{}, fmt.Errorf("tx %s output %d negative value: %f", txid, vout.N, vout.Value)
	}
	value, err := BtcToSatoshis(vout.Value)
	if err != nil {
		return model.TransactionOutput{}, fmt.Errorf("tx %s output %d value: %w", txid, vout.N, err)
	}
	script, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return model.TransactionOutput{}, fmt.Errorf("tx %s output %d script: %w", txid, vout.N, err)
	}
	return model.TransactionOutput{
		Index:   vout.N,
		Value:   value,
		Address: decodeAddress(decoder, script),
		Script:  script,
	}, nil
}

// decodeAddress returns "" for scripts that do not pay exactly one address;
// such outputs are stored but never address-indexed.
func decodeAddress(decoder *ScriptDecoder, script []byte) string {
	addr, err := decoder.Address(script)
	if errors.Is(err, model.ErrMalformedAddressScript) {
		return ""
	}
	return addr
}
