package bitcoin

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
)

const defaultRPCTimeout = 30 * time.Second

// RPCClient wraps the node RPC with metrics instrumentation, call timeouts and
// error classification.
type RPCClient struct {
	client     NodeRPC
	rpcMetrics RPCMetrics
	decoder    *ScriptDecoder
	params     *chaincfg.Params
	timeout    time.Duration
}

// NewRPCClient constructs an instrumented RPC client. A zero timeout selects the default.
func NewRPCClient(client NodeRPC, rpcMetrics RPCMetrics, decoder *ScriptDecoder, timeout time.Duration) (*RPCClient, error) {
	if client == nil {
		return nil, errors.New("rpc client is required")
	}
	if rpcMetrics == nil {
		return nil, errors.New("rpc metrics is required")
	}
	if decoder == nil {
		return nil, errors.New("script decoder is required")
	}
	if timeout <= 0 {
		timeout = defaultRPCTimeout
	}
	return &RPCClient{
		client:     client,
		rpcMetrics: rpcMetrics,
		decoder:    decoder,
		params:     decoder.Params(),
		timeout:    timeout,
	}, nil
}

// GetBlockCount returns the height of the node's best block.
func (r *RPCClient) GetBlockCount(ctx context.Context) (int64, error) {
	return call(ctx, r, "get_block_count", r.client.GetBlockCount)
}

// GetBlockHashAtHeight returns the hash of the node's main-chain block at height.
func (r *RPCClient) GetBlockHashAtHeight(ctx context.Context, height int64) (string, error) {
	hash, err := call(ctx, r, "get_block_hash", func() (*chainhash.Hash, error) {
		return r.client.GetBlockHash(height)
	})
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// GetBlock returns a verbose block with decoded transactions.
func (r *RPCClient) GetBlock(ctx context.Context, hash string) (*btcjson.GetBlockVerboseTxResult, error) {
	h, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return nil, fmt.Errorf("parse block hash %q: %w", hash, err)
	}
	return call(ctx, r, "get_block_verbose_tx", func() (*btcjson.GetBlockVerboseTxResult, error) {
		return r.client.GetBlockVerboseTx(h)
	})
}

// GetTxInfo returns the node's view of a transaction.
func (r *RPCClient) GetTxInfo(ctx context.Context, txid string) (*model.TxInfo, error) {
	h, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("parse txid %q: %w", txid, err)
	}
	raw, err := call(ctx, r, "get_raw_transaction", func() (*btcjson.TxRawResult, error) {
		return r.client.GetRawTransactionVerbose(h)
	})
	if err != nil {
		return nil, err
	}
	return TxInfoFromRPC(raw, r.decoder)
}

// SendRawTransaction broadcasts a hex encoded transaction and returns its txid.
func (r *RPCClient) SendRawTransaction(ctx context.Context, rawHex string) (string, error) {
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return "", fmt.Errorf("decode raw transaction: %w", err)
	}
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return "", fmt.Errorf("deserialize raw transaction: %w", err)
	}
	hash, err := call(ctx, r, "send_raw_transaction", func() (*chainhash.Hash, error) {
		return r.client.SendRawTransaction(&tx, false)
	})
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// VerifyMessage checks a signed message against an address.
func (r *RPCClient) VerifyMessage(ctx context.Context, address, signature, message string) (bool, error) {
	addr, err := btcutil.DecodeAddress(address, r.params)
	if err != nil {
		return false, fmt.Errorf("decode address %q: %w", address, err)
	}
	return call(ctx, r, "verify_message", func() (bool, error) {
		return r.client.VerifyMessage(addr, signature, message)
	})
}

// GetNodeInfo reports the node's chain and best block.
func (r *RPCClient) GetNodeInfo(ctx context.Context) (model.NodeInfo, error) {
	info, err := call(ctx, r, "get_blockchain_info", r.client.GetBlockChainInfo)
	if err != nil {
		return model.NodeInfo{}, err
	}
	return model.NodeInfo{
		Chain:         info.Chain,
		Blocks:        int64(info.Blocks),
		BestBlockHash: info.BestBlockHash,
		Difficulty:    info.Difficulty,
	}, nil
}

// call runs fn with the client timeout and classifies its error. The rpcclient
// API is not context aware, so a timed out call keeps running in the background
// and its result is dropped.
func call[T any](ctx context.Context, r *RPCClient, operation string, fn func() (T, error)) (res T, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe(operation, err, started)
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return res, fmt.Errorf("%s: %w: %w", operation, model.ErrUpstreamUnavailable, ctx.Err())
	case out := <-done:
		if out.err != nil {
			return res, classifyRPCError(operation, out.err)
		}
		return out.value, nil
	}
}

func classifyRPCError(operation string, err error) error {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		if rpcErr.Code == btcjson.ErrRPCInvalidAddressOrKey {
			return fmt.Errorf("%s: %w: %w", operation, model.ErrNotFound, err)
		}
		return fmt.Errorf("%s: %w", operation, err)
	}
	return fmt.Errorf("%s: %w: %w", operation, model.ErrUpstreamUnavailable, err)
}
