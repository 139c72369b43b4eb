package bitcoin

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// NodeRPC is the subset of *rpcclient.Client used by the indexer.
	NodeRPC interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
		SendRawTransaction(tx *wire.MsgTx, allowHighFees bool) (*chainhash.Hash, error)
		VerifyMessage(address btcutil.Address, signature, message string) (bool, error)
		GetBlockChainInfo() (*btcjson.GetBlockChainInfoResult, error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// BlockFetcher reads verbose blocks from the node.
	BlockFetcher interface {
		GetBlock(ctx context.Context, hash string) (*btcjson.GetBlockVerboseTxResult, error)
		GetBlockHashAtHeight(ctx context.Context, height int64) (string, error)
	}
)
