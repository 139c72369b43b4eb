package explorer

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/blockdb"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/txdb"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockIndex interface {
		GetBlock(hash string) (*model.BlockRecord, error)
		GetHashAtHeight(height int64) (string, error)
		BlocksByTimeRange(start, end int64, limit int) ([]blockdb.TimeEntry, error)
		GetTip() (model.Tip, error)
	}
	OutputIndex interface {
		LookupOutput(txid string, index uint32) (*model.OutputInfo, error)
		LookupOutputsByAddress(addr string, q txdb.AddressQuery) ([]*model.AddressOutput, []byte, error)
		FillConfirmations(ctx context.Context, outputs []*model.AddressOutput, tipHeight int64) error
		CacheConfirmations(outputs []*model.AddressOutput) error
		FillScripts(outputs []*model.AddressOutput) error
		SafeConfirmations() int64
	}
	Node interface {
		GetTxInfo(ctx context.Context, txid string) (*model.TxInfo, error)
		SendRawTransaction(ctx context.Context, rawHex string) (string, error)
		VerifyMessage(ctx context.Context, address, signature, message string) (bool, error)
		GetNodeInfo(ctx context.Context) (model.NodeInfo, error)
	}
	SyncReporter interface {
		Info() model.SyncInfo
	}
)
