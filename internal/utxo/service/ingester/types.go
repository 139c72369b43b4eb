package ingester

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/chainsync"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Engine interface {
		StoreTipBlock(ctx context.Context, block *model.RawBlock, opts chainsync.StoreOptions) (*model.StoreResult, error)
		StoreTx(ctx context.Context, tx *model.Transaction) ([]string, error)
		LastAccepted() (model.Tip, error)
	}
	Node interface {
		GetBlockCount(ctx context.Context) (int64, error)
		GetBlockHashAtHeight(ctx context.Context, height int64) (string, error)
		GetBlock(ctx context.Context, hash string) (*btcjson.GetBlockVerboseTxResult, error)
	}
	BlockStore interface {
		GetHeight(hash string) (int64, error)
		GetPrev(hash string) (string, error)
		GetLastFileIndex() (uint32, error)
		SetLastFileIndex(index uint32) error
	}
	// FileBlockSource is a block source reading numbered block files.
	FileBlockSource interface {
		Next(ctx context.Context) (*model.RawBlock, error)
		Close() error
		FileIndex() int
	}
	// ChangeSink receives height changes of stored blocks for export.
	ChangeSink interface {
		WriteChanges(ctx context.Context, changes []model.HeightChange) error
	}
	Resyncer interface {
		RunRPC(ctx context.Context) error
	}
	ExportRepository interface {
		InsertBlockChanges(ctx context.Context, changes []model.HeightChange) error
	}

	HistoricSyncMetrics interface {
		ObserveBlock(source string, err error, height int64)
		ObserveRun(source string, err error, started time.Time)
		SetChainHeight(height int64)
	}
	LiveSyncMetrics interface {
		ObserveEvent(event string, touched int, err error)
		ObserveResync(err error)
	}
)
