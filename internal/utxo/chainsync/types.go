package chainsync

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/kvstore"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ChainIndex interface {
		PutOps(b *kvstore.Batch, block *model.RawBlock, height int64) error
		SetHeightOps(b *kvstore.Batch, hash string, height int64) error
		SetNextOps(b *kvstore.Batch, hash, next string) error
		OrphanizeOps(b *kvstore.Batch, hash string) ([]string, error)
		SetTipOps(b *kvstore.Batch, tip model.Tip) error
		CommitTip(tip model.Tip)
		InvalidateTip()
		GetTip() (model.Tip, error)
		Has(hash string) (bool, error)
		GetHeight(hash string) (int64, error)
		GetPrev(hash string) (string, error)
		GetNext(hash string) (string, error)
		GetBlock(hash string) (*model.BlockRecord, error)
	}
	OutputIndex interface {
		RecordTransactionOps(b *kvstore.Batch, tx *model.Transaction, ts int64) ([]string, error)
	}
	BatchWriter interface {
		Write(b *kvstore.Batch) error
	}
	Metrics interface {
		ObserveStoreBlock(result *model.StoreResult, err error, started time.Time)
	}
)
