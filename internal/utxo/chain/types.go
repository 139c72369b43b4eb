// Package chain defines the source interfaces shared between ingestion drivers
// and the node-facing implementations.
package chain

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
)

type (
	// BlockSource yields candidate blocks in delivery order. Next returns io.EOF
	// once the source is exhausted.
	BlockSource interface {
		Next(ctx context.Context) (*model.RawBlock, error)
		Close() error
	}

	// LiveSource pushes gossiped blocks and transactions until ctx is done or the
	// upstream connection fails.
	LiveSource interface {
		Run(ctx context.Context, events chan<- LiveEvent) error
	}

	// BlockSignal notifies that the node learned a new best block.
	BlockSignal interface {
		Run(ctx context.Context, notify chan<- struct{}) error
	}
)

// LiveEvent carries exactly one of Block or Tx.
type LiveEvent struct {
	Block *model.RawBlock
	Tx    *model.Transaction
}
