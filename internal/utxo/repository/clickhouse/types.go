package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time)
	}
	// Conn is the subset of the ClickHouse connection used by the repository.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		QueryRow(ctx context.Context, query string, args ...interface{}) Row
		Exec(ctx context.Context, query string, args ...interface{}) error
		Close() error
	}
	Batch interface {
		Append(v ...interface{}) error
		Send() error
		Abort() error
	}
	Row interface {
		Scan(dest ...interface{}) error
		Err() error
	}
)
