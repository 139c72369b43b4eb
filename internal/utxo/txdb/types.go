package txdb

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockIndex resolves which main-chain block holds a transaction.
	BlockIndex interface {
		GetBlockForTx(txid string) (string, int64, error)
	}
	Metrics interface {
		ObserveSkippedOutput(reason string)
		ObserveCacheWrites(n int)
		ObserveFillConfirmations(err error, outputs int, started time.Time)
	}
)
