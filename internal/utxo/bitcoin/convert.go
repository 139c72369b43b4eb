// Package bitcoin implements the node-facing collaborators of the indexer:
// RPC access, transaction normalization, script decoding and block sources.
package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// BtcToSatoshis converts a BTC amount reported by the node to satoshis.
func BtcToSatoshis(value float64) (int64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return int64(amt), nil
}
