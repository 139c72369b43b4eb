package clickhouse

import (
	"context"
	"fmt"
	"time"
)

const mainChainHeightQuery = `
SELECT coalesce(max(height), toInt64(-1)) AS main_height
FROM indexed_blocks FINAL
WHERE coin = ? AND network = ? AND is_main_chain = 1`

// MainChainHeight returns the highest exported main-chain height, or -1 when
// nothing was exported yet.
func (r *Repository) MainChainHeight(ctx context.Context) (int64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("main_chain_height", r.coin, r.network, err, start)
	}()

	row := r.conn.QueryRow(ctx, mainChainHeightQuery, string(r.coin), string(r.network))
	if err = row.Err(); err != nil {
		return 0, fmt.Errorf("query main chain height: %w", err)
	}

	var height int64
	if err = row.Scan(&height); err != nil {
		return 0, fmt.Errorf("scan main chain height: %w", err)
	}
	return height, nil
}
