package clickhouse

import (
	"context"
	"fmt"
	"time"
)

const resetNetworkQuery = `
ALTER TABLE indexed_blocks
DELETE WHERE coin = ? AND network = ?`

// ResetNetwork deletes every exported row of the repository's coin and network.
func (r *Repository) ResetNetwork(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("reset_network", r.coin, r.network, err, start)
	}()

	if err = r.conn.Exec(ctx, resetNetworkQuery, string(r.coin), string(r.network)); err != nil {
		return fmt.Errorf("delete exported blocks: %w", err)
	}
	return nil
}
