package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/pkg/safe"
)

const insertBlockChangesQuery = `
INSERT INTO indexed_blocks (
	coin,
	network,
	hash,
	prev_hash,
	height,
	is_main_chain,
	timestamp,
	tx_count,
	updated_at
) VALUES`

// InsertBlockChanges appends one row per change. Rows of the same block are
// versioned by updated_at, which grows by one nanosecond per row so later
// changes in a batch win the merge.
func (r *Repository) InsertBlockChanges(ctx context.Context, changes []model.HeightChange) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_block_changes", r.coin, r.network, err, start)
	}()

	if len(changes) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlockChangesQuery)
	if err != nil {
		return fmt.Errorf("prepare block changes batch: %w", err)
	}

	version := r.now().UTC()
	for i, c := range changes {
		var mainChain uint8
		if c.Height != model.OrphanHeight {
			mainChain = 1
		}
		var txCount uint32
		if txCount, err = safe.Uint32(c.TxCount); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("tx count of %s: %w", c.Hash, err)
		}
		if err = batch.Append(
			string(r.coin),
			string(r.network),
			c.Hash,
			c.PrevHash,
			c.Height,
			mainChain,
			time.Unix(c.Timestamp, 0).UTC(),
			txCount,
			version.Add(time.Duration(i)),
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block change %s: %w", c.Hash, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert block changes: %w", err)
	}
	return nil
}
