// Package blockdb stores block linkage, heights and the main chain tip.
package blockdb

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/kvstore"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
)

// Store is the chain index. Mutations come in two forms: *Ops methods that
// append to a caller-owned batch, and plain methods that write their own batch.
type Store struct {
	db     *kvstore.DB
	logger *zap.Logger

	mu  sync.RWMutex
	tip *model.Tip
}

// New returns a chain index backed by db.
func New(db *kvstore.DB, logger *zap.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.Named("blockdb"),
	}
}

// PutOps queues the block record, its linkage to the parent and its timestamp
// index entry, assigning height.
func (s *Store) PutOps(b *kvstore.Batch, block *model.RawBlock, height int64) error {
	hash, err := kvstore.Hash(block.Hash)
	if err != nil {
		return err
	}
	prev, err := kvstore.Hash(block.PrevHash)
	if err != nil {
		return err
	}
	txids, err := hashKeys(block.TxIDs())
	if err != nil {
		return fmt.Errorf("block %s: %w", block.Hash, err)
	}

	b.Put(kvstore.Key(prefixPrev, hash), prev)
	b.Put(kvstore.Key(prefixBlock, hash), encodeBlock(block.Timestamp, txids))
	b.Put(timestampKey(block.Timestamp, hash), nil)
	return s.setHeightOps(b, hash, txids, model.OrphanHeight, height)
}

// Put stores the block at height in one batch.
func (s *Store) Put(block *model.RawBlock, height int64) error {
	b := kvstore.NewBatch()
	if err := s.PutOps(b, block, height); err != nil {
		return err
	}
	return s.db.Write(b)
}

// SetHeightOps queues a main-chain membership change for a stored block.
// A non-negative height maps the block's transactions to it, a negative one
// removes the mappings the block still owns.
func (s *Store) SetHeightOps(b *kvstore.Batch, hash string, height int64) error {
	key, err := kvstore.Hash(hash)
	if err != nil {
		return err
	}
	_, txids, err := s.blockData(key)
	if err != nil {
		return fmt.Errorf("set height of %s: %w", hash, err)
	}
	old, err := s.height(key)
	if err != nil {
		return fmt.Errorf("set height of %s: %w", hash, err)
	}
	ids, err := hashKeys(txids)
	if err != nil {
		return err
	}
	return s.setHeightOps(b, key, ids, old, height)
}

// SetHeight writes a height change in one batch.
func (s *Store) SetHeight(hash string, height int64) error {
	b := kvstore.NewBatch()
	if err := s.SetHeightOps(b, hash, height); err != nil {
		return err
	}
	return s.db.Write(b)
}

func (s *Store) setHeightOps(b *kvstore.Batch, hash []byte, txids [][]byte, old, height int64) error {
	b.Put(kvstore.Key(prefixHeight, hash), kvstore.Int64(height))
	if height >= 0 {
		b.Put(mainKey(height), hash)
		for _, id := range txids {
			b.Put(kvstore.Key(prefixTxBlock, id), encodeHashHeight(hash, height))
		}
		return nil
	}

	if old >= 0 {
		owner, err := s.db.Get(mainKey(old))
		switch {
		case err == nil && bytes.Equal(owner, hash):
			b.Delete(mainKey(old))
		case err != nil && !errors.Is(err, model.ErrNotFound):
			return err
		}
	}
	for _, id := range txids {
		v, err := s.db.Get(kvstore.Key(prefixTxBlock, id))
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		// the same transaction may be mapped to a block on the current main chain
		if bytes.HasPrefix(v, hash) {
			b.Delete(kvstore.Key(prefixTxBlock, id))
		}
	}
	return nil
}

// SetNextOps queues the forward link hash -> next.
func (s *Store) SetNextOps(b *kvstore.Batch, hash, next string) error {
	key, err := kvstore.Hash(hash)
	if err != nil {
		return err
	}
	nextKey, err := kvstore.Hash(next)
	if err != nil {
		return err
	}
	b.Put(kvstore.Key(prefixNext, key), nextKey)
	return nil
}

// OrphanizeOps walks forward from hash along next links and queues the
// orphan height for every main-chain block it meets. The walk stops at the
// first block that is already orphaned, so repeating it is a no-op. It returns
// the hashes orphaned, in chain order.
func (s *Store) OrphanizeOps(b *kvstore.Batch, hash string) ([]string, error) {
	var orphaned []string
	seen := make(map[string]struct{})
	for hash != "" {
		if _, ok := seen[hash]; ok {
			return nil, fmt.Errorf("orphanize: linkage cycle at %s", hash)
		}
		seen[hash] = struct{}{}

		height, err := s.GetHeight(hash)
		if err != nil {
			return nil, fmt.Errorf("orphanize %s: %w", hash, err)
		}
		if height < 0 {
			break
		}
		if err := s.SetHeightOps(b, hash, model.OrphanHeight); err != nil {
			return nil, err
		}
		orphaned = append(orphaned, hash)

		hash, err = s.GetNext(hash)
		if errors.Is(err, model.ErrNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return orphaned, nil
}

// Orphanize runs OrphanizeOps in its own batch.
func (s *Store) Orphanize(hash string) ([]string, error) {
	b := kvstore.NewBatch()
	orphaned, err := s.OrphanizeOps(b, hash)
	if err != nil {
		return nil, err
	}
	return orphaned, s.db.Write(b)
}

// Has reports whether the block is stored.
func (s *Store) Has(hash string) (bool, error) {
	key, err := kvstore.Hash(hash)
	if err != nil {
		return false, err
	}
	return s.db.Has(kvstore.Key(prefixHeight, key))
}

// GetHeight returns the stored height, model.OrphanHeight for orphans and
// model.ErrNotFound for unknown blocks.
func (s *Store) GetHeight(hash string) (int64, error) {
	key, err := kvstore.Hash(hash)
	if err != nil {
		return 0, err
	}
	return s.height(key)
}

func (s *Store) height(key []byte) (int64, error) {
	v, err := s.db.Get(kvstore.Key(prefixHeight, key))
	if err != nil {
		return 0, err
	}
	return kvstore.DecodeInt64(v)
}

// GetPrev returns the previous hash of a stored block.
func (s *Store) GetPrev(hash string) (string, error) {
	return s.link(prefixPrev, hash)
}

// GetNext returns the next hash on the branch the block was last extended by.
func (s *Store) GetNext(hash string) (string, error) {
	return s.link(prefixNext, hash)
}

func (s *Store) link(prefix []byte, hash string) (string, error) {
	key, err := kvstore.Hash(hash)
	if err != nil {
		return "", err
	}
	v, err := s.db.Get(kvstore.Key(prefix, key))
	if err != nil {
		return "", err
	}
	return kvstore.HashString(v)
}

func (s *Store) blockData(key []byte) (int64, []string, error) {
	v, err := s.db.Get(kvstore.Key(prefixBlock, key))
	if err != nil {
		return 0, nil, err
	}
	return decodeBlock(v)
}

// GetTxIDs returns the ordered transaction ids of a stored block.
func (s *Store) GetTxIDs(hash string) ([]string, error) {
	key, err := kvstore.Hash(hash)
	if err != nil {
		return nil, err
	}
	_, txids, err := s.blockData(key)
	return txids, err
}

// GetBlock returns the full linkage record of a stored block.
func (s *Store) GetBlock(hash string) (*model.BlockRecord, error) {
	key, err := kvstore.Hash(hash)
	if err != nil {
		return nil, err
	}
	ts, txids, err := s.blockData(key)
	if err != nil {
		return nil, err
	}
	height, err := s.height(key)
	if err != nil {
		return nil, err
	}
	prev, err := s.GetPrev(hash)
	if err != nil {
		return nil, err
	}
	next, err := s.GetNext(hash)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	if next != "" {
		// forward links of orphaned blocks are kept but not exposed
		nh, err := s.GetHeight(next)
		if err != nil {
			return nil, err
		}
		if height < 0 || nh < 0 {
			next = ""
		}
	}
	return &model.BlockRecord{
		Hash:      hash,
		PrevHash:  prev,
		NextHash:  next,
		Height:    height,
		Timestamp: ts,
		TxIDs:     txids,
	}, nil
}

// GetBlockForTx returns the main-chain block containing txid.
func (s *Store) GetBlockForTx(txid string) (string, int64, error) {
	key, err := kvstore.Hash(txid)
	if err != nil {
		return "", 0, err
	}
	v, err := s.db.Get(kvstore.Key(prefixTxBlock, key))
	if err != nil {
		return "", 0, err
	}
	return decodeHashHeight(v)
}

// GetHashAtHeight returns the main-chain block at height.
func (s *Store) GetHashAtHeight(height int64) (string, error) {
	if height < 0 {
		return "", model.ErrNotFound
	}
	v, err := s.db.Get(mainKey(height))
	if err != nil {
		return "", err
	}
	hash, err := kvstore.HashString(v)
	if err != nil {
		return "", err
	}
	// entries above a shortened chain are left behind and must not be trusted
	h, err := s.height(v)
	if err != nil {
		return "", err
	}
	if h != height {
		return "", model.ErrNotFound
	}
	return hash, nil
}

// TimeEntry is a block found by BlocksByTimeRange.
type TimeEntry struct {
	Hash      string
	Timestamp int64
}

// BlocksByTimeRange returns blocks with start <= ts < end, newest first.
func (s *Store) BlocksByTimeRange(start, end int64, limit int) ([]TimeEntry, error) {
	r := kvstore.Range{
		Start:   kvstore.Key(prefixTimestamp, kvstore.Uint64(clampTs(start))),
		End:     kvstore.Key(prefixTimestamp, kvstore.Uint64(clampTs(end))),
		Limit:   limit,
		Reverse: true,
	}
	var out []TimeEntry
	for item, err := range s.db.Scan(r) {
		if err != nil {
			return nil, err
		}
		k := item.Key[len(prefixTimestamp):]
		hash, err := kvstore.HashString(k[8:])
		if err != nil {
			return nil, err
		}
		out = append(out, TimeEntry{Hash: hash, Timestamp: int64(kvstore.DecodeUint64(k[:8]))})
	}
	return out, nil
}

// SetTipOps queues the tip record. Call CommitTip once the batch is written.
func (s *Store) SetTipOps(b *kvstore.Batch, tip model.Tip) error {
	key, err := kvstore.Hash(tip.Hash)
	if err != nil {
		return err
	}
	b.Put(keyTip, encodeHashHeight(key, tip.Height))
	return nil
}

// CommitTip updates the in-memory tip after its batch was written.
func (s *Store) CommitTip(tip model.Tip) {
	s.mu.Lock()
	s.tip = &tip
	s.mu.Unlock()
}

// SetTip writes the tip record and caches it.
func (s *Store) SetTip(tip model.Tip) error {
	b := kvstore.NewBatch()
	if err := s.SetTipOps(b, tip); err != nil {
		return err
	}
	if err := s.db.Write(b); err != nil {
		return err
	}
	s.CommitTip(tip)
	return nil
}

// GetTip returns the main chain tip, an empty tip when no block was accepted.
func (s *Store) GetTip() (model.Tip, error) {
	s.mu.RLock()
	tip := s.tip
	s.mu.RUnlock()
	if tip != nil {
		return *tip, nil
	}

	v, err := s.db.Get(keyTip)
	if errors.Is(err, model.ErrNotFound) {
		return model.Tip{}, nil
	}
	if err != nil {
		return model.Tip{}, err
	}
	hash, height, err := decodeHashHeight(v)
	if err != nil {
		return model.Tip{}, err
	}
	t := model.Tip{Hash: hash, Height: height}
	s.CommitTip(t)
	return t, nil
}

// InvalidateTip drops the cached tip so the next GetTip re-reads the store.
func (s *Store) InvalidateTip() {
	s.mu.Lock()
	s.tip = nil
	s.mu.Unlock()
}

// Depth returns how many blocks were built on top of a main-chain block,
// zero for the tip. Orphans report model.ErrNotFound.
func (s *Store) Depth(hash string) (int64, error) {
	height, err := s.GetHeight(hash)
	if err != nil {
		return 0, err
	}
	if height < 0 {
		return 0, fmt.Errorf("depth of orphan %s: %w", hash, model.ErrNotFound)
	}
	tip, err := s.GetTip()
	if err != nil {
		return 0, err
	}
	return tip.Height - height, nil
}

// SetLastFileIndex records the last fully processed bootstrap block file.
func (s *Store) SetLastFileIndex(index uint32) error {
	return s.db.Put(keyFileIndex, kvstore.Uint32(index))
}

// GetLastFileIndex returns the last processed bootstrap block file, or model.ErrNotFound.
func (s *Store) GetLastFileIndex() (uint32, error) {
	v, err := s.db.Get(keyFileIndex)
	if err != nil {
		return 0, err
	}
	if len(v) != 4 {
		return 0, fmt.Errorf("decode file index: bad length %d", len(v))
	}
	return kvstore.DecodeUint32(v), nil
}
