// Package kvstore wraps goleveldb as an ordered key-value store with atomic
// batches and lazy range scans.
package kvstore

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
)

const dropBatchSize = 10_000

// Options configures the underlying leveldb instance. Sizes are human readable, e.g. "64MiB".
type Options struct {
	CacheSize       string
	WriteBufferSize string
}

func (o Options) leveldb() (*opt.Options, error) {
	cacheSize, err := parseSize(o.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("parse cache size: %w", err)
	}
	writeBuffer, err := parseSize(o.WriteBufferSize)
	if err != nil {
		return nil, fmt.Errorf("parse write buffer size: %w", err)
	}
	return &opt.Options{
		BlockCacheCapacity: cacheSize,
		WriteBuffer:        writeBuffer,
	}, nil
}

func parseSize(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("size %s too large", s)
	}
	return int(v), nil
}

// DB is an ordered key-value store.
type DB struct {
	db     *leveldb.DB
	logger *zap.Logger
}

// Open opens or creates the store at path.
func Open(path string, opts Options, logger *zap.Logger) (*DB, error) {
	o, err := opts.leveldb()
	if err != nil {
		return nil, err
	}
	db, err := leveldb.OpenFile(path, o)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	logger.Info("store opened",
		zap.String("path", path),
		zap.String("cache", humanize.Bytes(uint64(o.BlockCacheCapacity))),
	)
	return &DB{db: db, logger: logger}, nil
}

// OpenMem opens an isolated in-memory store.
func OpenMem() (*DB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory leveldb: %w", err)
	}
	return &DB{db: db, logger: zap.NewNop()}, nil
}

// Close releases the store.
func (d *DB) Close() error {
	return d.db.Close()
}

// Get returns the value stored under key or model.ErrNotFound.
func (d *DB) Get(key []byte) ([]byte, error) {
	v, err := d.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get %x: %w", key, err)
	}
	return v, nil
}

// Has reports whether key is stored.
func (d *DB) Has(key []byte) (bool, error) {
	ok, err := d.db.Has(key, nil)
	if err != nil {
		return false, fmt.Errorf("has %x: %w", key, err)
	}
	return ok, nil
}

// Put stores a single key.
func (d *DB) Put(key, value []byte) error {
	if err := d.db.Put(key, value, nil); err != nil {
		return fmt.Errorf("put %x: %w", key, err)
	}
	return nil
}

// Write applies the batch atomically.
func (d *DB) Write(b *Batch) error {
	if b.Len() == 0 {
		return nil
	}
	if err := d.db.Write(&b.b, nil); err != nil {
		return fmt.Errorf("write batch of %d: %w", b.Len(), err)
	}
	return nil
}

// Item is a key-value pair yielded by Scan. Both slices are owned by the caller.
type Item struct {
	Key   []byte
	Value []byte
}

// Range selects keys for Scan. Prefix is used when Start and End are both nil.
// End is exclusive. Limit <= 0 means unlimited.
type Range struct {
	Prefix  []byte
	Start   []byte
	End     []byte
	Limit   int
	Reverse bool
}

func (r Range) slice() *util.Range {
	if r.Start == nil && r.End == nil {
		return util.BytesPrefix(r.Prefix)
	}
	return &util.Range{Start: r.Start, Limit: r.End}
}

// Scan lazily iterates the range. Every call opens a fresh iterator, so the
// returned sequence can be ranged over more than once.
func (d *DB) Scan(r Range) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		it := d.db.NewIterator(r.slice(), nil)
		defer it.Release()

		next := it.Next
		ok := it.First()
		if r.Reverse {
			next = it.Prev
			ok = it.Last()
		}
		n := 0
		for ; ok; ok = next() {
			item := Item{
				Key:   append([]byte(nil), it.Key()...),
				Value: append([]byte(nil), it.Value()...),
			}
			if !yield(item, nil) {
				return
			}
			n++
			if r.Limit > 0 && n >= r.Limit {
				return
			}
		}
		if err := it.Error(); err != nil {
			yield(Item{}, fmt.Errorf("iterate: %w", err))
		}
	}
}

// DeletePrefix removes every key under prefix, returning the count removed.
func (d *DB) DeletePrefix(prefix []byte) (int, error) {
	total := 0
	b := NewBatch()
	for item, err := range d.Scan(Range{Prefix: prefix}) {
		if err != nil {
			return total, err
		}
		b.Delete(item.Key)
		if b.Len() >= dropBatchSize {
			if err := d.Write(b); err != nil {
				return total, err
			}
			total += b.Len()
			b.Reset()
		}
	}
	if err := d.Write(b); err != nil {
		return total, err
	}
	total += b.Len()
	return total, nil
}

// Drop deletes every key in the store.
func (d *DB) Drop() error {
	n, err := d.DeletePrefix(nil)
	if err != nil {
		return fmt.Errorf("drop store: %w", err)
	}
	d.logger.Warn("store dropped", zap.Int("keys", n))
	return nil
}

// Batch collects writes applied atomically by DB.Write.
type Batch struct {
	b leveldb.Batch
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Put queues a write.
func (b *Batch) Put(key, value []byte) {
	b.b.Put(key, value)
}

// Delete queues a deletion.
func (b *Batch) Delete(key []byte) {
	b.b.Delete(key)
}

// Len returns the number of queued operations.
func (b *Batch) Len() int {
	return b.b.Len()
}

// Reset clears the batch.
func (b *Batch) Reset() {
	b.b.Reset()
}
