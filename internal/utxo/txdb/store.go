// Package txdb indexes transaction outputs, their spends and the outputs
// touched by each address.
package txdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/kvstore"
	"github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-indexer/pkg/workerpool"
)

const (
	// DefaultSafeConfirmations is the depth after which confirmation state is cached.
	DefaultSafeConfirmations = 6

	fillConcurrency = 5
)

// Store is the output, spend and address index.
type Store struct {
	db                *kvstore.DB
	blocks            BlockIndex
	metrics           Metrics
	safeConfirmations int64
	logger            *zap.Logger
}

// New returns an index store. safeConfirmations <= 0 selects DefaultSafeConfirmations.
func New(db *kvstore.DB, blocks BlockIndex, metrics Metrics, safeConfirmations int64, logger *zap.Logger) (*Store, error) {
	if metrics == nil {
		return nil, errors.New("index store metrics is required")
	}
	if safeConfirmations <= 0 {
		safeConfirmations = DefaultSafeConfirmations
	}
	return &Store{
		db:                db,
		blocks:            blocks,
		metrics:           metrics,
		safeConfirmations: safeConfirmations,
		logger:            logger.Named("txdb"),
	}, nil
}

// SafeConfirmations returns the caching depth.
func (s *Store) SafeConfirmations() int64 {
	return s.safeConfirmations
}

// RecordOutputsOps queues the output record and address entry of every
// single-address output of tx, observed at ts. It returns the touched addresses.
func (s *Store) RecordOutputsOps(b *kvstore.Batch, tx *model.Transaction, ts int64) ([]string, error) {
	txid, err := kvstore.Hash(tx.TxID)
	if err != nil {
		return nil, err
	}
	var touched []string
	seen := make(map[string]struct{})
	for _, out := range tx.Outputs {
		if out.Address == "" {
			s.metrics.ObserveSkippedOutput("no_address")
			s.logger.Debug("output not indexed",
				zap.String("txid", tx.TxID),
				zap.Uint32("vout", out.Index),
				zap.Error(model.ErrMalformedAddressScript),
			)
			continue
		}
		rec, err := s.observedOutput(txid, out, ts)
		if err != nil {
			return nil, err
		}
		v, err := rec.encode()
		if err != nil {
			s.metrics.ObserveSkippedOutput("address_too_long")
			continue
		}
		b.Put(outputKey(txid, out.Index), v)

		key, err := addressKey(out.Address, ts, txid, out.Index)
		if err != nil {
			return nil, err
		}
		// an existing entry may already carry the confirmation cache
		ok, err := s.db.Has(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			b.Put(key, addressValue{value: out.Value}.encode())
		}
		if _, dup := seen[out.Address]; !dup {
			seen[out.Address] = struct{}{}
			touched = append(touched, out.Address)
		}
	}
	return touched, nil
}

// observedOutput returns the output record of out after an observation at
// ts, keeping the seen range of an existing record.
func (s *Store) observedOutput(txid []byte, out model.TransactionOutput, ts int64) (outputValue, error) {
	rec := outputValue{value: out.Value, address: out.Address, script: out.Script}
	v, err := s.db.Get(outputKey(txid, out.Index))
	switch {
	case errors.Is(err, model.ErrNotFound):
		rec.firstSeen, rec.lastSeen = keyTs(ts), keyTs(ts)
		return rec, nil
	case err != nil:
		return outputValue{}, fmt.Errorf("get output %d: %w", out.Index, err)
	}
	prev, err := decodeOutputValue(v)
	if err != nil {
		return outputValue{}, err
	}
	rec.firstSeen, rec.lastSeen = prev.firstSeen, prev.lastSeen
	rec.seen(ts)
	return rec, nil
}

// RecordSpendOps queues a spend of outpoint by input vin of spendingTxID.
// Conflicting spends of the same outpoint are kept side by side.
func (s *Store) RecordSpendOps(b *kvstore.Batch, outpoint model.Outpoint, spendingTxID string, vin uint32, ts int64) error {
	txid, err := kvstore.Hash(outpoint.TxID)
	if err != nil {
		return err
	}
	spending, err := kvstore.Hash(spendingTxID)
	if err != nil {
		return err
	}
	b.Put(spendKey(txid, outpoint.Index, spending, vin), kvstore.Int64(ts))
	return nil
}

// RecordTransactionOps queues spends for every non-coinbase input and outputs
// for every indexable output of tx.
func (s *Store) RecordTransactionOps(b *kvstore.Batch, tx *model.Transaction, ts int64) ([]string, error) {
	if !tx.Coinbase {
		for _, in := range tx.Inputs {
			op := model.Outpoint{TxID: in.PrevTxID, Index: in.PrevVout}
			if err := s.RecordSpendOps(b, op, tx.TxID, in.Index, ts); err != nil {
				return nil, fmt.Errorf("record spend of %s:%d: %w", in.PrevTxID, in.PrevVout, err)
			}
		}
	}
	touched, err := s.RecordOutputsOps(b, tx, ts)
	if err != nil {
		return nil, fmt.Errorf("record outputs of %s: %w", tx.TxID, err)
	}
	return touched, nil
}

// RecordTransaction indexes tx in its own batch.
func (s *Store) RecordTransaction(tx *model.Transaction, ts int64) ([]string, error) {
	b := kvstore.NewBatch()
	touched, err := s.RecordTransactionOps(b, tx, ts)
	if err != nil {
		return nil, err
	}
	if err := s.db.Write(b); err != nil {
		return nil, err
	}
	return touched, nil
}

// LookupOutput returns one output with its observed spends.
func (s *Store) LookupOutput(txid string, index uint32) (*model.OutputInfo, error) {
	key, err := kvstore.Hash(txid)
	if err != nil {
		return nil, err
	}
	v, err := s.db.Get(outputKey(key, index))
	if err != nil {
		return nil, err
	}
	ov, err := decodeOutputValue(v)
	if err != nil {
		return nil, err
	}
	info := &model.OutputInfo{
		TxID:    txid,
		Index:   index,
		Address: ov.address,
		Value:   ov.value,
		Script:  ov.script,
	}
	spends, err := s.spends(key, index)
	if err != nil {
		return nil, err
	}
	if len(spends) > 0 {
		info.Spend = &spends[0]
	}
	if len(spends) > 1 {
		info.MultipleSpendAttempts = spends
	}
	return info, nil
}

// LookupTransactionOutputs returns every indexed output of txid in output order.
func (s *Store) LookupTransactionOutputs(txid string) ([]*model.OutputInfo, error) {
	key, err := kvstore.Hash(txid)
	if err != nil {
		return nil, err
	}
	prefix := kvstore.Key(prefixOutput, key)
	var out []*model.OutputInfo
	for item, err := range s.db.Scan(kvstore.Range{Prefix: prefix}) {
		if err != nil {
			return nil, err
		}
		if len(item.Key) != len(prefix)+4 {
			continue
		}
		index := kvstore.DecodeUint32(item.Key[len(prefix):])
		info, err := s.LookupOutput(txid, index)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

func (s *Store) spends(txid []byte, index uint32) ([]model.SpendRef, error) {
	prefix := spendPrefix(txid, index)
	var out []model.SpendRef
	for item, err := range s.db.Scan(kvstore.Range{Prefix: prefix}) {
		if err != nil {
			return nil, err
		}
		rest := item.Key[len(prefix):]
		if len(rest) != kvstore.HashSize+4 {
			return nil, fmt.Errorf("parse spend key: bad length %d", len(rest))
		}
		spending, err := kvstore.HashString(rest[:kvstore.HashSize])
		if err != nil {
			return nil, err
		}
		ts, err := kvstore.DecodeInt64(item.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, model.SpendRef{
			TxID:  spending,
			Index: kvstore.DecodeUint32(rest[kvstore.HashSize:]),
			Ts:    ts,
		})
	}
	return out, nil
}

// AddressQuery bounds an address scan. After is a cursor returned by a previous call.
type AddressQuery struct {
	Limit       int
	After       []byte
	IgnoreCache bool
}

// LookupOutputsByAddress returns the outputs of addr, newest first and
// deduplicated by outpoint, annotated with their spends. The returned cursor
// is nil when the scan reached the end of the address range.
func (s *Store) LookupOutputsByAddress(addr string, q AddressQuery) ([]*model.AddressOutput, []byte, error) {
	prefix, err := addressPrefix(addr)
	if err != nil {
		return nil, nil, err
	}
	r := kvstore.Range{Prefix: prefix, Limit: q.Limit}
	if q.After != nil {
		r = kvstore.Range{Start: q.After, End: prefixEnd(prefix), Limit: q.Limit}
	}

	var (
		out     []*model.AddressOutput
		unique  = make(map[model.Outpoint]*model.AddressOutput)
		scanned int
		lastKey []byte
	)
	for item, err := range s.db.Scan(r) {
		if err != nil {
			return nil, nil, err
		}
		scanned++
		lastKey = item.Key

		parts, err := parseAddressKey(len(prefix), item.Key)
		if err != nil {
			return nil, nil, err
		}
		txid, err := kvstore.Hash(parts.txid)
		if err != nil {
			return nil, nil, err
		}
		rec, found, err := s.outputRecord(txid, parts.vout)
		if err != nil {
			return nil, nil, err
		}
		// older copies are dropped whichever page they fall on
		if found && parts.ts != rec.lastSeen {
			continue
		}
		op := model.Outpoint{TxID: parts.txid, Index: parts.vout}
		if prev, ok := unique[op]; ok {
			prev.FirstSeenTs = parts.ts
			continue
		}
		o, err := s.parseAddressEntry(addr, item, parts, q.IgnoreCache)
		if err != nil {
			return nil, nil, err
		}
		if found {
			o.FirstSeenTs = rec.firstSeen
		}
		unique[op] = o
		out = append(out, o)
	}

	for _, o := range out {
		if o.SpentIsConfirmedCached {
			continue
		}
		txid, err := kvstore.Hash(o.TxID)
		if err != nil {
			return nil, nil, err
		}
		spends, err := s.spends(txid, o.Index)
		if err != nil {
			return nil, nil, err
		}
		for _, sp := range spends {
			o.AddSpend(sp)
		}
	}

	var next []byte
	if q.Limit > 0 && scanned >= q.Limit {
		next = append(lastKey, 0)
	}
	return out, next, nil
}

// outputRecord loads the output record of txid:vout; found is false when the
// record was removed.
func (s *Store) outputRecord(txid []byte, vout uint32) (outputValue, bool, error) {
	v, err := s.db.Get(outputKey(txid, vout))
	if errors.Is(err, model.ErrNotFound) {
		return outputValue{}, false, nil
	}
	if err != nil {
		return outputValue{}, false, err
	}
	rec, err := decodeOutputValue(v)
	if err != nil {
		return outputValue{}, false, err
	}
	return rec, true, nil
}

func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

func (s *Store) parseAddressEntry(addr string, item kvstore.Item, parts addressKeyParts, ignoreCache bool) (*model.AddressOutput, error) {
	v, err := decodeAddressValue(item.Value)
	if err != nil {
		return nil, err
	}
	o := &model.AddressOutput{
		Key:         item.Key,
		Address:     addr,
		TxID:        parts.txid,
		Index:       parts.vout,
		Value:       v.value,
		Ts:          parts.ts,
		FirstSeenTs: parts.ts,
	}
	if ignoreCache || !v.confirmed {
		return o, nil
	}
	o.IsConfirmed = true
	o.IsConfirmedCached = true
	if v.spentConfirmed {
		spent, err := kvstore.HashString(v.spentTxID)
		if err != nil {
			return nil, err
		}
		o.SpentIsConfirmed = true
		o.SpentIsConfirmedCached = true
		o.SpentTxID = spent
		o.SpentIndex = v.spentIndex
		o.SpentTs = v.spentTs
	}
	return o, nil
}

// FillConfirmations resolves owner and spend confirmations of outputs against
// the main chain at tipHeight. Outputs whose state is fully cached are left
// untouched. Lookups run on a bounded worker pool.
func (s *Store) FillConfirmations(ctx context.Context, outputs []*model.AddressOutput, tipHeight int64) (err error) {
	started := time.Now()
	pending := make([]*model.AddressOutput, 0, len(outputs))
	for _, o := range outputs {
		if o.SpentIsConfirmedCached || (o.IsConfirmedCached && !o.IsSpent()) {
			continue
		}
		pending = append(pending, o)
	}
	defer func() {
		s.metrics.ObserveFillConfirmations(err, len(pending), started)
	}()
	if len(pending) == 0 {
		return nil
	}

	return workerpool.Process(ctx, fillConcurrency, pending, func(_ context.Context, o *model.AddressOutput) error {
		if o.IsConfirmedCached {
			return s.fillSpent(o, tipHeight)
		}
		return s.fillOwner(o, tipHeight)
	}, nil)
}

func (s *Store) blockHeight(txid string) (int64, bool, error) {
	_, height, err := s.blocks.GetBlockForTx(txid)
	if errors.Is(err, model.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("block for tx %s: %w", txid, err)
	}
	return height, height >= 0, nil
}

func (s *Store) fillOwner(o *model.AddressOutput, tipHeight int64) error {
	height, ok, err := s.blockHeight(o.TxID)
	if err != nil || !ok {
		return err
	}
	o.IsConfirmed = tipHeight >= height
	o.Confirmations = tipHeight - height + 1
	return s.fillSpent(o, tipHeight)
}

func (s *Store) fillSpent(o *model.AddressOutput, tipHeight int64) error {
	if !o.IsSpent() {
		return nil
	}
	if len(o.MultipleSpendAttempts) == 0 {
		height, ok, err := s.blockHeight(o.SpentTxID)
		if err != nil || !ok {
			return err
		}
		o.SpentIsConfirmed = tipHeight >= height
		o.SpentConfirmations = tipHeight - height + 1
		return nil
	}
	for _, attempt := range o.MultipleSpendAttempts {
		height, ok, err := s.blockHeight(attempt.TxID)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		o.SpentTxID = attempt.TxID
		o.SpentIndex = attempt.Index
		o.SpentTs = attempt.Ts
		o.SpentIsConfirmed = tipHeight >= height
		o.SpentConfirmations = tipHeight - height + 1
		return nil
	}
	return nil
}

// CacheConfirmations persists the confirmation cache for outputs deeper than
// the safe depth. A spend is cached only once it is itself safely confirmed.
func (s *Store) CacheConfirmations(outputs []*model.AddressOutput) error {
	b := kvstore.NewBatch()
	for _, o := range outputs {
		if o.SpentIsConfirmedCached {
			continue
		}
		if !o.IsConfirmedCached && o.Confirmations < s.safeConfirmations {
			continue
		}
		v := addressValue{value: o.Value, confirmed: true}
		switch {
		case o.IsSpent() && o.SpentConfirmations >= s.safeConfirmations:
			spent, err := kvstore.Hash(o.SpentTxID)
			if err != nil {
				return err
			}
			v.spentConfirmed = true
			v.spentTxID = spent
			v.spentIndex = o.SpentIndex
			v.spentTs = o.SpentTs
		case o.IsConfirmedCached:
			continue
		}
		b.Put(o.Key, v.encode())
	}
	if err := s.db.Write(b); err != nil {
		return fmt.Errorf("cache confirmations: %w", err)
	}
	s.metrics.ObserveCacheWrites(b.Len())
	return nil
}

// FillScripts loads the output script of every output from its output record.
func (s *Store) FillScripts(outputs []*model.AddressOutput) error {
	for _, o := range outputs {
		txid, err := kvstore.Hash(o.TxID)
		if err != nil {
			return err
		}
		v, err := s.db.Get(outputKey(txid, o.Index))
		if err != nil {
			return fmt.Errorf("output %s:%d: %w", o.TxID, o.Index, err)
		}
		ov, err := decodeOutputValue(v)
		if err != nil {
			return err
		}
		o.Script = ov.script
	}
	return nil
}

// RemoveTransaction deletes the output and spend records of txid. Address
// entries are left in place.
func (s *Store) RemoveTransaction(txid string) (int, error) {
	key, err := kvstore.Hash(txid)
	if err != nil {
		return 0, err
	}
	outs, err := s.db.DeletePrefix(kvstore.Key(prefixOutput, key))
	if err != nil {
		return outs, fmt.Errorf("remove outputs of %s: %w", txid, err)
	}
	spends, err := s.db.DeletePrefix(kvstore.Key(prefixSpend, key))
	if err != nil {
		return outs + spends, fmt.Errorf("remove spends of %s: %w", txid, err)
	}
	s.logger.Info("transaction removed", zap.String("txid", txid), zap.Int("keys", outs+spends))
	return outs + spends, nil
}
