// Package balance folds address index entries into address totals.
package balance

import "github.com/goodnatureofminers/blockinsight7000-indexer/internal/utxo/model"

// Aggregator accumulates the summary of one address. A transaction is counted
// once per address however many of its outputs or inputs touch it.
type Aggregator struct {
	summary model.AddressSummary
	seen    map[string]struct{}

	collect     bool
	includeInfo bool
	txids       []string
	txs         []model.TxRef
}

// NewAggregator returns an aggregator. With collect set the touched
// transactions are listed, as TxRef values when includeInfo is set.
func NewAggregator(collect, includeInfo bool) *Aggregator {
	return &Aggregator{
		seen:        make(map[string]struct{}),
		collect:     collect,
		includeInfo: includeInfo,
	}
}

func (a *Aggregator) first(txid string) bool {
	if _, ok := a.seen[txid]; ok {
		return false
	}
	a.seen[txid] = struct{}{}
	return true
}

func (a *Aggregator) list(ref model.TxRef) {
	if !a.collect {
		return
	}
	if a.includeInfo {
		a.txs = append(a.txs, ref)
		return
	}
	a.txids = append(a.txids, ref.TxID)
}

// Add folds one output into the totals.
func (a *Aggregator) Add(o *model.AddressOutput) {
	var add, addSpend int64
	if a.first(o.TxID) {
		add = 1
		a.list(model.TxRef{TxID: o.TxID, Ts: o.Ts, FirstSeenTs: o.FirstSeenTs})
	}
	if o.IsSpent() && a.first(o.SpentTxID) {
		addSpend = 1
		a.list(model.TxRef{TxID: o.SpentTxID, Ts: o.SpentTs})
	}

	s := &a.summary
	if !o.IsConfirmed {
		s.UnconfirmedBalance += o.Value
		s.UnconfirmedTxAppearances += add
		return
	}
	s.TxAppearances += add
	s.TotalReceived += o.Value
	switch {
	case !o.IsSpent():
		s.Balance += o.Value
	case !o.SpentIsConfirmed:
		// still spendable until the spend confirms
		s.Balance += o.Value
		s.UnconfirmedBalance -= o.Value
		s.UnconfirmedTxAppearances += addSpend
	default:
		s.TotalSent += o.Value
		s.TxAppearances += addSpend
	}
}

// Summary returns the accumulated totals.
func (a *Aggregator) Summary() model.AddressSummary {
	return a.summary
}

// TxIDs returns the listed transaction ids in the order they were met.
func (a *Aggregator) TxIDs() []string {
	return a.txids
}

// Transactions returns the listed transactions when info was requested.
func (a *Aggregator) Transactions() []model.TxRef {
	return a.txs
}

// Aggregate builds the address state from index entries, newest first as
// they come from the index.
func Aggregate(addr string, outputs []*model.AddressOutput, opts model.AddressOptions) *model.AddressState {
	a := NewAggregator(opts.TxLimit != 0, opts.IncludeTxInfo)
	for _, o := range outputs {
		a.Add(o)
	}
	return &model.AddressState{
		Address:        addr,
		AddressSummary: a.Summary(),
		TxIDs:          a.TxIDs(),
		Transactions:   a.Transactions(),
	}
}

// Unspent lists the outputs without any observed spend. Cached outputs report
// safeConfirmations since their depth is no longer resolved.
func Unspent(addr string, outputs []*model.AddressOutput, safeConfirmations int64) []model.UTXO {
	var utxos []model.UTXO
	for _, o := range outputs {
		if o.IsSpent() {
			continue
		}
		confirmations := o.Confirmations
		if o.IsConfirmedCached {
			confirmations = safeConfirmations
		}
		utxos = append(utxos, model.UTXO{
			Address:                addr,
			TxID:                   o.TxID,
			Vout:                   o.Index,
			Ts:                     o.Ts,
			Script:                 o.Script,
			Value:                  o.Value,
			Confirmations:          confirmations,
			ConfirmationsFromCache: o.IsConfirmedCached,
		})
	}
	return utxos
}
