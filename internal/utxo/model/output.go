package model

// SpendRef identifies a transaction input spending an output.
type SpendRef struct {
	TxID  string
	Index uint32
	Ts    int64
}

// OutputInfo is a stored output with its spend annotations.
type OutputInfo struct {
	TxID    string
	Index   uint32
	Address string
	Value   int64
	Script  []byte
	// Spend is the first observed spend, nil when unspent.
	Spend *SpendRef
	// MultipleSpendAttempts lists every conflicting spend, Spend included.
	MultipleSpendAttempts []SpendRef
}

// AddressOutput is an address-index entry joined with spend and confirmation state.
type AddressOutput struct {
	// Key is the raw index key, used to write back the confirmation cache.
	Key         []byte
	Address     string
	TxID        string
	Index       uint32
	Value       int64
	Ts          int64
	FirstSeenTs int64
	// Script is filled on demand from the output record.
	Script []byte

	IsConfirmed       bool
	IsConfirmedCached bool
	Confirmations     int64

	SpentTxID              string
	SpentIndex             uint32
	SpentTs                int64
	SpentIsConfirmed       bool
	SpentIsConfirmedCached bool
	SpentConfirmations     int64
	MultipleSpendAttempts  []SpendRef
}

// IsSpent reports whether any spend was observed for the output.
func (o *AddressOutput) IsSpent() bool {
	return o.SpentTxID != ""
}

// AddSpend annotates the output with an observed spend. The first spend wins,
// later ones are collected as conflicting attempts.
func (o *AddressOutput) AddSpend(s SpendRef) {
	if o.SpentTxID == "" {
		o.SpentTxID = s.TxID
		o.SpentIndex = s.Index
		o.SpentTs = s.Ts
		return
	}
	if len(o.MultipleSpendAttempts) == 0 {
		o.MultipleSpendAttempts = []SpendRef{{TxID: o.SpentTxID, Index: o.SpentIndex, Ts: o.SpentTs}}
	}
	o.MultipleSpendAttempts = append(o.MultipleSpendAttempts, s)
}
