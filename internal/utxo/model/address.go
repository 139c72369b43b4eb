package model

import "github.com/shopspring/decimal"

// AddressSummary holds the balance counters of an address in satoshis.
type AddressSummary struct {
	Balance                  int64
	TotalReceived            int64
	TotalSent                int64
	UnconfirmedBalance       int64
	TxAppearances            int64
	UnconfirmedTxAppearances int64
}

// TxRef is a transaction touching an address.
type TxRef struct {
	TxID        string
	Ts          int64
	FirstSeenTs int64
}

// UTXO is an unspent output of an address.
type UTXO struct {
	Address                string
	TxID                   string
	Vout                   uint32
	Ts                     int64
	Script                 []byte
	Value                  int64
	Confirmations          int64
	ConfirmationsFromCache bool
}

// Amount returns Value in coin units.
func (u UTXO) Amount() decimal.Decimal {
	return SatoshisToDecimal(u.Value)
}

// AddressOptions controls what GetAddressState collects.
type AddressOptions struct {
	OnlyUnspent   bool
	IncludeTxInfo bool
	// TxLimit bounds the scanned index entries; zero disables the transaction list,
	// a negative value means no limit.
	TxLimit     int
	IgnoreCache bool
}

// AddressState is the aggregated view of an address.
type AddressState struct {
	Address string
	AddressSummary
	TxIDs        []string
	Transactions []TxRef
	UTXOs        []UTXO
}
