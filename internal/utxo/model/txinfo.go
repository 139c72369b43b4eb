package model

import "github.com/shopspring/decimal"

// TxInfo is a node transaction joined with the local output index.
type TxInfo struct {
	TxID          string
	BlockHash     string
	Confirmations int64
	Time          int64
	Coinbase      bool
	Inputs        []TxInfoInput
	Outputs       []TxInfoOutput
	ValueOut      int64

	// ValueIn and Fees are set only when every input was resolved.
	ValueIn          int64
	Fees             int64
	IncompleteInputs bool
	// FirstSeenTs is when the spend of the inputs was first observed.
	FirstSeenTs int64
}

// TxInfoInput is one input of a TxInfo.
type TxInfoInput struct {
	PrevTxID string
	PrevVout uint32
	Address  string
	Value    int64
	// Resolved reports whether the spent output is in the index.
	Resolved bool
	// DoubleSpentTxID names a conflicting spend of the same output.
	DoubleSpentTxID    string
	DoubleSpentIndex   uint32
	SpendNotRegistered bool
}

// TxInfoOutput is one output of a TxInfo with its observed spend.
type TxInfoOutput struct {
	Index                 uint32
	Value                 int64
	Address               string
	Script                []byte
	SpentTxID             string
	SpentIndex            uint32
	SpentTs               int64
	MultipleSpendAttempts []SpendRef
}

// FeesAmount returns Fees in coin units.
func (t *TxInfo) FeesAmount() decimal.Decimal {
	return SatoshisToDecimal(t.Fees)
}

// ValueOutAmount returns ValueOut in coin units.
func (t *TxInfo) ValueOutAmount() decimal.Decimal {
	return SatoshisToDecimal(t.ValueOut)
}
