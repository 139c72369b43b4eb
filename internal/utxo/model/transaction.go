package model

// Transaction is the canonical representation of a transaction produced by
// the normalizers, independent of wire or RPC format.
type Transaction struct {
	TxID     string
	Time     int64
	Coinbase bool
	Inputs   []TransactionInput
	Outputs  []TransactionOutput
}

// TransactionInput references the output it spends. Coinbase inputs carry no outpoint.
type TransactionInput struct {
	Index    uint32
	PrevTxID string
	PrevVout uint32
}

// TransactionOutput is a single output. Address is empty when the script
// does not resolve to exactly one address.
type TransactionOutput struct {
	Index   uint32
	Value   int64
	Address string
	Script  []byte
}

// Outpoint identifies a transaction output.
type Outpoint struct {
	TxID  string
	Index uint32
}
