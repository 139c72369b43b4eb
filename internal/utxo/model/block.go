// Package model defines domain models for UTXO chain indexing.
package model

import "strings"

// OrphanHeight marks a block that is stored but not on the main chain.
const OrphanHeight int64 = -1

// GenesisParentHash is the previous hash carried by the genesis block.
var GenesisParentHash = strings.Repeat("0", 64)

// IsGenesisParent reports whether hash is the all-zero genesis parent sentinel.
func IsGenesisParent(hash string) bool {
	return hash == GenesisParentHash
}

// RawBlock is a candidate block yielded by a block source.
type RawBlock struct {
	Hash         string
	PrevHash     string
	Timestamp    int64
	Transactions []Transaction
}

// TxIDs returns the ordered transaction ids of the block.
func (b *RawBlock) TxIDs() []string {
	ids := make([]string, 0, len(b.Transactions))
	for i := range b.Transactions {
		ids = append(ids, b.Transactions[i].TxID)
	}
	return ids
}

// BlockRecord is the linkage metadata stored for a block.
type BlockRecord struct {
	Hash      string
	PrevHash  string
	NextHash  string
	Height    int64
	Timestamp int64
	TxIDs     []string
}

// IsMainChain reports whether the block currently belongs to the main chain.
func (b *BlockRecord) IsMainChain() bool {
	return b.Height >= 0
}

// Tip is the head of the main chain.
type Tip struct {
	Hash   string
	Height int64
}

// IsEmpty reports whether no block has been accepted yet.
func (t Tip) IsEmpty() bool {
	return t.Hash == ""
}

// BlockSummary is a block entry returned by date listings.
type BlockSummary struct {
	Hash      string
	Height    int64
	Timestamp int64
	TxCount   int
}

// BlockPage is one page of a date-ordered block listing.
type BlockPage struct {
	Blocks []BlockSummary
	More   bool
	// MoreTs is the smallest timestamp of the page, used as the next page end.
	MoreTs int64
}
