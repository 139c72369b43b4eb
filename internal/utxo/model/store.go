package model

// ForkKind classifies how an accepted block related to the previous tip.
type ForkKind string

const (
	ForkGenesis   ForkKind = "genesis"
	ForkExtend    ForkKind = "extend"
	ForkShallow   ForkKind = "shallow"
	ForkDeep      ForkKind = "deep"
	ForkDuplicate ForkKind = "duplicate"
)

// HeightChange records a block whose main-chain height was assigned or revoked.
type HeightChange struct {
	Hash      string
	PrevHash  string
	Height    int64
	Timestamp int64
	TxCount   int
}

// StoreResult describes the effect of storing one block.
type StoreResult struct {
	Hash        string
	Height      int64
	Kind        ForkKind
	Orphaned    []string
	Reconnected []string
	// Touched lists addresses whose index entries were written.
	Touched []string
	// Changes lists every block whose height changed, the stored block included.
	Changes []HeightChange
}
