package model

// SyncStatus is the lifecycle state of a historic sync run.
type SyncStatus string

var (
	SyncStarting SyncStatus = "starting"
	SyncSyncing  SyncStatus = "syncing"
	SyncFinished SyncStatus = "finished"
	SyncAborted  SyncStatus = "aborted"
)

// SyncType tells where historic blocks are read from.
type SyncType string

var (
	SyncFromFiles SyncType = "from .dat files"
	SyncFromRPC   SyncType = "from RPC calls"
)

// SyncInfo reports historic sync progress.
type SyncInfo struct {
	Status           SyncStatus
	Type             SyncType
	BlockChainHeight int64
	Height           int64
	SyncPercentage   float64
	SyncTipHash      string
	Error            string
	StartTs          int64
	EndTs            int64
}

// NodeInfo is what the full node reports about its chain.
type NodeInfo struct {
	Chain         string
	Blocks        int64
	BestBlockHash string
	Difficulty    float64
}

// Status combines node and indexer state.
type Status struct {
	Node NodeInfo
	Sync SyncInfo
	Tip  Tip
}
