package ingester

import "time"

const (
	// maxResumeWalkBack is how far below the stored tip a resume may start.
	maxResumeWalkBack int64 = 6

	progressLogInterval int64 = 1000

	sleepDuration     = 5 * time.Second
	maxSleepDuration  = 2 * time.Minute
	longSleepDuration = 1 * time.Minute
	reconnectDelay    = 5 * time.Second
	maxReconnectDelay = 1 * time.Minute
	liveEventBuffer   = 256

	exportBatcherCapacity      = 1000
	exportBatcherFlushInterval = 5 * time.Second
	exportBatcherRPS           = 20
)
