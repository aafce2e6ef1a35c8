package worker

import "time"

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerQueueFull   = "Worker queue full, dropping job"
	LogMsgWorkerPoolStopped = "Worker pool stopped"
)

// Log messages - lock sweep
const (
	LogMsgLockSweepFailed = "Lock sweep failed"
)

// DefaultJobTimeout bounds a single Process call
const DefaultJobTimeout = 30 * time.Second

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
