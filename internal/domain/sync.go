package domain

import "time"

// SyncMetadata records the last catalog file synced into the database
type SyncMetadata struct {
	ConfigName   string
	LastSyncTime time.Time
	FileHash     string
	FileModTime  time.Time
}
