package models

import "time"

// SnapshotVersion tags every exported snapshot. Restore accepts any
// non-empty version; the value exists so future formats can be told apart.
const SnapshotVersion = "1.0"

// Backup log entry types and statuses
const (
	BackupTypeManual = "manual"
	BackupTypeAuto   = "auto"

	BackupStatusSuccess = "success"
	BackupStatusError   = "error"
)

// BackupLogEntry records one backup attempt in the append-only log
type BackupLogEntry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Type         string    `json:"type"` // "manual" or "auto"
	Status       string    `json:"status"`
	EmailSent    bool      `json:"emailSent"`
	FileSize     int64     `json:"fileSize,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}
