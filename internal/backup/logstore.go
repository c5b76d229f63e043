package backup

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// recentLogLimit caps how many log rows the admin UI shows
const recentLogLimit = 10

// LogStore is the append-only record of backup runs
type LogStore struct {
	store *docstore.Store
}

// NewLogStore creates a backup log store
func NewLogStore(store *docstore.Store) *LogStore {
	return &LogStore{store: store}
}

// Append adds one entry to the log, assigning id and timestamp when absent
func (l *LogStore) Append(entry *models.BackupLogEntry) error {
	if entry.ID == "" {
		entry.ID = "bkl-" + uuid.New().String()[:8]
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	var entries []models.BackupLogEntry
	return l.store.Update(docstore.DocBackupLog, &entries, func() error {
		entries = append(entries, *entry)
		return nil
	})
}

// Recent returns the newest entries, capped for display
func (l *LogStore) Recent() ([]models.BackupLogEntry, error) {
	entries := []models.BackupLogEntry{}
	if err := l.store.Read(docstore.DocBackupLog, &entries); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > recentLogLimit {
		entries = entries[:recentLogLimit]
	}

	return entries, nil
}
