package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/lokanta-backend/internal/config"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// Engine exports and restores snapshots of every managed document.
// A snapshot is a single JSON object: timestamp, version, and one
// field per document.
type Engine struct {
	store        *docstore.Store
	mailer       mailer.Sender
	destinations []config.DestinationConfig
	logs         *LogStore
}

// NewEngine creates a backup engine. mailer may be nil; auto backups
// then record emailSent=false.
func NewEngine(cfg *config.Config, store *docstore.Store, sender mailer.Sender) *Engine {
	destinations := cfg.Backup.Destinations
	if len(destinations) == 0 {
		// Always keep a local copy next to the data directory.
		destinations = []config.DestinationConfig{
			{Type: "local", Path: cfg.Storage.BackupDir},
		}
	}

	return &Engine{
		store:        store,
		mailer:       sender,
		destinations: destinations,
		logs:         NewLogStore(store),
	}
}

// Logs exposes the backup log store
func (e *Engine) Logs() *LogStore {
	return e.logs
}

// snapshotDocuments is the set of documents included in a snapshot.
// The backup log itself is excluded: restoring a snapshot must not
// rewrite the history of backup runs.
func snapshotDocuments() []string {
	var docs []string
	for _, name := range docstore.Managed() {
		if name == docstore.DocBackupLog {
			continue
		}
		docs = append(docs, name)
	}
	return docs
}

// Export assembles a snapshot of all managed documents. If any single
// document fails to read, the whole export fails.
func (e *Engine) Export() ([]byte, error) {
	snapshot := make(map[string]json.RawMessage)

	for _, name := range snapshotDocuments() {
		data, err := e.store.ReadRaw(name)
		if err != nil {
			return nil, fmt.Errorf("failed to export document %s: %w", name, err)
		}
		snapshot[name] = json.RawMessage(data)
	}

	timestamp, err := json.Marshal(time.Now().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	version, err := json.Marshal(models.SnapshotVersion)
	if err != nil {
		return nil, err
	}
	snapshot["timestamp"] = timestamp
	snapshot["version"] = version

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return data, nil
}

// Restore validates the snapshot shape and overwrites every known
// document present in it. A snapshot missing timestamp or version is
// rejected before anything is written; past that check the restore is
// destructive and unconditional.
func (e *Engine) Restore(data []byte) error {
	var snapshot map[string]json.RawMessage
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("snapshot is not valid JSON: %w", err)
	}

	var timestamp, version string
	if raw, ok := snapshot["timestamp"]; ok {
		_ = json.Unmarshal(raw, &timestamp)
	}
	if raw, ok := snapshot["version"]; ok {
		_ = json.Unmarshal(raw, &version)
	}
	if timestamp == "" || version == "" {
		return fmt.Errorf("snapshot is missing timestamp or version")
	}

	restored := 0
	for _, name := range snapshotDocuments() {
		raw, ok := snapshot[name]
		if !ok {
			continue
		}

		// Re-indent to the store's canonical format so a restore of an
		// unmodified export reproduces the documents byte for byte.
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return fmt.Errorf("snapshot document %s is not valid JSON: %w", name, err)
		}

		if err := e.store.WriteRaw(name, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to restore document %s: %w", name, err)
		}
		restored++
	}

	log.Printf("[Backup] Restored %d documents from snapshot (version %s, taken %s)",
		restored, version, timestamp)
	return nil
}

// Manual performs an admin-triggered export: snapshot, destination
// uploads, and a log entry. The snapshot bytes are returned for the
// HTTP download.
func (e *Engine) Manual() ([]byte, *models.BackupLogEntry, error) {
	data, err := e.Export()
	if err != nil {
		entry := e.logFailure(models.BackupTypeManual, err)
		return nil, entry, err
	}

	filename := snapshotFilename()
	e.uploadToDestinations(filename, data)

	entry := models.BackupLogEntry{
		Timestamp: time.Now(),
		Type:      models.BackupTypeManual,
		Status:    models.BackupStatusSuccess,
		FileSize:  int64(len(data)),
	}
	e.appendLog(&entry)

	return data, &entry, nil
}

// Auto performs a scheduled or admin-triggered automatic backup:
// export, destination uploads, then the snapshot emailed as an
// attachment to the given address.
func (e *Engine) Auto(email string) (*models.BackupLogEntry, error) {
	data, err := e.Export()
	if err != nil {
		entry := e.logFailure(models.BackupTypeAuto, err)
		return entry, err
	}

	filename := snapshotFilename()
	e.uploadToDestinations(filename, data)

	entry := models.BackupLogEntry{
		Timestamp: time.Now(),
		Type:      models.BackupTypeAuto,
		Status:    models.BackupStatusSuccess,
		FileSize:  int64(len(data)),
	}

	if e.mailer != nil && email != "" {
		err := e.mailer.Send(&mailer.Message{
			To:      []string{email},
			Subject: "Otomatik Yedekleme - " + time.Now().Format("02.01.2006 15:04"),
			Body:    fmt.Sprintf("Otomatik yedekleme tamamlandı.\n\nDosya: %s\nBoyut: %d bayt", filename, len(data)),
			Attachments: []mailer.Attachment{
				{Filename: filename, ContentType: "application/json", Data: data},
			},
		})
		if err != nil {
			log.Printf("[Backup] Failed to email snapshot: %v", err)
		} else {
			entry.EmailSent = true
		}
	}

	e.appendLog(&entry)

	log.Printf("[Backup] Auto backup complete: %s (%d bytes, emailSent=%v)",
		filename, len(data), entry.EmailSent)
	return &entry, nil
}

func (e *Engine) uploadToDestinations(filename string, data []byte) {
	for _, destConfig := range e.destinations {
		dest, err := NewDestination(destConfig)
		if err != nil {
			log.Printf("[Backup] Failed to create %s destination: %v", destConfig.Type, err)
			continue
		}

		if err := dest.Upload(filename, data); err != nil {
			log.Printf("[Backup] Upload to %s destination failed: %v", destConfig.Type, err)
		}

		if closer, ok := dest.(interface{ Close() error }); ok {
			closer.Close()
		}
	}
}

func (e *Engine) logFailure(backupType string, cause error) *models.BackupLogEntry {
	entry := models.BackupLogEntry{
		Timestamp:    time.Now(),
		Type:         backupType,
		Status:       models.BackupStatusError,
		ErrorMessage: cause.Error(),
	}
	e.appendLog(&entry)
	return &entry
}

func (e *Engine) appendLog(entry *models.BackupLogEntry) {
	if err := e.logs.Append(entry); err != nil {
		log.Printf("[Backup] Failed to append backup log: %v", err)
	}
}

func snapshotFilename() string {
	return fmt.Sprintf("yedek-%s.json", time.Now().Format("20060102-150405"))
}
