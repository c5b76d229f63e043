package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/yourusername/lokanta-backend/internal/config"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/models"
)

// MockSender records outgoing mail instead of delivering it
type MockSender struct {
	Messages []*mailer.Message
	Err      error
}

func (m *MockSender) Send(msg *mailer.Message) error {
	m.Messages = append(m.Messages, msg)
	return m.Err
}

func setupEngine(t *testing.T) (*Engine, *docstore.Store, *MockSender) {
	t.Helper()

	tmpDir := t.TempDir()
	store, err := docstore.New(filepath.Join(tmpDir, "data"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	cfg := &config.Config{
		Storage: config.StorageConfig{
			DataDir:   filepath.Join(tmpDir, "data"),
			BackupDir: filepath.Join(tmpDir, "backups"),
		},
	}

	sender := &MockSender{}
	return NewEngine(cfg, store, sender), store, sender
}

func seedDocuments(t *testing.T, store *docstore.Store) {
	t.Helper()

	reservations := []models.Reservation{
		{ID: "resv-1", Name: "Mehmet", Date: "2025-12-24", Time: "19:30", Guests: 4, Status: models.ReservationPending},
	}
	if err := store.Write(docstore.DocReservations, reservations); err != nil {
		t.Fatalf("Failed to seed reservations: %v", err)
	}

	if err := store.Write(docstore.DocCapacitySettings, models.DefaultCapacitySettings()); err != nil {
		t.Fatalf("Failed to seed settings: %v", err)
	}

	messages := []models.ContactMessage{
		{ID: "msg-1", Name: "Fatma", Email: "fatma@example.com", Subject: "Soru", Message: "Merhaba"},
	}
	if err := store.Write(docstore.DocMessages, messages); err != nil {
		t.Fatalf("Failed to seed messages: %v", err)
	}
}

func TestExport_ContainsTimestampVersionAndDocuments(t *testing.T) {
	engine, store, _ := setupEngine(t)
	seedDocuments(t, store)

	data, err := engine.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var snapshot map[string]json.RawMessage
	if err := json.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("Snapshot is not valid JSON: %v", err)
	}

	for _, key := range []string{"timestamp", "version"} {
		var value string
		if err := json.Unmarshal(snapshot[key], &value); err != nil || value == "" {
			t.Errorf("Expected non-empty %s in snapshot", key)
		}
	}

	for _, name := range snapshotDocuments() {
		if _, ok := snapshot[name]; !ok {
			t.Errorf("Snapshot missing document %s", name)
		}
	}

	if _, ok := snapshot[docstore.DocBackupLog]; ok {
		t.Error("Snapshot must not include the backup log")
	}
}

func TestExportRestore_RoundTrip(t *testing.T) {
	engine, store, _ := setupEngine(t)
	seedDocuments(t, store)

	before := make(map[string][]byte)
	for _, name := range snapshotDocuments() {
		data, err := store.ReadRaw(name)
		if err != nil {
			t.Fatalf("ReadRaw(%s) failed: %v", name, err)
		}
		before[name] = data
	}

	data, err := engine.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if err := engine.Restore(data); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	for _, name := range snapshotDocuments() {
		after, err := store.ReadRaw(name)
		if err != nil {
			t.Fatalf("ReadRaw(%s) failed: %v", name, err)
		}
		if !bytes.Equal(before[name], after) {
			t.Errorf("Document %s changed across export/restore round trip", name)
		}
	}
}

func TestRestore_RejectsMissingMarkers(t *testing.T) {
	engine, store, _ := setupEngine(t)
	seedDocuments(t, store)

	before, err := store.ReadRaw(docstore.DocReservations)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}

	payloads := []string{
		`{"version":"1.0","reservations":[]}`,
		`{"timestamp":"2025-01-01T00:00:00Z","reservations":[]}`,
		`{"timestamp":"","version":"","reservations":[]}`,
		`not json at all`,
	}

	for _, payload := range payloads {
		if err := engine.Restore([]byte(payload)); err == nil {
			t.Errorf("Expected restore to reject payload %q", payload)
		}
	}

	// Nothing may have been written by the rejected restores.
	after, err := store.ReadRaw(docstore.DocReservations)
	if err != nil {
		t.Fatalf("ReadRaw failed: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Rejected restore must not mutate stored documents")
	}
}

func TestRestore_OverwritesDocuments(t *testing.T) {
	engine, store, _ := setupEngine(t)
	seedDocuments(t, store)

	payload := `{"timestamp":"2025-01-01T00:00:00Z","version":"1.0","reservations":[]}`
	if err := engine.Restore([]byte(payload)); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	var reservations []models.Reservation
	if err := store.Read(docstore.DocReservations, &reservations); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(reservations) != 0 {
		t.Errorf("Expected empty reservations after restore, got %d", len(reservations))
	}

	// Documents absent from the snapshot stay as they were.
	var messages []models.ContactMessage
	if err := store.Read(docstore.DocMessages, &messages); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(messages) != 1 {
		t.Errorf("Expected messages untouched, got %d", len(messages))
	}
}

func TestManual_WritesLogAndLocalCopy(t *testing.T) {
	engine, _, _ := setupEngine(t)

	data, entry, err := engine.Manual()
	if err != nil {
		t.Fatalf("Manual backup failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected snapshot bytes")
	}
	if entry.Status != models.BackupStatusSuccess || entry.Type != models.BackupTypeManual {
		t.Errorf("Unexpected log entry: %+v", entry)
	}
	if entry.FileSize != int64(len(data)) {
		t.Errorf("Expected fileSize %d, got %d", len(data), entry.FileSize)
	}

	recent, err := engine.Logs().Recent()
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(recent))
	}
}

func TestAuto_EmailsSnapshot(t *testing.T) {
	engine, _, sender := setupEngine(t)

	entry, err := engine.Auto("yedek@example.com")
	if err != nil {
		t.Fatalf("Auto backup failed: %v", err)
	}
	if !entry.EmailSent {
		t.Error("Expected emailSent=true")
	}
	if len(sender.Messages) != 1 {
		t.Fatalf("Expected 1 email, got %d", len(sender.Messages))
	}

	msg := sender.Messages[0]
	if msg.To[0] != "yedek@example.com" {
		t.Errorf("Email sent to %s", msg.To[0])
	}
	if len(msg.Attachments) != 1 {
		t.Fatalf("Expected snapshot attachment, got %d attachments", len(msg.Attachments))
	}
	if msg.Attachments[0].ContentType != "application/json" {
		t.Errorf("Unexpected attachment content type %s", msg.Attachments[0].ContentType)
	}
}

func TestAuto_MailFailureStillLogs(t *testing.T) {
	engine, _, sender := setupEngine(t)
	sender.Err = fmt.Errorf("smtp connection refused")

	entry, err := engine.Auto("yedek@example.com")
	if err != nil {
		t.Fatalf("Auto backup failed: %v", err)
	}
	if entry.EmailSent {
		t.Error("Expected emailSent=false when delivery fails")
	}
	if entry.Status != models.BackupStatusSuccess {
		t.Errorf("Backup itself succeeded, expected success status, got %s", entry.Status)
	}
}

func TestLogStore_RecentCapped(t *testing.T) {
	engine, _, _ := setupEngine(t)
	logs := engine.Logs()

	for i := 0; i < 15; i++ {
		entry := models.BackupLogEntry{
			Type:   models.BackupTypeAuto,
			Status: models.BackupStatusSuccess,
		}
		if err := logs.Append(&entry); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	recent, err := logs.Recent()
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 10 {
		t.Errorf("Expected display cap of 10 entries, got %d", len(recent))
	}
}
