package activity

import (
	"database/sql"
	"testing"

	"github.com/yourusername/lokanta-backend/internal/database"
)

func newLogger(t *testing.T) *Logger {
	t.Helper()
	raw, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { raw.Close() })

	db := &database.DB{DB: raw}
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewLogger(db)
}

func TestRecordAndRecent(t *testing.T) {
	logger := newLogger(t)

	logger.Record("reservation.status", "resv-1", "confirmed", "127.0.0.1")
	logger.Record("backup.export", "bkl-1", "", "127.0.0.1")

	entries, err := logger.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != "backup.export" {
		t.Errorf("expected newest first, got %s", entries[0].Action)
	}
	if entries[1].Entity != "resv-1" {
		t.Errorf("unexpected entity: %s", entries[1].Entity)
	}
}

func TestRecentLimit(t *testing.T) {
	logger := newLogger(t)

	for i := 0; i < 5; i++ {
		logger.Record("push.send", "", "", "127.0.0.1")
	}

	entries, err := logger.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected limit of 3, got %d", len(entries))
	}
}

func TestNilLoggerRecordIsSafe(t *testing.T) {
	var logger *Logger
	logger.Record("noop", "", "", "")
}
