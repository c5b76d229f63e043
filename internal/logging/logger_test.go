package logging

import (
	"path/filepath"
	"testing"

	"github.com/yourusername/lokanta-backend/internal/config"
)

func TestInitAndCloseLogger(t *testing.T) {
	root := t.TempDir()
	logPath := filepath.Join(root, "app.log")

	_, err := Init(config.LoggingConfig{
		Level:      "info",
		Format:     "json",
		File:       logPath,
		MaxSize:    10,
		MaxBackups: 1,
		MaxAge:     1,
	})
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	L().Info("test_log")
	if err := Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got.String() != "INFO" {
		t.Fatalf("expected INFO fallback, got %s", got)
	}
	if got := parseLevel("warning"); got.String() != "WARN" {
		t.Fatalf("expected WARN, got %s", got)
	}
}
