package backup

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// LocalDestination stores snapshots on the local filesystem
type LocalDestination struct {
	basePath string
}

// NewLocalDestination creates a new local destination
func NewLocalDestination(basePath string) *LocalDestination {
	return &LocalDestination{
		basePath: basePath,
	}
}

// Upload writes a snapshot file into the destination directory
func (ld *LocalDestination) Upload(filename string, data []byte) error {
	if err := os.MkdirAll(ld.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	destPath := filepath.Join(ld.basePath, filename)
	log.Printf("[LocalDest] Writing %s (%d bytes)", destPath, len(data))

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}

// GetType returns the destination type identifier
func (ld *LocalDestination) GetType() string {
	return "local"
}
