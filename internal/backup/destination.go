package backup

import (
	"fmt"

	"github.com/yourusername/lokanta-backend/internal/config"
)

// Destination is a storage target for exported snapshots
type Destination interface {
	// Upload stores a snapshot file at the destination
	Upload(filename string, data []byte) error

	// GetType returns the destination type identifier
	GetType() string
}

// NewDestination creates a snapshot destination based on config
func NewDestination(cfg config.DestinationConfig) (Destination, error) {
	switch cfg.Type {
	case "local":
		return NewLocalDestination(cfg.Path), nil
	case "sftp":
		return NewSFTPDestination(cfg)
	case "s3":
		return NewS3Destination(cfg)
	default:
		return nil, fmt.Errorf("unsupported destination type: %s", cfg.Type)
	}
}
