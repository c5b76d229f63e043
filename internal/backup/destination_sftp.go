package backup

import (
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/pkg/sftp"
	"github.com/yourusername/lokanta-backend/internal/config"
	xssh "golang.org/x/crypto/ssh"
)

// SFTPDestination stores snapshots on a remote SFTP server
type SFTPDestination struct {
	cfg        config.DestinationConfig
	sshClient  *xssh.Client
	sftpClient *sftp.Client
}

// NewSFTPDestination creates a new SFTP destination and connects
func NewSFTPDestination(cfg config.DestinationConfig) (*SFTPDestination, error) {
	dest := &SFTPDestination{cfg: cfg}

	if err := dest.connect(); err != nil {
		return nil, err
	}

	return dest, nil
}

func (sd *SFTPDestination) connect() error {
	knownHostsPath := sd.cfg.KnownHostsPath
	trustOnFirstUse := sd.cfg.TrustOnFirstUse

	hostKeyCallback, err := newHostKeyCallback(knownHostsPath, trustOnFirstUse)
	if err != nil {
		return fmt.Errorf("failed to configure host key verification: %w", err)
	}

	sshConfig := &xssh.ClientConfig{
		User:            sd.cfg.SFTPUsername,
		HostKeyCallback: hostKeyCallback,
		Timeout:         30 * time.Second,
	}

	switch {
	case sd.cfg.SFTPKeyPath != "":
		keyData, err := os.ReadFile(sd.cfg.SFTPKeyPath)
		if err != nil {
			return fmt.Errorf("failed to read SFTP key: %w", err)
		}
		signer, err := xssh.ParsePrivateKey(keyData)
		if err != nil {
			return fmt.Errorf("failed to parse SFTP key: %w", err)
		}
		sshConfig.Auth = []xssh.AuthMethod{xssh.PublicKeys(signer)}
	case sd.cfg.SFTPPassword != "":
		sshConfig.Auth = []xssh.AuthMethod{xssh.Password(sd.cfg.SFTPPassword)}
	default:
		return fmt.Errorf("sftp destination requires a password or key path")
	}

	port := sd.cfg.SFTPPort
	if port == 0 {
		port = 22
	}

	addr := fmt.Sprintf("%s:%d", sd.cfg.SFTPHost, port)
	sshClient, err := xssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SFTP host %s: %w", addr, err)
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return fmt.Errorf("failed to create SFTP client: %w", err)
	}

	sd.sshClient = sshClient
	sd.sftpClient = sftpClient
	return nil
}

// Upload writes a snapshot file to the remote path
func (sd *SFTPDestination) Upload(filename string, data []byte) error {
	remotePath := path.Join(sd.cfg.Path, filename)
	log.Printf("[SFTPDest] Uploading %s to %s (%d bytes)", filename, remotePath, len(data))

	if err := sd.sftpClient.MkdirAll(sd.cfg.Path); err != nil {
		return fmt.Errorf("failed to create remote directory: %w", err)
	}

	file, err := sd.sftpClient.Create(remotePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write remote file: %w", err)
	}

	log.Printf("[SFTPDest] Upload complete: %s", filename)
	return nil
}

// GetType returns the destination type identifier
func (sd *SFTPDestination) GetType() string {
	return "sftp"
}

// Close closes the SFTP and SSH connections
func (sd *SFTPDestination) Close() error {
	if sd.sftpClient != nil {
		sd.sftpClient.Close()
	}
	if sd.sshClient != nil {
		return sd.sshClient.Close()
	}
	return nil
}
