package backup

import (
	"bytes"
	"fmt"
	"log"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/yourusername/lokanta-backend/internal/config"
)

// S3Destination stores snapshots in AWS S3 or S3-compatible storage
type S3Destination struct {
	cfg      config.DestinationConfig
	s3Client *s3.S3
}

// NewS3Destination creates a new S3 destination
func NewS3Destination(cfg config.DestinationConfig) (*S3Destination, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.S3Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	// Custom endpoint for S3-compatible storage (MinIO, DigitalOcean Spaces, etc.)
	if cfg.S3Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.S3Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	dest := &S3Destination{
		cfg:      cfg,
		s3Client: s3.New(sess),
	}

	log.Printf("[S3Dest] Initialized S3 destination: bucket=%s, region=%s",
		cfg.S3Bucket, cfg.S3Region)

	return dest, nil
}

// Upload uploads a snapshot file to S3
func (sd *S3Destination) Upload(filename string, data []byte) error {
	key := path.Join(sd.cfg.Path, filename)
	log.Printf("[S3Dest] Uploading %s to s3://%s/%s (%d bytes)",
		filename, sd.cfg.S3Bucket, key, len(data))

	_, err := sd.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(sd.cfg.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
		StorageClass:  aws.String("STANDARD"),
	})

	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	log.Printf("[S3Dest] Upload complete: %s", filename)
	return nil
}

// GetType returns the destination type identifier
func (sd *S3Destination) GetType() string {
	return "s3"
}
