package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/binplot/binplot/config"
)

const maxNameAttempts = 1000

var ErrNoAvailableName = errors.New("no available name for upload")

// Store keeps uploaded bin data. Keys are relative to the media root.
type Store interface {
	// Save writes r under key, or under a suffixed variant of key when key is
	// taken, and returns the key used.
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// Location is the absolute path or URI of key.
	Location(key string) string
}

func NewStore(cfg *config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.StorageBackendLocal, "":
		return NewLocalStore(cfg.MediaRoot), nil
	case config.StorageBackendS3:
		awsCfg := aws.NewConfig().WithRegion(cfg.S3Region)
		if cfg.S3Endpoint != "" {
			awsCfg = awsCfg.WithEndpoint(cfg.S3Endpoint).WithS3ForcePathStyle(true)
		}
		sess, err := session.NewSession(awsCfg)
		if err != nil {
			return nil, err
		}
		return NewS3Store(s3.New(sess), s3manager.NewUploader(sess), cfg.S3Bucket, cfg.MediaRoot), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %s", cfg.Backend)
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
