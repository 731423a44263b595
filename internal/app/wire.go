package app

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/hupe1980/kdgo"
	"github.com/hupe1980/kdgo/blobstore"
	minioblob "github.com/hupe1980/kdgo/blobstore/minio"
	s3blob "github.com/hupe1980/kdgo/blobstore/s3"
)

// NewLogger builds the logger described by cfg, writing to w.
func NewLogger(cfg LogConfig, w io.Writer) (*kdgo.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.Format, "json") {
		return kdgo.NewJSONLogger(w, level), nil
	}
	return kdgo.NewTextLogger(w, level), nil
}

// OpenStore resolves target to a store and the blob name inside it.
//
// For the local backend target is a file path: the store is rooted at its
// directory and the name is its base. For remote backends target is the
// object key below the configured prefix.
func OpenStore(ctx context.Context, cfg StoreConfig, target string) (blobstore.BlobStore, string, error) {
	switch cfg.Backend {
	case BackendS3:
		var opts []s3blob.Option
		if cfg.Prefix != "" {
			opts = append(opts, s3blob.WithPrefix(cfg.Prefix))
		}
		if cfg.Region != "" {
			opts = append(opts, s3blob.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3blob.WithEndpoint(cfg.Endpoint))
		}
		store, err := s3blob.New(ctx, cfg.Bucket, opts...)
		if err != nil {
			return nil, "", err
		}
		return store, target, nil
	case BackendMinio:
		store, err := minioblob.New(cfg.Endpoint, cfg.Bucket, minioblob.Credentials{
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Secure:    cfg.Secure,
			Region:    cfg.Region,
			Prefix:    cfg.Prefix,
		})
		if err != nil {
			return nil, "", err
		}
		return store, target, nil
	default:
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, "", err
		}
		return blobstore.NewLocalStore(filepath.Dir(abs)), filepath.Base(abs), nil
	}
}

// IndexOptions converts cfg into index options.
func IndexOptions(cfg Config, logger *kdgo.Logger) []kdgo.Option {
	return []kdgo.Option{
		kdgo.WithMetric(cfg.MetricValue()),
		kdgo.WithCompression(cfg.CompressionValue()),
		kdgo.WithLogger(logger),
	}
}
