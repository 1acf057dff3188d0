// AngelaMos | 2026
// store.go

// Package storage holds uploaded book covers in S3-compatible object storage
// and hands back the public URL recorded on the book.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/carterperez-dev/templates/bookshelf/internal/config"
)

type ObjectStore interface {
	Put(
		ctx context.Context,
		key string,
		r io.Reader,
		size int64,
		contentType string,
	) error
	PublicURL(key string) string
	Ping(ctx context.Context) error
}

// New builds the store selected by cfg.Provider.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Provider {
	case config.StorageProviderMinio:
		return NewMinioStore(ctx, cfg)
	case config.StorageProviderS3:
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// publicURL joins base and key, escaping each key segment.
func publicURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}

func endpointBase(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") ||
		strings.HasPrefix(endpoint, "https://") {
		return strings.TrimRight(endpoint, "/")
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return scheme + "://" + strings.TrimRight(endpoint, "/")
}
