// AngelaMos | 2026
// store_test.go

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/templates/bookshelf/internal/config"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://cdn.example.com/covers/book_covers/a%20b.png",
		publicURL("https://cdn.example.com/covers/", "book_covers/a b.png"),
	)
}

func TestEndpointBase(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", endpointBase("localhost:9000", false))
	assert.Equal(t, "https://minio.internal", endpointBase("minio.internal/", true))
	assert.Equal(t, "http://minio:9000", endpointBase("http://minio:9000", true))
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Provider: "ftp"})
	assert.Error(t, err)
}
