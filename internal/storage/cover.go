// AngelaMos | 2026
// cover.go

package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

// CoverUploader stores a cover image and returns the URL to record on the
// book.
type CoverUploader struct {
	store  ObjectStore
	folder string
}

func NewCoverUploader(store ObjectStore, folder string) *CoverUploader {
	return &CoverUploader{
		store:  store,
		folder: strings.Trim(folder, "/"),
	}
}

// Upload sniffs the file content and rejects anything that is not an image
// with an error wrapping core.ErrInvalidInput.
func (u *CoverUploader) Upload(
	ctx context.Context,
	fh *multipart.FileHeader,
) (string, error) {
	if u == nil || u.store == nil {
		return "", core.ErrStorageDisabled
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open cover: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only multipart file

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect cover type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf(
			"cover is %s, not an image: %w",
			mtype.String(),
			core.ErrInvalidInput,
		)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind cover: %w", err)
	}

	key := path.Join(u.folder, uuid.New().String()+mtype.Extension())
	if err := u.store.Put(ctx, key, f, fh.Size, mtype.String()); err != nil {
		return "", fmt.Errorf("store cover: %w", err)
	}

	return u.store.PublicURL(key), nil
}
