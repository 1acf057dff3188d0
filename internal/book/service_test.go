// AngelaMos | 2026
// service_test.go

package book

import (
	"context"
	"mime/multipart"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

type memoryRepo struct {
	mu    sync.Mutex
	books []Book
}

func (m *memoryRepo) List(context.Context) ([]Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Book, len(m.books))
	copy(out, m.books)
	return out, nil
}

func (m *memoryRepo) Create(_ context.Context, b *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.books = append(m.books, *b)
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.books {
		if m.books[i].ID == id {
			b := m.books[i]
			return &b, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) Update(_ context.Context, b *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.books {
		if m.books[i].ID == b.ID {
			b.UpdatedAt = time.Now()
			m.books[i] = *b
			return nil
		}
	}
	return core.ErrNotFound
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.books {
		if m.books[i].ID == id {
			m.books = append(m.books[:i], m.books[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (m *memoryRepo) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.books), nil
}

type stubUploader struct {
	url string
	err error
}

func (s stubUploader) Upload(context.Context, *multipart.FileHeader) (string, error) {
	return s.url, s.err
}

func strPtr(s string) *string { return &s }

func sampleInput() CreateBookInput {
	return CreateBookInput{
		Title:     "Dune",
		Genre:     "SciFi",
		Language:  "EN",
		Ratings:   "5",
		CoverPage: "https://covers.example.com/dune.png",
		Year:      1965,
	}
}

func TestService_CreateStampsCreator(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil)

	b, err := svc.Create(context.Background(), "u-1", sampleInput())
	require.NoError(t, err)

	_, err = uuid.Parse(b.ID)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", b.CreatorID)
	assert.Equal(t, "https://covers.example.com/dune.png", b.CoverPage)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestService_CreateWithUploadedCover(t *testing.T) {
	svc := NewService(&memoryRepo{}, stubUploader{url: "https://cdn.example.com/book_covers/x.png"})

	in := sampleInput()
	in.CoverPage = ""
	in.CoverFile = &multipart.FileHeader{Filename: "x.png", Size: 4}

	b, err := svc.Create(context.Background(), "u-1", in)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/book_covers/x.png", b.CoverPage)
}

func TestService_CreateUploadWithoutStore(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nil)

	in := sampleInput()
	in.CoverFile = &multipart.FileHeader{Filename: "x.png", Size: 4}

	_, err := svc.Create(context.Background(), "u-1", in)
	assert.ErrorIs(t, err, core.ErrStorageDisabled)

	n, _ := repo.Count(context.Background())
	assert.Zero(t, n)
}

func TestService_EditMergesSuppliedFieldsOnly(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u-1", sampleInput())
	require.NoError(t, err)

	year := 1966
	edited, err := svc.Edit(ctx, created.ID, UpdateBookInput{
		Title: strPtr("Dune Messiah"),
		Year:  &year,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dune Messiah", edited.Title)
	assert.Equal(t, 1966, edited.Year)
	assert.Equal(t, "SciFi", edited.Genre)
	assert.Equal(t, "EN", edited.Language)
	assert.Equal(t, "5", edited.Ratings)
	assert.Equal(t, created.CoverPage, edited.CoverPage)
	assert.Equal(t, "u-1", edited.CreatorID)

	books, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune Messiah", books[0].Title)
}

func TestService_EditMissing(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil)

	_, err := svc.Edit(context.Background(), uuid.New().String(), UpdateBookInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Edit(context.Background(), "not-a-uuid", UpdateBookInput{})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u-1", sampleInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), core.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "42"), core.ErrNotFound)

	books, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestService_NormalizesNonCanonicalIDs(t *testing.T) {
	svc := NewService(&memoryRepo{}, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "u-1", sampleInput())
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, strings.ToUpper(created.ID), UpdateBookInput{Title: strPtr("Dune Messiah")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, edited.ID)

	require.NoError(t, svc.Delete(ctx, "urn:uuid:"+created.ID))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
