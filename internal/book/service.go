// AngelaMos | 2026
// service.go

package book

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

// CoverUploader turns an uploaded cover into the URL stored on the book.
type CoverUploader interface {
	Upload(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

type Service struct {
	repo   Repository
	covers CoverUploader
}

// NewService wires the book store. covers may be nil when covers are
// supplied as URLs.
func NewService(repo Repository, covers CoverUploader) *Service {
	return &Service{
		repo:   repo,
		covers: covers,
	}
}

func (s *Service) List(ctx context.Context) (books []Book, err error) {
	ctx, span := core.StartSpan(ctx, "book.List")
	defer func() { core.EndSpan(span, err) }()

	return s.repo.List(ctx)
}

// Create stores a new book whose creator is always creatorID, whatever the
// request carried.
func (s *Service) Create(
	ctx context.Context,
	creatorID string,
	in CreateBookInput,
) (book *Book, err error) {
	ctx, span := core.StartSpan(ctx, "book.Create",
		attribute.String("book.creator", creatorID),
	)
	defer func() { core.EndSpan(span, err) }()

	coverPage := in.CoverPage
	if in.CoverFile != nil {
		coverPage, err = s.uploadCover(ctx, in.CoverFile)
		if err != nil {
			return nil, err
		}
	}

	book = &Book{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Genre:     in.Genre,
		Language:  in.Language,
		Ratings:   in.Ratings,
		CoverPage: coverPage,
		Year:      in.Year,
		CreatorID: creatorID,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// Edit applies a partial update. The creator never changes.
func (s *Service) Edit(
	ctx context.Context,
	id string,
	in UpdateBookInput,
) (book *Book, err error) {
	ctx, span := core.StartSpan(ctx, "book.Edit",
		attribute.String("book.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	book, err = s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CoverFile != nil {
		url, err := s.uploadCover(ctx, in.CoverFile)
		if err != nil {
			return nil, err
		}
		in.CoverPage = &url
	}

	in.apply(book)

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

func (s *Service) Delete(ctx context.Context, id string) (err error) {
	ctx, span := core.StartSpan(ctx, "book.Delete",
		attribute.String("book.id", id),
	)
	defer func() { core.EndSpan(span, err) }()

	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("delete book: %w", core.ErrNotFound)
	}

	return s.repo.Delete(ctx, parsed.String())
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) get(ctx context.Context, id string) (*Book, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", core.ErrNotFound)
	}
	return s.repo.GetByID(ctx, parsed.String())
}

func (s *Service) uploadCover(
	ctx context.Context,
	fh *multipart.FileHeader,
) (string, error) {
	if s.covers == nil {
		return "", core.ErrStorageDisabled
	}
	return s.covers.Upload(ctx, fh)
}
