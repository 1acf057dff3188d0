// AngelaMos | 2026
// dto.go

package book

import (
	"mime/multipart"
	"time"
)

// CreateBookInput carries either CoverPage (url policy) or CoverFile
// (upload policy), never both.
type CreateBookInput struct {
	Title     string
	Genre     string
	Language  string
	Ratings   string
	CoverPage string
	CoverFile *multipart.FileHeader
	Year      int
}

// UpdateBookInput is a partial update; nil fields are left unchanged.
type UpdateBookInput struct {
	Title     *string
	Genre     *string
	Language  *string
	Ratings   *string
	CoverPage *string
	CoverFile *multipart.FileHeader
	Year      *int
}

func (in UpdateBookInput) apply(b *Book) {
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Genre != nil {
		b.Genre = *in.Genre
	}
	if in.Language != nil {
		b.Language = *in.Language
	}
	if in.Ratings != nil {
		b.Ratings = *in.Ratings
	}
	if in.CoverPage != nil {
		b.CoverPage = *in.CoverPage
	}
	if in.Year != nil {
		b.Year = *in.Year
	}
}

type BookResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Genre     string    `json:"genre"`
	Language  string    `json:"language"`
	Ratings   string    `json:"ratings"`
	CoverPage string    `json:"coverPage"`
	Year      int       `json:"year"`
	Creator   string    `json:"creator"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookEnvelope struct {
	Message string       `json:"message"`
	Book    BookResponse `json:"book"`
}

type BookListEnvelope struct {
	Message string         `json:"message"`
	Books   []BookResponse `json:"books"`
}

func ToBookResponse(b *Book) BookResponse {
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Genre:     b.Genre,
		Language:  b.Language,
		Ratings:   b.Ratings,
		CoverPage: b.CoverPage,
		Year:      b.Year,
		Creator:   b.CreatorID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func ToBookResponseList(books []Book) []BookResponse {
	responses := make([]BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, ToBookResponse(&books[i]))
	}
	return responses
}
