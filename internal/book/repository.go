// AngelaMos | 2026
// repository.go

package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Create(ctx context.Context, book *Book) error
	GetByID(ctx context.Context, id string) (*Book, error)
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const bookColumns = `id, title, genre, language, ratings, cover_page, year,
		creator_id, created_at, updated_at`

func (r *repository) List(ctx context.Context) ([]Book, error) {
	query := `SELECT ` + bookColumns + `
		FROM books
		ORDER BY created_at ASC, id ASC`

	books := []Book{}
	if err := r.db.SelectContext(ctx, &books, query); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return books, nil
}

func (r *repository) Create(ctx context.Context, book *Book) error {
	query := `
		INSERT INTO books (id, title, genre, language, ratings, cover_page, year, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		book.ID,
		book.Title,
		book.Genre,
		book.Language,
		book.Ratings,
		book.CoverPage,
		book.Year,
		book.CreatorID,
	)
	if err := row.Scan(&book.CreatedAt, &book.UpdatedAt); err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Book, error) {
	query := `SELECT ` + bookColumns + `
		FROM books
		WHERE id = $1`

	var book Book
	err := r.db.GetContext(ctx, &book, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get book: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &book, nil
}

// Update writes every mutable column. Callers merge partial input first.
func (r *repository) Update(ctx context.Context, book *Book) error {
	query := `
		UPDATE books
		SET title = $2, genre = $3, language = $4, ratings = $5,
			cover_page = $6, year = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		book.ID,
		book.Title,
		book.Genre,
		book.Language,
		book.Ratings,
		book.CoverPage,
		book.Year,
	)
	err := row.Scan(&book.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update book: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete book: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM books`); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}
