// AngelaMos | 2026
// entity.go

package book

import (
	"time"
)

type Book struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Genre     string    `db:"genre"`
	Language  string    `db:"language"`
	Ratings   string    `db:"ratings"`
	CoverPage string    `db:"cover_page"`
	Year      int       `db:"year"`
	CreatorID string    `db:"creator_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
