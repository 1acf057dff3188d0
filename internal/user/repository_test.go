// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

var userColumns = []string{
	"id", "email", "password_hash", "name", "role", "created_at", "updated_at",
}

func newRepoWithMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (id, email, password_hash, name, role)")).
		WithArgs("u-1", "ada@example.com", "hash", "Ada", RoleAuthor).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	u := &User{ID: "u-1", Email: "ada@example.com", PasswordHash: "hash", Name: "Ada", Role: RoleAuthor}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.True(t, now.Equal(u.CreatedAt))
}

func TestRepository_CreateDuplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{ID: "u-1", Email: "ada@example.com"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "ada@example.com", "hash", "Ada", RoleAdmin, now, now))

	u, err := repo.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.Equal(t, "Ada", u.Name)
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("u-2").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "u-2")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_GetByEmailFailure(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
		WithArgs("ada@example.com").
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound)
	assert.Contains(t, err.Error(), "db down")
}

func TestRepository_ExistsByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
