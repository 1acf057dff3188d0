// AngelaMos | 2026
// database_test.go

package core

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/bookshelf/internal/core/migrations"
)

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_users.sql", "00002_create_books.sql"}, files)

	books, err := fs.ReadFile(migrations.FS, "00002_create_books.sql")
	require.NoError(t, err)
	assert.Contains(t, string(books), "REFERENCES users")
}

func TestMigrate_RunsGooseUp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectClose()

	prev := gooseUp
	t.Cleanup(func() { gooseUp = prev })

	var gotDir string
	gooseUp = func(_ context.Context, got *sql.DB, dir string) error {
		assert.Same(t, db, got)
		gotDir = dir
		return nil
	}

	d := &Database{DB: sqlx.NewDb(db, "pgx")}
	require.NoError(t, d.Migrate(context.Background()))
	assert.Equal(t, ".", gotDir)

	gooseUp = func(context.Context, *sql.DB, string) error {
		return errors.New("dirty database version 2")
	}
	assert.ErrorContains(t, d.Migrate(context.Background()), "dirty database")
}

func TestJitteredDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), jitteredDuration(0))

	base := time.Hour
	for i := 0; i < 20; i++ {
		got := jitteredDuration(base)
		assert.GreaterOrEqual(t, got, base)
		assert.LessOrEqual(t, got, base+base/7)
	}
}
