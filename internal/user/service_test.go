// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/bookshelf/internal/auth"
	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

func TestService_CreateNormalizesEmailAndAssignsID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	svc := NewService(repo)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(sqlmock.AnyArg(), "ada@example.com", "hash", "Ada", RoleReader).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	info, err := svc.Create(context.Background(), auth.NewUser{
		Email:        "  Ada@Example.com ",
		PasswordHash: "hash",
		Name:         "Ada",
		Role:         RoleReader,
	})
	require.NoError(t, err)
	assert.Len(t, info.ID, 36)
	assert.Equal(t, "ada@example.com", info.Email)
}

func TestService_CreateRejectsUnknownRole(t *testing.T) {
	repo, _ := newRepoWithMock(t)
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), auth.NewUser{Email: "a@b.co", Role: "Owner"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestService_LoadIdentity(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	svc := NewService(repo)
	now := time.Now()
	id := "6f1d2c1e-4b8a-4f55-9a0f-1d2e3f4a5b6c"

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id, "ada@example.com", "hash", "Ada", RoleAuthor, now, now))

	identity, err := svc.LoadIdentity(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, RoleAuthor, identity.Role)
	assert.Equal(t, "Ada", identity.Name)
}

func TestService_LoadIdentityMalformedID(t *testing.T) {
	repo, _ := newRepoWithMock(t)
	svc := NewService(repo)

	_, err := svc.LoadIdentity(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_LoadIdentityURNForm(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	svc := NewService(repo)
	now := time.Now()
	id := "6f1d2c1e-4b8a-4f55-9a0f-1d2e3f4a5b6c"

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id, "ada@example.com", "hash", "Ada", RoleReader, now, now))

	identity, err := svc.LoadIdentity(context.Background(), "urn:uuid:"+id)
	require.NoError(t, err)
	assert.Equal(t, id, identity.ID)
}
