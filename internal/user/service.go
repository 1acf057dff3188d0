// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/bookshelf/internal/auth"
	"github.com/carterperez-dev/templates/bookshelf/internal/core"
	"github.com/carterperez-dev/templates/bookshelf/internal/middleware"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}

	user, err := s.repo.GetByID(ctx, parsed.String())
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, normalizeEmail(email))
}

// Create stores a new user. The role is fixed here and no exposed operation
// changes it afterwards.
func (s *Service) Create(
	ctx context.Context,
	in auth.NewUser,
) (*auth.UserInfo, error) {
	if !IsValidRole(in.Role) {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			in.Role,
			core.ErrInvalidInput,
		)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(in.Email),
		PasswordHash: in.PasswordHash,
		Name:         in.Name,
		Role:         in.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// LoadIdentity backs the request authenticator. It reads the stored user
// on every call.
func (s *Service) LoadIdentity(
	ctx context.Context,
	id string,
) (*middleware.Identity, error) {
	info, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		ID:    info.ID,
		Email: info.Email,
		Name:  info.Name,
		Role:  info.Role,
	}, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}
}

var (
	_ auth.UserProvider         = (*Service)(nil)
	_ middleware.IdentityLoader = (*Service)(nil)
)
