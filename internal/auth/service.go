// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

type NewUser struct {
	Email        string
	PasswordHash string
	Name         string
	Role         string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, in NewUser) (*UserInfo, error)
}

type TokenIssuer interface {
	Issue(claims IdentityClaims) (string, error)
}

type Service struct {
	users  UserProvider
	tokens TokenIssuer
}

func NewService(users UserProvider, tokens TokenIssuer) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

// Register creates the account and returns a credential for it.
func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (token string, err error) {
	ctx, span := core.StartSpan(ctx, "auth.Register",
		attribute.String("user.role", req.Role),
	)
	defer func() { core.EndSpan(span, err) }()

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return "", ErrEmailExists
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	user, err := s.users.Create(ctx, NewUser{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return "", ErrEmailExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err = s.tokens.Issue(IdentityClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (token string, err error) {
	ctx, span := core.StartSpan(ctx, "auth.Login")
	defer func() {
		if errors.Is(err, ErrInvalidCredentials) {
			core.EndSpan(span, nil)
			return
		}
		core.EndSpan(span, err)
	}()

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !valid {
		return "", ErrInvalidCredentials
	}

	token, err = s.tokens.Issue(IdentityClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}
