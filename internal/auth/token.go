// AngelaMos | 2026
// token.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/templates/bookshelf/internal/config"
	"github.com/carterperez-dev/templates/bookshelf/internal/core"
	"github.com/carterperez-dev/templates/bookshelf/internal/middleware"
)

const (
	claimID    = "id"
	claimEmail = "email"
	claimRole  = "role"
	claimName  = "name"
)

// TokenManager issues and verifies HS256 credentials signed with a single
// process-wide secret. Rotating the secret invalidates every token issued
// before the rotation.
type TokenManager struct {
	key    jwk.Key
	issuer string
	expire time.Duration
	now    func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	return &TokenManager{
		key:    key,
		issuer: cfg.Issuer,
		expire: cfg.Expire,
		now:    time.Now,
	}, nil
}

// IdentityClaims is what gets embedded in a credential. Name is only
// populated for tokens minted at login.
type IdentityClaims struct {
	UserID string
	Email  string
	Role   string
	Name   string
}

func (m *TokenManager) Issue(claims IdentityClaims) (string, error) {
	now := m.now()

	builder := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(m.issuer).
		Subject(claims.UserID).
		IssuedAt(now).
		Expiration(now.Add(m.expire)).
		Claim(claimID, claims.UserID).
		Claim(claimEmail, claims.Email).
		Claim(claimRole, claims.Role)

	if claims.Name != "" {
		builder = builder.Claim(claimName, claims.Name)
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), m.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (m *TokenManager) Verify(
	_ context.Context,
	tokenString string,
) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.issuer),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w: %w", core.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("verify token: %w: %w", core.ErrTokenInvalid, err)
	}

	var userID string
	if err := token.Get(claimID, &userID); err != nil || userID == "" {
		return nil, fmt.Errorf(
			"verify token: missing id claim: %w",
			core.ErrTokenInvalid,
		)
	}

	claims := &middleware.TokenClaims{UserID: userID}

	//nolint:errcheck // optional claims, absence leaves zero values
	_ = token.Get(claimEmail, &claims.Email)
	//nolint:errcheck // optional claims, absence leaves zero values
	_ = token.Get(claimRole, &claims.Role)
	//nolint:errcheck // optional claims, absence leaves zero values
	_ = token.Get(claimName, &claims.Name)

	if exp, ok := token.Expiration(); ok {
		claims.ExpiresAt = exp
	}

	return claims, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}
