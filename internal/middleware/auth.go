// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

const (
	IdentityKey contextKey = "identity"
)

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*TokenClaims, error)
}

type TokenClaims struct {
	UserID    string
	Email     string
	Role      string
	Name      string
	ExpiresAt time.Time
}

// Identity is the caller as currently stored, loaded fresh on every
// protected request.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// IdentityLoader resolves a user id to its stored identity. A missing user
// must be reported with an error wrapping core.ErrNotFound.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, id string) (*Identity, error)
}

// Authenticator verifies the credential in the Authorization header and
// attaches the stored identity it names. The role is taken from storage,
// not from the token, so a role change applies to the very next request.
func Authenticator(
	verifier TokenVerifier,
	loader IdentityLoader,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.Unauthorized(w)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				slog.WarnContext(r.Context(), "token verification failed",
					"token", token,
					"error", err,
				)
				core.Unauthorized(w)
				return
			}

			identity, err := loader.LoadIdentity(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, core.ErrNotFound) {
					core.Unauthorized(w)
					return
				}
				slog.ErrorContext(r.Context(), "identity lookup failed",
					"user_id", claims.UserID,
					"error", err,
				)
				core.Message(
					w,
					http.StatusInternalServerError,
					"Internal server error",
				)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireRole admits only identities whose stored role is in roles. A
// missing identity and a disallowed role get the same 401 response.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				core.Unauthorized(w)
				return
			}

			if _, ok := roleSet[identity.Role]; !ok {
				slog.InfoContext(r.Context(), "role not permitted",
					"user_id", identity.ID,
					"role", identity.Role,
					"path", r.URL.Path,
				)
				core.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken returns the raw credential from the Authorization header.
// Clients send the bare token; a "Bearer " prefix is tolerated.
func ExtractToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return ""
	}

	scheme, rest, found := strings.Cut(authHeader, " ")
	if found && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(rest)
	}

	return authHeader
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) string {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.ID
	}
	return ""
}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}
