// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
	"github.com/carterperez-dev/templates/bookshelf/internal/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /auth. limiter may be nil.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	limiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter)
		}

		r.With(validate.Body(SignupRules)).Post("/register", h.Register)
		r.With(validate.Body(LoginRules)).Post("/login", h.Login)
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	p := validate.PayloadFrom(r.Context())

	token, err := h.service.Register(r.Context(), RegisterRequest{
		Email:    p.Str("email"),
		Password: p.Str("password"),
		Name:     p.Str("name"),
		Role:     p.Str("role"),
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.JSONError(w, core.ConflictError("User already registered"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, TokenResponse{
		Message: "Registration successful",
		Token:   token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	p := validate.PayloadFrom(r.Context())

	token, err := h.service.Login(r.Context(), LoginRequest{
		Email:    p.Str("email"),
		Password: p.Str("password"),
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(w, core.InvalidCredentialsError())
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, TokenResponse{
		Message: "Login successful",
		Token:   token,
	})
}
