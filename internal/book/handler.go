// AngelaMos | 2026
// handler.go

package book

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/bookshelf/internal/config"
	"github.com/carterperez-dev/templates/bookshelf/internal/core"
	"github.com/carterperez-dev/templates/bookshelf/internal/middleware"
	"github.com/carterperez-dev/templates/bookshelf/internal/user"
	"github.com/carterperez-dev/templates/bookshelf/internal/validate"
)

const resourceName = "book"

type Handler struct {
	service        *Service
	coverPolicy    string
	maxUploadBytes int64
}

func NewHandler(service *Service, cfg config.StorageConfig) *Handler {
	policy := cfg.CoverPolicy
	if policy == "" {
		policy = config.CoverPolicyURL
	}
	return &Handler{
		service:        service,
		coverPolicy:    policy,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

// RegisterRoutes mounts /book behind authenticator. Each route adds its own
// role gate and, where it takes a body, a validator.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	bodyOpts := []validate.BodyOption{}
	if h.maxUploadBytes > 0 {
		bodyOpts = append(bodyOpts, validate.WithMaxMultipartBytes(h.maxUploadBytes))
	}

	anyRole := middleware.RequireRole(user.RoleAdmin, user.RoleAuthor, user.RoleReader)
	writers := middleware.RequireRole(user.RoleAdmin, user.RoleAuthor)
	adminOnly := middleware.RequireRole(user.RoleAdmin)

	r.Route("/book", func(r chi.Router) {
		r.Use(authenticator)

		r.With(anyRole).Get("/", h.List)
		r.With(writers, validate.Body(CreateRules(h.coverPolicy), bodyOpts...)).
			Post("/add", h.Create)
		r.With(writers, validate.Body(EditRules(h.coverPolicy), bodyOpts...)).
			Patch("/edit/{bookId}", h.Edit)
		r.With(adminOnly).Delete("/delete/{bookId}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, BookListEnvelope{
		Message: "books retrieved successfully",
		Books:   ToBookResponseList(books),
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p := validate.PayloadFrom(r.Context())
	year, _ := p.Int("year")

	in := CreateBookInput{
		Title:    p.Str("title"),
		Genre:    p.Str("genre"),
		Language: p.Str("language"),
		Ratings:  p.Str("ratings"),
		Year:     year,
	}
	if h.coverPolicy == config.CoverPolicyUpload {
		in.CoverFile = p.File("coverPage")
	} else {
		in.CoverPage = p.Str("coverPage")
	}

	book, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, BookEnvelope{
		Message: "book created successfully",
		Book:    ToBookResponse(book),
	})
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	p := validate.PayloadFrom(r.Context())

	in := UpdateBookInput{
		Title:    optionalString(p, "title"),
		Genre:    optionalString(p, "genre"),
		Language: optionalString(p, "language"),
		Ratings:  optionalString(p, "ratings"),
	}
	if p.Has("year") {
		if year, ok := p.Int("year"); ok {
			in.Year = &year
		}
	}
	if h.coverPolicy == config.CoverPolicyUpload {
		in.CoverFile = p.File("coverPage")
	} else {
		in.CoverPage = optionalString(p, "coverPage")
	}

	book, err := h.service.Edit(r.Context(), chi.URLParam(r, "bookId"), in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, BookEnvelope{
		Message: "book updated successfully",
		Book:    ToBookResponse(book),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "bookId")); err != nil {
		h.writeError(w, err)
		return
	}

	core.Message(w, http.StatusOK, "book deleted successfully")
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resourceName)
	case errors.Is(err, core.ErrInvalidInput):
		core.JSONError(w, core.ValidationError([]core.FieldError{{
			Field:   "coverPage",
			Message: "Cover page must be an image",
		}}))
	default:
		core.InternalServerError(w, err)
	}
}

func optionalString(p *validate.Payload, field string) *string {
	if !p.Has(field) {
		return nil
	}
	s := p.Str(field)
	return &s
}
