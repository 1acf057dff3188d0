// AngelaMos | 2026
// middleware.go

package validate

import (
	"log/slog"
	"net/http"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

type bodyOptions struct {
	maxMultipartBytes int64
}

type BodyOption func(*bodyOptions)

// WithMaxMultipartBytes caps multipart uploads.
func WithMaxMultipartBytes(n int64) BodyOption {
	return func(o *bodyOptions) {
		o.maxMultipartBytes = n
	}
}

// Body parses the request payload and evaluates rules against it. Any
// violation ends the request with 400 and the full violation list; otherwise
// the payload is attached to the context for the handler.
func Body(rules RuleSet, opts ...BodyOption) func(http.Handler) http.Handler {
	o := bodyOptions{maxMultipartBytes: defaultMultipartBytes}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, err := ParseRequest(r, o.maxMultipartBytes)
			if err != nil {
				slog.DebugContext(r.Context(), "unparseable request body",
					"path", r.URL.Path,
					"error", err,
				)
				core.JSONError(w, core.InvalidBodyError())
				return
			}

			if violations := rules.Evaluate(payload); len(violations) > 0 {
				core.JSONError(w, core.ValidationError(violations))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
		})
	}
}
