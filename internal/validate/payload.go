// AngelaMos | 2026
// payload.go

package validate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

const (
	maxJSONBytes          = 1 << 20
	defaultMultipartBytes = 8 << 20
)

type payloadKey struct{}

// Payload is a parsed request body: the raw field values of a JSON object or
// multipart form plus any attached files. Absent and null fields are
// indistinguishable.
type Payload struct {
	fields map[string]any
	files  map[string][]*multipart.FileHeader
}

func NewPayload(fields map[string]any) *Payload {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Payload{
		fields: fields,
		files:  map[string][]*multipart.FileHeader{},
	}
}

func (p *Payload) Has(field string) bool {
	v, ok := p.fields[field]
	return ok && v != nil
}

// String returns the field rendered as text. Numbers are accepted so that
// form values and JSON numbers read the same way; objects, arrays and
// booleans are not.
func (p *Payload) String(field string) (string, bool) {
	switch v := p.fields[field].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Str is String without the ok flag.
func (p *Payload) Str(field string) string {
	s, _ := p.String(field)
	return s
}

// Int parses the field as a base-10 integer. JSON numbers with no fractional
// part (1965.0, 1.965e3) count as integers; text must be plain digits.
func (p *Payload) Int(field string) (int, bool) {
	switch v := p.fields[field].(type) {
	case json.Number:
		if n, err := strconv.Atoi(v.String()); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return wholeNumber(f)
	case float64:
		return wholeNumber(v)
	}

	s, ok := p.String(field)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func wholeNumber(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func (p *Payload) HasFile(field string) bool {
	return len(p.files[field]) > 0 && p.files[field][0].Size > 0
}

func (p *Payload) File(field string) *multipart.FileHeader {
	if !p.HasFile(field) {
		return nil
	}
	return p.files[field][0]
}

// AttachFile records an uploaded file under field.
func (p *Payload) AttachFile(field string, fh *multipart.FileHeader) {
	p.files[field] = append(p.files[field], fh)
}

func WithPayload(ctx context.Context, p *Payload) context.Context {
	return context.WithValue(ctx, payloadKey{}, p)
}

// PayloadFrom returns the payload parsed by Body, or an empty one.
func PayloadFrom(ctx context.Context) *Payload {
	if p, ok := ctx.Value(payloadKey{}).(*Payload); ok {
		return p
	}
	return NewPayload(nil)
}

// ParseRequest reads a JSON object or multipart form. An empty body parses
// to an empty payload. The JSON body is restored on r so handlers may read
// it again.
func ParseRequest(r *http.Request, maxMultipartBytes int64) (*Payload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {
		return parseMultipart(r, maxMultipartBytes)
	}

	return parseJSON(r)
}

func parseJSON(r *http.Request) (*Payload, error) {
	if r.Body == nil {
		return NewPayload(nil), nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(raw) > maxJSONBytes {
		return nil, fmt.Errorf("read body: %w: body too large", core.ErrInvalidInput)
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))

	if len(bytes.TrimSpace(raw)) == 0 {
		return NewPayload(nil), nil
	}

	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode body: %w: %w", core.ErrInvalidInput, err)
	}

	return NewPayload(fields), nil
}

func parseMultipart(r *http.Request, maxBytes int64) (*Payload, error) {
	if maxBytes <= 0 {
		maxBytes = defaultMultipartBytes
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("parse form: %w: upload too large", core.ErrInvalidInput)
		}
		return nil, fmt.Errorf("parse form: %w: %w", core.ErrInvalidInput, err)
	}

	fields := make(map[string]any, len(r.MultipartForm.Value))
	for name, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}

	p := NewPayload(fields)
	for name, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			p.AttachFile(name, fh)
		}
	}

	return p, nil
}
