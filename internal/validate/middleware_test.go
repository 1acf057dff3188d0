// AngelaMos | 2026
// middleware_test.go

package validate

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titleRules = RuleSet{
	{Field: "title", Check: NotEmpty(), Message: "Title is required"},
	{Field: "cover", Check: FileAttached(), Message: "Cover is required"},
}.AsOptional()

func serveBody(rules RuleSet, req *http.Request) (*httptest.ResponseRecorder, *Payload) {
	var seen *Payload
	h := Body(rules)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PayloadFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestBody_PassesPayloadToHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Dune","year":1965}`))
	req.Header.Set("Content-Type", "application/json")

	rec, p := serveBody(titleRules, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, p)
	assert.Equal(t, "Dune", p.Str("title"))
	year, ok := p.Int("year")
	assert.True(t, ok)
	assert.Equal(t, 1965, year)
}

func TestBody_RejectsViolations(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":""}`))
	req.Header.Set("Content-Type", "application/json")

	rec, p := serveBody(titleRules, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, p)

	var out struct {
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Validation failed", out.Message)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "title", out.Errors[0].Field)
	assert.Equal(t, "Title is required", out.Errors[0].Message)
}

func TestBody_RejectsMalformedJSON(t *testing.T) {
	for _, body := range []string{`{"title":`, `[1,2]`, `"str"`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		rec, _ := serveBody(titleRules, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "Invalid request body", body)
	}
}

func TestBody_EmptyBodyIsEmptyPayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/", http.NoBody)

	rec, p := serveBody(titleRules, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, p)
	assert.False(t, p.Has("title"))
}

func TestBody_Multipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Dune"))
	fw, err := mw.CreateFormFile("cover", "cover.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec, p := serveBody(titleRules, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Dune", p.Str("title"))
	require.True(t, p.HasFile("cover"))
	assert.Equal(t, "cover.png", p.File("cover").Filename)
}

func TestPayloadFrom_EmptyWhenMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	p := PayloadFrom(req.Context())
	require.NotNil(t, p)
	assert.False(t, p.Has("anything"))
}
