// AngelaMos | 2026
// rules_test.go

package book

import (
	"mime/multipart"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/bookshelf/internal/config"
	"github.com/carterperez-dev/templates/bookshelf/internal/core"
	"github.com/carterperez-dev/templates/bookshelf/internal/validate"
)

func jsonPayload(t *testing.T, raw string) *validate.Payload {
	t.Helper()
	fields := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	return validate.NewPayload(fields)
}

func withYear(t *testing.T, year int) {
	t.Helper()
	prev := currentYear
	currentYear = func() int { return year }
	t.Cleanup(func() { currentYear = prev })
}

func TestCreateRules_URLPolicy(t *testing.T) {
	withYear(t, 2026)
	rules := CreateRules(config.CoverPolicyURL)

	assert.Empty(t, rules.Evaluate(jsonPayload(t,
		`{"title":"Dune","genre":"SciFi","language":"EN","ratings":"5","coverPage":"https://x.io/d.png","year":1965}`)))

	got := rules.Evaluate(jsonPayload(t, `{"coverPage":"not a url","year":3000}`))
	assert.Equal(t, []core.FieldError{
		{Field: "title", Message: "Title is required"},
		{Field: "genre", Message: "Genre is required"},
		{Field: "language", Message: "Language is required"},
		{Field: "ratings", Message: "Ratings are required"},
		{Field: "coverPage", Message: "Cover page must be a valid URL"},
		{Field: "year", Message: "Year must be a valid integer and within a reasonable range"},
	}, got)
}

func TestCreateRules_YearBoundFollowsClock(t *testing.T) {
	rules := CreateRules(config.CoverPolicyURL)
	body := `{"title":"t","genre":"g","language":"l","ratings":"r","coverPage":"https://x.io/c.png","year":2027}`

	withYear(t, 2026)
	assert.Len(t, rules.Evaluate(jsonPayload(t, body)), 1)

	currentYear = func() int { return 2027 }
	assert.Empty(t, rules.Evaluate(jsonPayload(t, body)))
}

func TestCreateRules_UploadPolicy(t *testing.T) {
	withYear(t, 2026)
	rules := CreateRules(config.CoverPolicyUpload)

	p := jsonPayload(t, `{"title":"t","genre":"g","language":"l","ratings":"r","year":"2000"}`)
	got := rules.Evaluate(p)
	assert.Equal(t, []core.FieldError{{Field: "coverPage", Message: "Cover page is required"}}, got)

	p.AttachFile("coverPage", &multipart.FileHeader{Filename: "c.png", Size: 12})
	assert.Empty(t, rules.Evaluate(p))
}

func TestEditRules_OnlySuppliedFields(t *testing.T) {
	withYear(t, 2026)
	rules := EditRules(config.CoverPolicyURL)

	assert.Empty(t, rules.Evaluate(jsonPayload(t, `{}`)))
	assert.Empty(t, rules.Evaluate(jsonPayload(t, `{"title":"New"}`)))

	got := rules.Evaluate(jsonPayload(t, `{"year":999,"genre":""}`))
	assert.Equal(t, []core.FieldError{
		{Field: "genre", Message: "Genre is required"},
		{Field: "year", Message: "Year must be a valid integer and within a reasonable range"},
	}, got)
}
