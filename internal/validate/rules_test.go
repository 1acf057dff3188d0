// AngelaMos | 2026
// rules_test.go

package validate

import (
	"mime/multipart"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

func payloadOf(t *testing.T, raw string) *Payload {
	t.Helper()

	fields := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	return NewPayload(fields)
}

func TestRuleSet_CollectsEveryViolationInOrder(t *testing.T) {
	rules := RuleSet{
		{Field: "a", Check: NotEmpty(), Message: "a required"},
		{Field: "b", Check: IsEmail(), Message: "b email"},
		{Field: "c", Check: MinLength(3), Message: "c short"},
		{Field: "c", Check: Matches(`[0-9]`), Message: "c digit"},
	}

	got := rules.Evaluate(payloadOf(t, `{"b":"x","c":"ab"}`))

	assert.Equal(t, []core.FieldError{
		{Field: "a", Message: "a required"},
		{Field: "b", Message: "b email"},
		{Field: "c", Message: "c short"},
		{Field: "c", Message: "c digit"},
	}, got)
}

func TestRuleSet_NoViolations(t *testing.T) {
	rules := RuleSet{
		{Field: "email", Check: IsEmail(), Message: "bad"},
		{Field: "role", Check: OneOf("Admin", "Reader"), Message: "bad"},
		{Field: "site", Check: IsURL(), Message: "bad"},
	}

	got := rules.Evaluate(payloadOf(t,
		`{"email":"a@b.co","role":"Reader","site":"https://example.com/x.png"}`))
	assert.Nil(t, got)
}

func TestRuleSet_AsOptionalSkipsAbsentFields(t *testing.T) {
	rules := RuleSet{
		{Field: "title", Check: NotEmpty(), Message: "Title is required"},
		{Field: "year", Check: IntRange(1000, func() int { return 2000 }), Message: "bad year"},
	}.AsOptional()

	assert.Nil(t, rules.Evaluate(payloadOf(t, `{}`)))
	assert.Nil(t, rules.Evaluate(payloadOf(t, `{"title":null}`)))

	got := rules.Evaluate(payloadOf(t, `{"title":"","year":2500}`))
	assert.Equal(t, []core.FieldError{
		{Field: "title", Message: "Title is required"},
		{Field: "year", Message: "bad year"},
	}, got)
}

func TestAsOptional_LeavesOriginalRequired(t *testing.T) {
	rules := RuleSet{{Field: "title", Check: NotEmpty(), Message: "m"}}
	_ = rules.AsOptional()

	assert.False(t, rules[0].Optional)
	assert.Len(t, rules.Evaluate(payloadOf(t, `{}`)), 1)
}

func TestIntRange_FloatingUpperBound(t *testing.T) {
	upper := 2024
	check := IntRange(1000, func() int { return upper })

	assert.True(t, check(payloadOf(t, `{"year":2024}`), "year"))
	assert.False(t, check(payloadOf(t, `{"year":2025}`), "year"))

	upper = 2025
	assert.True(t, check(payloadOf(t, `{"year":2025}`), "year"))

	assert.True(t, check(payloadOf(t, `{"year":"1999"}`), "year"))
	assert.False(t, check(payloadOf(t, `{"year":999}`), "year"))
	assert.False(t, check(payloadOf(t, `{"year":"abc"}`), "year"))
	assert.False(t, check(payloadOf(t, `{"year":1999.5}`), "year"))
	assert.False(t, check(payloadOf(t, `{}`), "year"))
}

func TestChecks_RejectNonStringValues(t *testing.T) {
	p := payloadOf(t, `{"title":["x"],"flag":true,"obj":{"a":1}}`)

	assert.False(t, NotEmpty()(p, "title"))
	assert.False(t, NotEmpty()(p, "flag"))
	assert.False(t, NotEmpty()(p, "obj"))
}

func TestMinLength_CountsCharacters(t *testing.T) {
	p := payloadOf(t, `{"pw":"ééééééé"}`)

	assert.False(t, MinLength(8)(p, "pw"))
	assert.True(t, MinLength(7)(p, "pw"))
	assert.True(t, MaxBytes(14)(p, "pw"))
	assert.False(t, MaxBytes(13)(p, "pw"))
}

func TestFileAttached(t *testing.T) {
	p := NewPayload(nil)
	assert.False(t, FileAttached()(p, "coverPage"))

	p.AttachFile("coverPage", &multipart.FileHeader{Filename: "empty.png", Size: 0})
	assert.False(t, FileAttached()(p, "coverPage"))

	p = NewPayload(nil)
	p.AttachFile("coverPage", &multipart.FileHeader{Filename: "c.png", Size: 10})
	assert.True(t, FileAttached()(p, "coverPage"))
}

func TestMaxLength_CountsCharacters(t *testing.T) {
	p := payloadOf(t, `{"name":"éééé"}`)

	assert.True(t, MaxLength(4)(p, "name"))
	assert.False(t, MaxLength(3)(p, "name"))
	assert.False(t, MaxLength(3)(payloadOf(t, `{}`), "name"))
}

func TestPayloadInt_AcceptsWholeJSONNumbers(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   int
		wantOK bool
	}{
		{"integer literal", json.Number("1965"), 1965, true},
		{"trailing zero fraction", json.Number("1965.0"), 1965, true},
		{"exponent form", json.Number("1.965e3"), 1965, true},
		{"fractional", json.Number("1965.5"), 0, false},
		{"float64 whole", float64(1965), 1965, true},
		{"float64 fractional", 1965.25, 0, false},
		{"digit string", "1965", 1965, true},
		{"decimal string", "1965.0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := NewPayload(map[string]any{"year": tt.value}).Int("year")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}
