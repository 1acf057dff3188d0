// AngelaMos | 2026
// rules.go

// Package validate evaluates declarative field rules against request
// payloads. Rules are plain data; a RuleSet runs every rule and reports all
// violations in rule order.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/bookshelf/internal/core"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Check reports whether field satisfies a predicate.
type Check func(p *Payload, field string) bool

type Rule struct {
	Field   string
	Check   Check
	Message string
	// Optional rules are skipped when the field (or file) is absent.
	Optional bool
}

type RuleSet []Rule

// Evaluate runs every rule and returns the violations, nil if none.
func (rs RuleSet) Evaluate(p *Payload) []core.FieldError {
	var violations []core.FieldError

	for _, rule := range rs {
		if rule.Optional && !p.Has(rule.Field) && !p.HasFile(rule.Field) {
			continue
		}
		if !rule.Check(p, rule.Field) {
			violations = append(violations, core.FieldError{
				Field:   rule.Field,
				Message: rule.Message,
			})
		}
	}

	return violations
}

// AsOptional returns a copy of rs with every rule optional, for partial
// updates.
func (rs RuleSet) AsOptional() RuleSet {
	out := make(RuleSet, len(rs))
	for i, rule := range rs {
		rule.Optional = true
		out[i] = rule
	}
	return out
}

func tag(t string) Check {
	return func(p *Payload, field string) bool {
		s, ok := p.String(field)
		if !ok {
			return false
		}
		return v.Var(s, t) == nil
	}
}

func NotEmpty() Check {
	return tag("required")
}

func IsEmail() Check {
	return tag("required,email")
}

func IsURL() Check {
	return tag("required,url")
}

// MinLength counts characters, not bytes.
func MinLength(n int) Check {
	return tag(fmt.Sprintf("min=%d", n))
}

// MaxLength counts characters, matching VARCHAR(n) column limits.
func MaxLength(n int) Check {
	return tag(fmt.Sprintf("max=%d", n))
}

// MaxBytes bounds the encoded length of the value.
func MaxBytes(n int) Check {
	return func(p *Payload, field string) bool {
		s, ok := p.String(field)
		return ok && len(s) <= n
	}
}

func OneOf(values ...string) Check {
	return tag("required,oneof=" + strings.Join(values, " "))
}

// Matches requires at least one match of pattern somewhere in the value.
func Matches(pattern string) Check {
	re := regexp.MustCompile(pattern)
	return func(p *Payload, field string) bool {
		s, ok := p.String(field)
		return ok && re.MatchString(s)
	}
}

// IntRange requires an integer within [minVal, maxVal()]. maxVal is called
// on every evaluation so bounds tied to the clock move with it.
func IntRange(minVal int, maxVal func() int) Check {
	return func(p *Payload, field string) bool {
		n, ok := p.Int(field)
		if !ok {
			return false
		}
		return n >= minVal && n <= maxVal()
	}
}

func FileAttached() Check {
	return func(p *Payload, field string) bool {
		return p.HasFile(field)
	}
}
