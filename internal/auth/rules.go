// AngelaMos | 2026
// rules.go

package auth

import (
	"regexp"

	"github.com/carterperez-dev/templates/bookshelf/internal/validate"
)

// PasswordSymbols is the punctuation set a password must draw from.
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

// Column widths of users.email and users.name.
const (
	maxEmailLength = 255
	maxNameLength  = 100
)

var roleChoices = []string{"Admin", "Author", "Reader"}

var SignupRules = validate.RuleSet{
	{Field: "email", Check: validate.IsEmail(), Message: "Email is not valid"},
	{
		Field:   "email",
		Check:   validate.MaxLength(maxEmailLength),
		Message: "Email must be at most 255 characters long",
	},
	{
		Field:   "password",
		Check:   validate.MinLength(8),
		Message: "Password must be at least 8 characters long",
	},
	{
		Field:   "password",
		Check:   validate.Matches(`[a-z]`),
		Message: "Password must contain at least one lowercase letter",
	},
	{
		Field:   "password",
		Check:   validate.Matches(`[A-Z]`),
		Message: "Password must contain at least one uppercase letter",
	},
	{
		Field:   "password",
		Check:   validate.Matches(`[0-9]`),
		Message: "Password must contain at least one number",
	},
	{
		Field:   "password",
		Check:   validate.Matches("[" + regexp.QuoteMeta(PasswordSymbols) + "]"),
		Message: "Password must contain at least one special character",
	},
	{
		Field:   "password",
		Check:   validate.MaxBytes(maxPasswordBytes),
		Message: "Password must be at most 72 characters long",
	},
	{Field: "name", Check: validate.NotEmpty(), Message: "Name is required"},
	{
		Field:   "name",
		Check:   validate.MaxLength(maxNameLength),
		Message: "Name must be at most 100 characters long",
	},
	{
		Field:   "role",
		Check:   validate.OneOf(roleChoices...),
		Message: "Role must be one of Admin, Author, Reader",
	},
}

var LoginRules = validate.RuleSet{
	{Field: "email", Check: validate.IsEmail(), Message: "Email is not valid"},
	{Field: "password", Check: validate.NotEmpty(), Message: "Password is required"},
}
