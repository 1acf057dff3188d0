// AngelaMos | 2026
// rules.go

package book

import (
	"time"

	"github.com/carterperez-dev/templates/bookshelf/internal/config"
	"github.com/carterperez-dev/templates/bookshelf/internal/validate"
)

const minYear = 1000

// currentYear is read at evaluation time, so the accepted range grows each
// January.
var currentYear = func() int {
	return time.Now().Year()
}

// CreateRules returns the create rule set for the given cover policy.
func CreateRules(coverPolicy string) validate.RuleSet {
	cover := validate.Rule{
		Field:   "coverPage",
		Check:   validate.IsURL(),
		Message: "Cover page must be a valid URL",
	}
	if coverPolicy == config.CoverPolicyUpload {
		cover = validate.Rule{
			Field:   "coverPage",
			Check:   validate.FileAttached(),
			Message: "Cover page is required",
		}
	}

	return validate.RuleSet{
		{Field: "title", Check: validate.NotEmpty(), Message: "Title is required"},
		{Field: "genre", Check: validate.NotEmpty(), Message: "Genre is required"},
		{Field: "language", Check: validate.NotEmpty(), Message: "Language is required"},
		{Field: "ratings", Check: validate.NotEmpty(), Message: "Ratings are required"},
		cover,
		{
			Field: "year",
			Check: validate.IntRange(minYear, func() int {
				return currentYear()
			}),
			Message: "Year must be a valid integer and within a reasonable range",
		},
	}
}

// EditRules applies the create predicates to whichever fields are present.
func EditRules(coverPolicy string) validate.RuleSet {
	return CreateRules(coverPolicy).AsOptional()
}
