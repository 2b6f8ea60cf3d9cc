package validators

import (
	"fmt"
	"regexp"
	"strings"

	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
)

// Rule is a single declarative check on a form field. Rules attached to a
// field run in declaration order and the first failure supplies the
// field's error message.
type Rule struct {
	check   func(value string, form map[string]string) bool
	message string
}

// FieldRules binds an ordered rule list to one form field.
type FieldRules struct {
	Field string
	Rules []Rule
}

// FormRules is the ordered rule set for a whole form.
type FormRules []FieldRules

func rule(message, fallback string, check func(value string, form map[string]string) bool) Rule {
	if message == "" {
		message = fallback
	}
	return Rule{check: check, message: message}
}

// Required fails on an empty or whitespace-only value. Every other rule
// skips empty values so optional fields validate only when filled in.
func Required(message string) Rule {
	return rule(message, "is required", func(value string, _ map[string]string) bool {
		return strings.TrimSpace(value) != ""
	})
}

func MinLength(n int, message string) Rule {
	return rule(message, fmt.Sprintf("must be at least %d characters", n), func(value string, _ map[string]string) bool {
		return value == "" || len([]rune(value)) >= n
	})
}

func MaxLength(n int, message string) Rule {
	return rule(message, fmt.Sprintf("must be at most %d characters", n), func(value string, _ map[string]string) bool {
		return len([]rune(value)) <= n
	})
}

func Pattern(re *regexp.Regexp, message string) Rule {
	return rule(message, "is invalid", func(value string, _ map[string]string) bool {
		return value == "" || re.MatchString(value)
	})
}

// MatchesField fails when the value differs from another field's value.
func MatchesField(other, message string) Rule {
	return rule(message, fmt.Sprintf("must match %s", other), func(value string, form map[string]string) bool {
		return value == "" || value == form[other]
	})
}

func Custom(message string, check func(value string, form map[string]string) bool) Rule {
	return rule(message, "is invalid", check)
}

// Validate runs every field's rules against the form. All failing fields
// are reported together, one message per field.
func (fr FormRules) Validate(form map[string]string) error {
	details := map[string]string{}
	for _, field := range fr {
		for _, r := range field.Rules {
			if !r.check(form[field.Field], form) {
				details[field.Field] = r.message
				break
			}
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
