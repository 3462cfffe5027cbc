// Package validate provides the field rules applied by the repositories
// before anything reaches the store.
//
// Rules are pure functions. Check runs them in order and stops at the
// first failure, which is returned as a *domain.ValidationError.
package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/nerrad567/pulselink-core/internal/domain"
)

// Rule validates one field value. A nil return means the value passes.
type Rule func(field, value string) error

// Shared patterns.
var (
	// PhonePattern allows digits, plus, minus, parentheses and whitespace.
	PhonePattern = regexp.MustCompile(`^[0-9+\-()\s]+$`)

	// EmailPattern is a shape check only: something@something.something.
	EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Check runs rules against value in order and returns the first failure.
func Check(field, value string, rules ...Rule) error {
	for _, rule := range rules {
		if err := rule(field, value); err != nil {
			return err
		}
	}
	return nil
}

// Required rejects values that are empty after trimming whitespace.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "is required")
	}
	return nil
}

// MaxLen rejects values longer than n characters.
func MaxLen(n int) Rule {
	return func(field, value string) error {
		if utf8.RuneCountInString(value) > n {
			return domain.NewValidationError(field, fmt.Sprintf("must be at most %d characters", n))
		}
		return nil
	}
}

// Matches rejects values that do not match re, reporting reason.
func Matches(re *regexp.Regexp, reason string) Rule {
	return func(field, value string) error {
		if !re.MatchString(value) {
			return domain.NewValidationError(field, reason)
		}
		return nil
	}
}

// OneOf rejects values outside allowed.
func OneOf(allowed ...string) Rule {
	return func(field, value string) error {
		if !slices.Contains(allowed, value) {
			return domain.NewValidationError(field, "must be one of "+strings.Join(allowed, ", "))
		}
		return nil
	}
}

// PositiveID rejects keys that are not strictly positive.
func PositiveID(field string, id int64) error {
	if id <= 0 {
		return domain.NewValidationError(field, "must be a positive integer")
	}
	return nil
}

// Optional applies rules only when value is non-nil.
func Optional(field string, value *string, rules ...Rule) error {
	if value == nil {
		return nil
	}
	return Check(field, *value, rules...)
}
