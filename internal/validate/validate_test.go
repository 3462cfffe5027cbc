package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/nerrad567/pulselink-core/internal/domain"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		rules   []Rule
		wantErr bool
		reason  string
	}{
		{"required ok", "alice", []Rule{Required}, false, ""},
		{"required empty", "", []Rule{Required}, true, "is required"},
		{"required whitespace", "   \t", []Rule{Required}, true, "is required"},
		{"max len ok", "abcde", []Rule{MaxLen(5)}, false, ""},
		{"max len exceeded", "abcdef", []Rule{MaxLen(5)}, true, "must be at most 5 characters"},
		{"max len counts characters", "ééééé", []Rule{MaxLen(5)}, false, ""},
		{"phone ok", "+1 (555) 010-9", []Rule{Matches(PhonePattern, "has invalid characters")}, false, ""},
		{"phone letters", "555-CALL", []Rule{Matches(PhonePattern, "has invalid characters")}, true, "has invalid characters"},
		{"email ok", "a@b.co", []Rule{Matches(EmailPattern, "must be a valid email")}, false, ""},
		{"email no dot", "a@b", []Rule{Matches(EmailPattern, "must be a valid email")}, true, "must be a valid email"},
		{"email space", "a b@c.d", []Rule{Matches(EmailPattern, "must be a valid email")}, true, "must be a valid email"},
		{"one of ok", "premium", []Rule{OneOf("basic", "premium")}, false, ""},
		{"one of miss", "gold", []Rule{OneOf("basic", "premium")}, true, "must be one of basic, premium"},
		{"first failure wins", "", []Rule{Required, MaxLen(1)}, true, "is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check("field", tt.value, tt.rules...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Check() error type = %T, want *domain.ValidationError", err)
			}
			if verr.Field != "field" || verr.Reason != tt.reason {
				t.Errorf("Check() = {%q, %q}, want {field, %q}", verr.Field, verr.Reason, tt.reason)
			}
		})
	}
}

func TestPositiveID(t *testing.T) {
	for _, id := range []int64{0, -1} {
		err := PositiveID("role_id", id)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("PositiveID(%d) error = %v, want validation error", id, err)
		}
		if err != nil && !strings.Contains(err.Error(), "must be a positive integer") {
			t.Errorf("PositiveID(%d) message = %q", id, err.Error())
		}
	}
	if err := PositiveID("role_id", 7); err != nil {
		t.Errorf("PositiveID(7) error = %v", err)
	}
}

func TestOptional(t *testing.T) {
	if err := Optional("model_name", nil, Required); err != nil {
		t.Errorf("Optional(nil) error = %v", err)
	}
	long := strings.Repeat("x", 101)
	if err := Optional("model_name", &long, MaxLen(100)); err == nil {
		t.Error("Optional() expected error for long value")
	}
}
