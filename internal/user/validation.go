package user

import (
	"github.com/nerrad567/pulselink-core/internal/validate"
)

// Field limits.
const (
	maxEmailLength        = 255
	maxUsernameLength     = 100
	maxPasswordHashLength = 100
)

func validateEmail(v string) error {
	return validate.Check("email", v,
		validate.Required,
		validate.MaxLen(maxEmailLength),
		validate.Matches(validate.EmailPattern, "must be a valid email address"),
	)
}

func validateUsername(v string) error {
	return validate.Check("username", v, validate.Required, validate.MaxLen(maxUsernameLength))
}

func validatePasswordHash(v string) error {
	return validate.Check("password_hash", v, validate.MaxLen(maxPasswordHashLength))
}

func validateNew(in NewUser) error {
	if err := validate.PositiveID("subscriber_id", in.SubscriberID); err != nil {
		return err
	}
	if err := validate.PositiveID("role_id", in.RoleID); err != nil {
		return err
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if err := validateUsername(in.Username); err != nil {
		return err
	}
	return validatePasswordHash(in.PasswordHash)
}

func validatePatch(p Patch) error {
	if p.SubscriberID != nil {
		if err := validate.PositiveID("subscriber_id", *p.SubscriberID); err != nil {
			return err
		}
	}
	if p.RoleID != nil {
		if err := validate.PositiveID("role_id", *p.RoleID); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if err := validateEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.Username != nil {
		if err := validateUsername(*p.Username); err != nil {
			return err
		}
	}
	if p.PasswordHash != nil {
		return validatePasswordHash(*p.PasswordHash)
	}
	return nil
}
