package subscriber

import (
	"github.com/nerrad567/pulselink-core/internal/validate"
)

// Field limits.
const (
	maxNameLength    = 255
	maxAddressLength = 300
	maxPhoneLength   = 12
)

var plans = []string{string(PlanBasic), string(PlanPremium), string(PlanEnterprise)}

func validateName(v string) error {
	return validate.Check("name", v, validate.Required, validate.MaxLen(maxNameLength))
}

func validatePlan(p Plan) error {
	return validate.Check("plan_type", string(p), validate.OneOf(plans...))
}

func validateAddress(v string) error {
	return validate.Check("address", v, validate.Required, validate.MaxLen(maxAddressLength))
}

func validatePhone(v string) error {
	return validate.Check("phone_number", v,
		validate.Required,
		validate.MaxLen(maxPhoneLength),
		validate.Matches(validate.PhonePattern, "may only contain digits, spaces and + - ( )"),
	)
}

// validateNew checks every field and fills the plan default.
func validateNew(in *NewSubscriber) error {
	if in.PlanType == "" {
		in.PlanType = PlanBasic
	}
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validatePlan(in.PlanType); err != nil {
		return err
	}
	if err := validateAddress(in.Address); err != nil {
		return err
	}
	return validatePhone(in.PhoneNumber)
}

func validatePatch(p Patch) error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.PlanType != nil {
		if err := validatePlan(*p.PlanType); err != nil {
			return err
		}
	}
	if p.Address != nil {
		if err := validateAddress(*p.Address); err != nil {
			return err
		}
	}
	if p.PhoneNumber != nil {
		return validatePhone(*p.PhoneNumber)
	}
	return nil
}
