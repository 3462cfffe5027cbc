package device

import "github.com/nerrad567/pulselink-core/internal/validate"

// Field limits.
const (
	maxMacLength   = 100
	maxModelLength = 100
)

func validateMac(v string) error {
	return validate.Check("mac_id", v, validate.Required, validate.MaxLen(maxMacLength))
}

func validateModel(v *string) error {
	return validate.Optional("model_name", v, validate.MaxLen(maxModelLength))
}

func validateNew(in NewDevice) error {
	if err := validate.PositiveID("subscriber_id", in.SubscriberID); err != nil {
		return err
	}
	if err := validateMac(in.MacID); err != nil {
		return err
	}
	return validateModel(in.ModelName)
}

func validatePatch(p Patch) error {
	if p.SubscriberID != nil {
		if err := validate.PositiveID("subscriber_id", *p.SubscriberID); err != nil {
			return err
		}
	}
	if p.MacID != nil {
		if err := validateMac(*p.MacID); err != nil {
			return err
		}
	}
	return validateModel(p.ModelName)
}
