package validator

import (
	"time"
	_ "time/tzdata"

	"makemeet/internal/availability"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Custom validators
	v.RegisterValidation("slot_time", validateSlotTime)
	v.RegisterValidation("iana_tz", validateIANATimezone)

	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func validateSlotTime(fl validator.FieldLevel) bool {
	_, err := availability.ParseSlot(fl.Field().String())
	return err == nil
}

func validateIANATimezone(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return false
	}
	// time.LoadLocation resolves against the embedded tzdata, so the check
	// does not depend on the host's zoneinfo.
	if _, err := time.LoadLocation(name); err != nil {
		return false
	}
	return true
}
