package validator_test

import (
	"testing"

	"makemeet/internal/availability"
	"makemeet/internal/model"
	"makemeet/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidator_IANATimezone(t *testing.T) {
	v := validator.New()

	type subject struct {
		TZ string `validate:"iana_tz"`
	}

	tests := []struct {
		name    string
		tz      string
		isValid bool
	}{
		{name: "chicago", tz: "America/Chicago", isValid: true},
		{name: "utc", tz: "UTC", isValid: true},
		{name: "amsterdam", tz: "Europe/Amsterdam", isValid: true},
		{name: "empty", tz: "", isValid: false},
		{name: "made_up", tz: "Not/AZone", isValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(subject{TZ: tt.tz})
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidator_SlotTime(t *testing.T) {
	v := validator.New()

	type subject struct {
		At string `validate:"slot_time"`
	}

	tests := []struct {
		name    string
		at      string
		isValid bool
	}{
		{name: "aligned", at: "2025-01-01T09:00:00Z", isValid: true},
		{name: "misaligned", at: "2025-01-01T09:05:00Z", isValid: false},
		{name: "not_a_time", at: "soon", isValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(subject{At: tt.at})
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidator_Meeting(t *testing.T) {
	v := validator.New()

	valid := model.Meeting{
		Name:     "Standup",
		TimeZone: "America/Chicago",
		AvailabilityBounds: availability.Bounds{
			AvailableDayConstraints: availability.DayConstraints{
				Type: availability.SpecificDays,
				Days: []string{"2025-01-01T00:00:00Z"},
			},
			TimeRangeForEachDay: availability.TimeRange{
				Start: "1970-01-01T09:00:00Z",
				End:   "1970-01-01T17:00:00Z",
			},
		},
	}
	assert.NoError(t, v.Validate(valid))

	unnamed := valid
	unnamed.Name = ""
	assert.Error(t, v.Validate(unnamed))

	badZone := valid
	badZone.TimeZone = "Mars/OlympusMons"
	assert.Error(t, v.Validate(badZone))
}
