package availability_test

import (
	"testing"

	"makemeet/internal/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	tests := []struct {
		name    string
		slot    string
		isValid bool
	}{
		{
			name:    "valid_slot",
			slot:    "2025-01-01T09:00:00Z",
			isValid: true,
		},
		{
			name:    "valid_quarter_past",
			slot:    "2025-11-03T18:45:00Z",
			isValid: true,
		},
		{
			name:    "missing_zulu_suffix",
			slot:    "2025-01-01T09:00:00",
			isValid: false,
		},
		{
			name:    "sub_second_precision",
			slot:    "2025-01-01T09:00:00.000Z",
			isValid: false,
		},
		{
			name:    "numeric_offset_instead_of_zulu",
			slot:    "2025-01-01T09:00:00+02:00",
			isValid: false,
		},
		{
			name:    "unix_integer_legacy_format",
			slot:    "1735722000",
			isValid: false,
		},
		{
			name:    "bare_clock_legacy_format",
			slot:    "09:00",
			isValid: false,
		},
		{
			name:    "off_granularity_minutes",
			slot:    "2025-01-01T09:05:00Z",
			isValid: false,
		},
		{
			name:    "off_granularity_seconds",
			slot:    "2025-01-01T09:00:30Z",
			isValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := availability.ParseSlot(tt.slot)
			if tt.isValid {
				require.NoError(t, err)
				assert.Zero(t, parsed.Unix()%900, "valid slots sit on 900s boundaries")
				assert.Equal(t, tt.slot, availability.FormatSlot(parsed))
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateSlots(t *testing.T) {
	tests := []struct {
		name    string
		slots   []string
		wantErr error
	}{
		{
			name:  "empty_list",
			slots: []string{},
		},
		{
			name:  "unique_slots",
			slots: []string{"2025-01-01T09:00:00Z", "2025-01-01T09:15:00Z"},
		},
		{
			name:    "duplicate_slots",
			slots:   []string{"2025-01-01T09:00:00Z", "2025-01-01T09:00:00Z"},
			wantErr: availability.ErrDuplicateSlot,
		},
		{
			name:    "invalid_element",
			slots:   []string{"2025-01-01T09:00:00Z", "not-a-time"},
			wantErr: availability.ErrBadSlotFormat,
		},
		{
			name:    "misaligned_element",
			slots:   []string{"2025-01-01T09:07:00Z"},
			wantErr: availability.ErrOffGranularity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := availability.ValidateSlots(tt.slots)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
