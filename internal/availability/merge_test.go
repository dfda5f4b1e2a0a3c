package availability_test

import (
	"testing"

	"makemeet/internal/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ReplacesWholesale(t *testing.T) {
	initial := availability.MeetingAvailability{
		"member-a": {"2025-01-01T09:00:00Z"},
	}

	merged, err := availability.Merge(initial, "member-a", []string{"2025-01-02T10:00:00Z"})
	require.NoError(t, err)

	// The old slot is gone, not unioned in.
	assert.Equal(t, []string{"2025-01-02T10:00:00Z"}, merged["member-a"])
}

func TestMerge_Idempotent(t *testing.T) {
	initial := availability.MeetingAvailability{}
	slots := []string{"2025-01-01T09:15:00Z", "2025-01-01T09:00:00Z"}

	once, err := availability.Merge(initial, "member-a", slots)
	require.NoError(t, err)

	twice, err := availability.Merge(once, "member-a", slots)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestMerge_IsolatesOtherMembers(t *testing.T) {
	initial := availability.MeetingAvailability{
		"member-a": {"2025-01-01T09:00:00Z", "2025-01-01T09:15:00Z"},
	}

	merged, err := availability.Merge(initial, "member-b", []string{"2025-01-01T10:00:00Z"})
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-01-01T09:00:00Z", "2025-01-01T09:15:00Z"}, merged["member-a"])
	assert.Equal(t, []string{"2025-01-01T10:00:00Z"}, merged["member-b"])

	// The input map is untouched.
	assert.NotContains(t, initial, "member-b")
}

func TestMerge_SortsSlotsAscending(t *testing.T) {
	merged, err := availability.Merge(nil, "member-a", []string{
		"2025-01-02T10:00:00Z",
		"2025-01-01T09:15:00Z",
		"2025-01-01T09:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2025-01-01T09:00:00Z",
		"2025-01-01T09:15:00Z",
		"2025-01-02T10:00:00Z",
	}, merged["member-a"])
}

func TestMerge_RejectsInvalidSlots(t *testing.T) {
	tests := []struct {
		name    string
		slots   []string
		wantErr error
	}{
		{
			name:    "duplicate",
			slots:   []string{"2025-01-01T09:00:00Z", "2025-01-01T09:00:00Z"},
			wantErr: availability.ErrDuplicateSlot,
		},
		{
			name:    "malformed",
			slots:   []string{"yesterday"},
			wantErr: availability.ErrBadSlotFormat,
		},
		{
			name:    "misaligned",
			slots:   []string{"2025-01-01T09:10:00Z"},
			wantErr: availability.ErrOffGranularity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := availability.Merge(availability.MeetingAvailability{}, "member-a", tt.slots)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, merged)
		})
	}
}
