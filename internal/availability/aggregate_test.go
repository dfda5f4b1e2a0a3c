package availability_test

import (
	"testing"

	"makemeet/internal/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_CountsAndRatios(t *testing.T) {
	slotA := "2025-01-01T09:00:00Z"
	slotB := "2025-01-01T09:15:00Z"

	avail := availability.MeetingAvailability{
		"u1": {slotA, slotB},
		"u2": {slotA, slotB},
		"u3": {slotB},
		"u4": {slotB},
	}

	agg := availability.Summarize(avail, 4)

	assert.Equal(t, 2, agg.Counts[slotA])
	assert.Equal(t, 4, agg.Counts[slotB])
	assert.Equal(t, 4, agg.TotalPeople)
	assert.Equal(t, 4, agg.MaxAvailable)

	assert.InDelta(t, 0.5, agg.Ratio(slotA), 1e-9)
	assert.InDelta(t, 1.0, agg.Ratio(slotB), 1e-9)
	assert.Zero(t, agg.Ratio("2025-01-01T10:00:00Z"))
}

func TestSummarize_Empty(t *testing.T) {
	agg := availability.Summarize(availability.MeetingAvailability{}, 8)

	assert.Empty(t, agg.Counts)
	assert.Zero(t, agg.TotalPeople)
	assert.Zero(t, agg.MaxAvailable)
	assert.Zero(t, agg.MinAvailable)
	assert.Zero(t, agg.Ratio("2025-01-01T09:00:00Z"))
}

func TestSummarize_MinGatedOnDenseGrid(t *testing.T) {
	slotA := "2025-01-01T09:00:00Z"
	slotB := "2025-01-01T09:15:00Z"

	avail := availability.MeetingAvailability{
		"u1": {slotA, slotB},
		"u2": {slotB},
	}

	// Every expected grid slot was reported: the minimum is meaningful.
	dense := availability.Summarize(avail, 2)
	assert.Equal(t, 1, dense.MinAvailable)

	// Part of the grid was never reported: an absent slot could mean zero
	// availability or a grid the clients have not rendered yet, so the
	// minimum stays 0.
	sparse := availability.Summarize(avail, 4)
	assert.Zero(t, sparse.MinAvailable)
}

func TestSummarize_RoundTripWithExpansion(t *testing.T) {
	bounds := availability.Bounds{
		AvailableDayConstraints: availability.DayConstraints{
			Type: availability.SpecificDays,
			Days: []string{"2025-01-01T00:00:00Z"},
		},
		TimeRangeForEachDay: availability.TimeRange{
			Start: "1970-01-01T09:00:00Z",
			End:   "1970-01-01T10:00:00Z",
		},
	}

	grid, err := availability.ExpandBounds(bounds)
	require.NoError(t, err)
	require.Len(t, grid, 4)

	selected := grid[:2]
	avail, err := availability.Merge(nil, "member-a", selected)
	require.NoError(t, err)

	agg := availability.Summarize(avail, len(grid))
	for _, slot := range selected {
		assert.Equal(t, 1, agg.Counts[slot], "selected slot %s", slot)
	}
	for _, slot := range grid[2:] {
		assert.Zero(t, agg.Counts[slot], "unselected slot %s", slot)
	}
	assert.Equal(t, 1, agg.TotalPeople)
}

func TestGradientColor(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  availability.RGB
	}{
		{name: "zero_is_start", ratio: 0, want: availability.GradientStart},
		{name: "one_is_end", ratio: 1, want: availability.GradientEnd},
		{name: "clamped_below", ratio: -3, want: availability.GradientStart},
		{name: "clamped_above", ratio: 42, want: availability.GradientEnd},
		{name: "midpoint", ratio: 0.5, want: availability.RGB{R: 119, G: 159, B: 220}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, availability.GradientColor(tt.ratio))
			// Deterministic: the same ratio always maps to the same color.
			assert.Equal(t, availability.GradientColor(tt.ratio), availability.GradientColor(tt.ratio))
		})
	}
}

func TestRGBString(t *testing.T) {
	assert.Equal(t, "rgb(237,243,252)", availability.GradientStart.String())
	assert.Equal(t, "rgb(0,74,187)", availability.GradientEnd.String())
}
