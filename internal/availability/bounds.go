package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Day-selection policies.
const (
	SpecificDays = "specificDays"
	DaysOfWeek   = "daysOfWeek"
)

// weekdayOffsets maps a weekday name to its day offset within the reference
// week that starts on the 1970-01-01 placeholder date.
var weekdayOffsets = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// TimeRange is the daily selectable window. Start and End carry only a
// time of day: both sit on the 1970-01-01 placeholder date.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayConstraints selects which days are eligible: either explicit UTC
// midnights (specificDays) or recurring weekday names (daysOfWeek).
type DayConstraints struct {
	Type string   `json:"type"`
	Days []string `json:"days"`
}

// Bounds is the meeting's availability policy: which days, and which
// intra-day time range on each of them.
type Bounds struct {
	AvailableDayConstraints DayConstraints `json:"availableDayConstraints"`
	TimeRangeForEachDay     TimeRange      `json:"timeRangeForEachDay"`
}

var (
	ErrBadDayConstraintType = errors.New("day constraint type must be specificDays or daysOfWeek")
	ErrDayNotMidnight       = errors.New("specific day is not a UTC midnight")
	ErrBadWeekday           = errors.New("unknown weekday name")
	ErrDuplicateDay         = errors.New("duplicate day")
	ErrRangeNotOnEpochDay   = errors.New("time range must sit on the 1970-01-01 placeholder date")
	ErrRangeOrder           = errors.New("time range start must be strictly before end")
)

func onEpochDay(t time.Time) bool {
	y, m, d := t.UTC().Date()
	return y == 1970 && m == time.January && d == 1
}

// ValidateBounds enforces every structural invariant of a meeting's bounds:
// the range endpoints are granularity-aligned times of day on the placeholder
// date with start strictly before end, and the day selection is a unique set
// of either UTC midnights or weekday names.
func ValidateBounds(b Bounds) error {
	start, err := ParseSlot(b.TimeRangeForEachDay.Start)
	if err != nil {
		return err
	}
	end, err := ParseSlot(b.TimeRangeForEachDay.End)
	if err != nil {
		return err
	}
	if !onEpochDay(start) || !onEpochDay(end) {
		return ErrRangeNotOnEpochDay
	}
	if !start.Before(end) {
		return ErrRangeOrder
	}

	seen := make(map[string]struct{}, len(b.AvailableDayConstraints.Days))
	switch b.AvailableDayConstraints.Type {
	case SpecificDays:
		for _, d := range b.AvailableDayConstraints.Days {
			day, err := ParseSlot(d)
			if err != nil {
				return err
			}
			if day.Unix()%(24*60*60) != 0 {
				return fmt.Errorf("%w: %q", ErrDayNotMidnight, d)
			}
			if _, ok := seen[d]; ok {
				return fmt.Errorf("%w: %q", ErrDuplicateDay, d)
			}
			seen[d] = struct{}{}
		}
	case DaysOfWeek:
		for _, d := range b.AvailableDayConstraints.Days {
			if _, ok := weekdayOffsets[d]; !ok {
				return fmt.Errorf("%w: %q", ErrBadWeekday, d)
			}
			if _, ok := seen[d]; ok {
				return fmt.Errorf("%w: %q", ErrDuplicateDay, d)
			}
			seen[d] = struct{}{}
		}
	default:
		return fmt.Errorf("%w: %q", ErrBadDayConstraintType, b.AvailableDayConstraints.Type)
	}

	return nil
}

// SlotsPerDay is the number of 15-minute slots inside the daily range.
// ValidateBounds guarantees it is a positive integer.
func SlotsPerDay(b Bounds) (int, error) {
	start, err := ParseSlot(b.TimeRangeForEachDay.Start)
	if err != nil {
		return 0, err
	}
	end, err := ParseSlot(b.TimeRangeForEachDay.End)
	if err != nil {
		return 0, err
	}
	return int(end.Sub(start) / Granularity), nil
}

// ExpandBounds produces the ordered sequence of concrete slot identifiers the
// bounds allow, one per (day, intra-day offset) pair.
//
// For specificDays each configured UTC midnight is overlaid with the range's
// time of day. For daysOfWeek each weekday becomes a synthetic identifier in
// the reference week anchored at the placeholder date: monday adds 0 days to
// the range slots, sunday adds 6. Those identifiers are not real calendar
// dates; they exist to key the grid and the stored availability consistently.
func ExpandBounds(b Bounds) ([]string, error) {
	if err := ValidateBounds(b); err != nil {
		return nil, err
	}

	start, _ := ParseSlot(b.TimeRangeForEachDay.Start)
	perDay, _ := SlotsPerDay(b)
	timeOfDay := start.Sub(time.Unix(0, 0).UTC())

	var dayStarts []time.Time
	switch b.AvailableDayConstraints.Type {
	case SpecificDays:
		for _, d := range b.AvailableDayConstraints.Days {
			day, _ := ParseSlot(d)
			dayStarts = append(dayStarts, day.Add(timeOfDay))
		}
	case DaysOfWeek:
		for _, d := range b.AvailableDayConstraints.Days {
			dayStarts = append(dayStarts, start.AddDate(0, 0, weekdayOffsets[d]))
		}
	}
	sort.Slice(dayStarts, func(i, j int) bool { return dayStarts[i].Before(dayStarts[j]) })

	slots := make([]string, 0, len(dayStarts)*perDay)
	for _, ds := range dayStarts {
		for i := 0; i < perDay; i++ {
			slots = append(slots, FormatSlot(ds.Add(time.Duration(i)*Granularity)))
		}
	}
	return slots, nil
}
