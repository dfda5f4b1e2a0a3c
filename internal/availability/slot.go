package availability

import (
	"errors"
	"fmt"
	"time"
)

// Granularity is the fixed slot duration. Every time the service stores or
// serves is the start of a 15-minute chunk.
const Granularity = 15 * time.Minute

// SlotLayout is the canonical wire format for slots: ISO-8601 UTC with second
// precision and no sub-second digits, e.g. "2025-11-03T18:45:00Z".
const SlotLayout = "2006-01-02T15:04:05Z"

var (
	ErrBadSlotFormat  = errors.New("slot is not an ISO-8601 UTC timestamp with second precision")
	ErrOffGranularity = errors.New("slot is not aligned to the 15-minute granularity")
	ErrDuplicateSlot  = errors.New("duplicate slot")
)

// ParseSlot parses a candidate slot string and enforces the granularity
// invariant: the epoch-seconds value must be a multiple of 900.
func ParseSlot(s string) (time.Time, error) {
	t, err := time.Parse(SlotLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadSlotFormat, s)
	}
	if t.Unix()%int64(Granularity/time.Second) != 0 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrOffGranularity, s)
	}
	return t, nil
}

// FormatSlot renders a time in the canonical slot format.
func FormatSlot(t time.Time) string {
	return t.UTC().Format(SlotLayout)
}

// ValidateSlots checks one user's slot list: every element must parse as a
// valid slot and the list must be free of duplicates.
func ValidateSlots(slots []string) error {
	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if _, err := ParseSlot(s); err != nil {
			return err
		}
		if _, ok := seen[s]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateSlot, s)
		}
		seen[s] = struct{}{}
	}
	return nil
}
