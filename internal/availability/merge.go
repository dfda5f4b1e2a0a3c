package availability

import "sort"

// MeetingAvailability maps member ids to the slots each member marked as
// available. encoding/json serializes map keys in sorted order, which gives
// downstream consumers the stable key ordering they expect.
type MeetingAvailability map[string][]string

// Merge returns a copy of avail with memberID's slot set replaced wholesale.
// Each write is last-writer-wins for that one member: no attempt is made to
// combine a member's old and new slots, and no other member's entry changes.
// The stored slot list is sorted ascending; for the canonical layout,
// lexicographic order is chronological order.
func Merge(avail MeetingAvailability, memberID string, slots []string) (MeetingAvailability, error) {
	if err := ValidateSlots(slots); err != nil {
		return nil, err
	}

	merged := make(MeetingAvailability, len(avail)+1)
	for id, s := range avail {
		merged[id] = s
	}

	sorted := append([]string(nil), slots...)
	sort.Strings(sorted)
	merged[memberID] = sorted

	return merged, nil
}
