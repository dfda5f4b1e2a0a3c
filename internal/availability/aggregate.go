package availability

// Aggregate summarizes a meeting's merged availability for the heat-map view.
type Aggregate struct {
	// Counts holds, for every slot at least one member selected, the number
	// of members who selected it.
	Counts map[string]int `json:"counts"`
	// TotalPeople is the number of distinct members in the availability map.
	TotalPeople int `json:"totalPeople"`
	// MaxAvailable is the highest per-slot count, 0 when no slot was selected.
	MaxAvailable int `json:"maxAvailable"`
	// MinAvailable is the lowest per-slot count, and is only computed when
	// the reported slots cover the whole expected grid. On a sparse grid a
	// slot nobody reported is indistinguishable from zero availability, so
	// MinAvailable stays 0 there.
	MinAvailable int `json:"minAvailable"`
}

// Summarize computes per-slot counts over a meeting availability map.
// expectedSlots is the size of the full grid (days times intra-day offsets)
// and gates the MinAvailable statistic.
func Summarize(avail MeetingAvailability, expectedSlots int) Aggregate {
	counts := make(map[string]int)
	for _, slots := range avail {
		for _, s := range slots {
			counts[s]++
		}
	}

	agg := Aggregate{Counts: counts, TotalPeople: len(avail)}
	for _, c := range counts {
		if c > agg.MaxAvailable {
			agg.MaxAvailable = c
		}
	}

	if len(counts) > 0 && len(counts) == expectedSlots {
		min := counts[firstKey(counts)]
		for _, c := range counts {
			if c < min {
				min = c
			}
		}
		agg.MinAvailable = min
	}

	return agg
}

func firstKey(m map[string]int) string {
	for k := range m {
		return k
	}
	return ""
}

// Ratio maps a slot's count into [0,1] against the maximum observed count,
// 0 when nothing has been selected yet.
func (a Aggregate) Ratio(slot string) float64 {
	if a.MaxAvailable == 0 {
		return 0
	}
	return float64(a.Counts[slot]) / float64(a.MaxAvailable)
}
