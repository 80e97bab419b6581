package heatmap

// Ranges computes one ResultRange per indicator, in the input indicator
// order, scanning only the given (already selected) sectors. An empty
// sector set or nil matrix means no range is computable and yields an empty
// result, not an error. With a single sector every range is degenerate
// (Min == Max), which Share treats as fully saturated.
func Ranges(indicators []Indicator, sectors []Sector, matrix Matrix) []ResultRange {
	if len(sectors) == 0 || matrix == nil {
		return nil
	}
	out := make([]ResultRange, 0, len(indicators))
	for _, ind := range indicators {
		r := ResultRange{Indicator: ind}
		for i, s := range sectors {
			v := matrix.Value(ind.Index, s.Index)
			if i == 0 || v < r.Min {
				r.Min = v
			}
			if i == 0 || v > r.Max {
				r.Max = v
			}
		}
		out = append(out, r)
	}
	return out
}

// Share normalizes a raw cell value against its indicator's range and
// returns an intensity share in [0,1].
//
// A zero value always maps to 0, matching the widget convention that zero
// impact renders as an unshaded cell. This deliberately conflates a
// legitimate zero result with a missing one; datasets where the two must
// differ visually need a different encoding upstream. A degenerate range
// maps every value to 1: with no spread there is nothing to normalize
// against, so the cell reads as fully saturated.
func Share(value float64, r ResultRange) float64 {
	if value == 0 {
		return 0
	}
	if r.Min == r.Max {
		return 1
	}
	return (value - r.Min) / (r.Max - r.Min)
}
