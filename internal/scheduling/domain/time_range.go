package domain

// TimeRange is a half-open interval [Start, End) within one day.
type TimeRange struct {
	Start ClockTime
	End   ClockTime
}

// Overlaps reports whether two ranges share any minute.
// Ranges that only touch at a boundary do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && r.End > other.Start
}

// Within reports whether r lies entirely inside outer.
func (r TimeRange) Within(outer TimeRange) bool {
	return r.Start >= outer.Start && r.End <= outer.End
}

// Duration returns the length of the range in minutes.
func (r TimeRange) Duration() int {
	return r.End.Sub(r.Start)
}

// Intersection returns the overlapping part of two ranges. ok is false when they do not overlap.
func (r TimeRange) Intersection(other TimeRange) (TimeRange, bool) {
	if !r.Overlaps(other) {
		return TimeRange{}, false
	}
	return TimeRange{Start: max(r.Start, other.Start), End: min(r.End, other.End)}, true
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

func overlapsAny(candidate TimeRange, busy []TimeRange) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
