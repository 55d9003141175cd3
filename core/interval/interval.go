// Package interval provides half-open numeric intervals and the
// offset-translation rules built from them.
//
// An Interval covers the half-open range [Start, End) over unsigned 64-bit
// integers. A Rule pairs a source interval with an equal-length target
// interval and translates values between them by a constant offset. These
// are the building blocks for category maps and the range trees that index
// them.
package interval

import "fmt"

// Interval is a half-open range [Start, End) of unsigned 64-bit values.
// Start <= End for well-formed intervals; Start == End means the interval
// covers no values.
type Interval struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

// New returns the interval [start, start+length).
func New(start, length uint64) Interval {
	return Interval{Start: start, End: start + length}
}

// Len returns the number of values the interval covers.
func (iv Interval) Len() uint64 {
	if iv.IsEmpty() {
		return 0
	}
	return iv.End - iv.Start
}

// IsEmpty reports whether the interval covers no values.
func (iv Interval) IsEmpty() bool {
	return iv.Start >= iv.End
}

// Contains reports whether n falls within the interval.
func (iv Interval) Contains(n uint64) bool {
	return iv.Start <= n && n < iv.End
}

// ContainsInterval reports whether o lies entirely within the interval.
// Empty intervals are contained everywhere.
func (iv Interval) ContainsInterval(o Interval) bool {
	if o.IsEmpty() {
		return true
	}
	return iv.Start <= o.Start && o.End <= iv.End
}

// Overlaps reports whether the two intervals share at least one value.
// Half-open semantics apply: intervals that merely touch at a boundary
// (iv.End == o.Start) do not overlap, and empty intervals overlap nothing.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && o.Start < iv.End
}

// Intersect returns the sub-interval common to both intervals. The second
// result is false when they do not overlap.
func (iv Interval) Intersect(o Interval) (Interval, bool) {
	if !iv.Overlaps(o) {
		return Interval{}, false
	}
	return Interval{Start: max(iv.Start, o.Start), End: min(iv.End, o.End)}, true
}

// String renders the interval as "[start, end)".
func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Start, iv.End)
}
