package interval

import "fmt"

// Rule maps every value in its source interval to the corresponding value
// in its equal-length target interval. A value keeps its offset from the
// interval start, so the whole source translates by a constant shift.
//
// All arithmetic stays within the intervals themselves: translation adds
// the offset of a value inside Source to Target.Start, which cannot wrap
// for well-formed rules even when Target sits below Source.
type Rule struct {
	Source Interval `json:"source"`
	Target Interval `json:"target"`
}

// NewRule builds the rule translating [sourceStart, sourceStart+length)
// into [targetStart, targetStart+length). The argument order matches the
// triple layout of almanac map lines: target start comes first.
func NewRule(targetStart, sourceStart, length uint64) Rule {
	return Rule{
		Source: New(sourceStart, length),
		Target: New(targetStart, length),
	}
}

// Valid reports whether the rule is well-formed: both intervals ordered
// and of equal length. NewRule only produces invalid rules when start plus
// length wraps around the uint64 range.
func (r Rule) Valid() bool {
	return r.Source.Start <= r.Source.End &&
		r.Target.Start <= r.Target.End &&
		r.Source.Len() == r.Target.Len()
}

// Apply translates a single value through the rule. The second result is
// false when n lies outside the source interval.
func (r Rule) Apply(n uint64) (uint64, bool) {
	if !r.Source.Contains(n) {
		return 0, false
	}
	return r.Target.Start + (n - r.Source.Start), true
}

// Subrange restricts the rule to sub, which must lie entirely within the
// source interval. The result pairs sub with its image in target space; the
// second result is false when sub is not contained.
func (r Rule) Subrange(sub Interval) (Rule, bool) {
	if !r.Source.ContainsInterval(sub) || sub.IsEmpty() {
		return Rule{}, false
	}
	offset := sub.Start - r.Source.Start
	return Rule{
		Source: sub,
		Target: New(r.Target.Start+offset, sub.Len()),
	}, true
}

// String renders the rule as "source -> target".
func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Source, r.Target)
}
