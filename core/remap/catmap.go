package remap

import (
	"fmt"
	"sort"

	"github.com/FocuswithJustin/Almanac/core/errors"
	"github.com/FocuswithJustin/Almanac/core/interval"
	"github.com/FocuswithJustin/Almanac/core/rangetree"
)

// CategoryMap is one translation table covering the edge from a source
// category to a target category. It is built once and immutable afterwards:
// scalar lookups scan the flat rule list in input order while interval
// queries go through a range tree built from the same rules.
type CategoryMap struct {
	source Category
	target Category
	rules  []interval.Rule
	tree   *rangetree.Tree
}

// NewCategoryMap builds the translation table for source -> target.
// Construction fails when either category is empty, the categories are
// equal, a rule is malformed (mismatched source and target lengths), or two
// rules claim overlapping source intervals. The rules slice is copied.
func NewCategoryMap(source, target Category, rules []interval.Rule) (*CategoryMap, error) {
	if source == "" || target == "" {
		return nil, errors.NewValidation("category", "source and target must be non-empty")
	}
	if source == target {
		return nil, errors.NewValidation("category", fmt.Sprintf("map from %q to itself is not allowed", source))
	}
	m := &CategoryMap{
		source: source,
		target: target,
		rules:  append([]interval.Rule(nil), rules...),
		tree:   &rangetree.Tree{},
	}
	for i, r := range m.rules {
		if !r.Valid() {
			return nil, errors.NewValidation("rule",
				fmt.Sprintf("rule %d of %s->%s is malformed: %s", i, source, target, r))
		}
	}
	if err := checkDisjoint(source, target, m.rules); err != nil {
		return nil, err
	}
	for _, r := range m.rules {
		m.tree.Insert(r)
	}
	return m, nil
}

// checkDisjoint rejects rule sets where two source intervals overlap, which
// would make translation order-dependent.
func checkDisjoint(source, target Category, rules []interval.Rule) error {
	sorted := append([]interval.Rule(nil), rules...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Source.Start < sorted[j].Source.Start
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Source.Overlaps(sorted[i].Source) {
			return errors.NewValidation("rule",
				fmt.Sprintf("source intervals %s and %s of %s->%s overlap",
					sorted[i-1].Source, sorted[i].Source, source, target))
		}
	}
	return nil
}

// Source returns the category this map translates from.
func (m *CategoryMap) Source() Category { return m.source }

// Target returns the category this map translates into.
func (m *CategoryMap) Target() Category { return m.target }

// Len returns the number of rules in the map.
func (m *CategoryMap) Len() int { return len(m.rules) }

// Rules returns a copy of the map's rules in input order.
func (m *CategoryMap) Rules() []interval.Rule {
	return append([]interval.Rule(nil), m.rules...)
}

// Walk visits the map's rules in ascending source order, passing along the
// maxEnd augmentation of the underlying range tree nodes.
func (m *CategoryMap) Walk(fn func(rule interval.Rule, maxEnd uint64)) {
	m.tree.Walk(fn)
}

// ValueFor translates a single value into the target category. The second
// result is false when the value does not belong to this map's source
// category. A number no rule covers keeps its value and only changes
// category: absent coverage means identity, not failure.
func (m *CategoryMap) ValueFor(v Value) (Value, bool) {
	if v.Category != m.source {
		return Value{}, false
	}
	for _, r := range m.rules {
		if n, ok := r.Apply(v.Number); ok {
			return Value{Category: m.target, Number: n}, true
		}
	}
	return Value{Category: m.target, Number: v.Number}, true
}

// RangesFor translates a whole interval into target space, splitting it
// wherever rule coverage begins or ends. Covered portions are offset
// translated; uncovered portions pass through unchanged. The results appear
// in ascending source order, cover the query exactly once each, and their
// lengths sum to the query's length. An empty query yields no intervals.
func (m *CategoryMap) RangesFor(query interval.Interval) []interval.Interval {
	if query.IsEmpty() {
		return nil
	}
	matches := m.tree.FindIntersections(query)
	if len(matches) == 0 {
		return []interval.Interval{query}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Source.Start < matches[j].Source.Start
	})

	out := make([]interval.Interval, 0, 2*len(matches)+1)
	if first := matches[0]; query.Start < first.Source.Start {
		out = append(out, interval.Interval{Start: query.Start, End: first.Source.Start})
	}
	for i, match := range matches {
		out = append(out, match.Target)
		if i+1 < len(matches) {
			if next := matches[i+1]; match.Source.End < next.Source.Start {
				out = append(out, interval.Interval{Start: match.Source.End, End: next.Source.Start})
			}
		}
	}
	if last := matches[len(matches)-1]; last.Source.End < query.End {
		out = append(out, interval.Interval{Start: last.Source.End, End: query.End})
	}
	return out
}
