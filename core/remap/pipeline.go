package remap

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/FocuswithJustin/Almanac/core/interval"
)

// Errors reported by pipeline walks.
var (
	// ErrDeadEnd is returned when the walk reaches a category with no
	// outgoing map before arriving at the target.
	ErrDeadEnd = errors.New("no map out of category")

	// ErrCycle is returned when the walk visits the same category twice,
	// which could otherwise loop forever.
	ErrCycle = errors.New("category cycle")
)

// Pipeline is a set of category maps keyed by source category. Build it
// with Add; afterwards it may be queried from any number of goroutines.
//
// Trace, when non-nil, receives a dump of the working set after every hop
// of MapRange.
type Pipeline struct {
	maps  map[Category]*CategoryMap
	Trace io.Writer
}

// NewPipeline builds a pipeline from the given category maps.
func NewPipeline(maps ...*CategoryMap) (*Pipeline, error) {
	p := &Pipeline{maps: make(map[Category]*CategoryMap, len(maps))}
	for _, m := range maps {
		if err := p.Add(m); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Add registers a category map under its source category. Each category has
// at most one outgoing map; registering a second is an error.
func (p *Pipeline) Add(m *CategoryMap) error {
	if p.maps == nil {
		p.maps = make(map[Category]*CategoryMap)
	}
	if _, dup := p.maps[m.Source()]; dup {
		return fmt.Errorf("category %q already has an outgoing map", m.Source())
	}
	p.maps[m.Source()] = m
	return nil
}

// Len returns the number of registered category maps.
func (p *Pipeline) Len() int { return len(p.maps) }

// Lookup returns the outgoing map of the given category, if any.
func (p *Pipeline) Lookup(source Category) (*CategoryMap, bool) {
	m, ok := p.maps[source]
	return m, ok
}

// Maps returns the registered category maps sorted by source category.
func (p *Pipeline) Maps() []*CategoryMap {
	out := make([]*CategoryMap, 0, len(p.maps))
	for _, m := range p.maps {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source() < out[j].Source() })
	return out
}

// Map walks a single value hop by hop until it reaches the target category.
// It fails with ErrDeadEnd when an intermediate category has no outgoing
// map and with ErrCycle when the chain revisits a category. A number no
// rule covers continues unchanged; only a missing map is a failure. A value
// already in the target category is returned as is.
func (p *Pipeline) Map(v Value, target Category) (Value, error) {
	visited := make(map[Category]bool)
	for v.Category != target {
		if visited[v.Category] {
			return Value{}, fmt.Errorf("%w: %q revisited walking to %q", ErrCycle, v.Category, target)
		}
		visited[v.Category] = true
		m, ok := p.maps[v.Category]
		if !ok {
			return Value{}, fmt.Errorf("%w: %q walking to %q", ErrDeadEnd, v.Category, target)
		}
		// ok always holds: maps are keyed by their source category.
		v, _ = m.ValueFor(v)
	}
	return v, nil
}

// MapRange walks an interval from source to target, carrying a working set
// of intervals that is re-split at every hop. Dead ends and cycles fail
// exactly as in Map; a partial walk is never returned. The combined length
// of the results equals the length of the query, and an empty query yields
// no intervals.
func (p *Pipeline) MapRange(query interval.Interval, source, target Category) ([]interval.Interval, error) {
	if query.IsEmpty() {
		return nil, nil
	}
	working := []interval.Interval{query}
	visited := make(map[Category]bool)
	for current := source; current != target; {
		if visited[current] {
			return nil, fmt.Errorf("%w: %q revisited walking to %q", ErrCycle, current, target)
		}
		visited[current] = true
		m, ok := p.maps[current]
		if !ok {
			return nil, fmt.Errorf("%w: %q walking to %q", ErrDeadEnd, current, target)
		}
		next := make([]interval.Interval, 0, len(working))
		for _, iv := range working {
			next = append(next, m.RangesFor(iv)...)
		}
		working = next
		current = m.Target()
		p.trace(m, working)
	}
	return working, nil
}

// Route returns the chain of categories a walk from source to target passes
// through, both endpoints included. It fails like Map when the chain dead
// ends or cycles before reaching the target.
func (p *Pipeline) Route(source, target Category) ([]Category, error) {
	route := []Category{source}
	visited := make(map[Category]bool)
	for current := source; current != target; {
		if visited[current] {
			return nil, fmt.Errorf("%w: %q revisited walking to %q", ErrCycle, current, target)
		}
		visited[current] = true
		m, ok := p.maps[current]
		if !ok {
			return nil, fmt.Errorf("%w: %q walking to %q", ErrDeadEnd, current, target)
		}
		current = m.Target()
		route = append(route, current)
	}
	return route, nil
}

func (p *Pipeline) trace(m *CategoryMap, working []interval.Interval) {
	if p.Trace == nil {
		return
	}
	fmt.Fprintf(p.Trace, "%s -> %s: %d interval(s)\n", m.Source(), m.Target(), len(working))
	for _, iv := range working {
		fmt.Fprintf(p.Trace, "  %s len=%d\n", iv, iv.Len())
	}
}

// MinStart returns the smallest start among the non-empty intervals. The
// second result is false when the collection holds no values at all.
func MinStart(ranges []interval.Interval) (uint64, bool) {
	var best uint64
	found := false
	for _, iv := range ranges {
		if iv.IsEmpty() {
			continue
		}
		if !found || iv.Start < best {
			best = iv.Start
			found = true
		}
	}
	return best, found
}
