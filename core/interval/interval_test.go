package interval

import "testing"

// TestNew verifies interval construction from start and length.
func TestNew(t *testing.T) {
	iv := New(10, 5)
	if iv.Start != 10 || iv.End != 15 {
		t.Errorf("New(10, 5) = %v, want [10, 15)", iv)
	}
	if iv.Len() != 5 {
		t.Errorf("Len() = %d, want 5", iv.Len())
	}

	empty := New(7, 0)
	if !empty.IsEmpty() {
		t.Errorf("New(7, 0).IsEmpty() = false, want true")
	}
	if empty.Len() != 0 {
		t.Errorf("New(7, 0).Len() = %d, want 0", empty.Len())
	}
}

// TestContains verifies half-open membership: start inclusive, end exclusive.
func TestContains(t *testing.T) {
	iv := Interval{Start: 10, End: 20}

	tests := []struct {
		name string
		n    uint64
		want bool
	}{
		{"below start", 9, false},
		{"at start", 10, true},
		{"inside", 15, true},
		{"last value", 19, true},
		{"at end", 20, false},
		{"above end", 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := iv.Contains(tt.n); got != tt.want {
				t.Errorf("[10, 20).Contains(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}

	if (Interval{Start: 5, End: 5}).Contains(5) {
		t.Error("empty interval must contain nothing")
	}
}

// TestOverlaps verifies strict half-open overlap: boundary contact does not
// count, and empty intervals overlap nothing.
func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{0, 5}, Interval{10, 15}, false},
		{"touching at boundary", Interval{0, 10}, Interval{10, 20}, false},
		{"one value shared", Interval{0, 11}, Interval{10, 20}, true},
		{"identical", Interval{3, 9}, Interval{3, 9}, true},
		{"contained", Interval{0, 100}, Interval{40, 60}, true},
		{"empty vs covering", Interval{5, 5}, Interval{0, 10}, false},
		{"both empty", Interval{5, 5}, Interval{5, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

// TestIntersect verifies the common sub-interval computation.
func TestIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Interval
		want   Interval
		wantOK bool
	}{
		{"partial overlap", Interval{0, 15}, Interval{10, 20}, Interval{10, 15}, true},
		{"contained", Interval{0, 100}, Interval{40, 60}, Interval{40, 60}, true},
		{"identical", Interval{3, 9}, Interval{3, 9}, Interval{3, 9}, true},
		{"touching", Interval{0, 10}, Interval{10, 20}, Interval{}, false},
		{"disjoint", Interval{0, 5}, Interval{50, 60}, Interval{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.wantOK {
				t.Fatalf("%v.Intersect(%v) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("%v.Intersect(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestContainsInterval verifies full containment checks.
func TestContainsInterval(t *testing.T) {
	outer := Interval{Start: 10, End: 20}

	if !outer.ContainsInterval(Interval{12, 18}) {
		t.Error("[10, 20) must contain [12, 18)")
	}
	if !outer.ContainsInterval(outer) {
		t.Error("an interval must contain itself")
	}
	if outer.ContainsInterval(Interval{5, 15}) {
		t.Error("[10, 20) must not contain [5, 15)")
	}
	if outer.ContainsInterval(Interval{15, 25}) {
		t.Error("[10, 20) must not contain [15, 25)")
	}
	if !outer.ContainsInterval(Interval{3, 3}) {
		t.Error("empty intervals are contained everywhere")
	}
}

// TestString verifies the half-open rendering used in traces and errors.
func TestString(t *testing.T) {
	if got := (Interval{Start: 98, End: 100}).String(); got != "[98, 100)" {
		t.Errorf("String() = %q, want %q", got, "[98, 100)")
	}
}
