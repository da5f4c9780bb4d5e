package uniset

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
)

func TestBoundaries(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := newSet("a", "b")
	for _, test := range []struct {
		text     string
		forward  []int
		backward []int
	}{
		{"abxxab", []int{2, 4, 6}, []int{4, 2, 0}},
		{"xab", []int{0, 1, 3}, []int{1, 0}},
		{"abx", []int{2, 3}, []int{3, 2, 0}},
		{"", nil, nil},
	} {
		text := FromString(test.text)
		b, err := set.Boundaries(text, Contained)
		if err != nil {
			t.Fatal(err)
		}
		if !intsEqual(b, test.forward) {
			t.Errorf("expected boundaries of %q to be %v, are %v", test.text, test.forward, b)
		}
		b, err = set.BoundariesBack(text, Contained)
		if err != nil {
			t.Fatal(err)
		}
		if !intsEqual(b, test.backward) {
			t.Errorf("expected backward boundaries of %q to be %v, are %v", test.text, test.backward, b)
		}
	}
}

func TestBoundariesMonotonic(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	rnd := rand.New(rand.NewSource(1))
	for n := 0; n < 200; n++ {
		set := randomSet(rnd, 4)
		text := randomText(rnd, 24)
		for _, cond := range []SpanCondition{Contained, Simple} {
			b, err := set.Boundaries(text, cond)
			if err != nil {
				t.Fatal(err)
			}
			for i := 1; i < len(b); i++ {
				if b[i] <= b[i-1] {
					t.Fatalf("%s: boundaries of %v not increasing: %v", set, text, b)
				}
			}
			if len(text) > 0 && b[len(b)-1] != len(text) {
				t.Errorf("%s: boundaries of %v do not reach the end: %v", set, text, b)
			}
			b, _ = set.BoundariesBack(text, cond)
			for i := 1; i < len(b); i++ {
				if b[i] >= b[i-1] {
					t.Fatalf("%s: backward boundaries of %v not decreasing: %v", set, text, b)
				}
			}
			if len(text) > 0 && b[len(b)-1] != 0 {
				t.Errorf("%s: backward boundaries of %v do not reach the start: %v", set, text, b)
			}
		}
	}
}

func TestBoundariesDuality(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	rnd := rand.New(rand.NewSource(2))
	for n := 0; n < 200; n++ {
		set := randomSet(rnd, 0)
		text := randomText(rnd, 24)
		fwd, _ := set.Boundaries(text, Contained)
		bwd, _ := set.BoundariesBack(text, Contained)
		f := normalizeBoundaries(append(fwd, 0), len(text))
		b := normalizeBoundaries(append(bwd, len(text)), len(text))
		if !intsEqual(f, b) {
			t.Errorf("%s on %v: forward boundaries %v differ from backward %v", set, text, f, b)
		}
	}
}

func normalizeBoundaries(b []int, length int) []int {
	seen := make(map[int]bool)
	var r []int
	for _, x := range append(b, 0, length) {
		if !seen[x] {
			seen[x] = true
			r = append(r, x)
		}
	}
	sort.Ints(r)
	return r
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
