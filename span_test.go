package uniset

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uniset/surrogate"
)

func TestSpanComplementedSet(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := newSet("a", "ab", "bc").Complement()
	text := FromString("abc")
	checkSpanBack(t, set, text, 3, Simple, 1)
	checkSpan(t, set, text, 0, Simple, 3)
	checkSpan(t, set, text, 1, Simple, 3)
}

func TestSpanOverlappingStrings(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := newSet("a", "ab", "abc", "cd")
	text := FromString("acdabcdabccd")
	checkSpan(t, set, text, 0, Contained, 12)
	checkSpan(t, set, text, 0, Simple, 6)
	checkSpan(t, set, text, 7, Simple, 12) // a run of length 5
}

func TestSpanBackOverlappingStrings(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := newSet("d", "cd", "bcd", "ab")
	text := FromString("abbcdabcdabd")
	checkSpanBack(t, set, text, 12, Contained, 0)
	checkSpanBack(t, set, text, 12, Simple, 6)
	checkSpanBack(t, set, text, 5, Simple, 0)
}

func TestSpanAndCount(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	abc := NewBuilder().AddRange('a', 'c').Freeze()
	crlf := newSet("\n", "\r", "\r\n")
	abcd := newSet("a", "ab", "abc", "cd")
	text := FromString("ab\n\r\r\n\U00050000abcde")
	if len(text) != 13 {
		t.Fatalf("expected text of 13 code units, have %d", len(text))
	}
	for i, test := range []struct {
		set        *UnicodeSet
		start      int
		cond       SpanCondition
		end, count int
	}{
		{abc, 8, Simple, 11, 3},
		{abc, 8, Contained, 11, 3},
		{abc, 2, NotContained, 8, 5},
		{crlf, 2, Contained, 6, 3},
		{crlf, 2, Simple, 6, 3},
		{abcd, 2, NotContained, 8, 5},
		{abcd, 8, Contained, 12, 2},
		{abcd, 8, Simple, 11, 1},
	} {
		end, count, err := test.set.SpanAndCount(text, test.start, test.cond)
		if err != nil {
			t.Fatal(err)
		}
		if end != test.end || count != test.count {
			t.Errorf("test #%d: expected %s span of %s from %d to be (%d, %d), is (%d, %d)",
				i, test.cond, test.set, test.start, test.end, test.count, end, count)
		}
	}
	start, count, err := crlf.SpanBackAndCount(text, 6, Contained)
	if err != nil || start != 2 || count != 3 {
		t.Errorf("expected backward Contained span (2, 3), is (%d, %d), err = %v", start, count, err)
	}
}

func TestSpanEmptyText(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := newSet("a", "bc")
	for _, cond := range []SpanCondition{NotContained, Contained, Simple} {
		checkSpan(t, set, Text{}, 0, cond, 0)
		checkSpanBack(t, set, Text{}, 0, cond, 0)
	}
	if !set.ContainsAll(Text{}) || !set.ContainsNone(nil) {
		t.Errorf("empty text should be contained by and disjoint to any set")
	}
}

func TestSpanErrors(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := newSet("a", "bc")
	text := FromString("abc")
	if _, err := set.Span(text, 4, Contained); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected index error for start beyond text, have %v", err)
	}
	if _, err := set.SpanBack(text, -1, Contained); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected index error for negative limit, have %v", err)
	}
	if _, err := set.Span(nil, 0, Contained); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected invalid argument for nil text, have %v", err)
	}
	var none *UnicodeSet
	if _, err := none.Span(text, 0, Contained); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected invalid argument for nil set, have %v", err)
	}
	if _, err := set.Span(text, 0, SpanCondition(7)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected invalid argument for unknown condition, have %v", err)
	}
	if _, err := set.SpanString("äbc", 1, Contained); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected index error for byte offset within a rune, have %v", err)
	}
}

func TestSpanStepBudget(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := newSet("a", "aa", "aaa")
	text := FromString("aaaaaaaaaaaaaaaaaaaaaaaab")
	_, err := set.Span(text, 0, Contained, WithStepBudget(5))
	if !errors.Is(err, ErrStepBudgetExceeded) {
		t.Errorf("expected step budget to be exceeded, have %v", err)
	}
	end, err := set.Span(text, 0, Contained, WithStepBudget(1000))
	if err != nil || end != 24 {
		t.Errorf("expected span within budget to end at 24, is %d, err = %v", end, err)
	}
}

func TestSpanSurrogatePairs(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	// string 'a'+lead must not match the first half of U+10400
	set := NewBuilder().AddUTF16([]uint16{'a', 0xd801}).AddRune(0xdc00).AddRune('b').Freeze()
	paired := Text{'a', 0xd801, 0xdc00}
	checkSpan(t, set, paired, 0, Contained, 0)
	checkSpan(t, set, paired, 0, NotContained, 3)
	unpaired := Text{'a', 0xd801, 'b'}
	checkSpan(t, set, unpaired, 0, Contained, 3)
	checkSpan(t, set, unpaired, 0, Simple, 3)
	checkSpanBack(t, set, unpaired, 3, Contained, 0)
	// code points of a set never split a pair either
	supp := NewBuilder().AddRune(0x10400).Freeze()
	text := FromString("\U00010400\U00010400x")
	checkSpan(t, supp, text, 0, Contained, 4)
	checkSpanBack(t, supp, text, 4, Contained, 0)
	checkSpan(t, supp, text, 0, NotContained, 0)
}

func TestSpanString(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := newSet("ä", "b", "😀x")
	s := "zzäb😀xzz"
	end, err := set.SpanString(s, 2, Contained)
	if err != nil || end != 10 {
		t.Errorf("expected byte span to end at 10, is %d, err = %v", end, err)
	}
	start, err := set.SpanBackString(s, 10, Simple)
	if err != nil || start != 2 {
		t.Errorf("expected backward byte span to start at 2, is %d, err = %v", start, err)
	}
	end, err = set.SpanString(s, 0, NotContained)
	if err != nil || end != 2 {
		t.Errorf("expected NotContained byte span to end at 2, is %d, err = %v", end, err)
	}
	// invalid bytes are spanned as U+FFFD, each at an offset of its own
	ab := newSet("a", "b")
	for i, test := range []struct {
		s     string
		start int
		cond  SpanCondition
		end   int
	}{
		{"\x80ab", 0, Contained, 0},
		{"\x80ab", 0, NotContained, 1},
		{"\x80ab", 1, Contained, 3},
		{"a\x80b", 0, Contained, 1},
		{"a\x80b", 1, NotContained, 2},
		{"a\x80b", 2, Contained, 3},
		{"a\xe2\x82b", 1, NotContained, 3},
	} {
		end, err := ab.SpanString(test.s, test.start, test.cond)
		if err != nil || end != test.end {
			t.Errorf("test #%d: expected %s byte span of %q from %d to end at %d, is %d, err = %v",
				i, test.cond, test.s, test.start, test.end, end, err)
		}
	}
	start, err = ab.SpanBackString("a\x80b", 2, NotContained)
	if err != nil || start != 1 {
		t.Errorf("expected backward byte span over invalid byte to start at 1, is %d, err = %v", start, err)
	}
}

func TestContainsAllNoneSome(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := newSet("a", "bc")
	if !set.ContainsAll(FromString("abca")) || set.ContainsAll(FromString("abc b")) {
		t.Errorf("ContainsAll is wrong")
	}
	if !set.ContainsNone(FromString("xyz")) || set.ContainsNone(FromString("xbcy")) {
		t.Errorf("ContainsNone is wrong")
	}
	if !set.ContainsSome(FromString("xbcy")) || set.ContainsSome(FromString("xby")) {
		t.Errorf("ContainsSome is wrong")
	}
}

// --- Properties --------------------------------------------------------

func TestComplementIdentityWithoutStrings(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	rnd := rand.New(rand.NewSource(4711))
	for n := 0; n < 100; n++ {
		set := randomSet(rnd, 0)
		comp := set.Complement()
		text := randomText(rnd, 20)
		for start := 0; start <= len(text); start++ {
			for _, cond := range []SpanCondition{NotContained, Contained, Simple} {
				a, _ := set.Span(text, start, cond)
				b, _ := comp.Span(text, start, cond.Invert())
				if a != b {
					t.Fatalf("%s: %s span from %d is %d, complement's inverted span is %d", set, cond, start, a, b)
				}
				a, _ = set.SpanBack(text, start, cond)
				b, _ = comp.SpanBack(text, start, cond.Invert())
				if a != b {
					t.Fatalf("%s: %s span back from %d is %d, complement's inverted span is %d", set, cond, start, a, b)
				}
			}
		}
	}
}

func TestCodePointSetEqualsNaiveScan(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	rnd := rand.New(rand.NewSource(12))
	for n := 0; n < 100; n++ {
		set := randomSet(rnd, 0)
		text := randomText(rnd, 20)
		runes := surrogate.Decode(text)
		naive := 0
		for _, r := range runes {
			if !set.ContainsRune(r) {
				break
			}
			if r > 0xffff {
				naive += 2
			} else {
				naive++
			}
		}
		if end, _ := set.Span(text, 0, Contained); end != naive {
			t.Errorf("%s: span of %q is %d, naive scan is %d", set, text.String(), end, naive)
		}
	}
}

func TestSimpleWithinContained(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	rnd := rand.New(rand.NewSource(99))
	for n := 0; n < 200; n++ {
		set := randomSet(rnd, 4)
		text := randomText(rnd, 16)
		for pos := 0; pos <= len(text); pos++ {
			simple, _ := set.Span(text, pos, Simple)
			contained, _ := set.Span(text, pos, Contained)
			if simple > contained {
				t.Fatalf("%s on %v: Simple span from %d is %d > Contained %d", set, text, pos, simple, contained)
			}
			simple, _ = set.SpanBack(text, pos, Simple)
			contained, _ = set.SpanBack(text, pos, Contained)
			if simple < contained {
				t.Fatalf("%s on %v: Simple span back from %d is %d < Contained %d", set, text, pos, simple, contained)
			}
		}
		if end, _ := set.Span(text, 0, Contained); end == len(text) && !set.ContainsAll(text) {
			t.Errorf("%s: ContainsAll inconsistent with Contained span for %v", set, text)
		}
		if end, _ := set.Span(text, 0, NotContained); end == len(text) && !set.ContainsNone(text) {
			t.Errorf("%s: ContainsNone inconsistent with NotContained span for %v", set, text)
		}
	}
}

// --- Helpers -----------------------------------------------------------

func checkSpan(t *testing.T, set *UnicodeSet, text Text, start int, cond SpanCondition, expected int) {
	t.Helper()
	end, err := set.Span(text, start, cond)
	if err != nil {
		t.Fatal(err)
	}
	if end != expected {
		t.Errorf("expected %s span of %s over %v from %d to end at %d, is %d",
			cond, set, text, start, expected, end)
	}
}

func checkSpanBack(t *testing.T, set *UnicodeSet, text Text, limit int, cond SpanCondition, expected int) {
	t.Helper()
	start, err := set.SpanBack(text, limit, cond)
	if err != nil {
		t.Fatal(err)
	}
	if start != expected {
		t.Errorf("expected %s span back of %s over %v from %d to start at %d, is %d",
			cond, set, text, limit, expected, start)
	}
}

// alphabet for random texts and sets, including a supplementary character and
// lone surrogates
var alphabet = []rune{'a', 'b', 'c', 'd', 0x10400, 0xd801, 0xdc00}

func randomText(rnd *rand.Rand, maxLen int) Text {
	n := rnd.Intn(maxLen + 1)
	text := Text{}
	for i := 0; i < n; i++ {
		r := alphabet[rnd.Intn(len(alphabet))]
		if r > 0xffff {
			text = append(text, 0xd801, 0xdc00)
		} else {
			text = append(text, uint16(r))
		}
	}
	return text
}

func randomSet(rnd *rand.Rand, maxStrings int) *UnicodeSet {
	b := NewBuilder()
	for _, r := range alphabet {
		if rnd.Intn(2) == 0 {
			b.AddRune(r)
		}
	}
	if maxStrings > 0 {
		for n := rnd.Intn(maxStrings + 1); n > 0; n-- {
			b.AddUTF16(randomText(rnd, 3))
		}
	}
	return b.Freeze()
}

func TestSpanWithinSurrogatePair(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	text := FromString("\U00010400") // d801 dc00
	if surrogate.IsValidBoundary(text, 1) {
		t.Fatalf("position 1 should split the surrogate pair")
	}
	trail := NewBuilder().AddRune(0xdc00).Freeze()
	checkSpan(t, trail, text, 1, Contained, 2)
	checkSpan(t, trail, text, 0, Contained, 0)
	lead := NewBuilder().AddRune(0xd801).Freeze()
	checkSpanBack(t, lead, text, 1, Contained, 0)
	checkSpanBack(t, lead, text, 2, Contained, 2)
}

func TestConcurrentSpans(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := newSet("a", "ab", "abc", "cd", "d", "bcd")
	text := FromString(strings.Repeat("acdabcdabccd", 20) + "x" + strings.Repeat("abbcdabcdabd", 20))
	type result struct{ pos, count int }
	expected := make(map[int][2]result)
	for _, pos := range []int{0, 3, 7, 240, 241, len(text)} {
		end, n, err := set.SpanAndCount(text, pos, Contained)
		if err != nil {
			t.Fatal(err)
		}
		start, m, err := set.SpanBackAndCount(text, pos, Contained)
		if err != nil {
			t.Fatal(err)
		}
		expected[pos] = [2]result{{end, n}, {start, m}}
	}
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				for pos, exp := range expected {
					end, n, err := set.SpanAndCount(text, pos, Contained)
					if err != nil || (result{end, n}) != exp[0] {
						t.Errorf("goroutine %d: span from %d is (%d, %d), expected %v, err = %v",
							g, pos, end, n, exp[0], err)
						return
					}
					start, m, err := set.SpanBackAndCount(text, pos, Contained)
					if err != nil || (result{start, m}) != exp[1] {
						t.Errorf("goroutine %d: span back from %d is (%d, %d), expected %v, err = %v",
							g, pos, start, m, exp[1], err)
						return
					}
				}
			}
		}(g)
	}
	wg.Wait()
}
