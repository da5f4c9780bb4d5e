package segment

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uniset"
)

func letters() *uniset.UnicodeSet {
	return uniset.NewBuilder().AddRange('a', 'z').AddRange('A', 'Z').Freeze()
}

func TestWords(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seg := NewSegmenter(letters())
	seg.Init(strings.NewReader("Hello World!"))
	var segments []string
	for seg.Next() {
		t.Logf("segment = '%s', contained = %v", seg.Text(), seg.Contained())
		segments = append(segments, seg.Text())
	}
	if seg.Err() != nil {
		t.Fatal(seg.Err())
	}
	if strings.Join(segments, "|") != "Hello| |World|!" {
		t.Errorf("expected segments Hello| |World|!, have %s", strings.Join(segments, "|"))
	}
	b := seg.Boundaries()
	if len(b) != 4 || b[3] != 12 {
		t.Errorf("expected 4 boundaries ending at 12, have %v", b)
	}
}

func TestLeadingNonContained(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seg := NewSegmenter(letters())
	seg.Init(strings.NewReader("  for (i=0)"))
	n := 0
	for seg.Next() {
		if n == 0 && (seg.Contained() || seg.Text() != "  ") {
			t.Errorf("expected first segment to be blanks, not contained; is '%s'", seg.Text())
		}
		n++
	}
	if n != 5 {
		t.Errorf("expected 5 segments, have %d", n)
	}
}

func TestSimpleCondition(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	set := uniset.NewBuilder().AddString("a").AddString("ab").AddString("abc").AddString("cd").Freeze()
	seg := NewSegmenter(set, WithCondition(uniset.Simple))
	seg.InitText(uniset.FromString("acdabcdabccd"))
	var ranges []string
	for seg.Next() {
		from, to := seg.Range()
		ranges = append(ranges, fmt.Sprintf("%d-%d", from, to))
	}
	if strings.Join(ranges, ",") != "0-6,6-7,7-12" {
		t.Errorf("unexpected segments %v", ranges)
	}
}

func TestNotInitialized(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seg := NewSegmenter(letters())
	if seg.Next() {
		t.Errorf("uninitialized segmenter should not produce segments")
	}
	if !errors.Is(seg.Err(), ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, have %v", seg.Err())
	}
	seg = NewSegmenter(letters(), WithMaxSize(4))
	seg.Init(strings.NewReader("too long"))
	if seg.Next() || !errors.Is(seg.Err(), ErrTooLong) {
		t.Errorf("expected ErrTooLong, have %v", seg.Err())
	}
	seg = NewSegmenter(nil)
	seg.Init(strings.NewReader("abc"))
	if seg.Next() || !errors.Is(seg.Err(), uniset.ErrInvalidArgument) {
		t.Errorf("expected invalid argument for missing set, have %v", seg.Err())
	}
}

func ExampleSegmenter() {
	seg := NewSegmenter(letters())
	seg.Init(strings.NewReader("Hello World!"))
	for seg.Next() {
		fmt.Printf("segment: contained = %5v for '%s'\n", seg.Contained(), seg.Text())
	}
	// Output:
	// segment: contained =  true for 'Hello'
	// segment: contained = false for ' '
	// segment: contained =  true for 'World'
	// segment: contained = false for '!'
}
