package pattern

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uniset"
	"github.com/npillmayer/uniset/props"
)

func TestLexer(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	tokens, err := lex(`[^-a-c {x\}y} A\x{1F600}[:Greek:]\p{Lu}]`)
	if err != nil {
		t.Fatal(err)
	}
	kinds := []int{tokLBrack, tokCaret, tokChar, tokChar, tokDash, tokChar, tokString,
		tokChar, tokChar, tokProp, tokProp, tokRBrack}
	if len(tokens) != len(kinds) {
		t.Fatalf("expected %d tokens, have %d: %v", len(kinds), len(tokens), tokens)
	}
	for i, k := range kinds {
		if tokens[i].kind != k {
			t.Errorf("token #%d should be %s, is %v", i, tokenNames[k], tokens[i])
		}
	}
	if tokens[2].r != '-' || string(tokens[6].str) != "x}y" || tokens[7].r != 'A' || tokens[8].r != 0x1f600 {
		t.Errorf("token values are wrong: %v", tokens)
	}
	if tokens[9].prop != "Greek" || tokens[10].prop != "Lu" {
		t.Errorf("property names are wrong: %v", tokens)
	}
}

func TestParseSimple(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set, err := Parse("[a{ab}{bc}]")
	if err != nil {
		t.Fatal(err)
	}
	expected := uniset.NewBuilder().AddRune('a').AddString("ab").AddString("bc").Freeze()
	if !set.Equal(expected) {
		t.Errorf("expected %s, have %s", expected, set)
	}
	set = MustParse("[a-c x-z]")
	if set.Len() != 6 || !set.ContainsRange('x', 'z') {
		t.Errorf("expected 6 code points in two ranges, have %s", set)
	}
	if !MustParse("[]").IsEmpty() {
		t.Errorf("expected [] to be empty")
	}
}

func TestParseComplement(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := MustParse("[^a{ab}{bc}]")
	if set.ContainsRune('a') || !set.ContainsRune('b') || !set.ContainsString("ab") {
		t.Errorf("complemented pattern should invert code points and keep strings: %s", set)
	}
	text := uniset.FromString("abc")
	if end, _ := set.Span(text, 0, uniset.Simple); end != 3 {
		t.Errorf("expected Simple span to end at 3, is %d", end)
	}
	if start, _ := set.SpanBack(text, 3, uniset.Simple); start != 1 {
		t.Errorf("expected Simple span back to start at 1, is %d", start)
	}
}

func TestParseProperties(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	greek := MustParse("[:Greek:]")
	if !greek.ContainsRune('α') || greek.ContainsRune('a') {
		t.Errorf("[:Greek:] is wrong")
	}
	notGreek := MustParse("[:^Greek:]")
	if notGreek.ContainsRune('α') || !notGreek.ContainsRune('a') {
		t.Errorf("[:^Greek:] is wrong")
	}
	set := MustParse(`[\p{Lu}\p{sc=Hira}]`)
	if !set.ContainsRune('A') || !set.ContainsRune(0x3042) || set.ContainsRune('a') {
		t.Errorf("union of properties is wrong")
	}
	if set := MustParse(`\P{L}`); set.ContainsRune('a') || !set.ContainsRune('1') {
		t.Errorf(`\P{L} is wrong`)
	}
	if _, err := Parse(`[\p{Elvish}]`); !errors.Is(err, props.ErrUnknownProperty) {
		t.Errorf("expected unknown property error, have %v", err)
	}
}

func TestParseNestedAndEscapes(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	set := MustParse(`[[a-c][^\u0000-\U0010FFFD]\]\-\x{1F600}{\r\n}]`)
	for _, r := range []rune{'a', 'c', ']', '-', 0x1f600, 0x10fffe, 0x10ffff} {
		if !set.ContainsRune(r) {
			t.Errorf("expected %#U in set %s", r, set)
		}
	}
	if set.ContainsRune('d') || !set.ContainsString("\r\n") {
		t.Errorf("nested set is wrong: %s", set)
	}
	lone := MustParse(`[{a\uD800}]`)
	units := lone.StringUnits()
	if len(units) != 1 || len(units[0]) != 2 || units[0][1] != 0xd800 {
		t.Errorf("expected string with lone surrogate, have %v", units)
	}
}

func TestParseErrors(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	for _, p := range []string{
		"", "[a", "a]", "[a-]]", "[z-a]", "[{ab]", `[\u12]`, `[\x{110000}]`, "[a}]", "[a]b",
		"[a--b]", "[:Greek]",
	} {
		if _, err := Parse(p); !errors.Is(err, ErrSyntax) {
			t.Errorf("expected syntax error for %q, have %v", p, err)
		}
	}
}

func TestPatternRoundTrip(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	//
	for _, p := range []string{
		`[a-c{ab}{bc}]`,
		`[\-\[\]\{\}\\]`,
		`[\u0000-\u001f\ud800{\}x}{a\ud801}]`,
		`[:Greek:]`,
		`[^a]`,
	} {
		set := MustParse(p)
		again, err := Parse(set.String())
		if err != nil {
			t.Errorf("cannot parse %s (from %s): %v", set, p, err)
			continue
		}
		if !again.Equal(set) {
			t.Errorf("pattern %s does not round-trip: %s", set, again)
		}
	}
}

func ExampleParse() {
	set, err := Parse("[a{ab}{abc}{cd}]")
	if err != nil {
		panic(err)
	}
	text := uniset.FromString("acdabcdabccd")
	end, _ := set.Span(text, 0, uniset.Contained)
	fmt.Println(set, end)
	// Output: [a{ab}{abc}{cd}] 12
}
