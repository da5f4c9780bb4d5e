/*
Package pattern parses Unicode sets from a textual notation.

Patterns follow the conventions of ICU's UnicodeSet patterns:

    [abc]           the code points a, b and c
    [a-z]           a range of code points
    [^a-z]          the complement of a set (strings are kept)
    [a{ch}{ll}]     a, plus the strings "ch" and "ll"
    [[a-z][0-9]]    the union of nested sets
    [A\x{1F600}\\\]]   escaped characters
    \p{Lu}, \P{Lu}  a Unicode property, or its complement
    \p{sc=Greek}    a property value
    [:Greek:]       a property in POSIX notation, [:^Greek:] for the complement

Unescaped white space is ignored. Properties are resolved by package props.

The syntax of a pattern is checked with an Earley parser. Sets are then built
from the token stream the parser has accepted.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package pattern

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/gorgo/lr"
	"github.com/npillmayer/gorgo/lr/earley"
	"github.com/npillmayer/gorgo/lr/scanner"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uniset"
	"github.com/npillmayer/uniset/props"
	"github.com/npillmayer/uniset/surrogate"
)

// T traces to the core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ErrSyntax is returned for malformed patterns.
var ErrSyntax = errors.New("syntax error in Unicode set pattern")

var globalPatternGrammar *lr.LRAnalysis

var initParser sync.Once

func getParser() *earley.Parser {
	initParser.Do(func() {
		globalPatternGrammar = NewPatternGrammar()
	})
	parser := earley.NewParser(globalPatternGrammar)
	if parser == nil {
		panic("Could not create set pattern parser")
	}
	return parser
}

// NewPatternGrammar creates the grammar for Unicode set patterns. It is usually
// not called by clients directly, but rather used transparently with a call to Parse.
func NewPatternGrammar() *lr.LRAnalysis {
	b := lr.NewGrammarBuilder("UnicodeSet")
	b.LHS("Set").T(tok(tokLBrack)).N("Items").T(tok(tokRBrack)).End()
	b.LHS("Set").T(tok(tokLBrack)).T(tok(tokCaret)).N("Items").T(tok(tokRBrack)).End()
	b.LHS("Set").T(tok(tokLBrack)).T(tok(tokRBrack)).End()
	b.LHS("Set").T(tok(tokLBrack)).T(tok(tokCaret)).T(tok(tokRBrack)).End()
	b.LHS("Set").T(tok(tokProp)).End()
	b.LHS("Items").N("Items").N("Item").End()
	b.LHS("Items").N("Item").End()
	b.LHS("Item").T(tok(tokChar)).End()
	b.LHS("Item").T(tok(tokChar)).T(tok(tokDash)).T(tok(tokChar)).End()
	b.LHS("Item").T(tok(tokString)).End()
	b.LHS("Item").N("Set").End()
	g, err := b.Grammar()
	if err != nil {
		panic(err)
	}
	return lr.Analysis(g)
}

func tok(kind int) (string, int) {
	return tokenNames[kind], kind
}

// tokenizer serves a list of tokens to the parser. It implements the
// scanner.Tokenizer interface.
type tokenizer struct {
	tokens []token
	inx    int
	onErr  func(error)
}

func (tz *tokenizer) NextToken(expected []int) (int, interface{}, uint64, uint64) {
	if tz.inx >= len(tz.tokens) {
		return scanner.EOF, nil, 0, 0
	}
	t := tz.tokens[tz.inx]
	tz.inx++
	T().Debugf("token %v", t)
	return t.kind, t, uint64(t.pos), 1
}

func (tz *tokenizer) SetErrorHandler(h func(error)) {
	tz.onErr = h
}

// Parse creates a frozen Unicode set from a pattern. Malformed patterns result in
// an error wrapping ErrSyntax, unknown properties in an error wrapping
// props.ErrUnknownProperty or props.ErrUnknownValue.
func Parse(pattern string) (*uniset.UnicodeSet, error) {
	tokens, err := lex(pattern)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrSyntax)
	}
	accept, err := getParser().Parse(&tokenizer{tokens: tokens}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	if !accept {
		return nil, fmt.Errorf("%w: %q is not a well-formed set", ErrSyntax, pattern)
	}
	ev := &evaluator{tokens: tokens}
	b, err := ev.set()
	if err != nil {
		return nil, err
	}
	return b.Freeze(), nil
}

// MustParse is like Parse, but panics on malformed patterns. It simplifies
// initialization of global variables holding sets.
func MustParse(pattern string) *uniset.UnicodeSet {
	set, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return set
}

// evaluator builds a set from a token list which the parser has accepted.
type evaluator struct {
	tokens []token
	inx    int
}

func (ev *evaluator) next() token {
	t := ev.tokens[ev.inx]
	ev.inx++
	return t
}

func (ev *evaluator) peek() int {
	if ev.inx >= len(ev.tokens) {
		return 0
	}
	return ev.tokens[ev.inx].kind
}

func (ev *evaluator) set() (*uniset.Builder, error) {
	t := ev.next()
	if t.kind == tokProp {
		return property(t)
	}
	b := uniset.NewBuilder()
	negated := false
	if ev.peek() == tokCaret {
		ev.next()
		negated = true
	}
	for ev.peek() != tokRBrack {
		switch ev.peek() {
		case tokChar:
			lo := ev.next().r
			if ev.peek() != tokDash {
				b.AddRune(lo)
				continue
			}
			ev.next()
			hi := ev.next()
			if hi.r < lo {
				return nil, fmt.Errorf("%w at position %d: reversed range %#U-%#U", ErrSyntax, hi.pos, lo, hi.r)
			}
			b.AddRange(lo, hi.r)
		case tokString:
			b.AddUTF16(surrogate.Encode(ev.next().str))
		default:
			nested, err := ev.set()
			if err != nil {
				return nil, err
			}
			b.AddAll(nested.Freeze())
		}
	}
	ev.next() // ']'
	if negated {
		b.Complement()
	}
	return b, nil
}

func property(t token) (*uniset.Builder, error) {
	rt, err := props.RangeTableFor(t.prop)
	if err != nil {
		return nil, fmt.Errorf("property at position %d: %w", t.pos, err)
	}
	b := uniset.NewBuilder().AddRangeTable(rt)
	if t.negated {
		b.Complement()
	}
	return b, nil
}
