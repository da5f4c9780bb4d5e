/*
Package reference implements string spans over Unicode sets in the most direct
way possible: string members are found by a linear scan and Contained spans are
resolved by plain recursion over every alternative.

This is slow, and deep recursion makes it unsuitable for long texts. Its purpose
is to cross-check the spans of package uniset, which the tests of this package do
with randomized sets and texts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package reference

import (
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uniset"
	"github.com/npillmayer/uniset/surrogate"
)

// T traces to the core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Spanner spans text for a Unicode set. Span options are accepted but ignored.
type Spanner struct {
	set     *uniset.UnicodeSet
	strings [][]uint16
}

var _ uniset.Spanner = (*Spanner)(nil)

// New creates a reference spanner for set.
func New(set *uniset.UnicodeSet) *Spanner {
	sp := &Spanner{set: set}
	if set != nil {
		sp.strings = set.StringUnits()
	}
	return sp
}

func (sp *Spanner) check(text uniset.Text, pos int, cond uniset.SpanCondition) error {
	if sp == nil || sp.set == nil || text == nil {
		return fmt.Errorf("%w: missing set or text", uniset.ErrInvalidArgument)
	}
	if cond < uniset.NotContained || cond > uniset.Simple {
		return fmt.Errorf("%w: span condition %s", uniset.ErrInvalidArgument, cond)
	}
	if pos < 0 || pos > len(text) {
		return fmt.Errorf("%w: position %d", uniset.ErrIndexOutOfRange, pos)
	}
	return nil
}

// Span is the reference version of UnicodeSet.Span.
func (sp *Spanner) Span(text uniset.Text, start int, cond uniset.SpanCondition, opts ...uniset.SpanOption) (int, error) {
	end, _, err := sp.SpanAndCount(text, start, cond, opts...)
	return end, err
}

// SpanBack is the reference version of UnicodeSet.SpanBack.
func (sp *Spanner) SpanBack(text uniset.Text, limit int, cond uniset.SpanCondition, opts ...uniset.SpanOption) (int, error) {
	start, _, err := sp.SpanBackAndCount(text, limit, cond, opts...)
	return start, err
}

// SpanAndCount is the reference version of UnicodeSet.SpanAndCount.
func (sp *Spanner) SpanAndCount(text uniset.Text, start int, cond uniset.SpanCondition, _ ...uniset.SpanOption) (int, int, error) {
	if err := sp.check(text, start, cond); err != nil {
		return start, 0, err
	}
	var end, count int
	switch cond {
	case uniset.NotContained:
		end, count = sp.spanNot(text, start)
	case uniset.Simple:
		end, count = sp.spanSimple(text, start)
	default:
		end, count = sp.spanContained(text, start, make(map[int]reach))
	}
	T().Debugf("reference span from %d to %d, %d elements", start, end, count)
	return end, count, nil
}

// SpanBackAndCount is the reference version of UnicodeSet.SpanBackAndCount.
func (sp *Spanner) SpanBackAndCount(text uniset.Text, limit int, cond uniset.SpanCondition, _ ...uniset.SpanOption) (int, int, error) {
	if err := sp.check(text, limit, cond); err != nil {
		return limit, 0, err
	}
	var start, count int
	switch cond {
	case uniset.NotContained:
		start, count = sp.spanNotBack(text, limit)
	case uniset.Simple:
		start, count = sp.spanSimpleBack(text, limit)
	default:
		start, count = sp.spanContainedBack(text, limit, make(map[int]reach))
	}
	return start, count, nil
}

// --- Element matching --------------------------------------------------

// matchesAt returns the lengths of all elements matching text at pos.
func (sp *Spanner) matchesAt(text uniset.Text, pos int) []int {
	var lengths []int
	if pos >= len(text) {
		return lengths
	}
	if r := surrogate.CodePointAt(text, pos); sp.set.ContainsRune(r) {
		lengths = append(lengths, surrogate.CharCount(r))
	}
	for _, s := range sp.strings {
		if surrogate.Matches(text, pos, len(text), s) {
			lengths = append(lengths, len(s))
		}
	}
	return lengths
}

// matchesBefore returns the lengths of all elements matching text right before limit.
func (sp *Spanner) matchesBefore(text uniset.Text, limit int) []int {
	var lengths []int
	if limit <= 0 {
		return lengths
	}
	if r := surrogate.CodePointBefore(text, limit); sp.set.ContainsRune(r) {
		lengths = append(lengths, surrogate.CharCount(r))
	}
	for _, s := range sp.strings {
		if limit >= len(s) && surrogate.Matches(text, limit-len(s), len(text), s) {
			lengths = append(lengths, len(s))
		}
	}
	return lengths
}

func longest(lengths []int) int {
	n := 0
	for _, l := range lengths {
		if l > n {
			n = l
		}
	}
	return n
}

// --- Spans -------------------------------------------------------------

func (sp *Spanner) spanNot(text uniset.Text, pos int) (int, int) {
	count := 0
	for pos < len(text) && len(sp.matchesAt(text, pos)) == 0 {
		pos += surrogate.CharCount(surrogate.CodePointAt(text, pos))
		count++
	}
	return pos, count
}

func (sp *Spanner) spanNotBack(text uniset.Text, pos int) (int, int) {
	count := 0
	for pos > 0 && len(sp.matchesBefore(text, pos)) == 0 {
		pos -= surrogate.CharCount(surrogate.CodePointBefore(text, pos))
		count++
	}
	return pos, count
}

func (sp *Spanner) spanSimple(text uniset.Text, pos int) (int, int) {
	count := 0
	for n := longest(sp.matchesAt(text, pos)); n > 0; n = longest(sp.matchesAt(text, pos)) {
		pos += n
		count++
	}
	return pos, count
}

func (sp *Spanner) spanSimpleBack(text uniset.Text, pos int) (int, int) {
	count := 0
	for n := longest(sp.matchesBefore(text, pos)); n > 0; n = longest(sp.matchesBefore(text, pos)) {
		pos -= n
		count++
	}
	return pos, count
}

// reach is the farthest offset a Contained span gets to from some position,
// together with the minimum number of elements needed to get there.
type reach struct {
	offset, count int
}

func (r reach) better(other reach, backward bool) bool {
	if r.offset != other.offset {
		return (r.offset > other.offset) != backward
	}
	return r.count < other.count
}

// spanContained tries every element matching at pos and recurses from its end,
// keeping the alternative reaching farthest.
func (sp *Spanner) spanContained(text uniset.Text, pos int, memo map[int]reach) (int, int) {
	if r, ok := memo[pos]; ok {
		return r.offset, r.count
	}
	best := reach{pos, 0}
	for _, n := range sp.matchesAt(text, pos) {
		if pos+n == len(text) {
			best = reach{len(text), 1}
			break
		}
		end, count := sp.spanContained(text, pos+n, memo)
		if r := (reach{end, count + 1}); r.better(best, false) {
			best = r
		}
	}
	memo[pos] = best
	return best.offset, best.count
}

func (sp *Spanner) spanContainedBack(text uniset.Text, pos int, memo map[int]reach) (int, int) {
	if r, ok := memo[pos]; ok {
		return r.offset, r.count
	}
	best := reach{pos, 0}
	for _, n := range sp.matchesBefore(text, pos) {
		if pos-n == 0 {
			best = reach{0, 1}
			break
		}
		start, count := sp.spanContainedBack(text, pos-n, memo)
		if r := (reach{start, count + 1}); r.better(best, true) {
			best = r
		}
	}
	memo[pos] = best
	return best.offset, best.count
}
