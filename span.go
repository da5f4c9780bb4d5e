package uniset

import (
	"fmt"

	"github.com/npillmayer/uniset/surrogate"
)

// Spanner is the span interface of a Unicode set. It is implemented by *UnicodeSet
// and by the slow recursive implementation in package reference, which is used to
// cross-check the former.
type Spanner interface {
	// Span returns the end of the run of text starting at start which satisfies cond.
	Span(text Text, start int, cond SpanCondition, opts ...SpanOption) (int, error)
	// SpanBack returns the start of the run of text ending at limit which satisfies cond.
	SpanBack(text Text, limit int, cond SpanCondition, opts ...SpanOption) (int, error)
	// SpanAndCount is Span, additionally returning the number of set elements
	// (code points or strings) making up the run.
	SpanAndCount(text Text, start int, cond SpanCondition, opts ...SpanOption) (int, int, error)
	// SpanBackAndCount mirrors SpanAndCount.
	SpanBackAndCount(text Text, limit int, cond SpanCondition, opts ...SpanOption) (int, int, error)
}

var _ Spanner = (*UnicodeSet)(nil)

// SpanOption configures a single span operation.
type SpanOption func(*spanConfig)

type spanConfig struct {
	budget int
}

// WithStepBudget limits the number of steps a span may take. A span exceeding the
// budget is aborted with ErrStepBudgetExceeded. Spans within the budget return the
// same result as without it. n ≤ 0 means unlimited.
func WithStepBudget(n int) SpanOption {
	return func(c *spanConfig) {
		c.budget = n
	}
}

func newStepper(opts []SpanOption) *stepper {
	config := spanConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return &stepper{budget: config.budget}
}

func (set *UnicodeSet) checkArgs(text Text, pos int, cond SpanCondition) error {
	if set == nil {
		return fmt.Errorf("%w: set is nil", ErrInvalidArgument)
	}
	if text == nil {
		return fmt.Errorf("%w: text is nil", ErrInvalidArgument)
	}
	if !cond.valid() {
		return fmt.Errorf("%w: span condition %s", ErrInvalidArgument, cond)
	}
	if pos < 0 || pos > len(text) {
		return fmt.Errorf("%w: position %d, text length %d", ErrIndexOutOfRange, pos, len(text))
	}
	if !surrogate.IsValidBoundary(text, pos) {
		CT().P("pos", pos).Infof("span position splits a surrogate pair, halves are taken as lone surrogates")
	}
	return nil
}

// Span returns the end of the run of text, starting at start, which satisfies cond:
//
//     NotContained   no set element starts at any position of the run
//     Contained      the run is the longest concatenation of set elements
//     Simple         the run consists of the longest single element at each position
//
// start ≤ end ≤ len(text) holds for the result.
//
// A start between the two halves of a surrogate pair is not an error: the trail
// unit at start is then taken as an unpaired surrogate. Clients may check start
// with surrogate.IsValidBoundary beforehand.
func (set *UnicodeSet) Span(text Text, start int, cond SpanCondition, opts ...SpanOption) (int, error) {
	end, _, err := set.SpanAndCount(text, start, cond, opts...)
	return end, err
}

// SpanAndCount returns the end of a span (see Span) together with the number of set
// elements making up the run. For NotContained, this is the number of code points
// in the run. For Contained, it is the minimum number of elements needed to build
// the run.
func (set *UnicodeSet) SpanAndCount(text Text, start int, cond SpanCondition, opts ...SpanOption) (int, int, error) {
	if err := set.checkArgs(text, start, cond); err != nil {
		return start, 0, err
	}
	st := newStepper(opts)
	end, count, err := set.span(text, start, cond, st)
	CT().P("cond", cond).Debugf("span from %d to %d, %d elements, %d steps", start, end, count, st.steps)
	return end, count, err
}

// SpanBack returns the start of the run of text, ending at limit, which satisfies
// cond. 0 ≤ start ≤ limit holds for the result. For Simple, the element starting
// earliest is consumed at each position.
//
// As with Span, a limit splitting a surrogate pair makes the lead unit before limit
// an unpaired surrogate.
func (set *UnicodeSet) SpanBack(text Text, limit int, cond SpanCondition, opts ...SpanOption) (int, error) {
	start, _, err := set.SpanBackAndCount(text, limit, cond, opts...)
	return start, err
}

// SpanBackAndCount is the backward version of SpanAndCount.
func (set *UnicodeSet) SpanBackAndCount(text Text, limit int, cond SpanCondition, opts ...SpanOption) (int, int, error) {
	if err := set.checkArgs(text, limit, cond); err != nil {
		return limit, 0, err
	}
	st := newStepper(opts)
	start, count, err := set.spanBack(text, limit, cond, st)
	CT().P("cond", cond).Debugf("span back from %d to %d, %d elements, %d steps", limit, start, count, st.steps)
	return start, count, err
}

// ContainsAll is true if text is a concatenation of set elements.
// A nil or empty text is contained by any set.
func (set *UnicodeSet) ContainsAll(text Text) bool {
	if set == nil {
		return false
	}
	end, _, _ := set.span(text, 0, Contained, &stepper{})
	return end == len(text)
}

// ContainsNone is true if no set element occurs anywhere in text.
func (set *UnicodeSet) ContainsNone(text Text) bool {
	if set == nil {
		return true
	}
	end, _, _ := set.span(text, 0, NotContained, &stepper{})
	return end == len(text)
}

// ContainsSome is true if at least one set element occurs in text.
func (set *UnicodeSet) ContainsSome(text Text) bool {
	return !set.ContainsNone(text)
}

// SpanString is Span for a Go string, with byteStart and the result being byte
// offsets into s. byteStart has to be at the start of a UTF-8 sequence.
func (set *UnicodeSet) SpanString(s string, byteStart int, cond SpanCondition, opts ...SpanOption) (int, error) {
	view := newUTF8View(s)
	start, err := view.unitOffset(s, byteStart)
	if err != nil {
		return byteStart, err
	}
	end, err := set.Span(view.text, start, cond, opts...)
	return view.byteOffset(end), err
}

// SpanBackString is SpanBack for a Go string, with byteLimit and the result being
// byte offsets into s.
func (set *UnicodeSet) SpanBackString(s string, byteLimit int, cond SpanCondition, opts ...SpanOption) (int, error) {
	view := newUTF8View(s)
	limit, err := view.unitOffset(s, byteLimit)
	if err != nil {
		return byteLimit, err
	}
	start, err := set.SpanBack(view.text, limit, cond, opts...)
	return view.byteOffset(start), err
}
