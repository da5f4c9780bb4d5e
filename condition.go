package uniset

import (
	"fmt"
	"strconv"
	"strings"
)

// SpanCondition selects the matching policy of a span.
type SpanCondition int8

// Span conditions. See the package documentation for their semantics.
const (
	NotContained SpanCondition = iota // no set element at the current position
	Contained                         // longest concatenation of set elements
	Simple                            // longest single element at each position
)

const _SpanCondition_name = "NotContainedContainedSimple"

var _SpanCondition_index = [...]uint8{0, 12, 21, 27}

func (c SpanCondition) String() string {
	if c < 0 || int(c) >= len(_SpanCondition_index)-1 {
		return "SpanCondition(" + strconv.FormatInt(int64(c), 10) + ")"
	}
	return _SpanCondition_name[_SpanCondition_index[c]:_SpanCondition_index[c+1]]
}

// Invert returns the condition which spans the complement of what c spans,
// for sets without strings. NotContained inverts to Contained; both Contained and
// Simple invert to NotContained.
func (c SpanCondition) Invert() SpanCondition {
	if c == NotContained {
		return Contained
	}
	return NotContained
}

func (c SpanCondition) valid() bool {
	return c >= NotContained && c <= Simple
}

// ParseCondition finds a span condition by name. Case, blanks, '-' and '_' are
// ignored, so "not-contained" and "NotContained" both will do.
func ParseCondition(name string) (SpanCondition, error) {
	n := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	switch n {
	case "notcontained", "not", "none":
		return NotContained, nil
	case "contained", "all":
		return Contained, nil
	case "simple":
		return Simple, nil
	}
	return NotContained, fmt.Errorf("%w: unknown span condition %q", ErrInvalidArgument, name)
}
