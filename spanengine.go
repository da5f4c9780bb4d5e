package uniset

import (
	"fmt"

	"github.com/npillmayer/uniset/surrogate"
)

// stepper counts the steps of a span against an optional budget.
type stepper struct {
	budget int // 0 = unlimited
	steps  int
}

func (st *stepper) step() error {
	st.steps++
	if st.budget > 0 && st.steps > st.budget {
		return fmt.Errorf("%w: after %d steps", ErrStepBudgetExceeded, st.budget)
	}
	return nil
}

// cpLengthAt returns the length in code units of the code point at pos if it is a
// member of set, 0 otherwise.
func (set *UnicodeSet) cpLengthAt(text Text, pos int) int {
	if r := surrogate.CodePointAt(text, pos); set.ContainsRune(r) {
		return surrogate.CharCount(r)
	}
	return 0
}

// cpLengthBefore returns the length in code units of the code point before limit
// if it is a member of set, 0 otherwise.
func (set *UnicodeSet) cpLengthBefore(text Text, limit int) int {
	if r := surrogate.CodePointBefore(text, limit); set.ContainsRune(r) {
		return surrogate.CharCount(r)
	}
	return 0
}

// --- Forward ----------------------------------------------------------

func (set *UnicodeSet) span(text Text, start int, cond SpanCondition, st *stepper) (int, int, error) {
	if cond == NotContained {
		return set.spanNot(text, start, st)
	}
	if !set.HasStrings() || cond == Simple {
		return set.spanSimple(text, start, st)
	}
	return set.spanContained(text, start, st)
}

// spanNot advances while neither a member code point nor a string member
// starts at the current position. Count is the number of code points skipped.
func (set *UnicodeSet) spanNot(text Text, start int, st *stepper) (int, int, error) {
	pos, count := start, 0
	for pos < len(text) {
		if err := st.step(); err != nil {
			return pos, count, err
		}
		r := surrogate.CodePointAt(text, pos)
		if set.ContainsRune(r) || set.index.longestAt(text, pos) > 0 {
			break
		}
		pos += surrogate.CharCount(r)
		count++
	}
	return pos, count, nil
}

// spanSimple consumes the longest single element at each position. For sets
// without strings this is the Contained span as well.
func (set *UnicodeSet) spanSimple(text Text, start int, st *stepper) (int, int, error) {
	pos, count := start, 0
	for pos < len(text) {
		if err := st.step(); err != nil {
			return pos, count, err
		}
		n := set.cpLengthAt(text, pos)
		if m := set.index.longestAt(text, pos); m > n {
			n = m
		}
		if n == 0 {
			break
		}
		pos += n
		count++
	}
	return pos, count, nil
}

// spanContained finds the longest prefix of text[start:] which is a concatenation
// of set elements. Reachable offsets are visited in ascending order, the last one
// popped is the span end.
func (set *UnicodeSet) spanContained(text Text, start int, st *stepper) (int, int, error) {
	q := borrowQueue(false)
	defer q.releaseIntoPool()
	q.push(start, 0)
	end, count := start, 0
	for {
		pos, c, ok := q.pop()
		if !ok {
			break
		}
		end, count = pos, c
		if pos == len(text) {
			break
		}
		if err := st.step(); err != nil {
			return end, count, err
		}
		if n := set.cpLengthAt(text, pos); n > 0 {
			q.push(pos+n, c+1)
		}
		set.index.forEachAt(text, pos, func(n int) bool {
			q.push(pos+n, c+1)
			return true
		})
	}
	return end, count, nil
}

// --- Backward ---------------------------------------------------------

func (set *UnicodeSet) spanBack(text Text, limit int, cond SpanCondition, st *stepper) (int, int, error) {
	if cond == NotContained {
		return set.spanNotBack(text, limit, st)
	}
	if !set.HasStrings() || cond == Simple {
		return set.spanSimpleBack(text, limit, st)
	}
	return set.spanContainedBack(text, limit, st)
}

func (set *UnicodeSet) spanNotBack(text Text, limit int, st *stepper) (int, int, error) {
	pos, count := limit, 0
	for pos > 0 {
		if err := st.step(); err != nil {
			return pos, count, err
		}
		r := surrogate.CodePointBefore(text, pos)
		if set.ContainsRune(r) || set.index.longestEndingAt(text, pos) > 0 {
			break
		}
		pos -= surrogate.CharCount(r)
		count++
	}
	return pos, count, nil
}

// spanSimpleBack consumes the element starting earliest among those ending at
// the current position.
func (set *UnicodeSet) spanSimpleBack(text Text, limit int, st *stepper) (int, int, error) {
	pos, count := limit, 0
	for pos > 0 {
		if err := st.step(); err != nil {
			return pos, count, err
		}
		n := set.cpLengthBefore(text, pos)
		if m := set.index.longestEndingAt(text, pos); m > n {
			n = m
		}
		if n == 0 {
			break
		}
		pos -= n
		count++
	}
	return pos, count, nil
}

func (set *UnicodeSet) spanContainedBack(text Text, limit int, st *stepper) (int, int, error) {
	q := borrowQueue(true)
	defer q.releaseIntoPool()
	q.push(limit, 0)
	start, count := limit, 0
	for {
		pos, c, ok := q.pop()
		if !ok {
			break
		}
		start, count = pos, c
		if pos == 0 {
			break
		}
		if err := st.step(); err != nil {
			return start, count, err
		}
		if n := set.cpLengthBefore(text, pos); n > 0 {
			q.push(pos-n, c+1)
		}
		set.index.forEachEndingAt(text, pos, func(n int) bool {
			q.push(pos-n, c+1)
			return true
		})
	}
	return start, count, nil
}
