package uniset

// Boundaries spans text from the start, alternating between cond and NotContained,
// and returns the end offset of each run. The first run spans cond; if it is
// empty, the result starts with 0. All further offsets are strictly increasing,
// the last one is len(text).
//
// NotContained as cond is taken to mean Contained.
func (set *UnicodeSet) Boundaries(text Text, cond SpanCondition, opts ...SpanOption) ([]int, error) {
	if err := set.checkArgs(text, 0, cond); err != nil {
		return nil, err
	}
	if cond == NotContained {
		cond = Contained
	}
	st := newStepper(opts)
	var boundaries []int
	pos, c := 0, cond
	for pos < len(text) {
		end, _, err := set.span(text, pos, c, st)
		if err != nil {
			return boundaries, err
		}
		if end == pos && len(boundaries) > 0 {
			// cannot happen: one of the two conditions advances at every position
			CT().Errorf("span boundaries stalled at %d", pos)
			break
		}
		boundaries = append(boundaries, end)
		pos, c = end, alternate(c, cond)
	}
	return boundaries, nil
}

// BoundariesBack spans text backwards from its end, alternating between cond and
// NotContained, and returns the start offset of each run, in descending order.
// If the first run is empty, the result starts with len(text).
func (set *UnicodeSet) BoundariesBack(text Text, cond SpanCondition, opts ...SpanOption) ([]int, error) {
	if err := set.checkArgs(text, 0, cond); err != nil {
		return nil, err
	}
	if cond == NotContained {
		cond = Contained
	}
	st := newStepper(opts)
	var boundaries []int
	pos, c := len(text), cond
	for pos > 0 {
		start, _, err := set.spanBack(text, pos, c, st)
		if err != nil {
			return boundaries, err
		}
		if start == pos && len(boundaries) > 0 {
			CT().Errorf("span boundaries stalled at %d", pos)
			break
		}
		boundaries = append(boundaries, start)
		pos, c = start, alternate(c, cond)
	}
	return boundaries, nil
}

func alternate(c, cond SpanCondition) SpanCondition {
	if c == NotContained {
		return cond
	}
	return NotContained
}
