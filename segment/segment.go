/*
Package segment splits text into runs of elements of a Unicode set and runs of
text not containing any set elements.

BSD License

Copyright (c) 2017–21, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.


Typical Usage

Segmenter provides an interface similar to bufio.Scanner for reading data
such as a file of Unicode text.
Similar to Scanner's Scan() function, successive calls to a segmenter's
Next() method will step through the 'segments' of a text. Segments alternate
between runs spanned by a span condition (Contained by default) and runs
spanned by NotContained. Clients are able to get the code units of the segment
by calling Units() or Text(), and may check which kind of run a segment is by
calling Contained().

  set := pattern.MustParse("[[:Greek:]{ch}]")
  segmenter := segment.NewSegmenter(set)
  segmenter.Init(strings.NewReader(...))
  for segmenter.Next() {
    // do something with segmenter.Text() or segmenter.Range()
  }

How it works

The segmenter reads the complete input into UTF-16 text. Each call to Next()
spans the text from the end of the previous segment, alternating the span
condition. As a span over a set element never stops within a surrogate pair,
segments are always well-formed if the input is.

All segment boundaries are collected and are available with Boundaries(). */
package segment

import (
	"errors"
	"fmt"
	"io"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uniset"
	"github.com/npillmayer/uniset/surrogate"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// A Segmenter receives a sequence of code-points from an io.RuneReader or from
// UTF-16 text, and segments it into runs of set elements and runs of text free
// of set elements.
type Segmenter struct {
	set           *uniset.UnicodeSet   // set to span
	cond          uniset.SpanCondition // condition for runs of set elements
	opts          []uniset.SpanOption  // options for every span
	text          uniset.Text          // text to segment
	pos           int                  // current position in text
	start, end    int                  // range of the most recent segment
	nextCond      uniset.SpanCondition // condition to span the next segment with
	contained     bool                 // is the most recent segment a run of set elements?
	boundaries    *arraylist.List      // end positions of segments
	maxSegmentLen int                  // maximum input length in code units
	err           error
	initialized   bool
}

// MaxSegmentSize is the default maximum size of input text in code units.
const MaxSegmentSize = 1024 * 1024

// ErrTooLong flags input exceeding the maximum size.
// ErrNotInitialized is returned if a segmenter's Next-function is called without
// first setting an input source.
var (
	ErrTooLong        = errors.New("uniset segmenter: input too long for buffer")
	ErrNotInitialized = errors.New("uniset segmenter not initialized; must call Init(...) first")
)

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithCondition sets the span condition for runs of set elements. The default is
// uniset.Contained. uniset.NotContained is taken to mean uniset.Contained.
func WithCondition(cond uniset.SpanCondition) Option {
	return func(s *Segmenter) {
		if cond == uniset.NotContained {
			cond = uniset.Contained
		}
		s.cond = cond
	}
}

// WithStepBudget limits the steps of every single span; see uniset.WithStepBudget.
func WithStepBudget(n int) Option {
	return func(s *Segmenter) {
		s.opts = append(s.opts, uniset.WithStepBudget(n))
	}
}

// WithMaxSize sets the maximum size of input, in UTF-16 code units.
func WithMaxSize(n int) Option {
	return func(s *Segmenter) {
		s.maxSegmentLen = n
	}
}

// NewSegmenter creates a new Segmenter for a Unicode set.
//
// Before using newly created segmenters, clients will have to call Init(...)
// on them, i.e. initialize them for a rune reader.
func NewSegmenter(set *uniset.UnicodeSet, opts ...Option) *Segmenter {
	s := &Segmenter{
		set:           set,
		cond:          uniset.Contained,
		maxSegmentLen: MaxSegmentSize,
		boundaries:    arraylist.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init initializes a Segmenter with an io.RuneReader to read from.
// s is either a newly created segmenter to be initialized, or we may
// re-initialize a segmenter already in use.
func (s *Segmenter) Init(reader io.RuneReader) {
	text := uniset.Text{}
	var err error
	if reader != nil {
		for {
			var r rune
			if r, _, err = reader.ReadRune(); err != nil {
				break
			}
			if text = surrogate.AppendRune(text, r); len(text) > s.maxSegmentLen {
				err = ErrTooLong
				break
			}
		}
	}
	s.InitText(text)
	if err != nil && err != io.EOF {
		s.setErr(err)
	}
}

// InitText initializes a Segmenter with UTF-16 text, which may be ill-formed.
func (s *Segmenter) InitText(text uniset.Text) {
	if text == nil {
		text = uniset.Text{}
	}
	s.text = text
	s.pos, s.start, s.end = 0, 0, 0
	s.nextCond = s.cond
	s.contained = false
	s.boundaries.Clear()
	s.err = nil
	s.initialized = true
}

// Err returns the first error that was encountered by the Segmenter.
func (s *Segmenter) Err() error {
	return s.err
}

func (s *Segmenter) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Next advances the Segmenter to the next segment, which will then be available
// through the Units() or Text() method. It returns false when the segmenting
// stops, either by reaching the end of the input or an error.
// After Next() returns false, the Err() method will return any error
// that occurred during segmenting.
func (s *Segmenter) Next() bool {
	if !s.initialized {
		s.setErr(ErrNotInitialized)
	}
	if s.err != nil || s.pos >= len(s.text) {
		return false
	}
	end, err := s.set.Span(s.text, s.pos, s.nextCond, s.opts...)
	if err == nil && end == s.pos { // empty run, switch condition
		s.nextCond = s.toggle(s.nextCond)
		end, err = s.set.Span(s.text, s.pos, s.nextCond, s.opts...)
	}
	if err != nil {
		s.setErr(err)
		return false
	}
	if end == s.pos {
		s.setErr(fmt.Errorf("uniset segmenter: no progress at position %d", s.pos))
		return false
	}
	s.start, s.end = s.pos, end
	s.contained = s.nextCond != uniset.NotContained
	s.boundaries.Add(end)
	s.pos, s.nextCond = end, s.toggle(s.nextCond)
	CT().P("contained", s.contained).Debugf("Next() = [%d…%d]", s.start, s.end)
	return true
}

func (s *Segmenter) toggle(cond uniset.SpanCondition) uniset.SpanCondition {
	if cond == uniset.NotContained {
		return s.cond
	}
	return uniset.NotContained
}

// Units returns the code units of the most recent segment. The returned slice
// shares its memory with the input text.
func (s *Segmenter) Units() uniset.Text {
	return s.text[s.start:s.end]
}

// Text returns the most recent segment as a string.
func (s *Segmenter) Text() string {
	return s.Units().String()
}

// Range returns the start and end positions of the most recent segment, in code
// units.
func (s *Segmenter) Range() (int, int) {
	return s.start, s.end
}

// Contained is true if the most recent segment is a run of set elements.
func (s *Segmenter) Contained() bool {
	return s.contained
}

// Boundaries returns the end positions of all segments found so far.
func (s *Segmenter) Boundaries() []int {
	b := make([]int, 0, s.boundaries.Size())
	it := s.boundaries.Iterator()
	for it.Next() {
		b = append(b, it.Value().(int))
	}
	return b
}
