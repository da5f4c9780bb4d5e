/*
Package uniset implements Unicode sets of code points and multi-character strings,
together with span matching over UTF-16 text.

Description

A UnicodeSet is a set of code points, conceptually a sorted list of disjoint
ranges, plus zero or more strings. Strings are sequences of two or more code points
which are treated as atomic elements of the set. Sets like these are common
in collation, transliteration and text segmentation, where "ch" or "\r\n" must be
handled as a single unit.

Spanning a text means finding the boundary where membership in the set changes.
For sets of code points only this is a simple scan. With strings present, matches may
overlap each other as well as the code points of the set, and a span will have to
decide between alternatives. Three span conditions are supported:

   NotContained   advance while there is no set element at the current position
   Contained      the longest prefix which is a concatenation of set elements
   Simple         at each position consume the longest single element matching there

For sets of code points only, Contained and Simple are identical. Spans may run
forwards (Span) or backwards (SpanBack).

Text is UTF-16 and may be ill-formed. Unpaired surrogates are treated as code points
of their own, but a set string never matches in a way that would split a surrogate
pair (see package surrogate). For Go strings there are adapters taking UTF-8 byte
offsets.

Sets are built with a Builder, which is mutable and owned by a single goroutine. A
call to Freeze creates an immutable UnicodeSet, which may be shared between
goroutines without further synchronization. There is no way to thaw a frozen set;
clients call Clone to get a new Builder instead.

	b := uniset.NewBuilder()
	b.AddRange('a', 'c')
	b.AddString("ab")
	set := b.Freeze()
	end, err := set.Span(uniset.FromString("abcx"), 0, uniset.Contained)

Patterns like "[a-c{ab}]" may be parsed with package pattern; Unicode properties and
scripts are available from package props.

___________________________________________________________________________

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
*/
package uniset

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// MaxRune is the largest code point a set may contain.
const MaxRune = '\U0010FFFF'
