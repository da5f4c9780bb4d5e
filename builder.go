package uniset

import (
	"sort"
	"unicode"

	"github.com/npillmayer/uniset/surrogate"
)

// Builder is a mutable Unicode set. A Builder is owned by a single goroutine;
// to share its contents, clients call Freeze.
//
// All mutating methods return the builder, to allow for chaining:
//
//     set := uniset.NewBuilder().AddRange('a', 'c').AddString("ab").Freeze()
//
type Builder struct {
	ranges  []Range
	strings map[string][]uint16
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{strings: make(map[string][]uint16)}
}

// AddRune adds a single code point. Code points outside of 0…MaxRune are ignored.
func (b *Builder) AddRune(r rune) *Builder {
	return b.AddRange(r, r)
}

// AddRange adds the code points lo…hi, clipped to 0…MaxRune.
func (b *Builder) AddRange(lo, hi rune) *Builder {
	lo, hi = clip(lo, hi)
	if lo > hi {
		return b
	}
	ranges := make([]Range, 0, len(b.ranges)+1)
	i := 0
	for ; i < len(b.ranges) && b.ranges[i].Hi < lo-1; i++ {
		ranges = append(ranges, b.ranges[i])
	}
	for ; i < len(b.ranges) && b.ranges[i].Lo <= hi+1; i++ {
		if b.ranges[i].Lo < lo {
			lo = b.ranges[i].Lo
		}
		if b.ranges[i].Hi > hi {
			hi = b.ranges[i].Hi
		}
	}
	ranges = append(ranges, Range{lo, hi})
	b.ranges = append(ranges, b.ranges[i:]...)
	return b
}

// AddString adds a string member. Strings of a single code point are added as a
// code point, empty strings are ignored.
func (b *Builder) AddString(s string) *Builder {
	return b.AddUTF16(surrogate.Encode([]rune(s)))
}

// AddUTF16 adds a string member given as UTF-16 code units, which may contain
// unpaired surrogates. A single code point is added as a code point.
func (b *Builder) AddUTF16(units []uint16) *Builder {
	if len(units) == 0 {
		return b
	}
	if r := surrogate.CodePointAt(units, 0); surrogate.CharCount(r) == len(units) {
		return b.AddRune(r)
	}
	s := append([]uint16(nil), units...)
	b.strings[unitKey(s)] = s
	return b
}

// AddRangeTable adds all code points of a range table.
func (b *Builder) AddRangeTable(rt *unicode.RangeTable) *Builder {
	if rt == nil {
		return b
	}
	for _, r := range rt.R16 {
		b.addStrided(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range rt.R32 {
		b.addStrided(rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return b
}

func (b *Builder) addStrided(lo, hi, stride rune) {
	if stride <= 1 {
		b.AddRange(lo, hi)
		return
	}
	for r := lo; r <= hi; r += stride {
		b.AddRune(r)
	}
}

// AddAll adds all code points and strings of set.
func (b *Builder) AddAll(set *UnicodeSet) *Builder {
	if set == nil {
		return b
	}
	for _, r := range set.ranges {
		b.AddRange(r.Lo, r.Hi)
	}
	for _, s := range set.strings {
		b.strings[unitKey(s)] = s // members of frozen sets are never modified
	}
	return b
}

// RemoveRune removes a single code point.
func (b *Builder) RemoveRune(r rune) *Builder {
	return b.RemoveRange(r, r)
}

// RemoveRange removes the code points lo…hi.
func (b *Builder) RemoveRange(lo, hi rune) *Builder {
	lo, hi = clip(lo, hi)
	if lo > hi {
		return b
	}
	ranges := make([]Range, 0, len(b.ranges)+1)
	for _, r := range b.ranges {
		if r.Hi < lo || r.Lo > hi {
			ranges = append(ranges, r)
			continue
		}
		if r.Lo < lo {
			ranges = append(ranges, Range{r.Lo, lo - 1})
		}
		if r.Hi > hi {
			ranges = append(ranges, Range{hi + 1, r.Hi})
		}
	}
	b.ranges = ranges
	return b
}

// RemoveString removes a string member, or a code point for single code point strings.
func (b *Builder) RemoveString(s string) *Builder {
	units := surrogate.Encode([]rune(s))
	if len(units) == 0 {
		return b
	}
	if r := surrogate.CodePointAt(units, 0); surrogate.CharCount(r) == len(units) {
		return b.RemoveRune(r)
	}
	delete(b.strings, unitKey(units))
	return b
}

// RemoveAll removes all code points and strings of set.
func (b *Builder) RemoveAll(set *UnicodeSet) *Builder {
	if set == nil {
		return b
	}
	for _, r := range set.ranges {
		b.RemoveRange(r.Lo, r.Hi)
	}
	for _, s := range set.strings {
		delete(b.strings, unitKey(s))
	}
	return b
}

// RetainAll removes all code points and strings which are not members of set.
func (b *Builder) RetainAll(set *UnicodeSet) *Builder {
	if set == nil {
		return b.Clear()
	}
	var ranges []Range
	i, j := 0, 0
	for i < len(b.ranges) && j < len(set.ranges) {
		r, s := b.ranges[i], set.ranges[j]
		lo, hi := r.Lo, r.Hi
		if s.Lo > lo {
			lo = s.Lo
		}
		if s.Hi < hi {
			hi = s.Hi
		}
		if lo <= hi {
			ranges = append(ranges, Range{lo, hi})
		}
		if r.Hi < s.Hi {
			i++
		} else {
			j++
		}
	}
	b.ranges = ranges
	for key, s := range b.strings {
		if set.findString(s) < 0 {
			delete(b.strings, key)
		}
	}
	return b
}

// Complement inverts the code points of the builder. String members are kept.
func (b *Builder) Complement() *Builder {
	ranges := make([]Range, 0, len(b.ranges)+1)
	next := rune(0)
	for _, r := range b.ranges {
		if r.Lo > next {
			ranges = append(ranges, Range{next, r.Lo - 1})
		}
		next = r.Hi + 1
	}
	if next <= MaxRune {
		ranges = append(ranges, Range{next, MaxRune})
	}
	b.ranges = ranges
	return b
}

// Clear removes all code points and strings.
func (b *Builder) Clear() *Builder {
	b.ranges = nil
	b.strings = make(map[string][]uint16)
	return b
}

// ContainsRune checks for a code point in the builder.
func (b *Builder) ContainsRune(r rune) bool {
	return containsRune(b.ranges, r)
}

// Freeze creates an immutable set from the current contents of the builder.
// The builder may be used further on without affecting the frozen set.
func (b *Builder) Freeze() *UnicodeSet {
	set := &UnicodeSet{
		ranges:  append([]Range(nil), b.ranges...),
		strings: make([][]uint16, 0, len(b.strings)),
	}
	for _, s := range b.strings {
		set.strings = append(set.strings, s)
	}
	sort.Slice(set.strings, func(i, j int) bool {
		return compareUnits(set.strings[i], set.strings[j]) < 0
	})
	set.index = newStringIndex(set.strings)
	CT().P("ranges", len(set.ranges)).Debugf("froze set with %d strings", len(set.strings))
	return set
}

func clip(lo, hi rune) (rune, rune) {
	if lo < 0 {
		lo = 0
	}
	if hi > MaxRune {
		hi = MaxRune
	}
	return lo, hi
}

func unitKey(units []uint16) string {
	key := make([]byte, 2*len(units))
	for i, u := range units {
		key[2*i], key[2*i+1] = byte(u>>8), byte(u)
	}
	return string(key)
}
