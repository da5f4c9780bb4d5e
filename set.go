package uniset

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/uniset/internal/ucdparse"
	"github.com/npillmayer/uniset/surrogate"
)

// Range is an inclusive range of code points.
type Range struct {
	Lo, Hi rune
}

// UnicodeSet is an immutable set of code points and strings. It is created
// by freezing a Builder and may be shared between goroutines.
//
// The zero value is not usable; a nil *UnicodeSet is reported as an invalid
// argument by span operations.
type UnicodeSet struct {
	ranges  []Range    // sorted, disjoint and non-adjacent
	strings [][]uint16 // sorted by code units, distinct, each more than one code point
	index   *stringIndex
}

// ContainsRune is the code point membership test of a set.
func (set *UnicodeSet) ContainsRune(r rune) bool {
	return containsRune(set.ranges, r)
}

func containsRune(ranges []Range, r rune) bool {
	lo, hi := 0, len(ranges)
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		switch {
		case r < ranges[m].Lo:
			hi = m
		case r > ranges[m].Hi:
			lo = m + 1
		default:
			return true
		}
	}
	return false
}

// ContainsRange is true if every code point of lo…hi is a member of set.
func (set *UnicodeSet) ContainsRange(lo, hi rune) bool {
	if lo > hi {
		return false
	}
	i := sort.Search(len(set.ranges), func(i int) bool { return set.ranges[i].Hi >= lo })
	return i < len(set.ranges) && set.ranges[i].Lo <= lo && set.ranges[i].Hi >= hi
}

// ContainsString checks for a string member. A string consisting of a single code
// point checks for this code point.
func (set *UnicodeSet) ContainsString(s string) bool {
	runes := []rune(s)
	switch len(runes) {
	case 0:
		return false
	case 1:
		return set.ContainsRune(runes[0])
	}
	return set.findString(surrogate.Encode(runes)) >= 0
}

func (set *UnicodeSet) findString(units []uint16) int {
	i := sort.Search(len(set.strings), func(i int) bool {
		return compareUnits(set.strings[i], units) >= 0
	})
	if i < len(set.strings) && compareUnits(set.strings[i], units) == 0 {
		return i
	}
	return -1
}

// Len returns the number of code points in set, not counting strings.
func (set *UnicodeSet) Len() int {
	n := 0
	for _, r := range set.ranges {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

// IsEmpty is true for a set without code points and without strings.
func (set *UnicodeSet) IsEmpty() bool {
	return len(set.ranges) == 0 && len(set.strings) == 0
}

// HasStrings is true if set has at least one string member.
func (set *UnicodeSet) HasStrings() bool {
	return len(set.strings) > 0
}

// Strings returns the string members of set, in code unit order.
// Unpaired surrogates within strings are converted to U+FFFD.
func (set *UnicodeSet) Strings() []string {
	strs := make([]string, len(set.strings))
	for i, s := range set.strings {
		strs[i] = Text(s).String()
	}
	return strs
}

// StringUnits returns copies of the string members of set in their UTF-16 form.
func (set *UnicodeSet) StringUnits() [][]uint16 {
	strs := make([][]uint16, len(set.strings))
	for i, s := range set.strings {
		strs[i] = append([]uint16(nil), s...)
	}
	return strs
}

// Ranges returns a copy of the code point ranges of set.
func (set *UnicodeSet) Ranges() []Range {
	return append([]Range(nil), set.ranges...)
}

// RangeTable returns the code points of set as a range table, suitable for
// package unicode. String members are not represented.
func (set *UnicodeSet) RangeTable() *unicode.RangeTable {
	collector := &ucdparse.RangeTableCollector{}
	for _, r := range set.ranges {
		collector.Append(r.Lo, r.Hi)
	}
	return collector.Table()
}

// Equal is true if set and other have the same code points and strings.
func (set *UnicodeSet) Equal(other *UnicodeSet) bool {
	if set == nil || other == nil {
		return set == other
	}
	if len(set.ranges) != len(other.ranges) || len(set.strings) != len(other.strings) {
		return false
	}
	for i, r := range set.ranges {
		if other.ranges[i] != r {
			return false
		}
	}
	for i, s := range set.strings {
		if compareUnits(s, other.strings[i]) != 0 {
			return false
		}
	}
	return true
}

// Clone returns a new Builder, initialized with the elements of set.
func (set *UnicodeSet) Clone() *Builder {
	b := NewBuilder()
	b.AddAll(set)
	return b
}

// Complement returns a new set with the code points of set inverted.
// String members are not altered by complementing.
func (set *UnicodeSet) Complement() *UnicodeSet {
	return set.Clone().Complement().Freeze()
}

// String returns set in pattern notation, e.g. "[a-c{ab}]".
func (set *UnicodeSet) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, r := range set.ranges {
		writePatternRune(&sb, r.Lo)
		if r.Hi > r.Lo {
			if r.Hi > r.Lo+1 {
				sb.WriteByte('-')
			}
			writePatternRune(&sb, r.Hi)
		}
	}
	for _, s := range set.strings {
		sb.WriteByte('{')
		for _, r := range surrogate.Decode(s) {
			writePatternRune(&sb, r)
		}
		sb.WriteByte('}')
	}
	sb.WriteByte(']')
	return sb.String()
}

func writePatternRune(sb *strings.Builder, r rune) {
	switch {
	case strings.ContainsRune(`[]{}-^\&:$`, r):
		sb.WriteByte('\\')
		sb.WriteRune(r)
	case surrogate.IsSurrogate(r) || !unicode.IsPrint(r) || r == ' ':
		if r > 0xffff {
			sb.WriteString(`\x{`)
			sb.WriteString(strconv.FormatInt(int64(r), 16))
			sb.WriteByte('}')
			return
		}
		s := strconv.FormatInt(int64(r), 16)
		sb.WriteString(`\u`)
		sb.WriteString(strings.Repeat("0", 4-len(s)))
		sb.WriteString(s)
	default:
		sb.WriteRune(r)
	}
}

func compareUnits(a, b []uint16) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}
