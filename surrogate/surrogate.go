/*
Package surrogate guards UTF-16 match boundaries against split surrogate pairs.

Text handled by package uniset is a sequence of UTF-16 code units, which is not
guaranteed to be well-formed. Unpaired surrogates are treated as code points of
their own. A surrogate pair, however, must never be torn apart by a match: a
match may neither start on the trail unit nor end on the lead unit of a pair.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package surrogate

import "unicode/utf16"

const (
	leadMin  = 0xd800
	trailMin = 0xdc00
	maxBMP   = 0xffff
)

// IsLead is true for a lead (high) surrogate code unit.
func IsLead(u uint16) bool {
	return u&0xfc00 == leadMin
}

// IsTrail is true for a trail (low) surrogate code unit.
func IsTrail(u uint16) bool {
	return u&0xfc00 == trailMin
}

// IsSurrogate is true for any surrogate code point, lead or trail.
func IsSurrogate(r rune) bool {
	return uint32(r)&0xfffff800 == leadMin
}

// CharCount returns the number of UTF-16 code units needed to encode r.
func CharCount(r rune) int {
	if r > maxBMP {
		return 2
	}
	return 1
}

// CodePointAt decodes the code point starting at text[i]. A lead surrogate
// followed by a trail surrogate is combined; any other surrogate is returned
// as is. i must be a valid index into text.
func CodePointAt(text []uint16, i int) rune {
	u := text[i]
	if IsLead(u) && i+1 < len(text) && IsTrail(text[i+1]) {
		return utf16.DecodeRune(rune(u), rune(text[i+1]))
	}
	return rune(u)
}

// CodePointBefore decodes the code point ending right before text[i].
// 0 < i ≤ len(text) must hold.
func CodePointBefore(text []uint16, i int) rune {
	u := text[i-1]
	if IsTrail(u) && i-2 >= 0 && IsLead(text[i-2]) {
		return utf16.DecodeRune(rune(text[i-2]), rune(u))
	}
	return rune(u)
}

// IsValidBoundary reports whether pos is an index into text (0 ≤ pos ≤ len(text))
// which does not fall between the two halves of a surrogate pair.
func IsValidBoundary(text []uint16, pos int) bool {
	if pos < 0 || pos > len(text) {
		return false
	}
	return !splitsPair(text, pos)
}

// Matches reports whether candidate occurs literally in text at start, ending at or
// before limit, without splitting a surrogate pair at either end of the match.
// The check at the end of the match only looks at units before limit.
//
// Unpaired surrogates may match, as long as no pairing is split.
func Matches(text []uint16, start, limit int, candidate []uint16) bool {
	n := len(candidate)
	if n == 0 || start < 0 || limit > len(text) || start+n > limit {
		return false
	}
	for i, u := range candidate {
		if text[start+i] != u {
			return false
		}
	}
	if start > 0 && IsLead(text[start-1]) && IsTrail(text[start]) {
		return false
	}
	end := start + n
	if end < limit && IsLead(text[end-1]) && IsTrail(text[end]) {
		return false
	}
	return true
}

func splitsPair(text []uint16, pos int) bool {
	return pos > 0 && pos < len(text) && IsLead(text[pos-1]) && IsTrail(text[pos])
}

// AppendRune appends the UTF-16 encoding of r to units. Different from
// utf16.Encode, surrogate code points are appended as lone units instead of
// being replaced by U+FFFD.
func AppendRune(units []uint16, r rune) []uint16 {
	if r > maxBMP {
		r1, r2 := utf16.EncodeRune(r)
		return append(units, uint16(r1), uint16(r2))
	}
	return append(units, uint16(r))
}

// Encode converts a sequence of code points to UTF-16, keeping surrogate code points.
func Encode(runes []rune) []uint16 {
	units := make([]uint16, 0, len(runes))
	for _, r := range runes {
		units = AppendRune(units, r)
	}
	return units
}

// Decode converts UTF-16 code units to code points, keeping unpaired surrogates.
func Decode(units []uint16) []rune {
	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); {
		r := CodePointAt(units, i)
		runes = append(runes, r)
		i += CharCount(r)
	}
	return runes
}
