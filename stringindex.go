package uniset

import (
	"sort"

	"github.com/npillmayer/uniset/surrogate"
)

// stringIndex holds the string members of a set, bucketed by their first code
// unit (for forward matching) and by their last code unit (for backward matching).
// Each bucket lists members by decreasing length. The index never yields results
// different from a linear scan over all members.
type stringIndex struct {
	strings   [][]uint16
	byFirst   map[uint16][]int
	byLast    map[uint16][]int
	maxLength int
}

func newStringIndex(strs [][]uint16) *stringIndex {
	ix := &stringIndex{
		strings: strs,
		byFirst: make(map[uint16][]int),
		byLast:  make(map[uint16][]int),
	}
	for i, s := range strs {
		ix.byFirst[s[0]] = append(ix.byFirst[s[0]], i)
		ix.byLast[s[len(s)-1]] = append(ix.byLast[s[len(s)-1]], i)
		if len(s) > ix.maxLength {
			ix.maxLength = len(s)
		}
	}
	for _, bucket := range []map[uint16][]int{ix.byFirst, ix.byLast} {
		for _, members := range bucket {
			sort.SliceStable(members, func(i, j int) bool {
				return len(strs[members[i]]) > len(strs[members[j]])
			})
		}
	}
	return ix
}

func (ix *stringIndex) empty() bool {
	return ix == nil || len(ix.strings) == 0
}

// forEachAt calls fn with the length of every member matching text at pos,
// longest first. Iteration stops if fn returns false.
func (ix *stringIndex) forEachAt(text []uint16, pos int, fn func(n int) bool) {
	if ix.empty() || pos >= len(text) {
		return
	}
	for _, i := range ix.byFirst[text[pos]] {
		s := ix.strings[i]
		if surrogate.Matches(text, pos, len(text), s) && !fn(len(s)) {
			return
		}
	}
}

// forEachEndingAt calls fn with the length of every member matching text right
// before limit, longest first. Iteration stops if fn returns false.
func (ix *stringIndex) forEachEndingAt(text []uint16, limit int, fn func(n int) bool) {
	if ix.empty() || limit <= 0 {
		return
	}
	for _, i := range ix.byLast[text[limit-1]] {
		s := ix.strings[i]
		if limit-len(s) >= 0 && surrogate.Matches(text, limit-len(s), len(text), s) && !fn(len(s)) {
			return
		}
	}
}

// longestAt returns the length of the longest member matching at pos, or 0.
func (ix *stringIndex) longestAt(text []uint16, pos int) (longest int) {
	ix.forEachAt(text, pos, func(n int) bool {
		longest = n
		return false
	})
	return
}

// longestEndingAt returns the length of the longest member ending at limit, or 0.
func (ix *stringIndex) longestEndingAt(text []uint16, limit int) (longest int) {
	ix.forEachEndingAt(text, limit, func(n int) bool {
		longest = n
		return false
	})
	return
}
