package ucdparse

import (
	"bytes"
	"fmt"
	"unicode"
)

// RangeTableCollector is a type to collect character ranges, either during
// iteration of UCD files or from a set of code points, and later output them as a
// unicode.RangeTable or as Go source code.
//
// Ranges have to be appended in ascending order.
type RangeTableCollector struct {
	Cat    string // character category, used as a name for Go output
	ranges [][2]rune
	lo, hi rune // low and high bound of current range
	open   bool // is there a current range?
}

// Append a range of runes to a range table collector. A single
// character is denoted by l == r.
func (rt *RangeTableCollector) Append(l, r rune) {
	if rt.open && l <= rt.hi+1 {
		if r > rt.hi {
			rt.hi = r // range extends previous range
		}
		return
	}
	rt.flush()
	rt.lo, rt.hi, rt.open = l, r, true
}

func (rt *RangeTableCollector) flush() {
	if rt.open {
		rt.ranges = append(rt.ranges, [2]rune{rt.lo, rt.hi})
		rt.open = false
	}
}

// Len returns the number of ranges collected so far.
func (rt *RangeTableCollector) Len() int {
	if rt.open {
		return len(rt.ranges) + 1
	}
	return len(rt.ranges)
}

// Table creates a range table from the collected ranges. Ranges crossing the
// border of the BMP are split into a 16-bit and a 32-bit part.
func (rt *RangeTableCollector) Table() *unicode.RangeTable {
	rt.flush()
	table := &unicode.RangeTable{}
	for _, r := range rt.ranges {
		lo, hi := r[0], r[1]
		if lo <= 0xffff {
			h := hi
			if h > 0xffff {
				h = 0xffff
			}
			table.R16 = append(table.R16, unicode.Range16{Lo: uint16(lo), Hi: uint16(h), Stride: 1})
			if h <= unicode.MaxLatin1 {
				table.LatinOffset++
			}
			lo = 0x10000
		}
		if hi >= lo {
			table.R32 = append(table.R32, unicode.Range32{Lo: uint32(lo), Hi: uint32(hi), Stride: 1})
		}
	}
	return table
}

// Output creates Go source code for a range table.
func (rt *RangeTableCollector) Output(buf *bytes.Buffer) {
	table := rt.Table()
	fmt.Fprintf(buf, "var _%s = &unicode.RangeTable{ ", rt.Cat)
	fmt.Fprintf(buf, "// %d entries", len(table.R16)+len(table.R32))
	fmt.Fprintf(buf, "\n\tR16: []unicode.Range16{\n")
	for _, r := range table.R16 {
		fmt.Fprintf(buf, "\t\t{%#04x, %#04x, 1},\n", r.Lo, r.Hi)
	}
	fmt.Fprintf(buf, "\t},\n")
	if len(table.R32) > 0 {
		fmt.Fprintf(buf, "\tR32: []unicode.Range32{\n")
		for _, r := range table.R32 {
			fmt.Fprintf(buf, "\t\t{%#04x, %#04x, 1},\n", r.Lo, r.Hi)
		}
		fmt.Fprintf(buf, "\t},\n")
	}
	if table.LatinOffset > 0 {
		fmt.Fprintf(buf, "\tLatinOffset: %d,\n", table.LatinOffset)
	}
	fmt.Fprintf(buf, "}\n\n")
}
