package uniset

import (
	"fmt"
	"unicode/utf16"
)

// Text is a sequence of UTF-16 code units. It is not required to be well-formed;
// unpaired surrogates are treated as code points of their own.
type Text []uint16

// FromString converts a Go string to UTF-16 text. The result is never nil, even
// for an empty string. Invalid UTF-8 bytes are converted to U+FFFD.
func FromString(s string) Text {
	t := utf16.Encode([]rune(s))
	if t == nil {
		t = Text{}
	}
	return t
}

// String converts text to a Go string. Unpaired surrogates are converted to U+FFFD.
func (t Text) String() string {
	return string(utf16.Decode(t))
}

// utf8View holds the UTF-16 form of a Go string, together with a mapping between
// byte offsets of the string and unit offsets of the text.
type utf8View struct {
	text  Text
	bytes []int // byte offset for each unit offset 0…len(text); -1 within a pair
}

func newUTF8View(s string) *utf8View {
	v := &utf8View{
		text:  make(Text, 0, len(s)),
		bytes: make([]int, 0, len(s)+1),
	}
	for i, r := range s {
		v.bytes = append(v.bytes, i)
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			v.text = append(v.text, uint16(r1), uint16(r2))
			v.bytes = append(v.bytes, -1)
		} else {
			v.text = append(v.text, uint16(r))
		}
	}
	v.bytes = append(v.bytes, len(s))
	return v
}

// unitOffset maps a byte offset to a unit offset. The byte offset has to be at the
// start of a rune as decoded by range over s, or at the end of the string. An
// invalid byte decodes to U+FFFD of its own, so its offset is a rune start.
func (v *utf8View) unitOffset(s string, b int) (int, error) {
	if b < 0 || b > len(s) {
		return 0, fmt.Errorf("%w: byte offset %d", ErrIndexOutOfRange, b)
	}
	lo, hi := 0, len(v.bytes)-1
	for lo <= hi { // bytes[] is ascending, apart from -1 markers
		m := (lo + hi) / 2
		mb := v.bytes[m]
		if mb < 0 {
			mb = v.bytes[m-1]
		}
		switch {
		case mb < b:
			lo = m + 1
		case mb > b:
			hi = m - 1
		default:
			if v.bytes[m] < 0 {
				m--
			}
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: byte offset %d", ErrIndexOutOfRange, b)
}

// byteOffset maps a unit offset back to a byte offset. Spans over text created
// from valid UTF-8 never end within a surrogate pair.
func (v *utf8View) byteOffset(u int) int {
	for u > 0 && v.bytes[u] < 0 {
		u--
	}
	return v.bytes[u]
}
