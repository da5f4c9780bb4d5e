package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uniset"
)

// Token categories of set patterns.
const (
	tokLBrack = iota + 1 // '['
	tokRBrack            // ']'
	tokCaret             // '^' right after '['
	tokDash              // '-' between two characters
	tokChar              // a literal or escaped character
	tokString            // a string in braces
	tokProp              // a property, [:Name:] or \p{Name}
)

var tokenNames = map[int]string{
	tokLBrack: "[",
	tokRBrack: "]",
	tokCaret:  "^",
	tokDash:   "-",
	tokChar:   "CHAR",
	tokString: "STRING",
	tokProp:   "PROP",
}

// token is a lexeme of a set pattern.
type token struct {
	kind    int
	pos     int    // byte position in pattern
	r       rune   // tokChar
	str     []rune // tokString
	prop    string // tokProp
	negated bool   // tokProp
}

func (t token) String() string {
	switch t.kind {
	case tokChar:
		return fmt.Sprintf("CHAR(%#U)", t.r)
	case tokString:
		return fmt.Sprintf("STRING(%q)", string(t.str))
	case tokProp:
		return fmt.Sprintf("PROP(%s, neg=%v)", t.prop, t.negated)
	}
	return tokenNames[t.kind]
}

// lexer splits a pattern into tokens. It is a small state machine; the only
// state is whether the previous token opened a set, which makes '^' a negation
// and '-' a literal.
type lexer struct {
	input     string
	pos       int
	tokens    []token
	afterOpen bool
}

func lex(input string) ([]token, error) {
	l := &lexer{input: input}
	for {
		l.skipSpace()
		if l.pos >= len(l.input) {
			return l.tokens, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *lexer) read() rune {
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	return r
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) && unicode.Is(unicode.Pattern_White_Space, l.peek()) {
		l.read()
	}
}

func (l *lexer) emit(t token) {
	l.tokens = append(l.tokens, t)
	l.afterOpen = t.kind == tokLBrack || t.kind == tokCaret
}

func (l *lexer) errorf(pos int, format string, args ...interface{}) error {
	return fmt.Errorf("%w at position %d: %s", ErrSyntax, pos, fmt.Sprintf(format, args...))
}

func (l *lexer) next() error {
	start := l.pos
	r := l.read()
	switch r {
	case '[':
		if l.peek() == ':' {
			return l.posixProperty(start)
		}
		l.emit(token{kind: tokLBrack, pos: start})
		l.skipSpace()
		if l.peek() == '^' {
			l.emit(token{kind: tokCaret, pos: l.pos})
			l.read()
		}
	case ']':
		l.emit(token{kind: tokRBrack, pos: start})
	case '-':
		l.skipSpace()
		if l.afterOpen || l.peek() == ']' {
			l.emit(token{kind: tokChar, pos: start, r: '-'})
		} else {
			l.emit(token{kind: tokDash, pos: start})
		}
	case '{':
		return l.str(start)
	case '}':
		return l.errorf(start, "unbalanced '}'")
	case '\\':
		if c := l.peek(); c == 'p' || c == 'P' {
			l.read()
			return l.property(start, c == 'P')
		}
		c, err := l.escape(start)
		if err != nil {
			return err
		}
		l.emit(token{kind: tokChar, pos: start, r: c})
	default:
		l.emit(token{kind: tokChar, pos: start, r: r})
	}
	return nil
}

// posixProperty reads "[:Name:]" or "[:^Name:]"; the '[' has been read.
func (l *lexer) posixProperty(start int) error {
	l.read() // ':'
	end := indexFrom(l.input, l.pos, ":]")
	if end < 0 {
		return l.errorf(start, "unterminated property")
	}
	name, negated := l.input[l.pos:end], false
	if len(name) > 0 && name[0] == '^' {
		name, negated = name[1:], true
	}
	l.pos = end + 2
	l.emit(token{kind: tokProp, pos: start, prop: name, negated: negated})
	return nil
}

// property reads "{Name}" or a single letter following "\p" or "\P".
func (l *lexer) property(start int, negated bool) error {
	if l.pos >= len(l.input) {
		return l.errorf(start, "missing property name")
	}
	if l.peek() != '{' {
		name := string(l.read())
		l.emit(token{kind: tokProp, pos: start, prop: name, negated: negated})
		return nil
	}
	end := indexFrom(l.input, l.pos, "}")
	if end < 0 {
		return l.errorf(start, "unterminated property")
	}
	name := l.input[l.pos+1 : end]
	l.pos = end + 1
	l.emit(token{kind: tokProp, pos: start, prop: name, negated: negated})
	return nil
}

// str reads a string up to the closing brace; the '{' has been read.
func (l *lexer) str(start int) error {
	var runes []rune
	for {
		if l.pos >= len(l.input) {
			return l.errorf(start, "unterminated string")
		}
		pos := l.pos
		r := l.read()
		switch r {
		case '}':
			l.emit(token{kind: tokString, pos: start, str: runes})
			return nil
		case '\\':
			c, err := l.escape(pos)
			if err != nil {
				return err
			}
			runes = append(runes, c)
		default:
			runes = append(runes, r)
		}
	}
}

// escape reads the character after a backslash. Escapes are \uXXXX, \UXXXXXXXX,
// \x{X…}, \xXX, \n, \r and \t. Every other character escapes itself.
func (l *lexer) escape(start int) (rune, error) {
	if l.pos >= len(l.input) {
		return 0, l.errorf(start, "trailing backslash")
	}
	switch c := l.read(); c {
	case 'u':
		return l.hex(start, 4)
	case 'U':
		return l.hex(start, 8)
	case 'x':
		if l.peek() != '{' {
			return l.hex(start, 2)
		}
		end := indexFrom(l.input, l.pos, "}")
		if end < 0 || end == l.pos+1 {
			return 0, l.errorf(start, "malformed \\x{…} escape")
		}
		digits := l.input[l.pos+1 : end]
		l.pos = end + 1
		return parseHex(l, start, digits)
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	default:
		return c, nil
	}
}

func (l *lexer) hex(start int, n int) (rune, error) {
	if l.pos+n > len(l.input) {
		return 0, l.errorf(start, "malformed escape")
	}
	digits := l.input[l.pos : l.pos+n]
	l.pos += n
	return parseHex(l, start, digits)
}

func parseHex(l *lexer, start int, digits string) (rune, error) {
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || v > uniset.MaxRune {
		return 0, l.errorf(start, "invalid code point %q", digits)
	}
	return rune(v), nil
}

func indexFrom(s string, from int, sub string) int {
	if i := strings.Index(s[from:], sub); i >= 0 {
		return from + i
	}
	return -1
}
