/*
Package ucdparse provides a parser for files in the format of the
Unicode Character Database.

The format is defined in http://www.unicode.org/reports/tr44/: data lines consist of
fields separated by ';', followed by an optional comment starting with '#'.
Empty lines and comment lines are skipped. Besides UCD files proper, the module
uses the same format for its embedded property alias data and for span test data.
*/
package ucdparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Token subsumes the properties of a data line.
type Token struct {
	LineNo  int      // line number within the input source, starting at 1
	Fields  []string // fields of the line, trimmed
	Comment string   // rest-of-line comment of a data line
	skip    bool     // line does not contain data
}

// Field returns field #i (0…n-1) of a data line, or "" if there are fewer fields.
func (token *Token) Field(i int) string {
	if i >= 0 && i < len(token.Fields) {
		return token.Fields[i]
	}
	return ""
}

func (token *Token) String() string {
	return fmt.Sprintf("token[line %d %#v]", token.LineNo, token.Fields)
}

// We're building up a line scanner from a chain of step functions.
// A step will return the remaining line and the next step in the chain, or
// nil to stop/accept.
type scanStep func(line string, token *Token) (string, scanStep)

func scanComment(line string, token *Token) (string, scanStep) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		token.Comment = strings.TrimSpace(line[i+1:])
		line = line[:i]
	}
	return line, scanFields
}

func scanFields(line string, token *Token) (string, scanStep) {
	if strings.TrimSpace(line) == "" {
		token.skip = true
		return "", nil
	}
	for _, f := range strings.Split(line, ";") {
		token.Fields = append(token.Fields, strings.TrimSpace(f))
	}
	return "", nil
}

// Parser iterates over the data lines of an input source.
//
//    p := ucdparse.NewParser(r)
//    for p.Next() {
//        from, to := p.Range(0)
//        name := p.String(1)
//        …
//    }
//    err := p.Err()
//
type Parser struct {
	scanner *bufio.Scanner
	token   *Token
	lineNo  int
	err     error
}

// ErrNoInput is returned if a parser is created without an input source.
var ErrNoInput = errors.New("ucdparse: no input present")

// NewParser creates a parser for an input reader.
func NewParser(r io.Reader) *Parser {
	p := &Parser{}
	if r == nil {
		p.err = ErrNoInput
		return p
	}
	p.scanner = bufio.NewScanner(r)
	return p
}

// Next advances to the next data line. It returns false at the end of input or
// after an error has occurred.
func (p *Parser) Next() bool {
	if p.err != nil {
		return false
	}
	for p.scanner.Scan() {
		p.lineNo++
		token := &Token{LineNo: p.lineNo}
		line, step := p.scanner.Text(), scanStep(scanComment)
		for step != nil {
			line, step = step(line, token)
		}
		if !token.skip {
			p.token = token
			return true
		}
	}
	p.token = nil
	p.err = p.scanner.Err()
	return false
}

// Token returns the current data line.
func (p *Parser) Token() *Token {
	return p.token
}

// String returns field #i of the current data line.
func (p *Parser) String(i int) string {
	if p.token == nil {
		return ""
	}
	return p.token.Field(i)
}

// Range interprets field #i of the current data line as a code point or a range
// of code points, written as "0041" or "0041..005A". A malformed field stops the
// parser and is reported by Err.
func (p *Parser) Range(i int) (from, to rune) {
	if p.token == nil {
		return 0, 0
	}
	field := p.token.Field(i)
	var err error
	if from, to, err = ParseRange(field); err != nil {
		p.err = fmt.Errorf("ucdparse: line %d: %w", p.token.LineNo, err)
	}
	return
}

// Comment returns the comment of the current data line.
func (p *Parser) Comment() string {
	if p.token == nil {
		return ""
	}
	return p.token.Comment
}

// Err returns the first error encountered, if any.
func (p *Parser) Err() error {
	return p.err
}

// Parse iterates over each data line of r and calls f on it.
func Parse(r io.Reader, f func(token *Token)) error {
	p := NewParser(r)
	for p.Next() {
		f(p.Token())
	}
	return p.Err()
}

// ParseRange parses a code point range in UCD notation.
func ParseRange(field string) (from, to rune, err error) {
	lo, hi := field, field
	if i := strings.Index(field, ".."); i >= 0 {
		lo, hi = field[:i], field[i+2:]
	}
	var n uint64
	if n, err = strconv.ParseUint(lo, 16, 32); err != nil {
		return 0, 0, fmt.Errorf("hex decoding error: %w", err)
	}
	from = rune(n)
	if n, err = strconv.ParseUint(hi, 16, 32); err != nil {
		return 0, 0, fmt.Errorf("hex decoding error: %w", err)
	}
	to = rune(n)
	if to < from {
		return 0, 0, fmt.Errorf("invalid range %s", field)
	}
	return from, to, nil
}
