// Package testdata holds test vectors shared by the packages of this module.
package testdata

import (
	"bytes"
	_ "embed"
	"io"
)

//go:embed SpanTest.txt
var spanTests []byte

// SpanTestReader returns a reader for the span test vectors. The file is in the
// format of the Unicode Character Database; see its header for the fields.
func SpanTestReader() io.Reader {
	return bytes.NewReader(spanTests)
}
