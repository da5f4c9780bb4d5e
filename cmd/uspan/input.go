package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/npillmayer/uniset"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/unicode"
)

// readText gets the text to work on. It is taken from the --file flag if present,
// from the command line if an argument is left, or from stdin otherwise.
func readText(cmd *cobra.Command, args []string) (uniset.Text, error) {
	if *rootFlags.file != "" {
		f, err := os.Open(*rootFlags.file)
		if err != nil {
			return nil, fmt.Errorf("cannot open the text file %s: %w", *rootFlags.file, err)
		}
		defer f.Close()
		return decodeText(f, *rootFlags.utf16)
	}
	if len(args) > 0 {
		return uniset.FromString(args[0]), nil
	}
	return decodeText(cmd.InOrStdin(), *rootFlags.utf16)
}

// decodeText reads all of r. UTF-16 input honours a byte order mark and
// falls back to little endian.
func decodeText(r io.Reader, utf16 bool) (uniset.Text, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read text: %w", err)
	}
	if utf16 {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		data, err = decoder.Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("cannot decode UTF-16 text: %w", err)
		}
	}
	return uniset.FromString(string(data)), nil
}
