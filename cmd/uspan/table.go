package main

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/uniset/internal/ucdparse"
	"github.com/npillmayer/uniset/pattern"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	name *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "table <set pattern>",
		Short:   "Print the code points of a set as Go source for a unicode.RangeTable",
		Example: `  uspan table --name Vowels '[aeiouAEIOU]'`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTable,
	}
	tableFlags.name = cmd.Flags().StringP("name", "n", "Set", "name of the table variable (prefixed by '_')")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	set, err := pattern.Parse(args[0])
	if err != nil {
		return fmt.Errorf("cannot parse the set pattern: %w", err)
	}
	if set.HasStrings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d strings of the set are left out\n", len(set.Strings()))
	}
	collector := &ucdparse.RangeTableCollector{Cat: *tableFlags.name}
	for _, r := range set.Ranges() {
		collector.Append(r.Lo, r.Hi)
	}
	var buf bytes.Buffer
	collector.Output(&buf)
	_, err = buf.WriteTo(cmd.OutOrStdout())
	return err
}
