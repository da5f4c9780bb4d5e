package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/uniset"
	"github.com/npillmayer/uniset/pattern"
	"github.com/npillmayer/uniset/segment"
	"github.com/spf13/cobra"
)

var boundariesFlags = struct {
	cond     *string
	back     *bool
	segments *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "boundaries <set pattern> [text]",
		Short: "Split text into runs of set elements and runs free of them",
		Example: `  uspan boundaries '[a-z]' 'Hello World!'
  uspan boundaries --segments -f input.txt '[\p{L}]'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runBoundaries,
	}
	boundariesFlags.cond = cmd.Flags().StringP("cond", "c", "contained", "span condition for runs of set elements [contained|simple]")
	boundariesFlags.back = cmd.Flags().BoolP("back", "b", false, "collect boundaries from the end of the text")
	boundariesFlags.segments = cmd.Flags().Bool("segments", false, "print the text of every run")
	rootCmd.AddCommand(cmd)
}

func runBoundaries(cmd *cobra.Command, args []string) error {
	set, err := pattern.Parse(args[0])
	if err != nil {
		return fmt.Errorf("cannot parse the set pattern: %w", err)
	}
	cond, err := uniset.ParseCondition(*boundariesFlags.cond)
	if err != nil {
		return err
	}
	text, err := readText(cmd, args[1:])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if *boundariesFlags.segments {
		seg := segment.NewSegmenter(set, segment.WithCondition(cond))
		seg.InitText(text)
		for seg.Next() {
			start, end := seg.Range()
			mark := "-"
			if seg.Contained() {
				mark = "+"
			}
			fmt.Fprintf(out, "%d\t%d\t%s\t%q\n", start, end, mark, seg.Text())
		}
		return seg.Err()
	}
	var b []int
	if *boundariesFlags.back {
		b, err = set.BoundariesBack(text, cond)
	} else {
		b, err = set.Boundaries(text, cond)
	}
	if err != nil {
		return err
	}
	positions := make([]string, len(b))
	for i, pos := range b {
		positions[i] = strconv.Itoa(pos)
	}
	fmt.Fprintln(out, strings.Join(positions, " "))
	return nil
}
