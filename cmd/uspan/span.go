package main

import (
	"fmt"

	"github.com/npillmayer/uniset"
	"github.com/npillmayer/uniset/pattern"
	"github.com/spf13/cobra"
)

var spanFlags = struct {
	cond   *string
	start  *int
	back   *bool
	count  *bool
	budget *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "span <set pattern> [text]",
		Short: "Find the end of a span of text",
		Example: `  uspan span '[a-c{ab}]' abcx
  uspan span --back --count '[{ab}{bc}]' xabbc`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSpan,
	}
	spanFlags.cond = cmd.Flags().StringP("cond", "c", "contained", "span condition [contained|simple|not-contained]")
	spanFlags.start = cmd.Flags().IntP("start", "s", -1, "start position, or limit position for --back (default start or end of text)")
	spanFlags.back = cmd.Flags().BoolP("back", "b", false, "span backwards")
	spanFlags.count = cmd.Flags().Bool("count", false, "also print the number of set elements spanned")
	spanFlags.budget = cmd.Flags().Int("budget", 0, "maximum number of span steps (0 for unlimited)")
	rootCmd.AddCommand(cmd)
}

func runSpan(cmd *cobra.Command, args []string) error {
	set, err := pattern.Parse(args[0])
	if err != nil {
		return fmt.Errorf("cannot parse the set pattern: %w", err)
	}
	cond, err := uniset.ParseCondition(*spanFlags.cond)
	if err != nil {
		return err
	}
	text, err := readText(cmd, args[1:])
	if err != nil {
		return err
	}
	opts := []uniset.SpanOption{uniset.WithStepBudget(*spanFlags.budget)}
	pos := *spanFlags.start
	var end, count int
	if *spanFlags.back {
		if pos < 0 {
			pos = len(text)
		}
		end, count, err = set.SpanBackAndCount(text, pos, cond, opts...)
	} else {
		if pos < 0 {
			pos = 0
		}
		end, count, err = set.SpanAndCount(text, pos, cond, opts...)
	}
	if err != nil {
		return err
	}
	if *spanFlags.count {
		fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", end, count)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", end)
	}
	return nil
}
