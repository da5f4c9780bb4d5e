package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "uspan",
	Short: "Span text with Unicode sets",
	Long: `uspan matches text against Unicode sets given as patterns, like "[a-z{ch}]".
- Finds the end of a span of set elements, or of text free of them.
- Splits text at the boundaries of such spans.
- Tells the scripts of characters and of locales.
Text positions are UTF-16 code unit offsets.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupTracing,
}

var rootFlags = struct {
	file  *string
	utf16 *bool
	trace *string
}{}

func init() {
	rootFlags.file = rootCmd.PersistentFlags().StringP("file", "f", "", "read text from a file instead of the command line")
	rootFlags.utf16 = rootCmd.PersistentFlags().Bool("utf16", false, "text file is UTF-16 encoded (byte order from BOM, default little endian)")
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "E", "trace level [D|I|E]")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func setupTracing(cmd *cobra.Command, args []string) error {
	level, err := traceLevel(*rootFlags.trace)
	if err != nil {
		return err
	}
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(level)
	return nil
}

func traceLevel(l string) (tracing.TraceLevel, error) {
	switch strings.ToUpper(l) {
	case "D", "DEBUG":
		return tracing.LevelDebug, nil
	case "I", "INFO":
		return tracing.LevelInfo, nil
	case "E", "ERROR":
		return tracing.LevelError, nil
	}
	return tracing.LevelError, fmt.Errorf("unknown trace level %q", l)
}
