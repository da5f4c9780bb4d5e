package main

import (
	"fmt"

	"github.com/npillmayer/uniset/props"
	"github.com/npillmayer/uniset/surrogate"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "script [text]",
		Short:   "Print the script of every character",
		Example: `  uspan script 'Ωmega'`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runScript,
	}
	rootCmd.AddCommand(cmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	text, err := readText(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range surrogate.Decode(text) {
		s := props.ScriptOf(r)
		fmt.Fprintf(out, "%U\t%s\t%s\n", r, s.Code(), s.Name())
	}
	return nil
}
