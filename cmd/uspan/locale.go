package main

import (
	"fmt"

	"github.com/npillmayer/uniset/props"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "locale [locale]",
		Short: "Print the scripts used by a locale (default from the environment)",
		Example: `  uspan locale ja-JP
  uspan locale zh_Hant`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLocale,
	}
	rootCmd.AddCommand(cmd)
}

func runLocale(cmd *cobra.Command, args []string) error {
	var locale string
	if len(args) > 0 {
		locale = args[0]
	} else {
		locale = props.LocaleFromEnvironment()
	}
	scripts, err := props.ScriptsForLocale(locale)
	if err != nil {
		return err
	}
	for _, s := range scripts {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Code(), s.Name())
	}
	return nil
}
