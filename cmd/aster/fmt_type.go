package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aster/internal/astfmt"
	"aster/internal/manifest"
)

var fmtTypeCmd = &cobra.Command{
	Use:   "fmt-type <type> [type...]",
	Short: "Normalize type expressions",
	Example: `  aster fmt-type "Vec< (u8,i32) >"
  Vec<(u8, i32)>`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmtType,
}

func runFmtType(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var failed int
	for _, arg := range args {
		ty, err := manifest.ParseType(arg)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", errLabel.Sprint("error:"), err)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), astfmt.FormatType(ty))
	}
	if failed > 0 {
		return fmt.Errorf("fmt-type: %d of %d type(s) did not parse", failed, len(args))
	}
	return nil
}
