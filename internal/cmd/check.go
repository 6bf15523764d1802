package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stacksjs/dtsx/pkg/dtsx"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse-only smoke test: fail if a nonempty file yields no declarations",
	Long: `A lightweight CI check: scans the given file (or stdin) and exits nonzero
when the input is nonempty but produced an empty declaration string - a
signal the scanner didn't recognize anything in the file, which usually
means it isn't the TypeScript source it was expected to be.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	source, err := readInput(args)
	if err != nil {
		return err
	}

	out := dtsx.ProcessSource(source, dtsx.Options{})

	if strings.TrimSpace(source) != "" && strings.TrimSpace(out) == "" {
		fmt.Fprintln(os.Stderr, "dtsgen check: no declarations produced for nonempty input")
		os.Exit(1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
