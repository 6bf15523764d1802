// Package cmd holds dtsgen's cobra command tree: one cobra.Command per
// subcommand, flags registered in init(), RunE entry points - the shape
// jabafett-quill's internal/cmd package uses.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dtsgen",
	Short: "Emit TypeScript declaration files without a type checker",
	Long: `dtsgen scans TypeScript source and projects its public surface into a
.d.ts declaration file: no type checker, no cross-file resolution, one
source file in, one declaration string out.`,
}

// Execute runs the root command; cmd/dtsgen's main.go is the only caller.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(checkCmd)
}
