package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/stacksjs/dtsx/internal/logger"
	"github.com/stacksjs/dtsx/pkg/dtsx"
)

var emitCmd = &cobra.Command{
	Use:   "emit [file]",
	Short: "Emit one file's declaration text",
	Long: `Reads TypeScript source from a file argument (or stdin when omitted) and
writes its declaration text to stdout, or to --out.

Examples:
  # Emit to stdout
  dtsgen emit src/index.ts

  # Emit to a specific file
  dtsgen emit src/index.ts --out dist/index.d.ts

  # Read from stdin
  cat src/index.ts | dtsgen emit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEmit,
}

func init() {
	emitCmd.Flags().Bool("keep-comments", false, "Collect leading comments while scanning (they are not written to the output)")
	emitCmd.Flags().Bool("isolated-declarations", false, "Skip initializer parsing where an explicit non-generic type annotation is present")
	emitCmd.Flags().StringArray("import-priority", nil, "Module-specifier prefix, repeatable, in priority order")
	emitCmd.Flags().StringP("out", "o", "", "Write declaration text to this path instead of stdout")
	emitCmd.Flags().Bool("json", false, "Print {\"bytes\":N,\"declarations\":N} instead of the declaration text")
}

func runEmit(cmd *cobra.Command, args []string) error {
	source, err := readInput(args)
	if err != nil {
		return err
	}

	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}

	out := dtsx.ProcessSource(source, opts)

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]int{
			"bytes":        len(out),
			"declarations": countDeclarations(out),
		})
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	}
	return os.WriteFile(outPath, []byte(out+"\n"), 0o644)
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func optionsFromFlags(cmd *cobra.Command) (dtsx.Options, error) {
	keepComments, err := cmd.Flags().GetBool("keep-comments")
	if err != nil {
		return dtsx.Options{}, err
	}
	isolated, err := cmd.Flags().GetBool("isolated-declarations")
	if err != nil {
		return dtsx.Options{}, err
	}
	priority, err := cmd.Flags().GetStringArray("import-priority")
	if err != nil {
		return dtsx.Options{}, err
	}
	return dtsx.Options{
		KeepComments:         keepComments,
		IsolatedDeclarations: isolated,
		ImportPriority:       priority,
	}, nil
}

// countDeclarations counts top-level emitted statements by counting lines
// that start a new declaration (terminated with ";" or standalone "}" at
// column 0); a rough, CLI-only metric, not used by the core itself.
func countDeclarations(out string) int {
	count := 0
	depth := 0
	lineStart := true
	for _, r := range out {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ';':
			if depth == 0 {
				count++
			}
		case '\n':
			lineStart = true
			continue
		}
		if lineStart && depth == 0 && r == '}' {
			count++
		}
		lineStart = false
	}
	return count
}

// isColorEnabled reports whether stdout is a terminal, mirroring esbuild's
// own isatty-gated coloring decision (internal/logger). The primary check
// goes through logger.GetTerminalInfo so the platform-specific terminal
// detection (ioctl on unix, console mode on windows) actually backs the
// CLI's color decision; go-isatty only covers the mintty/Cygwin case
// GetTerminalInfo's ioctl-based probe can't see.
func isColorEnabled() bool {
	if logger.GetTerminalInfo(os.Stdout).IsTTY {
		return true
	}
	return isatty.IsCygwinTerminal(os.Stdout.Fd())
}
