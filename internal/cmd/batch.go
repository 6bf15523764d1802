package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stacksjs/dtsx/internal/logger"
	"github.com/stacksjs/dtsx/pkg/dtsx"
)

var batchCmd = &cobra.Command{
	Use:   "batch [glob]",
	Short: "Emit declarations for every matching file in parallel",
	Long: `Expands one filepath.Glob pattern (quote it so the shell passes it
through; "**" matches a single path element, not any depth) and runs
pkg/dtsx.ProcessBatch over every match, writing "<input>.d.ts" next to each
source file.

Example:
  dtsgen batch "src/*.ts" --threads 4`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Bool("keep-comments", false, "Collect leading comments while scanning (they are not written to the output)")
	batchCmd.Flags().Bool("isolated-declarations", false, "Skip initializer parsing where an explicit non-generic type annotation is present")
	batchCmd.Flags().StringArray("import-priority", nil, "Module-specifier prefix, repeatable, in priority order")
	batchCmd.Flags().Uint32("threads", 0, "Worker count; 0 auto-detects via runtime.NumCPU()")
}

func runBatch(cmd *cobra.Command, args []string) error {
	matches, err := filepath.Glob(args[0])
	if err != nil {
		return fmt.Errorf("invalid glob %q: %w", args[0], err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files matched %q", args[0])
	}

	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return err
	}
	threads, err := cmd.Flags().GetUint32("threads")
	if err != nil {
		return err
	}

	sources := make([]string, len(matches))
	for i, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sources[i] = string(data)
	}

	log := logger.New(logger.LevelInfo)
	outs := dtsx.ProcessBatch(sources, opts, threads)

	term := logger.GetTerminalInfo(os.Stdout)
	ok := color.New(color.FgGreen)
	if logger.HasNoColorEnv() || !isColorEnabled() {
		ok.DisableColor()
	}

	for i, path := range matches {
		outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".d.ts"
		if err := os.WriteFile(outPath, []byte(outs[i]+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		log.Info("%s %s", ok.Sprint("✓"), truncateToWidth(path+" -> "+outPath, term.Width))
	}
	return nil
}

// truncateToWidth shortens line to fit within width columns (accounting for
// the "✓ " prefix already printed ahead of it), mirroring esbuild's own
// terminal-width-aware summary truncation. A width of 0 means the terminal
// size couldn't be determined (not a TTY), so nothing is truncated.
func truncateToWidth(line string, width int) string {
	const prefix = 2 // "✓ "
	if width <= prefix || len(line) <= width-prefix {
		return line
	}
	avail := width - prefix - 1 // reserve one column for the ellipsis
	if avail < 0 {
		avail = 0
	}
	return line[:avail] + "…"
}
