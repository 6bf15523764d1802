// This API exposes dtsx's one operation: turning a TypeScript source file
// into its declaration-file (.d.ts) projection. It's intended for
// integrating dtsx into other tools as a library.
//
// If you are just trying to run dtsx from Go without linking it into your
// own program, there is also a command-line interface:
// github.com/stacksjs/dtsx/cmd/dtsgen.
//
// Single-file usage:
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/stacksjs/dtsx/pkg/dtsx"
//	)
//
//	func main() {
//	    out := dtsx.ProcessSource(`export const port = 3000`, dtsx.Options{})
//	    fmt.Println(out)
//	}
//
// Batch usage runs every file in parallel across a worker pool and returns
// the outputs in input order:
//
//	outs := dtsx.ProcessBatch(sources, dtsx.Options{KeepComments: true}, 0)
package dtsx

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/stacksjs/dtsx/internal/dts_ast"
	"github.com/stacksjs/dtsx/internal/dts_cache"
	"github.com/stacksjs/dtsx/internal/dts_directives"
	"github.com/stacksjs/dtsx/internal/dts_processor"
	"github.com/stacksjs/dtsx/internal/dts_scanner"
)

// Options mirrors dts_ast.ProcessingContext (spec.md §3/§6 "Configuration")
// as the public-facing configuration surface, so callers outside the
// internal packages never need to import dts_ast directly.
type Options struct {
	// KeepComments collects each declaration's leading JSDoc/single-line/
	// block comments while scanning, so that an existing @defaultValue tag
	// suppresses the generated one. The comments are not written into the
	// emitted text, with or without this option.
	KeepComments bool
	// IsolatedDeclarations skips initializer parsing for variables and
	// class properties that already carry an explicit non-generic type
	// annotation.
	IsolatedDeclarations bool
	// ImportPriority is an ordered sequence of module-specifier prefixes
	// driving import sort order; unmatched specifiers sort last.
	ImportPriority []string
}

func (o Options) toContext(source string) dts_ast.ProcessingContext {
	return dts_ast.ProcessingContext{
		SourceCode:           source,
		KeepComments:         o.KeepComments,
		IsolatedDeclarations: o.IsolatedDeclarations,
		ImportPriority:       o.ImportPriority,
	}
}

// ProcessSource is the single primary entry point (spec.md §6): it scans
// source, runs the processor pipeline, and returns the emitted declaration
// string. It returns an empty string for empty input and never panics or
// returns an error - malformed input degrades to a partial or empty
// result, per spec.md §7.
func ProcessSource(source string, opts Options) string {
	if source == "" {
		return ""
	}
	return processOne(source, opts, nil)
}

func processOne(source string, opts Options, caches *dts_cache.Caches) string {
	ctx := opts.toContext(source)
	scan := dts_scanner.Scan(ctx)
	directives := dts_directives.Extract(source)
	return dts_processor.Process(scan, directives, ctx, caches)
}

// ProcessBatch fans sources out across a bounded worker pool and returns
// their outputs in the same order as the input (spec.md §5/§6).
// threadCount == 0 auto-detects via runtime.NumCPU(). Each worker owns one
// *dts_cache.Caches for its lifetime (SPEC_FULL.md §3) - caches are never
// shared across goroutines, so no lock is needed to bound their size.
func ProcessBatch(sources []string, opts Options, threadCount uint32) []string {
	out := make([]string, len(sources))
	if len(sources) == 0 {
		return out
	}

	limit := int(threadCount)
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	if limit > len(sources) {
		limit = len(sources)
	}

	var g errgroup.Group
	g.SetLimit(limit)

	type workerState struct{ caches *dts_cache.Caches }
	pool := make(chan *workerState, limit)
	for i := 0; i < limit; i++ {
		pool <- &workerState{caches: dts_cache.New()}
	}

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			ws := <-pool
			defer func() { pool <- ws }()
			out[i] = processOne(src, opts, ws.caches)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error; Process recovers internally.

	return out
}
