package dts_processor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stacksjs/dtsx/internal/dts_ast"
	"github.com/stacksjs/dtsx/internal/dts_directives"
	"github.com/stacksjs/dtsx/internal/dts_scanner"
)

func run(t *testing.T, source string, ctx dts_ast.ProcessingContext) string {
	t.Helper()
	ctx.SourceCode = source
	scan := dts_scanner.Scan(ctx)
	directives := dts_directives.Extract(source)
	return Process(scan, directives, ctx, nil)
}

func TestProcessDropsUnusedImport(t *testing.T) {
	out := run(t, "import { unused } from 'pkg'\nexport const x = 1", dts_ast.ProcessingContext{})
	require.NotContains(t, out, "pkg")
	require.Contains(t, out, "export declare const x: 1;")
}

func TestProcessKeepsUsedImport(t *testing.T) {
	out := run(t, "import { Thing } from 'pkg'\nexport const x: Thing = thing", dts_ast.ProcessingContext{})
	require.Contains(t, out, "import { Thing } from 'pkg'")
}

func TestProcessKeepsSideEffectImport(t *testing.T) {
	out := run(t, "import 'polyfill'\nexport const x = 1", dts_ast.ProcessingContext{})
	require.Contains(t, out, "import 'polyfill';")
}

func TestProcessPullsInReferencedNonExportedInterface(t *testing.T) {
	out := run(t, "interface Hidden {\n  x: number\n}\nexport const v: Hidden = { x: 1 }", dts_ast.ProcessingContext{})
	require.Contains(t, out, "declare interface Hidden {")
}

func TestProcessDropsUnreferencedNonExportedInterface(t *testing.T) {
	out := run(t, "interface Hidden {\n  x: number\n}\nexport const v = 1", dts_ast.ProcessingContext{})
	require.NotContains(t, out, "Hidden")
}

func TestProcessBucketOrderFunctionsBeforeClasses(t *testing.T) {
	out := run(t, "export class Later {}\nexport function earlier(): void {}", dts_ast.ProcessingContext{})
	funcIdx := indexOf(t, out, "declare function earlier")
	classIdx := indexOf(t, out, "declare class Later")
	require.Less(t, funcIdx, classIdx)
}

func TestProcessDefaultExportEmittedLast(t *testing.T) {
	out := run(t, "export function a(): void {}\nexport default a", dts_ast.ProcessingContext{})
	require.Contains(t, out, "declare function a(): void;\nexport default a;")
}

func TestProcessDirectivesRenderedFirst(t *testing.T) {
	out := run(t, "/// <reference types=\"node\" />\nexport const x = 1", dts_ast.ProcessingContext{})
	require.True(t, len(out) > 0 && out[:3] == "///")
}

func TestProcessImportPriorityOrdering(t *testing.T) {
	out := run(t, "import { B } from 'zeta'\nimport { A } from 'alpha'\nexport const x: A & B = null as any", dts_ast.ProcessingContext{
		ImportPriority: []string{"alpha"},
	})
	alphaIdx := indexOf(t, out, "alpha")
	zetaIdx := indexOf(t, out, "zeta")
	require.Less(t, alphaIdx, zetaIdx)
}

func indexOf(t *testing.T, s, substr string) int {
	t.Helper()
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	t.Fatalf("substring %q not found in %q", substr, s)
	return -1
}
