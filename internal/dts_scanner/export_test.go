package dts_scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stacksjs/dtsx/internal/dts_ast"
)

func TestScanExportDefaultNamedFunction(t *testing.T) {
	decls := scan(t, "export default function greet(name: string): string {\n  return `hi ${name}`\n}")
	require.Len(t, decls, 1)
	require.True(t, decls[0].IsDefault)
	require.Equal(t, "export default function greet(name: string): string;", decls[0].Text)
}

func TestScanExportDefaultAnonymousFunction(t *testing.T) {
	decls := scan(t, "export default function(): void {}")
	require.Contains(t, decls[0].Text, "export default function (): void;")
}

func TestScanExportDefaultClass(t *testing.T) {
	decls := scan(t, "export default class Widget extends Base {\n  render(): void {}\n}")
	require.Contains(t, decls[0].Text, "export default class Widget extends Base {")
	require.Contains(t, decls[0].Text, "render(): void;")
}

func TestScanExportDefaultBareIdentifier(t *testing.T) {
	decls := scan(t, "const widget = makeWidget()\nexport default widget")
	require.Len(t, decls, 2)
	require.Equal(t, "export default widget;", decls[1].Text)
}

func TestScanExportDefaultExpressionSynthesizesConst(t *testing.T) {
	decls := scan(t, "export default { a: 1, b: 2 }")
	require.Contains(t, decls[0].Text, "declare const _default:")
	require.Contains(t, decls[0].Text, "export default _default;")
}

func TestScanExportClauseRename(t *testing.T) {
	decls := scan(t, "export { a, b as c }")
	require.Equal(t, "export { a, b as c };", decls[0].Text)
}

func TestScanExportClauseFromSource(t *testing.T) {
	decls := scan(t, "export { helper } from './util'")
	require.Equal(t, "export { helper } from './util';", decls[0].Text)
	require.Equal(t, "./util", decls[0].Source)
}

func TestScanExportTypeClause(t *testing.T) {
	decls := scan(t, "export type { User, Role as UserRole }")
	require.Equal(t, "export type { User, Role as UserRole };", decls[0].Text)
	require.True(t, decls[0].IsTypeOnly)
}

func TestScanExportStar(t *testing.T) {
	decls := scan(t, "export * from './helpers'")
	require.Equal(t, "export * from './helpers';", decls[0].Text)
}

func TestScanExportStarAsNamespace(t *testing.T) {
	decls := scan(t, "export * as helpers from './helpers'")
	require.Equal(t, "export * as helpers from './helpers';", decls[0].Text)
	require.Equal(t, "helpers", decls[0].Name)
}

func TestScanExportEqualsSkipped(t *testing.T) {
	result := Scan(dts_ast.ProcessingContext{SourceCode: "export = MyModule\nexport const x = 1"})
	require.Len(t, result.Declarations, 1)
	require.Equal(t, "x", result.Declarations[0].Name)
}
