package dts_scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stacksjs/dtsx/internal/dts_ast"
)

func scan(t *testing.T, source string) []dts_ast.Declaration {
	t.Helper()
	return Scan(dts_ast.ProcessingContext{SourceCode: source}).Declarations
}

func TestScanVariableInfersLiteralConst(t *testing.T) {
	decls := scan(t, "export const port = 3000")
	require.Len(t, decls, 1)
	require.Equal(t, dts_ast.KindVariable, decls[0].Kind)
	require.Contains(t, decls[0].Text, "export declare const port: 3000;")
}

func TestScanVariableWidensLet(t *testing.T) {
	decls := scan(t, "export let count = 3000")
	require.Contains(t, decls[0].Text, "count: number;")
}

func TestScanVariableExplicitAnnotationKept(t *testing.T) {
	decls := scan(t, "export const name: string = 'bun'")
	require.Contains(t, decls[0].Text, "name: string;")
}

func TestScanVariableAsConstArray(t *testing.T) {
	decls := scan(t, "export const tags = ['a', 'b'] as const")
	require.Contains(t, decls[0].Text, "readonly [")
}

func TestScanVariableSatisfies(t *testing.T) {
	decls := scan(t, "export const conf = { a: 1 } satisfies Record<string, number>")
	require.Contains(t, decls[0].Text, "Record<string, number>")
}

func TestScanVariableDestructureSkipped(t *testing.T) {
	decls := scan(t, "export const { a, b } = obj\nexport const z = 1")
	require.Len(t, decls, 1)
	require.Equal(t, "z", decls[0].Name)
}

func TestScanVariableObjectIndexSignatureValuesPreserved(t *testing.T) {
	decls := scan(t, "export const conf: { [key: string]: string } = { apiUrl: 'https://x', timeout: '5000' }")
	require.Contains(t, decls[0].Text, "apiUrl: 'https://x'")
	require.Contains(t, decls[0].Text, "timeout: '5000'")
	require.NotContains(t, decls[0].Text, "[key: string]")
}

func TestScanVariableIsolatedDeclarationsSkipsInitializer(t *testing.T) {
	decls := Scan(dts_ast.ProcessingContext{
		SourceCode:           "export const n: number = someExpensiveCall()",
		IsolatedDeclarations: true,
	}).Declarations
	require.Len(t, decls, 1)
	require.Contains(t, decls[0].Text, "n: number;")
}
