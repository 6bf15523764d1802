package dts_scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stacksjs/dtsx/internal/dts_ast"
)

func TestScanInterfaceExported(t *testing.T) {
	decls := scan(t, "export interface User {\n  id: number\n  name: string\n}")
	require.Len(t, decls, 1)
	require.Equal(t, dts_ast.KindInterface, decls[0].Kind)
	require.Contains(t, decls[0].Text, "export declare interface User {")
	require.Contains(t, decls[0].Text, "id: number")
	require.Contains(t, decls[0].Text, "name: string")
}

func TestScanInterfaceNonExportedHeldBack(t *testing.T) {
	result := Scan(dts_ast.ProcessingContext{SourceCode: "interface Hidden {\n  x: number\n}"})
	require.Len(t, result.Declarations, 0)
	d, ok := result.NonExported["Hidden"]
	require.True(t, ok)
	require.Contains(t, d.Text, "declare interface Hidden {")
}

func TestScanInterfaceExtends(t *testing.T) {
	decls := scan(t, "export interface Admin extends User {\n  scopes: string[]\n}")
	require.Contains(t, decls[0].Text, "extends User")
}

func TestScanInterfaceMethodSignatureDefaultBecomesOptional(t *testing.T) {
	decls := scan(t, "export interface Opts {\n  run(times = 1): void\n}")
	require.Contains(t, decls[0].Text, "times?:")
}
