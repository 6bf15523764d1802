package dts_scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stacksjs/dtsx/internal/dts_ast"
)

func TestScanNamespaceReEntersChildDeclarations(t *testing.T) {
	decls := scan(t, "export namespace Utils {\n  export function noop(): void {}\n  export const VERSION = 1\n}")
	require.Len(t, decls, 1)
	require.Equal(t, dts_ast.KindModule, decls[0].Kind)
	require.Contains(t, decls[0].Text, "export declare namespace Utils {")
	require.Contains(t, decls[0].Text, "export declare function noop(): void;")
	require.Contains(t, decls[0].Text, "export declare const VERSION: 1;")
}

func TestScanAmbientModuleQuotedSpecifier(t *testing.T) {
	decls := scan(t, "declare module 'my-lib' {\n  export function run(): void\n}")
	require.Equal(t, "'my-lib'", decls[0].Name)
	require.Equal(t, "my-lib", decls[0].Source)
}

func TestScanDeclareGlobal(t *testing.T) {
	decls := scan(t, "declare global {\n  interface Window {\n    myGlobal: string\n  }\n}")
	require.Contains(t, decls[0].Text, "declare global {")
	require.NotContains(t, decls[0].Text, "global global")
	require.Contains(t, decls[0].Text, "declare interface Window {")
	require.Contains(t, decls[0].Text, "myGlobal: string")
}
