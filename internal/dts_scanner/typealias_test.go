package dts_scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stacksjs/dtsx/internal/dts_ast"
)

func TestScanTypeAliasSimple(t *testing.T) {
	decls := scan(t, "export type ID = string | number")
	require.Equal(t, dts_ast.KindType, decls[0].Kind)
	require.Equal(t, "export declare type ID = string | number;", decls[0].Text)
}

func TestScanTypeAliasGenerics(t *testing.T) {
	decls := scan(t, "export type Box<T> = { value: T }")
	require.Contains(t, decls[0].Text, "Box<T> = { value: T };")
}

func TestScanTypeAliasUnionAcrossNewline(t *testing.T) {
	decls := scan(t, "export type Status =\n  | 'ok'\n  | 'error'\nexport const x = 1")
	require.Len(t, decls, 2)
	require.Contains(t, decls[0].Text, "'ok'")
	require.Contains(t, decls[0].Text, "'error'")
}

func TestScanTypeAliasNonExportedPulledToSideTable(t *testing.T) {
	result := Scan(dts_ast.ProcessingContext{SourceCode: "type Hidden = string\nexport const x: Hidden = 'a'"})
	require.Len(t, result.Declarations, 2)
	_, ok := result.NonExported["Hidden"]
	require.True(t, ok)
}
