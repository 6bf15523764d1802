package dts_scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stacksjs/dtsx/internal/dts_ast"
)

func TestScanEnumExported(t *testing.T) {
	decls := scan(t, "export enum Color { Red, Green, Blue }")
	require.Len(t, decls, 1)
	require.Equal(t, dts_ast.KindEnum, decls[0].Kind)
	require.Contains(t, decls[0].Text, "export declare enum Color {")
	require.Contains(t, decls[0].Text, "Red, Green, Blue")
}

func TestScanEnumConst(t *testing.T) {
	decls := scan(t, "export const enum Direction { Up, Down }")
	require.Contains(t, decls[0].Text, "export declare const enum Direction {")
}

func TestScanEnumNonExportedStillAppended(t *testing.T) {
	result := Scan(dts_ast.ProcessingContext{SourceCode: "enum Internal { A, B }"})
	require.Len(t, result.Declarations, 1)
	require.Equal(t, "Internal", result.Declarations[0].Name)
	_, ok := result.NonExported["Internal"]
	require.True(t, ok)
}
