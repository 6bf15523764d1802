package dts_scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stacksjs/dtsx/internal/dts_ast"
)

func TestScanClassPrivateMembersDropped(t *testing.T) {
	decls := scan(t, `export class Service {
  private key: string
  public url: string
  constructor(url: string, key: string) {
    this.url = url
    this.key = key
  }
}`)
	require.Len(t, decls, 1)
	require.Contains(t, decls[0].Text, "url: string;")
	require.Contains(t, decls[0].Text, "constructor(url: string, key: string);")
	require.NotContains(t, decls[0].Text, "key: string;")
}

func TestScanClassParameterPropertyLifted(t *testing.T) {
	decls := scan(t, `export class Point {
  constructor(public readonly x: number, public readonly y: number) {}
}`)
	require.Contains(t, decls[0].Text, "readonly x: number;")
	require.Contains(t, decls[0].Text, "readonly y: number;")
	require.Contains(t, decls[0].Text, "constructor(x: number, y: number);")
}

func TestScanClassAccessors(t *testing.T) {
	decls := scan(t, `export class Box {
  get value(): number { return this._value }
  set value(v: number) { this._value = v }
}`)
	require.Contains(t, decls[0].Text, "get value(): number;")
	require.Contains(t, decls[0].Text, "set value(v: number): void;")
}

func TestScanClassHashPrivateFieldsSkipped(t *testing.T) {
	decls := scan(t, `export class Counter {
  #count = 0
  increment(): void { this.#count++ }
}`)
	require.NotContains(t, decls[0].Text, "#count")
	require.Contains(t, decls[0].Text, "increment(): void;")
}

func TestScanClassStaticInitBlockSkipped(t *testing.T) {
	decls := scan(t, `export class Config {
  static ready: boolean
  static {
    Config.ready = true
  }
}`)
	require.Contains(t, decls[0].Text, "static ready: boolean;")
	require.NotContains(t, decls[0].Text, "Config.ready")
}

func TestScanClassNonExportedAppendedAndHarvested(t *testing.T) {
	result := Scan(dts_ast.ProcessingContext{SourceCode: "class Internal {\n  run(): void {}\n}"})
	require.Len(t, result.Declarations, 1)
	_, ok := result.NonExported["Internal"]
	require.True(t, ok)
}
