package dtsx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessSourceEmptyInput(t *testing.T) {
	require.Equal(t, "", ProcessSource("", Options{}))
}

func TestProcessSourceBasic(t *testing.T) {
	out := ProcessSource("export const port = 3000", Options{})
	require.Equal(t, "export declare const port: 3000;", out)
}

func TestProcessSourceImportPriority(t *testing.T) {
	out := ProcessSource(
		"import { B } from 'zeta'\nimport { A } from 'alpha'\nexport const x: A & B = null as any",
		Options{ImportPriority: []string{"alpha"}},
	)
	require.True(t, len(out) > 0)
	alphaIdx := -1
	zetaIdx := -1
	for i := 0; i+5 <= len(out); i++ {
		if out[i:i+5] == "alpha" {
			alphaIdx = i
		}
		if out[i:i+4] == "zeta" {
			zetaIdx = i
		}
	}
	require.NotEqual(t, -1, alphaIdx)
	require.NotEqual(t, -1, zetaIdx)
	require.Less(t, alphaIdx, zetaIdx)
}

func TestProcessBatchPreservesOrderAndEmptyInput(t *testing.T) {
	require.Equal(t, []string{}, ProcessBatch(nil, Options{}, 0))

	sources := []string{
		"export const a = 1",
		"export const b = 2",
		"export const c = 3",
	}
	outs := ProcessBatch(sources, Options{}, 2)
	require.Len(t, outs, 3)
	require.Contains(t, outs[0], "a: 1")
	require.Contains(t, outs[1], "b: 2")
	require.Contains(t, outs[2], "c: 3")
}

func TestProcessBatchAutoDetectsThreadCount(t *testing.T) {
	outs := ProcessBatch([]string{"export const only = 1"}, Options{}, 0)
	require.Len(t, outs, 1)
	require.Contains(t, outs[0], "only: 1")
}
