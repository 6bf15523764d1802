package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execRoot(t *testing.T, args []string, stdin string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	if stdin != "" {
		oldStdin := os.Stdin
		r, w, err := os.Pipe()
		require.NoError(t, err)
		_, err = w.WriteString(stdin)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		os.Stdin = r
		defer func() { os.Stdin = oldStdin }()
	}
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEmitFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.ts")
	require.NoError(t, os.WriteFile(path, []byte("export const port = 3000"), 0o644))

	out, err := execRoot(t, []string{"emit", path}, "")
	require.NoError(t, err)
	require.Contains(t, out, "export declare const port: 3000;")
}

func TestEmitFromStdin(t *testing.T) {
	out, err := execRoot(t, []string{"emit"}, "export const port = 3000")
	require.NoError(t, err)
	require.Contains(t, out, "export declare const port: 3000;")
}

func TestEmitWritesOutFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.ts")
	outPath := filepath.Join(dir, "out.d.ts")
	require.NoError(t, os.WriteFile(inPath, []byte("export const x = 1"), 0o644))

	_, err := execRoot(t, []string{"emit", inPath, "--out", outPath}, "")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "x: 1"))
}

func TestEmitJSONStats(t *testing.T) {
	out, err := execRoot(t, []string{"emit", "--json", "--out", ""}, "export const x = 1")
	require.NoError(t, err)
	require.Contains(t, out, `"bytes"`)
	require.Contains(t, out, `"declarations"`)
}

func TestCheckSucceedsOnValidInput(t *testing.T) {
	out, err := execRoot(t, []string{"check"}, "export const x = 1")
	require.NoError(t, err)
	require.Contains(t, out, "ok")
}
