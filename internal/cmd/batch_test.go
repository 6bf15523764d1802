package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBatchWritesDeclarationFilesNextToSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("export const a = 1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.ts"), []byte("export const b = 2"), 0o644))

	_, err := execRoot(t, []string{"batch", filepath.Join(dir, "*.ts"), "--threads", "2"}, "")
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(dir, "a.d.ts"))
	require.NoError(t, err)
	require.Contains(t, string(a), "a: 1")

	b, err := os.ReadFile(filepath.Join(dir, "b.d.ts"))
	require.NoError(t, err)
	require.Contains(t, string(b), "b: 2")
}

func TestBatchNoMatchesIsError(t *testing.T) {
	dir := t.TempDir()
	_, err := execRoot(t, []string{"batch", filepath.Join(dir, "*.nope")}, "")
	require.Error(t, err)
}
