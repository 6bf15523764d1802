package dts_directives

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractSingleDirective(t *testing.T) {
	got := Extract("/// <reference types=\"node\" />\nexport const x = 1")
	require.Equal(t, []string{"<reference types=\"node\" />"}, got)
}

func TestExtractMultipleDirectivesAcrossBlankLines(t *testing.T) {
	got := Extract("/// <reference lib=\"dom\" />\n\n/// <reference types=\"node\" />\nexport {}")
	require.Equal(t, []string{"<reference lib=\"dom\" />", "<reference types=\"node\" />"}, got)
}

func TestExtractStopsAtFirstNonCommentLine(t *testing.T) {
	got := Extract("export const x = 1\n/// not a directive, past the prologue")
	require.Nil(t, got)
}

func TestExtractNoDirectives(t *testing.T) {
	got := Extract("export const x = 1")
	require.Nil(t, got)
}

func TestRenderRoundTrip(t *testing.T) {
	rendered := Render([]string{"<reference types=\"node\" />", "<reference lib=\"dom\" />"})
	require.Equal(t, "/// <reference types=\"node\" />\n/// <reference lib=\"dom\" />", rendered)
}

func TestRenderEmpty(t *testing.T) {
	require.Equal(t, "", Render(nil))
}
