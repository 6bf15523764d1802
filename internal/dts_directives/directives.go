// Package dts_directives extracts leading triple-slash directives from a
// source file's prologue: the run of comment and blank lines before the
// first real statement. Only `///`-prefixed lines found there count;
// anything of the same shape appearing after the prologue ends is ordinary
// source text and is left alone (spec.md §4.4 step 1).
package dts_directives

import "strings"

// Extract returns every `///` directive line found in source's prologue, in
// source order, with the leading "///" and surrounding whitespace trimmed.
// The prologue ends at the first line that is neither blank nor a "//" (or
// "///") comment.
func Extract(source string) []string {
	if !strings.HasPrefix(strings.TrimLeft(source, string(rune(0xFEFF))), "///") {
		return nil
	}

	var directives []string
	lines := strings.Split(strings.TrimPrefix(source, string(rune(0xFEFF))), "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "///"):
			directives = append(directives, strings.TrimSpace(strings.TrimPrefix(trimmed, "///")))
		case strings.HasPrefix(trimmed, "//"):
			continue
		default:
			return directives
		}
	}
	return directives
}

// Render re-renders a directive body (as returned by Extract) back to its
// "/// ..." source form, used by the processor when composing the output
// prologue.
func Render(directives []string) string {
	if len(directives) == 0 {
		return ""
	}
	rendered := make([]string, len(directives))
	for i, d := range directives {
		rendered[i] = "/// " + d
	}
	return strings.Join(rendered, "\n")
}
