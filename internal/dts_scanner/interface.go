package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
)

// scanInterface reads an interface from just after the "interface"
// keyword: name, generics, an optional "extends" clause terminated at the
// first depth-0 "{", and a body that is passed through the brace-block
// cleaner. Non-exported interfaces are held back from the main
// declaration vector - only exported interfaces, or ones later referenced
// by a retained declaration, make it into the output (spec.md §4.2, §4.4
// step 5).
func (s *scanner) scanInterface(stmtStart int, comments []string, exported bool) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	name := ""
	if c.IsIdentStart() {
		name = c.ReadIdent()
	}
	c.SkipWhitespaceAndComments()

	generics := ""
	if c.Peek() == '<' {
		start := c.Pos
		c.Advance()
		c.FindMatchingClose('<', '>')
		generics = c.Source[start:c.Pos]
		c.SkipWhitespaceAndComments()
	}

	extends := ""
	if c.MatchWord("extends") {
		c.ConsumeWord("extends")
		c.SkipWhitespaceAndComments()
		start := c.Pos
		skipToBraceStart(c)
		extends = strings.TrimSpace(c.Source[start:c.Pos])
	}

	bodyText := ""
	if c.Peek() == '{' {
		c.Advance()
		start := c.Pos
		c.FindMatchingClose('{', '}')
		bodyText = c.Source[start : c.Pos-1]
	}
	s.consumeOptionalSemicolon()

	cleaned := cleanBraceBlock(bodyText)

	var b strings.Builder
	if exported {
		b.WriteString("export ")
	}
	b.WriteString("declare interface ")
	b.WriteString(name)
	b.WriteString(generics)
	if extends != "" {
		b.WriteString(" extends ")
		b.WriteString(extends)
	}
	b.WriteString(" {")
	if strings.TrimSpace(cleaned) != "" {
		b.WriteString("\n")
		b.WriteString(cleaned)
		b.WriteString("\n")
	}
	b.WriteString("}")

	d := dts_ast.Declaration{
		Kind: dts_ast.KindInterface, Name: name, Text: withIndent(b.String(), s.indent),
		IsExported: exported, Generics: generics, Extends: extends,
		LeadingComments: comments, Start: stmtStart, End: c.Pos,
	}

	if exported || s.inNamespaceBody {
		// Inside a namespace/module/global body there is no outer side
		// table to pull a held-back interface in from later, so it is
		// always kept (e.g. "declare global { interface Window {...} }").
		s.append(d)
	} else {
		// Held back: not appended to the main vector. The processor pulls
		// it in later, at its original position, only if something
		// retained references it by name (whole-word match).
		s.nonExported[name] = d
	}
}

// skipToBraceStart advances the cursor to the first depth-0 "{", used to
// find the end of an "extends" clause without needing to parse it.
func skipToBraceStart(c interface {
	Eof() bool
	Peek() rune
	Advance() rune
}) {
	for !c.Eof() && c.Peek() != '{' {
		c.Advance()
	}
}

// cleanBraceBlock reshapes an interface (or namespace-level type literal)
// body: strips inline "//" comments, strips a single trailing ";" from
// each member line, rewrites method-signature parameter defaults to
// optional markers, and normalizes the block's minimum indentation to two
// spaces while preserving relative nesting. Lines that are purely
// structural braces pass through untouched.
func cleanBraceBlock(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	lines := strings.Split(body, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, l := range lines {
		cleaned = append(cleaned, cleanMemberLine(l))
	}

	return reindentBlock(cleaned, "  ")
}

// cleanMemberLine applies the per-line transforms of the brace-block
// cleaner: stripping a trailing line comment (outside of any string),
// rewriting a method signature's parameter defaults to optional markers,
// and stripping one trailing ";".
func cleanMemberLine(line string) string {
	stripped := stripTrailingLineComment(line)
	trimmedRight := strings.TrimRight(stripped, " \t")
	trimmed := strings.TrimSpace(trimmedRight)
	if trimmed == "" {
		return ""
	}

	indent := trimmedRight[:len(trimmedRight)-len(strings.TrimLeft(trimmedRight, " \t"))]
	body := strings.TrimLeft(trimmedRight, " \t")

	if open := strings.IndexByte(body, '('); open >= 0 && strings.Contains(body, "=") {
		body = rewriteMemberSignatureDefaults(body)
	}

	body = strings.TrimRight(body, " \t")
	if body != "{" && body != "}" && strings.HasSuffix(body, ";") {
		body = strings.TrimSuffix(body, ";")
	}

	return indent + body
}

// stripTrailingLineComment removes a "// ..." suffix that starts outside
// of any string or template literal on a single line.
func stripTrailingLineComment(line string) string {
	inString := byte(0)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inString != 0 {
			if ch == '\\' {
				i++
				continue
			}
			if ch == inString {
				inString = 0
			}
			continue
		}
		switch ch {
		case '"', '\'', '`':
			inString = ch
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return line[:i]
			}
		}
	}
	return line
}

// rewriteMemberSignatureDefaults finds a parenthesized parameter list in a
// single member-signature line and rebuilds it DTS-safe, converting
// defaults to optional markers via the same parameter rebuilder used for
// functions and methods.
func rewriteMemberSignatureDefaults(body string) string {
	open := strings.IndexByte(body, '(')
	if open < 0 {
		return body
	}
	depth := 0
	close := -1
	for i := open; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				close = i
			}
		}
		if close >= 0 {
			break
		}
	}
	if close < 0 {
		return body
	}
	params := body[open+1 : close]
	rendered, _ := RebuildParams(params, false)
	return body[:open+1] + rendered + body[close:]
}

// reindentBlock normalizes the block's minimum indentation to the given
// base (two spaces) while preserving each line's indentation relative to
// that minimum, so nested object-type literals keep their deeper nesting.
func reindentBlock(lines []string, base string) string {
	minIndent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if minIndent == -1 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent == -1 {
		minIndent = 0
	}

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		rel := n - minIndent
		if rel < 0 {
			rel = 0
		}
		out = append(out, base+strings.Repeat("  ", rel/2)+strings.TrimLeft(l, " \t"))
	}
	return strings.Join(out, "\n")
}
