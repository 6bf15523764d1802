package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
)

// scanNamespace reads a "module"/"namespace"/"global" block. keyword names
// the already-consumed form ("module", "namespace", or "global", the
// latter from "declare global { ... }", which needs no further name
// reading). The name may be dotted ("namespace A.B.C") or quoted (an
// ambient module, whose unquoted specifier is stored in Source). The body
// is re-processed by the restricted inner scanner and rendered one indent
// level deeper (spec.md §4.2).
func (s *scanner) scanNamespace(stmtStart int, comments []string, exported bool, keyword string) {
	c := s.cur

	name := "global"
	source := ""
	if keyword != "global" {
		c.SkipWhitespaceAndComments()
		if c.Peek() == '"' || c.Peek() == '\'' {
			quote := c.Peek()
			start := c.Pos
			c.Advance()
			for !c.Eof() && c.Peek() != quote {
				if c.Peek() == '\\' {
					c.Advance()
				}
				c.Advance()
			}
			if !c.Eof() {
				c.Advance()
			}
			name = c.Source[start:c.Pos]
			source = strings.Trim(name, "'\"")
		} else if c.IsIdentStart() {
			start := c.Pos
			c.ReadIdent()
			for c.Peek() == '.' {
				c.Advance()
				if c.IsIdentStart() {
					c.ReadIdent()
				}
			}
			name = c.Source[start:c.Pos]
		}
	}
	c.SkipWhitespaceAndComments()

	innerIndent := s.indent + "  "
	body := ""
	if c.Peek() == '{' {
		c.Advance()
		start := c.Pos
		c.FindMatchingClose('{', '}')
		body = c.Source[start : c.Pos-1]
	}
	s.consumeOptionalSemicolon()

	innerDecls := scanNamespaceBody(body, s.ctx, innerIndent)
	var innerLines []string
	for _, d := range innerDecls {
		innerLines = append(innerLines, d.Text)
	}

	var b strings.Builder
	if exported {
		b.WriteString("export ")
	}
	b.WriteString("declare ")
	if keyword == "global" {
		b.WriteString("global")
	} else {
		b.WriteString(keyword)
		b.WriteString(" ")
		b.WriteString(name)
	}
	b.WriteString(" {")
	if len(innerLines) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(innerLines, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("}")

	s.append(dts_ast.Declaration{
		Kind: dts_ast.KindModule, Name: name, Source: source, Text: withIndent(b.String(), s.indent),
		IsExported: exported, LeadingComments: comments, Start: stmtStart, End: c.Pos,
	})
}
