package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
)

// scanEnum reads an enum declaration from just after the "enum" keyword
// (and, for const enums, after both "const" and "enum" have been
// consumed). Its body is preserved verbatim; only the "declare"/"const"
// envelope is added at emission time (spec.md §4.2).
func (s *scanner) scanEnum(stmtStart int, comments []string, exported, isConst bool) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	name := ""
	if c.IsIdentStart() {
		name = c.ReadIdent()
	}
	c.SkipWhitespaceAndComments()

	bodyStart := c.Pos
	if c.Peek() == '{' {
		c.Advance()
		c.FindMatchingClose('{', '}')
	}
	body := c.Source[bodyStart:c.Pos]
	s.consumeOptionalSemicolon()

	var b strings.Builder
	if exported {
		b.WriteString("export ")
	}
	b.WriteString("declare ")
	if isConst {
		b.WriteString("const ")
	}
	b.WriteString("enum ")
	b.WriteString(name)
	b.WriteString(" ")
	b.WriteString(body)

	d := dts_ast.Declaration{
		Kind: dts_ast.KindEnum, Name: name, Text: withIndent(b.String(), s.indent),
		IsExported: exported, LeadingComments: comments, Start: stmtStart, End: c.Pos,
	}
	idx := s.append(d)
	if !exported {
		s.nonExported[name] = s.decls[idx]
	}
}
