package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
	"github.com/stacksjs/dtsx/internal/dts_lexer"
)

// scanTypeAlias reads a type alias from just after the "type" keyword:
// name, optional generics, "=", and the right-hand side up to the next
// top-level ";" or ASI boundary.
func (s *scanner) scanTypeAlias(stmtStart int, comments []string, exported bool) {
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

	c.SkipInlineWhitespace()
	if c.Peek() == '=' {
		c.Advance()
	}
	c.SkipWhitespaceAndComments()

	start := c.Pos
	skipTypeAliasRHS(c)
	rhs := strings.TrimSpace(c.Source[start:c.Pos])
	s.consumeOptionalSemicolon()

	var b strings.Builder
	if exported {
		b.WriteString("export ")
	}
	b.WriteString("declare type ")
	b.WriteString(name)
	b.WriteString(generics)
	b.WriteString(" = ")
	b.WriteString(rhs)
	b.WriteString(";")

	d := dts_ast.Declaration{
		Kind: dts_ast.KindType, Name: name, Text: withIndent(b.String(), s.indent),
		IsExported: exported, Generics: generics, TypeAnnotation: rhs,
		LeadingComments: comments, Start: stmtStart, End: c.Pos,
	}
	idx := s.append(d)
	if !exported {
		s.nonExported[name] = s.decls[idx]
	}
}

// skipTypeAliasRHS advances past a type alias's right-hand side, stopping
// at the first top-level ";" or a newline that satisfies ASI, honoring
// nested brackets/strings/templates so those don't terminate it early.
func skipTypeAliasRHS(c *dts_lexer.Cursor) {
	depth := 0
	for !c.Eof() {
		r := c.Peek()
		switch r {
		case '"', '\'':
			c.Advance()
			c.SkipString(r)
			continue
		case '`':
			c.Advance()
			c.SkipTemplateLiteral()
			continue
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if depth > 0 && c.ByteAt(-1) != '=' {
				depth--
			}
		case ';':
			if depth == 0 {
				return
			}
		case '\n':
			if depth == 0 {
				if ok, _ := (*c).CheckASITopLevel(); ok {
					return
				}
			}
		case '/':
			if c.IsRegexStart() {
				c.Advance()
				c.SkipRegex()
				continue
			}
		}
		c.Advance()
	}
}
