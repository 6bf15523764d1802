package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
	"github.com/stacksjs/dtsx/internal/dts_infer"
)

// scanExport handles every export form from just after the "export"
// keyword: re-dispatching to the underlying declaration when it is one
// (marking it exported), "export default ...", "export { ... } [from
// '...']", "export type { ... }", and "export * [as N] from '...'"
// (spec.md §4.2).
func (s *scanner) scanExport(stmtStart int, comments []string) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	switch {
	case c.ConsumeWord("default"):
		s.scanExportDefault(stmtStart, comments)
		return
	case c.ConsumeWord("declare"):
		s.scanDeclare(stmtStart, comments, true)
		return
	case c.Peek() == '*':
		s.scanExportStar(stmtStart, comments)
		return
	case c.Peek() == '{':
		s.scanExportClause(stmtStart, comments, false)
		return
	case c.MatchWord("type"):
		save := c.Pos
		c.ConsumeWord("type")
		c.SkipWhitespaceAndComments()
		if c.Peek() == '{' {
			s.scanExportClause(stmtStart, comments, true)
			return
		}
		if c.Peek() == '*' {
			s.scanExportStar(stmtStart, comments)
			return
		}
		c.Pos = save
		c.ConsumeWord("type")
		s.scanTypeAlias(stmtStart, comments, true)
		return
	case c.MatchWord("interface"):
		c.ConsumeWord("interface")
		s.scanInterface(stmtStart, comments, true)
		return
	case c.MatchWord("function"):
		c.ConsumeWord("function")
		s.scanFunction(stmtStart, comments, true, false, false)
		return
	case c.MatchWord("async"):
		c.ConsumeWord("async")
		c.SkipWhitespaceAndComments()
		c.ConsumeWord("function")
		s.scanFunction(stmtStart, comments, true, true, false)
		return
	case c.MatchWord("abstract"):
		c.ConsumeWord("abstract")
		c.SkipWhitespaceAndComments()
		c.ConsumeWord("class")
		s.scanClass(stmtStart, comments, true, true)
		return
	case c.MatchWord("class"):
		c.ConsumeWord("class")
		s.scanClass(stmtStart, comments, true, false)
		return
	case c.MatchWord("const"):
		c.ConsumeWord("const")
		if s.consumeConstEnum() {
			s.scanEnum(stmtStart, comments, true, true)
			return
		}
		s.scanVariable(stmtStart, comments, "const", true)
		return
	case c.MatchWord("let"):
		c.ConsumeWord("let")
		s.scanVariable(stmtStart, comments, "let", true)
		return
	case c.MatchWord("var"):
		c.ConsumeWord("var")
		s.scanVariable(stmtStart, comments, "var", true)
		return
	case c.MatchWord("enum"):
		c.ConsumeWord("enum")
		s.scanEnum(stmtStart, comments, true, false)
		return
	case c.MatchWord("module"):
		c.ConsumeWord("module")
		s.scanNamespace(stmtStart, comments, true, "module")
		return
	case c.MatchWord("namespace"):
		c.ConsumeWord("namespace")
		s.scanNamespace(stmtStart, comments, true, "namespace")
		return
	case c.Peek() == '=':
		// CommonJS-style "export = expr;" has no clean DTS projection in
		// this emitter's scope; skip it rather than guess one.
		s.skipToStatementBoundary()
		return
	default:
		s.skipToStatementBoundary()
	}
}

// scanExportDefault handles "export default <func|class|expr>". Named
// function/class defaults render as a single ambient declaration
// ("export default function foo(): void;"); anonymous ones render the
// same way with the name omitted. Any other expression default infers a
// type and renders as a synthetic "_default" const plus a reference.
func (s *scanner) scanExportDefault(stmtStart int, comments []string) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	switch {
	case c.MatchWord("function"):
		c.ConsumeWord("function")
		s.scanDefaultFunction(stmtStart, comments, false)
		return
	case c.MatchWord("async"):
		save := c.Pos
		c.ConsumeWord("async")
		c.SkipWhitespaceAndComments()
		if c.ConsumeWord("function") {
			s.scanDefaultFunction(stmtStart, comments, true)
			return
		}
		c.Pos = save
	case c.MatchWord("class"):
		c.ConsumeWord("class")
		s.scanDefaultClass(stmtStart, comments, false)
		return
	case c.MatchWord("abstract"):
		save := c.Pos
		c.ConsumeWord("abstract")
		c.SkipWhitespaceAndComments()
		if c.ConsumeWord("class") {
			s.scanDefaultClass(stmtStart, comments, true)
			return
		}
		c.Pos = save
	}

	start := c.Pos
	skipInitializerOnly(c)
	expr := strings.TrimSpace(c.Source[start:c.Pos])
	s.consumeOptionalSemicolon()

	if isBareIdentifier(expr) {
		s.append(dts_ast.Declaration{
			Kind: dts_ast.KindExport, Name: "default", IsDefault: true,
			Text: withIndent("export default "+expr+";", s.indent),
			LeadingComments: comments, Start: stmtStart, End: c.Pos,
		})
		return
	}

	r := dts_infer.Infer(expr, dts_infer.Options{IsConst: true})
	text := "declare const _default: " + r.Type + ";\nexport default _default;"
	s.append(dts_ast.Declaration{
		Kind: dts_ast.KindExport, Name: "default", IsDefault: true,
		Text: withIndent(text, s.indent), TypeAnnotation: r.Type,
		LeadingComments: comments, Start: stmtStart, End: c.Pos,
	})
}

func isBareIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !(r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				return false
			}
		} else if !(r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// scanDefaultFunction scans a default-exported function and renders it as
// a single "export default function [NAME](...): RET;" declaration.
func (s *scanner) scanDefaultFunction(stmtStart int, comments []string, isAsync bool) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	isGenerator := false
	if c.Peek() == '*' {
		c.Advance()
		c.SkipWhitespaceAndComments()
		isGenerator = true
	}

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

	params := ""
	if c.Peek() == '(' {
		c.Advance()
		start := c.Pos
		c.FindMatchingClose('(', ')')
		params = c.Source[start : c.Pos-1]
		c.SkipWhitespaceAndComments()
	}

	returnType := ""
	if c.Peek() == ':' {
		c.Advance()
		c.SkipWhitespaceAndComments()
		start := c.Pos
		skipToReturnTypeEnd(c)
		returnType = strings.TrimSpace(c.Source[start:c.Pos])
	} else {
		returnType = defaultFunctionReturnType(isAsync, isGenerator)
	}

	c.SkipWhitespaceAndComments()
	if c.Peek() == '{' {
		c.Advance()
		c.FindMatchingClose('{', '}')
	} else {
		s.consumeOptionalSemicolon()
	}

	renderedParams, _ := RebuildParams(params, false)

	var b strings.Builder
	b.WriteString("export default function ")
	if name != "" {
		b.WriteString(name)
	}
	b.WriteString(generics)
	b.WriteString("(")
	b.WriteString(renderedParams)
	b.WriteString("): ")
	b.WriteString(returnType)
	b.WriteString(";")

	s.append(dts_ast.Declaration{
		Kind: dts_ast.KindExport, Name: "default", IsDefault: true, IsAsync: isAsync, IsGenerator: isGenerator,
		Text: withIndent(b.String(), s.indent), LeadingComments: comments, Start: stmtStart, End: c.Pos,
	})
}

// scanDefaultClass scans a default-exported class and renders it as
// "export default class [NAME] [extends E] [implements I] { ... }".
func (s *scanner) scanDefaultClass(stmtStart int, comments []string, abstract bool) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	name := ""
	if c.IsIdentStart() && !c.MatchWord("extends") && !c.MatchWord("implements") {
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
	if c.ConsumeWord("extends") {
		c.SkipWhitespaceAndComments()
		start := c.Pos
		for !c.Eof() && c.Peek() != '{' && !c.MatchWord("implements") {
			if c.Peek() == '<' {
				c.Advance()
				c.FindMatchingClose('<', '>')
				continue
			}
			c.Advance()
		}
		extends = strings.TrimSpace(c.Source[start:c.Pos])
		c.SkipWhitespaceAndComments()
	}

	implements := ""
	if c.ConsumeWord("implements") {
		c.SkipWhitespaceAndComments()
		start := c.Pos
		skipToBraceStart(c)
		implements = strings.TrimSpace(c.Source[start:c.Pos])
	}

	bodyText := ""
	if c.Peek() == '{' {
		c.Advance()
		start := c.Pos
		c.FindMatchingClose('{', '}')
		bodyText = c.Source[start : c.Pos-1]
	}
	s.consumeOptionalSemicolon()

	members := scanClassBody(bodyText, s.ctx)

	var b strings.Builder
	b.WriteString("export default ")
	if abstract {
		b.WriteString("abstract ")
	}
	b.WriteString("class ")
	if name != "" {
		b.WriteString(name)
	}
	b.WriteString(generics)
	if extends != "" {
		b.WriteString(" extends ")
		b.WriteString(extends)
	}
	if implements != "" {
		b.WriteString(" implements ")
		b.WriteString(implements)
	}
	b.WriteString(" {")
	if strings.TrimSpace(members) != "" {
		b.WriteString("\n")
		b.WriteString(members)
		b.WriteString("\n")
	}
	b.WriteString("}")

	s.append(dts_ast.Declaration{
		Kind: dts_ast.KindExport, Name: "default", IsDefault: true,
		Text: withIndent(b.String(), s.indent), Extends: extends, Implements: implements,
		LeadingComments: comments, Start: stmtStart, End: c.Pos,
	})
}

// scanExportStar handles "export * from '...'" and "export * as N from
// '...'".
func (s *scanner) scanExportStar(stmtStart int, comments []string) {
	c := s.cur
	c.Advance() // consume '*'
	c.SkipWhitespaceAndComments()

	asName := ""
	if c.ConsumeWord("as") {
		c.SkipWhitespaceAndComments()
		if c.IsIdentStart() {
			asName = c.ReadIdent()
		}
		c.SkipWhitespaceAndComments()
	}
	c.ConsumeWord("from")
	c.SkipWhitespaceAndComments()
	spec := s.readQuotedModuleSpecifier()
	s.consumeOptionalSemicolon()

	var b strings.Builder
	b.WriteString("export *")
	if asName != "" {
		b.WriteString(" as ")
		b.WriteString(asName)
	}
	b.WriteString(" from '")
	b.WriteString(spec)
	b.WriteString("';")

	s.append(dts_ast.Declaration{
		Kind: dts_ast.KindExport, Name: asName, Source: spec,
		Text: withIndent(b.String(), s.indent), LeadingComments: comments, Start: stmtStart, End: c.Pos,
	})
}

// scanExportClause handles "export { a, b as c } [from '...']" and
// "export type { ... } [from '...']".
func (s *scanner) scanExportClause(stmtStart int, comments []string, isTypeOnly bool) {
	c := s.cur
	c.Advance() // consume '{'
	start := c.Pos
	c.FindMatchingClose('{', '}')
	inner := c.Source[start : c.Pos-1]
	c.SkipWhitespaceAndComments()

	spec := ""
	if c.ConsumeWord("from") {
		c.SkipWhitespaceAndComments()
		spec = s.readQuotedModuleSpecifier()
	}
	s.consumeOptionalSemicolon()

	items := parseNamedImportItems(inner)

	var b strings.Builder
	b.WriteString("export ")
	if isTypeOnly {
		b.WriteString("type ")
	}
	b.WriteString("{ ")
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		if it.IsTypeOnly {
			b.WriteString("type ")
		}
		if it.OriginalName != "" && it.OriginalName != it.LocalName {
			b.WriteString(it.OriginalName + " as " + it.LocalName)
		} else {
			b.WriteString(it.LocalName)
		}
	}
	b.WriteString(" }")
	if spec != "" {
		b.WriteString(" from '" + spec + "'")
	}
	b.WriteString(";")

	s.append(dts_ast.Declaration{
		Kind: dts_ast.KindExport, Source: spec, IsTypeOnly: isTypeOnly,
		Text: withIndent(b.String(), s.indent), Imports: items,
		LeadingComments: comments, Start: stmtStart, End: c.Pos,
	})
}
