package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
	"github.com/stacksjs/dtsx/internal/dts_lexer"
)

// scanImport consumes an import statement from just after the "import"
// keyword through the closing quote of its module specifier (plus an
// optional ";"), classifying every form: type-only, side-effect, namespace,
// mixed default+named clauses.
func (s *scanner) scanImport(stmtStart int, comments []string) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	// Side-effect import: "import 'module';" with nothing between the
	// keyword and the specifier.
	if c.Peek() == '"' || c.Peek() == '\'' {
		spec := s.readQuotedModuleSpecifier()
		s.consumeOptionalSemicolon()
		text := "import '" + spec + "';"
		s.append(dts_ast.Declaration{
			Kind: dts_ast.KindImport, Source: spec, Text: text,
			IsSideEffect: true, LeadingComments: comments,
			Start: stmtStart, End: c.Pos,
		})
		return
	}

	isTypeOnly := false
	if c.MatchWord("type") {
		save := c.Pos
		c.ConsumeWord("type")
		c.SkipWhitespaceAndComments()
		// "type" is the type-only marker unless it's immediately followed
		// by "from" (i.e. the default import is itself named "type").
		if !c.MatchWord("from") {
			isTypeOnly = true
		} else {
			c.Pos = save
		}
	}

	var items []dts_ast.ImportItem
	defaultName := ""

	if c.IsIdentStart() && !c.MatchWord("from") {
		defaultName = c.ReadIdent()
		c.SkipWhitespaceAndComments()
		if c.Peek() == ',' {
			c.Advance()
			c.SkipWhitespaceAndComments()
		}
	}

	if c.Peek() == '*' {
		c.Advance()
		c.SkipWhitespaceAndComments()
		c.ConsumeWord("as")
		c.SkipWhitespaceAndComments()
		nsName := c.ReadIdent()
		items = append(items, dts_ast.ImportItem{LocalName: nsName, IsNamespace: true})
		c.SkipWhitespaceAndComments()
	} else if c.Peek() == '{' {
		c.Advance()
		start := c.Pos
		inner := &dts_lexer.Cursor{Source: c.Source, Pos: c.Pos}
		inner.FindMatchingClose('{', '}')
		namedText := c.Source[start : inner.Pos-1]
		c.Pos = inner.Pos
		items = append(items, parseNamedImportItems(namedText)...)
		c.SkipWhitespaceAndComments()
	}

	if defaultName != "" {
		items = append([]dts_ast.ImportItem{{LocalName: defaultName, OriginalName: defaultName, IsDefault: true}}, items...)
	}

	c.SkipWhitespaceAndComments()
	c.ConsumeWord("from")
	c.SkipWhitespaceAndComments()
	spec := s.readQuotedModuleSpecifier()
	s.consumeOptionalSemicolon()

	text := RenderImportText(isTypeOnly, items, spec)
	s.append(dts_ast.Declaration{
		Kind: dts_ast.KindImport, Source: spec, Text: text,
		IsTypeOnly: isTypeOnly, Imports: items,
		LeadingComments: comments, Start: stmtStart, End: c.Pos,
	})
}

func (s *scanner) readQuotedModuleSpecifier() string {
	c := s.cur
	if c.Peek() != '"' && c.Peek() != '\'' {
		return ""
	}
	quote := c.Peek()
	c.Advance()
	start := c.Pos
	for !c.Eof() && c.Peek() != quote {
		if c.Peek() == '\\' {
			c.Advance()
		}
		c.Advance()
	}
	spec := c.Source[start:c.Pos]
	if !c.Eof() {
		c.Advance()
	}
	return spec
}

func (s *scanner) consumeOptionalSemicolon() {
	c := s.cur
	c.SkipInlineWhitespace()
	if c.Peek() == ';' {
		c.Advance()
	}
}

// parseNamedImportItems splits the contents of an import's "{ ... }" clause
// at top-level commas and classifies each binding, handling per-item "type"
// markers and "X as Y" renaming.
func parseNamedImportItems(text string) []dts_ast.ImportItem {
	var items []dts_ast.ImportItem
	for _, raw := range splitTopLevelByComma(text) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		isTypeOnly := false
		if strings.HasPrefix(raw, "type ") {
			isTypeOnly = true
			raw = strings.TrimSpace(raw[len("type "):])
		}
		original := raw
		local := raw
		if idx := strings.Index(raw, " as "); idx >= 0 {
			original = strings.TrimSpace(raw[:idx])
			local = strings.TrimSpace(raw[idx+len(" as "):])
		}
		items = append(items, dts_ast.ImportItem{
			LocalName: local, OriginalName: original, IsTypeOnly: isTypeOnly,
		})
	}
	return items
}

// splitTopLevelByComma is a small helper local to import/export parsing:
// the clauses it splits (named-import lists, named-export lists) never
// nest brackets, only occasional generics-free identifiers, so a simple
// depth-free split is sufficient and faster than the general expression
// splitter used by the inference engine.
func splitTopLevelByComma(s string) []string {
	return strings.Split(s, ",")
}

// RenderImportText renders an import statement from its parsed pieces.
// Exported so the processor pipeline can rebuild an import's text after
// trimming unused named bindings (spec.md §4.4 step 7).
func RenderImportText(isTypeOnly bool, items []dts_ast.ImportItem, spec string) string {
	var b strings.Builder
	b.WriteString("import ")
	if isTypeOnly {
		b.WriteString("type ")
	}

	var defaultItem *dts_ast.ImportItem
	var nsItem *dts_ast.ImportItem
	var named []dts_ast.ImportItem
	for i := range items {
		switch {
		case items[i].IsDefault:
			defaultItem = &items[i]
		case items[i].IsNamespace:
			nsItem = &items[i]
		default:
			named = append(named, items[i])
		}
	}

	wroteClause := false
	if defaultItem != nil {
		b.WriteString(defaultItem.LocalName)
		wroteClause = true
	}
	if nsItem != nil {
		if wroteClause {
			b.WriteString(", ")
		}
		b.WriteString("* as " + nsItem.LocalName)
		wroteClause = true
	}
	if len(named) > 0 {
		if wroteClause {
			b.WriteString(", ")
		}
		b.WriteString("{ ")
		for i, it := range named {
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
		wroteClause = true
	}
	if wroteClause {
		b.WriteString(" from ")
	}
	b.WriteString("'" + spec + "';")
	return b.String()
}
