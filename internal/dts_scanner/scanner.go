// Package dts_scanner is the single-pass scanner/emitter: it walks raw
// TypeScript source with a character cursor
// (internal/dts_lexer) and produces an ordered vector of shaped
// declaration records (internal/dts_ast) without ever building a general
// AST. Each top-level (or, recursively, namespace-body or class-body)
// construct is recognized by its leading keyword and rendered directly to
// DTS text as it's scanned.
package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
	"github.com/stacksjs/dtsx/internal/dts_lexer"
)

type scanner struct {
	cur *dts_lexer.Cursor
	ctx dts_ast.ProcessingContext
	indent string

	decls []dts_ast.Declaration
	nonExported map[string]dts_ast.Declaration

	// bodyBearing tracks, by index into decls, which function declarations
	// had a body in source.
	bodyBearing map[int]bool

	// inNamespaceBody is set on the restricted inner scanner used for a
	// namespace/module/global body. That body has no connection to the
	// outer scan's non-exported side table, so a non-exported interface
	// scanned here cannot be pulled in later the way a top-level one can -
	// it would simply vanish. Interfaces are always appended while this is
	// set (spec.md §4.2's "global" worked example relies on this).
	inNamespaceBody bool
}

// Scan runs the scanner over the full source text and returns the ordered
// declaration vector plus the non-exported-type side table.
func Scan(ctx dts_ast.ProcessingContext) dts_ast.ScanResult {
	s := &scanner{
		cur: dts_lexer.NewCursor(stripBOM(ctx.SourceCode)),
		ctx: ctx,
		nonExported: map[string]dts_ast.Declaration{},
		bodyBearing: map[int]bool{},
	}
	s.run()
	s.removeOverloadImplementations()

	return dts_ast.ScanResult{
		Declarations: s.decls,
		NonExported: s.nonExported,
	}
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, string(rune(0xFEFF)))
}

// scanNamespaceBody is the restricted inner scanner: it recognizes the
// same top-level kinds inside a namespace or ambient-module body and
// ambient-module body and renders them one indent level deeper.
func scanNamespaceBody(body string, ctx dts_ast.ProcessingContext, indent string) []dts_ast.Declaration {
	s := &scanner{
		cur: dts_lexer.NewCursor(body),
		ctx: ctx,
		indent: indent,
		nonExported: map[string]dts_ast.Declaration{},
		bodyBearing: map[int]bool{},
		inNamespaceBody: true,
	}
	s.run()
	s.removeOverloadImplementations()
	return s.decls
}

func (s *scanner) run() {
	for {
		comments := s.collectLeadingComments()
		if s.cur.Eof() {
			return
		}

		stmtStart := s.cur.Pos

		if !s.dispatchStatement(stmtStart, comments) {
			s.skipToStatementBoundary()
		}
	}
}

// collectLeadingComments re-walks whitespace/comments from the current
// position, returning the comment text when keep_comments is enabled, and
// leaves the cursor positioned at the first non-trivia byte.
func (s *scanner) collectLeadingComments() []string {
	// This is the only skip before the statement, so the comment text it
	// walks over is still available to capture.
	comments := s.cur.SkipWhitespaceAndComments()
	if !s.ctx.KeepComments {
		return nil
	}
	return comments
}

// dispatchStatement looks at the keyword starting at the cursor and routes
// to the matching per-kind scan routine. Returns false when nothing
// recognized it, so the caller can skip to the next statement boundary
// (decorators, bare expression statements like 'use strict', and anything
// else unsupported).
func (s *scanner) dispatchStatement(stmtStart int, comments []string) bool {
	c := s.cur
	switch {
	case c.ConsumeWord("import"):
		s.scanImport(stmtStart, comments)
		return true
	case c.ConsumeWord("export"):
		s.scanExport(stmtStart, comments)
		return true
	case c.ConsumeWord("declare"):
		s.scanDeclare(stmtStart, comments, false)
		return true
	case c.MatchWord("interface"):
		c.ConsumeWord("interface")
		s.scanInterface(stmtStart, comments, false)
		return true
	case c.MatchWord("type"):
		c.ConsumeWord("type")
		s.scanTypeAlias(stmtStart, comments, false)
		return true
	case c.MatchWord("function"):
		c.ConsumeWord("function")
		s.scanFunction(stmtStart, comments, false, false, false)
		return true
	case c.MatchWord("async"):
		save := c.Pos
		c.ConsumeWord("async")
		c.SkipWhitespaceAndComments()
		if c.ConsumeWord("function") {
			s.scanFunction(stmtStart, comments, false, true, false)
			return true
		}
		c.Pos = save
		return false
	case c.MatchWord("abstract"):
		save := c.Pos
		c.ConsumeWord("abstract")
		c.SkipWhitespaceAndComments()
		if c.ConsumeWord("class") {
			s.scanClass(stmtStart, comments, false, true)
			return true
		}
		c.Pos = save
		return false
	case c.MatchWord("class"):
		c.ConsumeWord("class")
		s.scanClass(stmtStart, comments, false, false)
		return true
	case c.MatchWord("const"):
		c.ConsumeWord("const")
		if s.consumeConstEnum() {
			s.scanEnum(stmtStart, comments, false, true)
			return true
		}
		s.scanVariable(stmtStart, comments, "const", false)
		return true
	case c.MatchWord("let"):
		c.ConsumeWord("let")
		s.scanVariable(stmtStart, comments, "let", false)
		return true
	case c.MatchWord("var"):
		c.ConsumeWord("var")
		s.scanVariable(stmtStart, comments, "var", false)
		return true
	case c.MatchWord("enum"):
		c.ConsumeWord("enum")
		s.scanEnum(stmtStart, comments, false, false)
		return true
	case c.MatchWord("module"):
		c.ConsumeWord("module")
		s.scanNamespace(stmtStart, comments, false, "module")
		return true
	case c.MatchWord("namespace"):
		c.ConsumeWord("namespace")
		s.scanNamespace(stmtStart, comments, false, "namespace")
		return true
	}
	return false
}

// scanDeclare handles the transparent "declare" keyword: it re-dispatches
// to whatever kind keyword follows, marking the result as ambient/exported
// per exported. "declare global { ... }" is special-cased as a module
// named "global".
func (s *scanner) scanDeclare(stmtStart int, comments []string, exported bool) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	switch {
	case c.MatchWord("global"):
		c.ConsumeWord("global")
		s.scanNamespace(stmtStart, comments, exported, "global")
	case c.ConsumeWord("interface"):
		s.scanInterface(stmtStart, comments, exported)
	case c.MatchWord("type"):
		c.ConsumeWord("type")
		s.scanTypeAlias(stmtStart, comments, exported)
	case c.MatchWord("function"):
		c.ConsumeWord("function")
		s.scanFunction(stmtStart, comments, exported, false, true)
	case c.MatchWord("async"):
		c.ConsumeWord("async")
		c.SkipWhitespaceAndComments()
		c.ConsumeWord("function")
		s.scanFunction(stmtStart, comments, exported, true, true)
	case c.MatchWord("abstract"):
		c.ConsumeWord("abstract")
		c.SkipWhitespaceAndComments()
		c.ConsumeWord("class")
		s.scanClass(stmtStart, comments, exported, true)
	case c.MatchWord("class"):
		c.ConsumeWord("class")
		s.scanClass(stmtStart, comments, exported, false)
	case c.MatchWord("const"):
		c.ConsumeWord("const")
		if s.consumeConstEnum() {
			s.scanEnum(stmtStart, comments, exported, true)
			return
		}
		s.scanVariable(stmtStart, comments, "const", exported)
	case c.MatchWord("let"):
		c.ConsumeWord("let")
		s.scanVariable(stmtStart, comments, "let", exported)
	case c.MatchWord("var"):
		c.ConsumeWord("var")
		s.scanVariable(stmtStart, comments, "var", exported)
	case c.MatchWord("enum"):
		c.ConsumeWord("enum")
		s.scanEnum(stmtStart, comments, exported, false)
	case c.MatchWord("module"):
		c.ConsumeWord("module")
		s.scanNamespace(stmtStart, comments, exported, "module")
	case c.MatchWord("namespace"):
		c.ConsumeWord("namespace")
		s.scanNamespace(stmtStart, comments, exported, "namespace")
	default:
		s.skipToStatementBoundary()
	}
}

// skipToStatementBoundary advances past an unrecognized leading token
// (decorators, bare expression statements, etc.) to the next top-level
// statement boundary, honoring strings/templates/brackets so a semicolon
// or brace inside one doesn't end the skip early.
func (s *scanner) skipToStatementBoundary() {
	c := s.cur
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
		case '(', '[', '{':
			depth++
		case ')', ']':
			depth--
		case '}':
			if depth == 0 {
				c.Advance()
				return
			}
			depth--
		case ';':
			if depth == 0 {
				c.Advance()
				return
			}
		case '\n':
			if depth == 0 {
				if ok, _ := (*c).CheckASITopLevel(); ok {
					c.Advance()
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

// consumeConstEnum peeks past whitespace/comments right after a consumed
// "const" keyword and, if "enum" follows, consumes it too and reports true.
// Leaves the cursor untouched (after "const" only) when it doesn't.
func (s *scanner) consumeConstEnum() bool {
	c := s.cur
	save := c.Pos
	c.SkipWhitespaceAndComments()
	if c.ConsumeWord("enum") {
		return true
	}
	c.Pos = save
	return false
}

func (s *scanner) append(d dts_ast.Declaration) int {
	s.decls = append(s.decls, d)
	return len(s.decls) - 1
}

func withIndent(text, indent string) string {
	if indent == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}
