package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
	"github.com/stacksjs/dtsx/internal/dts_infer"
	"github.com/stacksjs/dtsx/internal/dts_lexer"
)

// scanVariable reads a "const|let|var" binding from just after the keyword
// has been consumed. Destructuring patterns ("const { a, b } = ..." or
// "const [a, b] = ...") have no DTS projection and are skipped entirely. A
// multi-declarator statement ("const a = 1, b = 2") is truncated to its
// first binding: this is a known, documented limitation carried from the
// reference implementation (spec.md "Open questions"), not a guessed
// intent.
func (s *scanner) scanVariable(stmtStart int, comments []string, keyword string, exported bool) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	if c.Peek() == '{' || c.Peek() == '[' {
		s.skipToStatementBoundary()
		return
	}

	if !c.IsIdentStart() {
		s.skipToStatementBoundary()
		return
	}
	name := c.ReadIdent()
	c.SkipWhitespaceAndComments()

	explicitType := ""
	hasExplicitType := false
	if c.Peek() == ':' {
		c.Advance()
		c.SkipWhitespaceAndComments()
		start := c.Pos
		skipToAnnotationEnd(c)
		explicitType = strings.TrimSpace(c.Source[start:c.Pos])
		hasExplicitType = true
		c.SkipWhitespaceAndComments()
	}

	value := ""
	hasValue := false
	if c.Peek() == '=' && c.ByteAt(1) != '=' && c.ByteAt(1) != '>' {
		c.Advance()
		c.SkipWhitespaceAndComments()
		start := c.Pos
		skipInitializerOnly(c)
		value = strings.TrimSpace(c.Source[start:c.Pos])
		hasValue = true
	}

	// Truncate a multi-declarator statement to this first binding; consume
	// the remainder of the statement so scanning resumes after it.
	c.SkipInlineWhitespace()
	if c.Peek() == ',' {
		s.skipToStatementBoundary()
	} else {
		s.consumeOptionalSemicolon()
	}

	isConst, isSatisfies := keyword == "const", ""
	trimmedValue := value
	if hasValue {
		var markedConst bool
		trimmedValue, markedConst = stripTrailingAsConstMarker(value)
		trimmedValue, isSatisfies = stripTrailingSatisfies(trimmedValue)
		isConst = isConst || markedConst
	}

	typeAnn := explicitType

	// isolated_declarations: when a non-generic explicit annotation is
	// already present, the initializer is not run through inference at
	// all - this is the documented optimization (spec.md §4.2); without
	// the flag, inference still runs (so a clean @defaultValue can be
	// co-generated) but only overrides a generic or absent annotation.
	skipInference := s.ctx.IsolatedDeclarations && hasExplicitType && !isGenericAnnotation(explicitType)
	var defaultValue string
	hasDefault := false
	if hasValue && !skipInference {
		opts := dts_infer.Options{IsConst: isConst}
		result := dts_infer.Infer(trimmedValue, opts)
		if !hasExplicitType || isGenericAnnotation(explicitType) {
			typeAnn = result.Type
		}
		defaultValue = result.Default
		hasDefault = result.HasDefault
	}
	if typeAnn == "" {
		typeAnn = "unknown"
	}
	if isSatisfies != "" && !hasExplicitType {
		typeAnn = isSatisfies
	}

	var b strings.Builder
	if exported {
		b.WriteString("export ")
	}
	b.WriteString("declare ")
	b.WriteString(keyword)
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(typeAnn)
	b.WriteString(";")

	text := b.String()
	// A @defaultValue is only generated for a widened (non-const) object or
	// array initializer; a const binding's literal type already shows it.
	isContainer := strings.HasPrefix(trimmedValue, "{") || strings.HasPrefix(trimmedValue, "[")
	if hasDefault && !isConst && isContainer && !strings.Contains(strings.Join(comments, "\n"), "@defaultValue") {
		text = attachDefaultValueComment(text, defaultValue, s.indent)
	}

	s.append(dts_ast.Declaration{
		Kind: dts_ast.KindVariable, Name: name, Text: withIndent(text, s.indent),
		IsExported: exported, TypeAnnotation: typeAnn, Value: trimmedValue,
		LeadingComments: comments, Start: stmtStart, End: c.Pos,
	})
}

// skipInitializerOnly advances past an initializer expression to its
// top-level terminator (";" or a newline satisfying ASI), honoring
// strings/templates/brackets so none of those prematurely end the skip.
func skipInitializerOnly(c *dts_lexer.Cursor) {
	depth := 0
	angles := 0
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
		case ')', ']', '}':
			depth--
		case '<':
			angles++
		case '>':
			if angles > 0 && c.ByteAt(-1) != '=' {
				angles--
			}
		case ';':
			if depth == 0 {
				return
			}
		case ',':
			// A comma inside generic arguments ("satisfies Record<K, V>")
			// does not end the declarator.
			if depth == 0 && angles == 0 {
				return
			}
		case '\n':
			if depth == 0 {
				// A line ending in an operator always continues onto the
				// next line; otherwise top-level ASI decides.
				prev := strings.TrimRight(c.Source[:c.Pos], " \t\r")
				continues := prev != "" && strings.IndexByte("=+-*/%&|^!?:,.<>", prev[len(prev)-1]) >= 0
				if ends, _ := c.CheckASITopLevel(); ends && !continues {
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

func stripTrailingAsConstMarker(value string) (string, bool) {
	trimmed := strings.TrimRight(value, " \t\n")
	const suffix = "as const"
	if strings.HasSuffix(trimmed, suffix) {
		before := strings.TrimSpace(trimmed[:len(trimmed)-len(suffix)])
		return before, true
	}
	return value, false
}

// stripTrailingSatisfies splits off a trailing " satisfies T" clause at the
// last top-level occurrence, per spec.md's "last top-level ' satisfies '
// split" rule.
func stripTrailingSatisfies(value string) (string, string) {
	idx := lastTopLevelIndexOf(value, " satisfies ")
	if idx < 0 {
		return value, ""
	}
	return strings.TrimSpace(value[:idx]), strings.TrimSpace(value[idx+len(" satisfies "):])
}

func lastTopLevelIndexOf(s, sep string) int {
	depth := 0
	last := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		}
		if depth == 0 && strings.HasPrefix(s[i:], sep) {
			last = i
		}
	}
	return last
}

// isGenericAnnotation reports whether an explicit annotation is broad
// enough that inference should run anyway and may override it with
// something narrower (spec.md "Generic-annotation override").
func isGenericAnnotation(t string) bool {
	switch t {
	case "any", "object", "unknown":
		return true
	}
	if strings.HasPrefix(t, "Record<") || strings.HasPrefix(t, "Array<") {
		return true
	}
	if strings.HasPrefix(t, "{") && strings.Contains(t, "[") && strings.Contains(t, "]:") {
		return true
	}
	return false
}

func attachDefaultValueComment(text, defaultValue, indent string) string {
	if defaultValue == "" {
		return text
	}
	var doc strings.Builder
	doc.WriteString(indent)
	doc.WriteString("/**\n")
	if strings.Contains(defaultValue, "\n") {
		doc.WriteString(indent)
		doc.WriteString(" * @defaultValue\n")
		doc.WriteString(indent)
		doc.WriteString(" * ```\n")
		for _, l := range strings.Split(defaultValue, "\n") {
			doc.WriteString(indent)
			doc.WriteString(" * ")
			doc.WriteString(l)
			doc.WriteString("\n")
		}
		doc.WriteString(indent)
		doc.WriteString(" * ```\n")
	} else {
		doc.WriteString(indent)
		doc.WriteString(" * @defaultValue ")
		doc.WriteString(defaultValue)
		doc.WriteString("\n")
	}
	doc.WriteString(indent)
	doc.WriteString(" */\n")
	return doc.String() + text
}
