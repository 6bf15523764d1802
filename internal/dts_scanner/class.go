package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
	"github.com/stacksjs/dtsx/internal/dts_infer"
	"github.com/stacksjs/dtsx/internal/dts_lexer"
)

var classModifierWords = []string{
	"private", "protected", "public", "static", "abstract",
	"readonly", "override", "accessor", "async", "declare",
}

// scanClass reads a class declaration from just after the "class" keyword:
// name, generics, a single "extends" expression, a comma-separated
// "implements" list, and a body reshaped by the member sub-protocol
// (spec.md §4.2).
func (s *scanner) scanClass(stmtStart int, comments []string, exported, abstract bool) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	name := "default"
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
	if exported {
		b.WriteString("export ")
	}
	b.WriteString("declare ")
	if abstract {
		b.WriteString("abstract ")
	}
	b.WriteString("class ")
	if name != "default" {
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

	d := dts_ast.Declaration{
		Kind: dts_ast.KindClass, Name: name, Text: withIndent(b.String(), s.indent),
		IsExported: exported, Generics: generics, Extends: extends, Implements: implements,
		LeadingComments: comments, Start: stmtStart, End: c.Pos,
	}
	idx := s.append(d)
	if !exported {
		s.nonExported[name] = s.decls[idx]
	}
}

// scanClassBody walks a class's body text member-by-member, applying the
// member sub-protocol, and renders the result at two-space indent.
func scanClassBody(body string, ctx dts_ast.ProcessingContext) string {
	c := dts_lexer.NewCursor(body)
	var lines []string

	for {
		c.SkipWhitespaceAndComments()
		if c.Eof() {
			break
		}
		if c.Peek() == ';' {
			c.Advance()
			continue
		}

		text, ok := scanClassMember(c, ctx)
		if ok && text != "" {
			lines = append(lines, withIndent(text, "  "))
		}
	}

	return strings.Join(lines, "\n")
}

// scanClassMember reads one member starting at c and returns its rendered
// DTS text (empty/false for members with no DTS projection: private
// members, hash-private fields, and static initialization blocks).
func scanClassMember(c *dts_lexer.Cursor, ctx dts_ast.ProcessingContext) (rendered string, kept bool) {
	var modifiers []string
	for {
		matched := false
		for _, m := range classModifierWords {
			if c.MatchWord(m) {
				save := c.Pos
				c.ConsumeWord(m)
				peek := *c
				peek.SkipWhitespaceAndComments()
				// A modifier keyword immediately followed by "(" is
				// actually a member named after that keyword (e.g. a
				// method called "static()"); don't consume it as a
				// modifier in that case.
				if peek.Peek() == '(' || peek.Peek() == '=' || peek.Peek() == ':' || peek.Peek() == '?' || peek.Peek() == ';' {
					c.Pos = save
					continue
				}
				modifiers = append(modifiers, m)
				c.SkipWhitespaceAndComments()
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}

	isPrivate := containsStr(modifiers, "private")
	isStatic := containsStr(modifiers, "static")
	isReadonly := containsStr(modifiers, "readonly")

	// Static initialization block: "static { ... }".
	if isStatic && len(modifiers) == 1 && c.Peek() == '{' {
		c.Advance()
		c.FindMatchingClose('{', '}')
		return "", false
	}

	if c.ConsumeWord("constructor") {
		return renderConstructor(c)
	}

	isGet, isSet := false, false
	if c.MatchWord("get") {
		save := c.Pos
		c.ConsumeWord("get")
		c.SkipWhitespaceAndComments()
		if c.IsIdentStart() || c.Peek() == '[' || c.Peek() == '\'' || c.Peek() == '"' {
			isGet = true
		} else {
			c.Pos = save
		}
	} else if c.MatchWord("set") {
		save := c.Pos
		c.ConsumeWord("set")
		c.SkipWhitespaceAndComments()
		if c.IsIdentStart() || c.Peek() == '[' || c.Peek() == '\'' || c.Peek() == '"' {
			isSet = true
		} else {
			c.Pos = save
		}
	}

	isGenerator := false
	if c.Peek() == '*' {
		c.Advance()
		c.SkipWhitespaceAndComments()
		isGenerator = true
	}

	name, ok := readMemberName(c)
	if !ok {
		skipClassMemberBody(c)
		return "", false
	}
	c.SkipWhitespaceAndComments()

	optional := false
	if c.Peek() == '?' {
		c.Advance()
		optional = true
	}
	if c.Peek() == '!' {
		c.Advance()
	}
	c.SkipWhitespaceAndComments()

	if isPrivate || strings.HasPrefix(name, "#") {
		// Private and hash-private members have no DTS projection, but are
		// still read in full below so the cursor ends past the whole member.
		defer func() { rendered, kept = "", false }()
	}

	prefix := renderModifierPrefix(modifiers)

	if isGet {
		ret := readOptionalReturnType(c)
		skipClassMemberBody(c)
		if ret == "" {
			ret = "unknown"
		}
		return prefix + "get " + name + "(): " + ret + ";", true
	}
	if isSet {
		params := ""
		if c.Peek() == '(' {
			c.Advance()
			start := c.Pos
			c.FindMatchingClose('(', ')')
			params, _ = RebuildParams(c.Source[start:c.Pos-1], false)
		}
		readOptionalReturnType(c)
		skipClassMemberBody(c)
		return prefix + "set " + name + "(" + params + "): void;", true
	}

	// Method: name immediately followed by optional generics then "(".
	generics := ""
	if c.Peek() == '<' {
		start := c.Pos
		c.Advance()
		c.FindMatchingClose('<', '>')
		generics = c.Source[start:c.Pos]
		c.SkipWhitespaceAndComments()
	}
	if c.Peek() == '(' {
		c.Advance()
		start := c.Pos
		c.FindMatchingClose('(', ')')
		params := c.Source[start : c.Pos-1]
		c.SkipWhitespaceAndComments()

		returnType := ""
		if c.Peek() == ':' {
			c.Advance()
			c.SkipWhitespaceAndComments()
			rstart := c.Pos
			skipToReturnTypeEnd(c)
			returnType = strings.TrimSpace(c.Source[rstart:c.Pos])
		} else {
			returnType = defaultFunctionReturnType(containsStr(modifiers, "async"), isGenerator)
		}
		skipClassMemberBody(c)

		renderedParams, _ := RebuildParams(params, false)
		optMark := ""
		if optional {
			optMark = "?"
		}
		return prefix + name + optMark + generics + "(" + renderedParams + "): " + returnType + ";", true
	}

	// Property.
	typeAnn := ""
	hasType := false
	if c.Peek() == ':' {
		c.Advance()
		c.SkipWhitespaceAndComments()
		start := c.Pos
		skipToAnnotationEnd(c)
		typeAnn = strings.TrimSpace(c.Source[start:c.Pos])
		hasType = true
	}

	value := ""
	if c.Peek() == '=' && c.ByteAt(1) != '=' {
		c.Advance()
		c.SkipWhitespaceAndComments()
		start := c.Pos
		skipInitializerOnly(c)
		value = strings.TrimSpace(c.Source[start:c.Pos])
	}
	c.SkipInlineWhitespace()
	if c.Peek() == ';' {
		c.Advance()
	} else {
		consumeMemberASI(c)
	}

	if !hasType {
		if value == "" {
			typeAnn = "unknown"
		} else {
			isConst := isStatic && isReadonly
			r := dts_infer.Infer(value, dts_infer.Options{IsConst: isConst})
			typeAnn = r.Type
		}
	}

	optMark := ""
	if optional {
		optMark = "?"
	}
	return prefix + name + optMark + ": " + typeAnn + ";", true
}

func containsStr(items []string, target string) bool {
	for _, it := range items {
		if it == target {
			return true
		}
	}
	return false
}

// renderModifierPrefix renders the subset of collected modifiers that
// survive into a declaration file: "declare", "static", "abstract",
// "override", "readonly" (access modifiers other than the already-handled "private"
// are dropped per the access-modifier-filtering rule; "protected" and
// "public" carry no DTS-visible effect beyond making the member non-
// private, so they're omitted from the rendered text but didn't block
// emission).
func renderModifierPrefix(modifiers []string) string {
	order := []string{"declare", "static", "abstract", "override", "readonly"}
	var kept []string
	for _, o := range order {
		if containsStr(modifiers, o) {
			kept = append(kept, o)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, " ") + " "
}

// readMemberName reads an identifier, a computed "[expr]" name, a quoted
// name, or a hash-private name, returning ok=false only when nothing
// name-shaped is present (end of body).
func readMemberName(c *dts_lexer.Cursor) (string, bool) {
	switch {
	case c.Peek() == '}' || c.Eof():
		return "", false
	case c.Peek() == '[':
		start := c.Pos
		c.Advance()
		c.FindMatchingClose('[', ']')
		return c.Source[start:c.Pos], true
	case c.Peek() == '"' || c.Peek() == '\'':
		q := c.Peek()
		start := c.Pos
		c.Advance()
		c.SkipString(q)
		return c.Source[start:c.Pos], true
	case c.Peek() == '#':
		start := c.Pos
		c.Advance()
		if c.IsIdentStart() {
			c.ReadIdent()
		}
		return c.Source[start:c.Pos], true
	case c.IsIdentStart():
		return c.ReadIdent(), true
	}
	return "", false
}

// readOptionalReturnType reads an explicit ": Type" after a parameter-less
// accessor's "()" has already been consumed by the caller's balancer; used
// only for get accessors, whose parameter list is always empty.
func readOptionalReturnType(c *dts_lexer.Cursor) string {
	if c.Peek() == '(' {
		c.Advance()
		c.FindMatchingClose('(', ')')
	}
	c.SkipWhitespaceAndComments()
	if c.Peek() != ':' {
		return ""
	}
	c.Advance()
	c.SkipWhitespaceAndComments()
	start := c.Pos
	skipToReturnTypeEnd(c)
	return strings.TrimSpace(c.Source[start:c.Pos])
}

// skipClassMemberBody advances past a member's body (if present: "{ ... }"
// for methods/accessors) or its statement terminator (if absent: overload
// signatures, abstract members, or bare properties), leaving the cursor
// ready for the next member.
func skipClassMemberBody(c *dts_lexer.Cursor) {
	c.SkipWhitespaceAndComments()
	switch {
	case c.Peek() == '{':
		c.Advance()
		c.FindMatchingClose('{', '}')
	case c.Peek() == ';':
		c.Advance()
	default:
		consumeMemberASI(c)
	}
}

// consumeMemberASI advances past whatever separates this member from the
// next: an explicit ";", or a newline that satisfies class-body ASI.
func consumeMemberASI(c *dts_lexer.Cursor) {
	c.SkipInlineWhitespace()
	if c.Peek() == ';' {
		c.Advance()
		return
	}
	if ok, _ := (*c).CheckASIMember(); ok {
		return
	}
}

// renderConstructor reads a constructor's parameter list, lifts parameter
// properties into separate member declarations, drops private ones
// entirely, and renders "constructor(PARAMS);" using the DTS-safe
// parameter list with every access modifier stripped.
func renderConstructor(c *dts_lexer.Cursor) (string, bool) {
	c.SkipWhitespaceAndComments()
	params := ""
	if c.Peek() == '(' {
		c.Advance()
		start := c.Pos
		c.FindMatchingClose('(', ')')
		params = c.Source[start : c.Pos-1]
	}
	c.SkipWhitespaceAndComments()
	skipClassMemberBody(c)

	rendered, lifted := RebuildParams(params, true)

	var lines []string
	for _, p := range lifted {
		mod := ""
		if p.Modifier == "readonly" || p.Modifier == "override" {
			mod = p.Modifier + " "
		}
		opt := ""
		if p.Optional {
			opt = "?"
		}
		lines = append(lines, mod+p.Name+opt+": "+p.Type+";")
	}
	lines = append(lines, "constructor("+rendered+");")
	return strings.Join(lines, "\n"), true
}
