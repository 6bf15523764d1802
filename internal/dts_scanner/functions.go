package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_ast"
	"github.com/stacksjs/dtsx/internal/dts_lexer"
)

// scanFunction reads a function declaration from just after the "function"
// keyword (generator "*", name, generics, parameters, optional explicit
// return type, and either a body or a bare ";") and emits
// "[export ]declare function NAME<GENERICS>(PARAMS): RETURN;". When no
// explicit return type is present, the default-return-type table fills one
// in from the async/generator combination.
func (s *scanner) scanFunction(stmtStart int, comments []string, exported, isAsync, ambient bool) {
	c := s.cur
	c.SkipWhitespaceAndComments()

	isGenerator := false
	if c.Peek() == '*' {
		c.Advance()
		c.SkipWhitespaceAndComments()
		isGenerator = true
	}

	name := "default"
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
	hasExplicitReturn := false
	if c.Peek() == ':' {
		c.Advance()
		c.SkipWhitespaceAndComments()
		start := c.Pos
		skipToReturnTypeEnd(c)
		returnType = strings.TrimSpace(c.Source[start:c.Pos])
		hasExplicitReturn = true
	}

	c.SkipWhitespaceAndComments()
	hasBody := c.Peek() == '{'
	if hasBody {
		c.Advance()
		c.FindMatchingClose('{', '}')
	} else if c.Peek() == ';' {
		c.Advance()
	} else {
		s.consumeOptionalSemicolon()
	}

	if !hasExplicitReturn {
		returnType = defaultFunctionReturnType(isAsync, isGenerator)
	}

	renderedParams, _ := RebuildParams(params, false)

	var b strings.Builder
	if exported {
		b.WriteString("export ")
	}
	b.WriteString("declare function ")
	b.WriteString(name)
	b.WriteString(generics)
	b.WriteString("(")
	b.WriteString(renderedParams)
	b.WriteString("): ")
	b.WriteString(returnType)
	b.WriteString(";")

	idx := s.append(dts_ast.Declaration{
		Kind: dts_ast.KindFunction, Name: name, Text: withIndent(b.String(), s.indent),
		IsExported: exported || ambient, IsAsync: isAsync, IsGenerator: isGenerator,
		Generics: generics, ReturnType: returnType, HasBody: hasBody,
		LeadingComments: comments, Start: stmtStart, End: c.Pos,
	})
	s.bodyBearing[idx] = hasBody
}

// defaultFunctionReturnType implements the four-entry default-return-type
// table used whenever a function declaration has no explicit return
// annotation.
func defaultFunctionReturnType(isAsync, isGenerator bool) string {
	switch {
	case isAsync && isGenerator:
		return "AsyncGenerator<unknown, void, unknown>"
	case isGenerator:
		return "Generator<unknown, void, unknown>"
	case isAsync:
		return "Promise<void>"
	default:
		return "void"
	}
}

// skipToReturnTypeEnd advances the cursor past a function return-type
// annotation, stopping at a top-level ";" or the point where the function
// body begins. A top-level "{" only extends the type - rather than ending
// it, the way the function body's own opening brace would - when it can
// still be the start of a type atom: the very beginning of the annotation,
// or right after a top-level union/intersection/conditional operator
// ("|", "&", "?", ":"). That covers return types like "(): { a: number }"
// and "(): Foo | { b: string }" without mistaking their object-type
// literal for the body. Once a closed "{...}" is reached and nothing
// continues the type, the same word-suffix heuristic class-member ASI
// uses (spec.md §9: "|", "&", "is", "extends", ...) decides whether a
// further union arm follows on the next line or the body starts here.
// The same check applies at a top-level newline after a complete type, so
// a body-less overload signature without ";" ends at its own line.
func skipToReturnTypeEnd(c *dts_lexer.Cursor) {
	depth := 0
	expectTypeAtom := true
	for !c.Eof() {
		r := c.Peek()
		switch r {
		case '(', '[', '<':
			depth++
			expectTypeAtom = false
		case ')', ']':
			depth--
		case '>':
			if depth > 0 {
				depth--
			}
		case '"', '\'':
			c.Advance()
			c.SkipString(r)
			expectTypeAtom = false
			continue
		case '`':
			c.Advance()
			c.SkipTemplateLiteral()
			expectTypeAtom = false
			continue
		case '{':
			if depth == 0 {
				if !expectTypeAtom {
					return
				}
				skipBraceBalanced(c)
				if ends, _ := c.CheckASIMember(); ends {
					return
				}
				expectTypeAtom = true
				continue
			}
			depth++
		case '}':
			depth--
		case ';':
			if depth == 0 {
				return
			}
		case '|', '&', '?', ':':
			if depth == 0 {
				expectTypeAtom = true
				c.Advance()
				continue
			}
		case '\n':
			if depth == 0 && !expectTypeAtom {
				if ends, _ := c.CheckASIMember(); ends {
					return
				}
			}
		default:
			if depth == 0 && r != ' ' && r != '\t' && r != '\n' && r != '\r' {
				expectTypeAtom = false
			}
		}
		c.Advance()
	}
}

// skipBraceBalanced advances the cursor past a "{...}" block, honoring
// nested braces, strings, and template literals, leaving the cursor just
// past the matching close. The cursor must be positioned on the opening
// "{".
func skipBraceBalanced(c *dts_lexer.Cursor) {
	depth := 0
	for !c.Eof() {
		switch c.Peek() {
		case '{':
			depth++
		case '}':
			depth--
			c.Advance()
			if depth == 0 {
				return
			}
			continue
		case '"', '\'':
			r := c.Peek()
			c.Advance()
			c.SkipString(r)
			continue
		case '`':
			c.Advance()
			c.SkipTemplateLiteral()
			continue
		}
		c.Advance()
	}
}

// skipToAnnotationEnd advances the cursor past a variable or class-property
// type annotation, stopping at a top-level ";", a top-level "=" that
// begins an initializer (not "==" or "=>"), or - when neither follows on
// the same logical line - the point where the next declaration begins,
// per the same word-suffix heuristic (spec.md §9) class-member ASI uses.
// Unlike a return type, a top-level "{" here is always part of the
// annotation itself (an object-type literal), never a function body, so
// it is simply balanced rather than disambiguated.
func skipToAnnotationEnd(c *dts_lexer.Cursor) {
	depth := 0
	for !c.Eof() {
		r := c.Peek()
		switch r {
		case '(', '[', '<', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if depth > 0 {
				depth--
			}
		case '"', '\'':
			c.Advance()
			c.SkipString(r)
			continue
		case '`':
			c.Advance()
			c.SkipTemplateLiteral()
			continue
		case ';':
			if depth == 0 {
				return
			}
		case '=':
			if depth == 0 && c.ByteAt(1) != '=' && c.ByteAt(1) != '>' {
				return
			}
		case '\n':
			if depth == 0 {
				if ends, _ := c.CheckASIMember(); ends {
					return
				}
			}
		}
		c.Advance()
	}
}

// removeOverloadImplementations drops the body-bearing signatures of an
// overloaded function declaration set: every body-bearing KindFunction
// declaration whose name is shared by another KindFunction declaration is
// removed, since an implementation signature is TypeScript-internal and
// has no place in a declaration file next to its overload signatures.
func (s *scanner) removeOverloadImplementations() {
	if len(s.bodyBearing) == 0 {
		return
	}

	counts := map[string]int{}
	for _, d := range s.decls {
		if d.Kind == dts_ast.KindFunction {
			counts[d.Name]++
		}
	}

	var kept []dts_ast.Declaration
	for i, d := range s.decls {
		if d.Kind == dts_ast.KindFunction && s.bodyBearing[i] && counts[d.Name] > 1 {
			continue
		}
		kept = append(kept, d)
	}
	s.decls = kept
}
