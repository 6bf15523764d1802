// Package dts_lexer provides character-level primitives over a read-only
// byte view of a TypeScript source file: whitespace/comment skipping,
// string/template-literal/regex skipping, bracket balancing, identifier
// reading, and Automatic Semicolon Insertion probes. There is no token
// stream and no AST here - every primitive advances a single cursor and
// returns, mirroring a hand-written recursive-descent scanner rather than a
// tokenizer feeding a parser.
package dts_lexer

import "unicode/utf8"

// Cursor walks a source string one rune at a time. It never errors: running
// off the end of a string, comment, regex, or bracket run simply stops the
// primitive at EOF, and the caller treats the partial result as terminal.
type Cursor struct {
	Source string
	Pos    int
}

func NewCursor(source string) *Cursor {
	return &Cursor{Source: source}
}

func (c *Cursor) Len() int { return len(c.Source) }

func (c *Cursor) Eof() bool { return c.Pos >= len(c.Source) }

// Peek returns the rune at the cursor without advancing it, or -1 at EOF.
func (c *Cursor) Peek() rune {
	if c.Pos >= len(c.Source) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(c.Source[c.Pos:])
	return r
}

// ByteAt returns the byte at pos+offset, or 0 out of range. Used for quick
// ASCII lookahead where decoding a full rune would be wasted work.
func (c *Cursor) ByteAt(offset int) byte {
	i := c.Pos + offset
	if i < 0 || i >= len(c.Source) {
		return 0
	}
	return c.Source[i]
}

func (c *Cursor) Advance() rune {
	if c.Pos >= len(c.Source) {
		return -1
	}
	r, size := utf8.DecodeRuneInString(c.Source[c.Pos:])
	c.Pos += size
	return r
}

// LastNonSpace returns the last non-whitespace byte strictly before pos, or
// 0 if there isn't one. Used by IsRegexStart to inspect what came before a
// "/" without mutating the cursor.
func (c *Cursor) LastNonSpace(beforePos int) byte {
	i := beforePos - 1
	for i >= 0 {
		b := c.Source[i]
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			i--
			continue
		}
		return b
	}
	return 0
}

// SkipWhitespaceAndComments advances past spaces, tabs, line endings,
// "// ..." line comments, and "/* ... */" block comments (non-nested).
// Returns the verbatim text of any comments skipped, in source order, for
// callers that attach leading comments to a declaration.
func (c *Cursor) SkipWhitespaceAndComments() (comments []string) {
	for !c.Eof() {
		switch c.Peek() {
		case ' ', '\t', '\r', '\n', '\v', '\f':
			c.Advance()
			continue
		}

		if c.ByteAt(0) == '/' && c.ByteAt(1) == '/' {
			start := c.Pos
			for !c.Eof() && c.Peek() != '\n' && c.Peek() != '\r' {
				c.Advance()
			}
			comments = append(comments, c.Source[start:c.Pos])
			continue
		}

		if c.ByteAt(0) == '/' && c.ByteAt(1) == '*' {
			start := c.Pos
			c.Pos += 2
			for !c.Eof() {
				if c.ByteAt(0) == '*' && c.ByteAt(1) == '/' {
					c.Pos += 2
					break
				}
				c.Advance()
			}
			comments = append(comments, c.Source[start:c.Pos])
			continue
		}

		break
	}
	return
}

// SkipInlineWhitespace advances past spaces and tabs only (no newlines, no
// comments). Used by probes that must not cross a line boundary.
func (c *Cursor) SkipInlineWhitespace() {
	for !c.Eof() {
		switch c.Peek() {
		case ' ', '\t':
			c.Advance()
		default:
			return
		}
	}
}

// SkipString advances past the remainder of a quoted string starting right
// after the opening quote, honoring backslash escapes.
func (c *Cursor) SkipString(quote rune) {
	for !c.Eof() {
		r := c.Advance()
		if r == '\\' {
			if !c.Eof() {
				c.Advance()
			}
			continue
		}
		if r == quote {
			return
		}
		if r == '\n' {
			// Unterminated string literals are not valid TS, but we
			// recover by treating the line as the end.
			return
		}
	}
}

// SkipTemplateLiteral advances past a template literal body (the cursor
// should be positioned right after the opening backtick), tracking nested
// "${...}" interpolation depth so balanced braces inside an interpolation
// don't prematurely end the template.
func (c *Cursor) SkipTemplateLiteral() {
	for !c.Eof() {
		r := c.Advance()
		switch r {
		case '\\':
			if !c.Eof() {
				c.Advance()
			}
		case '`':
			return
		case '$':
			if c.Peek() == '{' {
				c.Advance()
				c.skipTemplateInterpolation()
			}
		}
	}
}

func (c *Cursor) skipTemplateInterpolation() {
	depth := 1
	for !c.Eof() && depth > 0 {
		switch c.Peek() {
		case '{':
			depth++
			c.Advance()
		case '}':
			depth--
			c.Advance()
		case '"', '\'':
			q := c.Advance()
			c.SkipString(q)
		case '`':
			c.Advance()
			c.SkipTemplateLiteral()
		case '/':
			if c.IsRegexStart() {
				c.SkipRegex()
			} else {
				c.Advance()
			}
		default:
			c.SkipWhitespaceAndComments()
			if c.Eof() || depth == 0 {
				break
			}
			if c.Peek() == '{' || c.Peek() == '}' || c.Peek() == '"' || c.Peek() == '\'' || c.Peek() == '`' || c.Peek() == '/' {
				continue
			}
			c.Advance()
		}
	}
}

// regexPrecedingWords is the keyword set after which a "/" begins a
// regular expression rather than division.
var regexPrecedingWords = map[string]bool{
	"return": true, "typeof": true, "void": true, "delete": true,
	"throw": true, "new": true, "in": true, "of": true, "case": true,
	"instanceof": true, "yield": true, "await": true,
}

// IsRegexStart disambiguates "/" using the last non-whitespace content
// before the cursor: punctuation from a fixed operator set, or one of a
// fixed keyword set, means the "/" opens a regex rather than dividing.
func (c *Cursor) IsRegexStart() bool {
	i := c.Pos - 1
	for i >= 0 {
		b := c.Source[i]
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' {
			i--
			continue
		}
		break
	}
	if i < 0 {
		return true
	}

	switch c.Source[i] {
	case '=', '(', '[', '!', '&', '|', '?', ':', ',', ';', '{', '}', '^', '~', '+', '-', '*', '%', '<', '>':
		return true
	}

	// Walk back over an identifier/keyword run ending at i.
	j := i
	for j >= 0 && isIdentContinueByte(c.Source[j]) {
		j--
	}
	if j < i {
		word := c.Source[j+1 : i+1]
		return regexPrecedingWords[word]
	}

	return false
}

func isIdentContinueByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// SkipRegex advances past a regular expression literal body and its flags.
// The cursor must be positioned right after the opening "/".
func (c *Cursor) SkipRegex() {
	inClass := false
	for !c.Eof() {
		r := c.Advance()
		switch r {
		case '\\':
			if !c.Eof() {
				c.Advance()
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				for !c.Eof() && isIdentContinueByte(byte(c.Peek())) {
					c.Advance()
				}
				return
			}
		case '\n', '\r':
			return
		}
	}
}

// This unnamed map lists each opening rune with its closer, for
// documentation only; FindMatchingClose takes both explicitly so callers
// can balance any of the four bracket flavours.
var _ = map[rune]rune{'(': ')', '[': ']', '{': '}', '<': '>'}

// FindMatchingClose assumes the cursor sits just after the opening bracket
// and advances it past the matching close, skipping over strings,
// templates, comments, and regexes along the way so brackets embedded in
// them don't confuse the balance. When open=='<' and close=='>', a ">"
// immediately preceded by "=" (i.e. "=>") is not treated as a closer, since
// an arrow inside a generic argument list must not terminate it early.
// Returns true if a matching close was found before EOF.
func (c *Cursor) FindMatchingClose(open, close rune) bool {
	depth := 1
	for !c.Eof() {
		r := c.Peek()
		switch r {
		case open:
			c.Advance()
			depth++
		case close:
			if close == '>' && c.Pos > 0 && c.Source[c.Pos-1] == '=' {
				c.Advance()
				continue
			}
			c.Advance()
			depth--
			if depth == 0 {
				return true
			}
		case '"', '\'':
			c.Advance()
			c.SkipString(r)
		case '`':
			c.Advance()
			c.SkipTemplateLiteral()
		case '/':
			if c.IsRegexStart() {
				c.Advance()
				c.SkipRegex()
			} else if c.ByteAt(1) == '/' || c.ByteAt(1) == '*' {
				c.SkipWhitespaceAndComments()
			} else {
				c.Advance()
			}
		default:
			if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
				c.Advance()
				continue
			}
			c.Advance()
		}
	}
	return false
}

// ReadIdent reads an identifier starting at the cursor (which must already
// be positioned at an identifier-start rune) and returns its text. Unicode
// code points above 127 are permitted anywhere in the identifier.
func (c *Cursor) ReadIdent() string {
	start := c.Pos
	for !c.Eof() {
		r := c.Peek()
		if isIdentContinueRune(r) {
			c.Advance()
			continue
		}
		break
	}
	return c.Source[start:c.Pos]
}

func isIdentStartRune(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || (r >= '0' && r <= '9')
}

func (c *Cursor) IsIdentStart() bool {
	return isIdentStartRune(c.Peek())
}

// MatchWord reports whether the source at the cursor begins with the exact
// word w, followed by a non-identifier boundary (or EOF), without
// consuming it. This is how keyword dispatch tells "class" from
// "classroom".
func (c *Cursor) MatchWord(w string) bool {
	if c.Pos+len(w) > len(c.Source) {
		return false
	}
	if c.Source[c.Pos:c.Pos+len(w)] != w {
		return false
	}
	if c.Pos+len(w) == len(c.Source) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(c.Source[c.Pos+len(w):])
	return !isIdentContinueRune(next)
}

// ConsumeWord is MatchWord plus advancing the cursor past w on success.
func (c *Cursor) ConsumeWord(w string) bool {
	if c.MatchWord(w) {
		c.Pos += len(w)
		return true
	}
	return false
}
