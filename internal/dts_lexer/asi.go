package dts_lexer

// typeContinuationWords are keywords that, appearing right after a newline,
// mean the type annotation continues onto the next line rather than the
// member or statement ending (e.g. a multi-line conditional type).
var typeContinuationWords = map[string]bool{
	"extends": true, "keyof": true, "typeof": true, "infer": true,
	"is": true, "as": true, "in": true,
}

// CheckASITopLevel is a peek-only probe: it advances a scratch cursor past
// whitespace and comments and reports whether what follows can start a new
// top-level statement. It never mutates c itself - callers pass a copy when
// they only want to look ahead, and commit by copying the scratch cursor
// back when they want to consume the skipped whitespace.
func (c Cursor) CheckASITopLevel() (ok bool, after Cursor) {
	c.SkipWhitespaceAndComments()
	if c.Eof() {
		return true, c
	}
	switch c.Peek() {
	case ';', '}':
		return true, c
	case '|', '&', '.', '?', ':':
		// A leading operator continues the previous line's type or
		// expression rather than starting a new statement.
		return false, c
	}
	if c.IsIdentStart() {
		start := c.Pos
		word := c.ReadIdent()
		c.Pos = start
		if typeContinuationWords[word] {
			return false, c
		}
	}
	// Any other statement-starting keyword or identifier counts; ASI only
	// needs to know "does a new statement plausibly begin here", not what
	// kind it is.
	return true, c
}

// CheckASIMember probes whether the next non-whitespace, non-comment
// content terminates the current class member (a new modifier/member
// starts, or a closing brace) rather than continuing its type. Returns
// false when a type-continuation operator or keyword follows, meaning the
// member's signature spans the newline.
func (c Cursor) CheckASIMember() (ok bool, after Cursor) {
	c.SkipWhitespaceAndComments()
	if c.Eof() {
		return true, c
	}

	switch c.Peek() {
	case '}':
		return true, c
	case '|', '&', '.', '?', ':':
		return false, c
	}

	if c.IsIdentStart() {
		start := c.Pos
		word := c.ReadIdent()
		c.Pos = start
		if typeContinuationWords[word] {
			return false, c
		}
	}

	return true, c
}
