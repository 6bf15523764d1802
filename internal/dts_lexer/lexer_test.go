package dts_lexer

import "testing"

func TestSkipWhitespaceAndComments(t *testing.T) {
	c := NewCursor("   // hello\n/* block */  x")
	comments := c.SkipWhitespaceAndComments()
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d: %v", len(comments), comments)
	}
	if c.Peek() != 'x' {
		t.Fatalf("expected cursor at 'x', got %q", c.Peek())
	}
}

func TestSkipString(t *testing.T) {
	c := NewCursor(`abc\'def' rest`)
	c.SkipString('\'')
	if c.Source[c.Pos:] != " rest" {
		t.Fatalf("unexpected remainder %q", c.Source[c.Pos:])
	}
}

func TestSkipTemplateLiteralWithInterpolation(t *testing.T) {
	c := NewCursor("a ${ `nested ${1}` } b` rest")
	c.SkipTemplateLiteral()
	if c.Source[c.Pos:] != " rest" {
		t.Fatalf("unexpected remainder %q", c.Source[c.Pos:])
	}
}

func TestIsRegexStartAfterOperator(t *testing.T) {
	c := NewCursor("x = /foo/")
	c.Pos = 4 // positioned at the "/"
	if !c.IsRegexStart() {
		t.Fatalf("expected regex start after '='")
	}
}

func TestIsRegexStartAfterDivision(t *testing.T) {
	c := NewCursor("a / b")
	c.Pos = 2 // positioned at the "/"
	if c.IsRegexStart() {
		t.Fatalf("expected division, not regex, after identifier")
	}
}

func TestIsRegexStartAfterKeyword(t *testing.T) {
	c := NewCursor("return /foo/")
	c.Pos = 7
	if !c.IsRegexStart() {
		t.Fatalf("expected regex start after 'return'")
	}
}

func TestSkipRegexWithCharacterClass(t *testing.T) {
	c := NewCursor(`[a/b]/gi rest`)
	c.SkipRegex()
	if c.Source[c.Pos:] != " rest" {
		t.Fatalf("unexpected remainder %q", c.Source[c.Pos:])
	}
}

func TestFindMatchingCloseIgnoresArrowInsideGenerics(t *testing.T) {
	c := NewCursor("T, U = () => void>")
	ok := c.FindMatchingClose('<', '>')
	if !ok {
		t.Fatalf("expected to find matching close")
	}
	if c.Source[:c.Pos] != "T, U = () => void>" {
		t.Fatalf("consumed wrong span: %q", c.Source[:c.Pos])
	}
}

func TestFindMatchingCloseSkipsStringsAndBraces(t *testing.T) {
	c := NewCursor(`"}" , { a: 1 })`)
	ok := c.FindMatchingClose('(', ')')
	if !ok {
		t.Fatalf("expected to find matching close")
	}
	if c.Source[c.Pos-1] != ')' {
		t.Fatalf("cursor not positioned after close paren")
	}
}

func TestReadIdentUnicode(t *testing.T) {
	c := NewCursor("caféName rest")
	name := c.ReadIdent()
	if name != "caféName" {
		t.Fatalf("unexpected identifier %q", name)
	}
}

func TestMatchWordBoundary(t *testing.T) {
	c := NewCursor("classroom")
	if c.MatchWord("class") {
		t.Fatalf("'class' should not match inside 'classroom'")
	}
	c2 := NewCursor("class Foo")
	if !c2.MatchWord("class") {
		t.Fatalf("expected 'class' to match")
	}
}
