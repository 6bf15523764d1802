package dts_infer

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_lexer"
)

var builtinNewTypes = map[string]string{
	"Date": "Date",
	"Map": "Map<any, any>",
	"Set": "Set<any>",
	"WeakMap": "WeakMap<any, any>",
	"WeakSet": "WeakSet<any>",
	"RegExp": "RegExp",
	"Error": "Error",
	"Array": "any[]",
	"Object": "object",
	"Function": "Function",
	"Promise": "Promise<any>",
}

// inferNewExpression handles "new X<...>(...)": extracts the class name
// and any explicit type arguments, falling back to a fixed table of
// built-in constructors, and otherwise the bare class name.
func inferNewExpression(expr string) Result {
	rest := strings.TrimSpace(strings.TrimPrefix(expr, "new "))
	i := 0
	for i < len(rest) && isIdentByte(rest[i]) {
		i++
	}
	name := rest[:i]
	if name == "" {
		return Result{Type: "unknown"}
	}

	if i < len(rest) && rest[i] == '<' {
		c := &dts_lexer.Cursor{Source: rest, Pos: i + 1}
		if c.FindMatchingClose('<', '>') {
			typeArgs := rest[i : c.Pos]
			return Result{Type: name + typeArgs}
		}
	}

	if builtin, ok := builtinNewTypes[name]; ok {
		return Result{Type: builtin}
	}
	return Result{Type: name}
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// lengthThresholdStrict and lengthThresholdLoose are the two length
// thresholds: a function-type expression collapses to
// "(...args: any[]) => any" once it is long and structurally complex enough
// that reproducing it exactly isn't worth it. The complexity check needs
// both more than two "=>" and more than five "<" to trigger.
const (
	lengthThresholdStrict = 100
	lengthThresholdLoose = 200
)

func isArrowOrFunctionExpr(expr string) bool {
	body := expr
	if strings.HasPrefix(body, "async ") {
		body = body[len("async "):]
	}
	if strings.HasPrefix(body, "function") {
		return true
	}
	return findTopLevelArrow(expr) >= 0
}

// findTopLevelArrow returns the byte offset of the first "=>" that appears
// outside of any bracket, string, or template nesting, or -1.
func findTopLevelArrow(expr string) int {
	depth := 0
	i := 0
	for i < len(expr) {
		switch expr[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if depth > 0 {
				depth--
			}
		case '"', '\'':
			i = skipStringLiteral(expr, i)
			continue
		case '`':
			i = skipTemplateLiteralSpan(expr, i)
			continue
		case '=':
			if depth == 0 && i+1 < len(expr) && expr[i+1] == '>' {
				return i
			}
		}
		i++
	}
	return -1
}

func inferFunctionExpr(expr string, opts Options) Result {
	isAsync := strings.HasPrefix(expr, "async ")
	body := expr
	if isAsync {
		body = strings.TrimSpace(body[len("async "):])
	}

	if strings.HasPrefix(body, "function") {
		// Block-bodied function expressions always return unknown: we
		// can't know the return type without executing it.
		ret := "unknown"
		if isAsync {
			ret = "Promise<unknown>"
		}
		return Result{Type: "(...args: any[]) => " + ret}
	}

	arrow := findTopLevelArrow(body)
	if arrow < 0 {
		return Result{Type: "unknown"}
	}
	header := strings.TrimSpace(body[:arrow])
	after := strings.TrimSpace(body[arrow+2:])

	if len(expr) > lengthThresholdLoose {
		if tooComplexArrow(expr) {
			return Result{Type: "(...args: any[]) => any"}
		}
	} else if len(expr) > lengthThresholdStrict && tooComplexArrow(expr) {
		return Result{Type: "(...args: any[]) => any"}
	}

	params := renderMethodSignature(header)

	// A block body ("=> { ... }") always returns unknown; an expression
	// body recurses unless we're already inside a union (array-element)
	// context, where it widens to unknown too.
	var retType string
	if strings.HasPrefix(after, "{") {
		retType = "unknown"
	} else if opts.UnionContext {
		retType = "unknown"
	} else if findTopLevelArrow(after) >= 0 {
		// Higher-order function: reconstruct the nested arrow shape.
		inner := inferFunctionExpr(after, Options{depth: opts.depth + 1})
		retType = inner.Type
	} else {
		inner := inferAt(after, Options{depth: opts.depth + 1})
		retType = inner.Type
	}

	if isAsync {
		retType = "Promise<" + retType + ">"
	}

	return Result{Type: params + " => " + retType}
}

func tooComplexArrow(expr string) bool {
	arrows := strings.Count(expr, "=>")
	angles := strings.Count(expr, "<")
	return arrows > 2 && angles > 5
}

// renderMethodSignature renders a bare parameter-list header (optionally
// preceded by "<Generics>") as "<Generics>(name: type, ...)" with every
// parameter reduced to its DTS-safe form. Used both for object-literal
// method shorthand and for arrow-function headers.
func renderMethodSignature(header string) string {
	header = strings.TrimSpace(header)
	generics := ""
	if strings.HasPrefix(header, "<") {
		c := &dts_lexer.Cursor{Source: header, Pos: 1}
		if c.FindMatchingClose('<', '>') {
			generics = header[:c.Pos]
			header = strings.TrimSpace(header[c.Pos:])
		}
	}

	params := ""
	if strings.HasPrefix(header, "(") {
		c := &dts_lexer.Cursor{Source: header, Pos: 1}
		if c.FindMatchingClose('(', ')') {
			params = header[1 : c.Pos-1]
		}
	} else {
		// Single bare identifier arrow parameter: "x => ...".
		params = header + ": unknown"
		return generics + "(" + params + ")"
	}

	parts := splitTopLevelCommas(params)
	rendered := make([]string, 0, len(parts))
	for _, p := range parts {
		rendered = append(rendered, renderBareParam(p))
	}
	return generics + "(" + strings.Join(rendered, ", ") + ")"
}

// renderBareParam gives an untyped parameter a DTS-safe "unknown" type,
// since a plain method-shorthand or arrow header inside a value position
// carries no annotations of its own; full parameter reshaping (defaults,
// rest, destructuring) is the scanner's DTS-safe parameter rebuilder.
func renderBareParam(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if idx := strings.Index(p, ":"); idx >= 0 {
		return p
	}
	if strings.HasPrefix(p, "...") {
		return p + ": unknown[]"
	}
	return p + ": unknown"
}
