// Package dts_infer narrows the type of an untyped const/let/var binding or
// class property from its initializer expression, and opportunistically
// produces a clean "@defaultValue" payload alongside it. It has no
// knowledge of declarations, imports, or emission order - it is a pure
// function from initializer text to (type, default) pairs, called by the
// scanner while it shapes a variable or class-property declaration.
package dts_infer

import "strings"

// maxDepth bounds recursion through nested array/object literals and arrow
// bodies. Past this depth inference gives up rather than building
// arbitrarily large types from arbitrarily nested initializers.
const maxDepth = 6

// Options configures one inference call.
type Options struct {
	// IsConst marks the binding as immutable (a "const" declaration, or a
	// value wrapped in "as const"): literals are preserved instead of
	// widened to their base type.
	IsConst bool

	// UnionContext marks an array-element position: literals are always
	// widened here regardless of IsConst, so a mixed-type array infers a
	// sane union rather than a tuple of distinct literal types.
	UnionContext bool

	depth int
}

// Result is what inference produces for one expression.
type Result struct {
	// Type is the declaration-file type string.
	Type string

	// Default is a clean "@defaultValue" payload built alongside the type,
	// valid only when HasDefault is true. It is empty for values that
	// contain any runtime expression, "as const" subtree, or subexpression
	// complex enough that a plain literal can't represent it.
	Default    string
	HasDefault bool
}

// Infer narrows expr (already trimmed) into a declaration-file type plus an
// optional clean default payload.
func Infer(expr string, opts Options) Result {
	return inferAt(strings.TrimSpace(expr), opts)
}

func inferAt(expr string, opts Options) Result {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Result{Type: "unknown"}
	}

	if opts.depth > maxDepth {
		switch expr[0] {
		case '{':
			return Result{Type: "Record<string, unknown>"}
		case '[':
			return Result{Type: "unknown[]"}
		default:
			return Result{Type: "unknown"}
		}
	}

	// Trailing "as const" is stripped and re-dispatched with IsConst forced
	// on, unless the subtree is itself an array or plain scalar literal
	// (those are handled directly inside their own branches so the tuple /
	// literal-preservation rules apply precisely once).
	if rest, ok := stripTrailingAsConst(expr); ok {
		inner := strings.TrimSpace(rest)
		if len(inner) > 0 && inner[0] != '[' && !isScalarLiteral(inner) {
			sub := opts
			sub.IsConst = true
			return inferAt(inner, sub)
		}
		expr = inner
		opts.IsConst = true
	}

	if strings.HasPrefix(expr, "BigInt(") {
		return Result{Type: "bigint"}
	}
	if strings.HasPrefix(expr, "Symbol.for(") || expr == "Symbol()" || strings.HasPrefix(expr, "Symbol(") {
		return Result{Type: "symbol"}
	}
	if idx := strings.IndexByte(expr, '`'); idx > 0 && isTaggedTemplateTag(expr[:idx]) {
		return Result{Type: "string"}
	}

	switch expr[0] {
	case '"', '\'':
		return inferQuotedString(expr, opts)
	case '`':
		return inferTemplateLiteral(expr, opts)
	case '[':
		return inferArrayLiteral(expr, opts)
	case '{':
		return inferObjectLiteral(expr, opts)
	}

	if strings.HasPrefix(expr, "new ") {
		return inferNewExpression(expr)
	}

	if strings.HasPrefix(expr, "Promise.resolve(") {
		inner := strings.TrimSuffix(strings.TrimPrefix(expr, "Promise.resolve("), ")")
		sub := inferAt(inner, Options{depth: opts.depth + 1})
		return Result{Type: "Promise<" + sub.Type + ">"}
	}
	if strings.HasPrefix(expr, "Promise.reject(") {
		return Result{Type: "Promise<never>"}
	}
	if strings.HasPrefix(expr, "Promise.all(") {
		inner := strings.TrimSuffix(strings.TrimPrefix(expr, "Promise.all("), ")")
		inner = strings.TrimSpace(inner)
		if strings.HasPrefix(inner, "[") && strings.HasSuffix(inner, "]") {
			elems := splitTopLevelCommas(inner[1 : len(inner)-1])
			parts := make([]string, 0, len(elems))
			for _, e := range elems {
				parts = append(parts, inferAt(e, Options{depth: opts.depth + 1}).Type)
			}
			return Result{Type: "Promise<[" + strings.Join(parts, ", ") + "]>"}
		}
		return Result{Type: "Promise<unknown>"}
	}

	if strings.HasPrefix(expr, "await ") {
		return Result{Type: "unknown"}
	}

	if isArrowOrFunctionExpr(expr) {
		return inferFunctionExpr(expr, opts)
	}

	if r, ok := inferNumericOrBigint(expr, opts); ok {
		return r
	}

	switch expr {
	case "true", "false":
		if opts.IsConst && !opts.UnionContext {
			return Result{Type: expr, Default: expr, HasDefault: true}
		}
		return Result{Type: "boolean", Default: expr, HasDefault: true}
	case "null":
		return Result{Type: "null", Default: "null", HasDefault: true}
	case "undefined":
		return Result{Type: "undefined"}
	}

	return Result{Type: "unknown"}
}

func stripTrailingAsConst(expr string) (string, bool) {
	trimmed := strings.TrimRight(expr, " \t\n")
	const suffix = "as const"
	if strings.HasSuffix(trimmed, suffix) {
		before := trimmed[:len(trimmed)-len(suffix)]
		if strings.HasSuffix(before, " ") {
			return strings.TrimSpace(before), true
		}
	}
	return expr, false
}

func isTaggedTemplateTag(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !(r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				return false
			}
		} else if !(r == '_' || r == '$' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

func isScalarLiteral(expr string) bool {
	if expr == "" {
		return false
	}
	switch expr {
	case "true", "false", "null", "undefined":
		return true
	}
	if expr[0] == '"' || expr[0] == '\'' || expr[0] == '`' {
		return true
	}
	if _, ok := inferNumericOrBigint(expr, Options{}); ok {
		return true
	}
	return false
}
