package dts_infer

import "strings"

func inferQuotedString(expr string, opts Options) Result {
	if opts.IsConst && !opts.UnionContext {
		return Result{Type: expr, Default: expr, HasDefault: true}
	}
	return Result{Type: "string", Default: expr, HasDefault: true}
}

func inferTemplateLiteral(expr string, opts Options) Result {
	if hasTopLevelInterpolation(expr) {
		return Result{Type: "string"}
	}
	if opts.IsConst && !opts.UnionContext {
		return Result{Type: expr, Default: expr, HasDefault: true}
	}
	return Result{Type: "string"}
}

func hasTopLevelInterpolation(expr string) bool {
	for i := 0; i+1 < len(expr); i++ {
		if expr[i] == '\\' {
			i++
			continue
		}
		if expr[i] == '$' && expr[i+1] == '{' {
			return true
		}
	}
	return false
}

// inferNumericOrBigint recognizes numeric literals (decimal, hex, octal,
// binary, scientific notation, with optional underscore separators) and
// the BigInt literal suffix "n".
func inferNumericOrBigint(expr string, opts Options) (Result, bool) {
	s := expr
	if s == "" {
		return Result{}, false
	}
	i := 0
	if s[i] == '-' || s[i] == '+' {
		i++
	}
	if i >= len(s) || !isDigit(s[i]) {
		return Result{}, false
	}

	start := i
	if s[i] == '0' && i+1 < len(s) && (s[i+1] == 'x' || s[i+1] == 'X' || s[i+1] == 'o' || s[i+1] == 'O' || s[i+1] == 'b' || s[i+1] == 'B') {
		i += 2
		for i < len(s) && (isHexDigit(s[i]) || s[i] == '_') {
			i++
		}
	} else {
		for i < len(s) && (isDigit(s[i]) || s[i] == '_') {
			i++
		}
		if i < len(s) && s[i] == '.' {
			i++
			for i < len(s) && (isDigit(s[i]) || s[i] == '_') {
				i++
			}
		}
		if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
			j := i + 1
			if j < len(s) && (s[j] == '+' || s[j] == '-') {
				j++
			}
			if j < len(s) && isDigit(s[j]) {
				i = j
				for i < len(s) && isDigit(s[i]) {
					i++
				}
			}
		}
	}

	isBigInt := false
	if i < len(s) && s[i] == 'n' {
		isBigInt = true
		i++
	}

	if i != len(s) || i == start {
		return Result{}, false
	}

	literal := expr
	if isBigInt {
		if opts.IsConst && !opts.UnionContext {
			return Result{Type: literal, Default: literal, HasDefault: true}, true
		}
		return Result{Type: "bigint", Default: literal, HasDefault: true}, true
	}

	if opts.IsConst && !opts.UnionContext {
		return Result{Type: literal, Default: literal, HasDefault: true}, true
	}
	return Result{Type: "number", Default: literal, HasDefault: true}, true
}

func isDigit(b byte) bool    { return b >= '0' && b <= '9' }
func isHexDigit(b byte) bool { return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') }

// splitTopLevelCommas splits s at commas that are not nested inside
// strings, template literals, or any of the four bracket flavours.
func splitTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	angles := 0
	start := 0
	i := 0
	for i < len(s) {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case '<':
			depth++
			angles++
		case ')', ']', '}':
			depth--
		case '>':
			// Only treat as a closer when it plausibly matches a generic
			// open; a lone ">" from a comparison is far more common at
			// this granularity, so only decrement when we've seen a "<".
			// The ">" of an arrow "=>" never closes one.
			if angles > 0 && (i == 0 || s[i-1] != '=') {
				angles--
				depth--
			}
		case '"', '\'':
			i = skipStringLiteral(s, i)
			continue
		case '`':
			i = skipTemplateLiteralSpan(s, i)
			continue
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
		i++
	}
	if start <= len(s) {
		tail := strings.TrimSpace(s[start:])
		if tail != "" || len(parts) > 0 {
			parts = append(parts, tail)
		}
	}
	return parts
}

func skipStringLiteral(s string, i int) int {
	quote := s[i]
	i++
	for i < len(s) {
		if s[i] == '\\' {
			i += 2
			continue
		}
		if s[i] == quote {
			return i + 1
		}
		i++
	}
	return i
}

func skipTemplateLiteralSpan(s string, i int) int {
	i++
	depth := 0
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case '`':
			if depth == 0 {
				return i + 1
			}
		case '$':
			if i+1 < len(s) && s[i+1] == '{' {
				depth++
				i++
			}
		case '}':
			if depth > 0 {
				depth--
			}
		}
		i++
	}
	return i
}
