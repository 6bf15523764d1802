package dts_scanner

import (
	"strings"

	"github.com/stacksjs/dtsx/internal/dts_infer"
	"github.com/stacksjs/dtsx/internal/dts_lexer"
)

var constructorModifiers = []string{"public", "private", "protected", "readonly", "override"}

// ParamProperty is a constructor parameter carrying an access modifier: it
// implicitly declares a matching instance member.
type ParamProperty struct {
	Modifier string
	Name string
	Type string
	Optional bool
}

// RebuildParams reshapes a parameter list (the raw text between, but not
// including, the parentheses) into its DTS-safe form: no default values, no
// decorators, no constructor modifiers, and no destructuring beyond what a
// declaration file syntactically permits
// rebuilding"). When fromConstructor is true, parameter properties are
// lifted out and returned separately; private ones are dropped from the
// rendered list entirely.
func RebuildParams(raw string, fromConstructor bool) (rendered string, lifted []ParamProperty) {
	if !fromConstructor && isFastPathParams(raw) {
		return raw, nil
	}

	parts := splitTopLevelCommasParams(raw)
	rendered = ""
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		text, prop, drop := rebuildOneParam(p, fromConstructor)
		if prop != nil {
			lifted = append(lifted, *prop)
		}
		if drop {
			continue
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return strings.Join(out, ", "), lifted
}

// isFastPathParams implements the pre-checked fast path : a
// parameter list that's already free of defaults, decorators, rest
// parameters, destructuring, and modifier keywords, with at least one ":"
// per comma-delimited slot and no embedded newlines, needs no reshaping.
func isFastPathParams(raw string) bool {
	if strings.ContainsAny(raw, "\n{[=@") || strings.Contains(raw, "...") {
		return false
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	for _, p := range splitTopLevelCommasParams(raw) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, ":") {
			return false
		}
		for _, m := range constructorModifiers {
			if strings.HasPrefix(p, m+" ") {
				return false
			}
		}
	}
	return true
}

func splitTopLevelCommasParams(s string) []string {
	var parts []string
	depth := 0
	start := 0
	i := 0
	for i < len(s) {
		switch s[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if depth > 0 && !(i > 0 && s[i-1] == '=') {
				depth--
			}
		case '"', '\'':
			q := s[i]
			i++
			for i < len(s) && s[i] != q {
				if s[i] == '\\' {
					i++
				}
				i++
			}
		case '`':
			i++
			for i < len(s) && s[i] != '`' {
				if s[i] == '\\' {
					i++
				}
				i++
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
		i++
	}
	if start < len(s) || len(parts) > 0 {
		parts = append(parts, s[start:])
	}
	return parts
}

// rebuildOneParam reshapes a single parameter. drop reports a private
// constructor parameter property, which is lifted nowhere and also removed
// from the rendered parameter list
// are dropped").
func rebuildOneParam(p string, fromConstructor bool) (text string, prop *ParamProperty, drop bool) {
	p = strings.TrimSpace(stripLeadingDecorators(p))

	modifier := ""
	isPrivate := false
	for {
		matched := false
		for _, m := range constructorModifiers {
			if p == m || strings.HasPrefix(p, m+" ") {
				modifier = m
				isPrivate = isPrivate || m == "private"
				p = strings.TrimSpace(strings.TrimPrefix(p, m))
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}

	isRest := strings.HasPrefix(p, "...")
	if isRest {
		p = strings.TrimPrefix(p, "...")
	}

	name, typeAnn, defaultVal, hasType, hasDefault := splitParam(p)

	if hasType {
		typeAnn = reindentDestructure(strings.TrimSpace(typeAnn))
	} else if hasDefault {
		typeAnn = inferDefaultParamType(defaultVal)
	} else {
		typeAnn = "unknown"
	}

	optional := hasDefault && !isRest
	name = reindentDestructure(strings.TrimSpace(name))

	if fromConstructor && modifier != "" {
		if isPrivate {
			return "", nil, true
		}
		prop = &ParamProperty{Modifier: modifier, Name: name, Type: typeAnn, Optional: optional}
	}

	rendered := name
	if optional {
		rendered += "?"
	}
	rendered += ": " + typeAnn
	if isRest {
		rendered = "..." + name + ": " + ensureArrayType(typeAnn)
	}
	return rendered, prop, false
}

func ensureArrayType(t string) string {
	if strings.HasSuffix(t, "[]") {
		return t
	}
	if t == "unknown" {
		return "unknown[]"
	}
	return t
}

func stripLeadingDecorators(p string) string {
	for strings.HasPrefix(strings.TrimSpace(p), "@") {
		p = strings.TrimSpace(p)
		c := &dts_lexer.Cursor{Source: p, Pos: 1}
		for !c.Eof() && c.IsIdentStart() {
			c.ReadIdent()
			if c.Peek() == '.' {
				c.Advance()
				continue
			}
			break
		}
		if c.Peek() == '(' {
			c.Advance()
			c.FindMatchingClose('(', ')')
		}
		p = p[c.Pos:]
	}
	return p
}

// splitParam finds the first top-level ":" (the type annotation) and the
// first top-level "=" that isn't part of a comparison/arrow operator (the
// default value), splitting a single already-isolated parameter into its
// name, explicit type, and default-value pieces.
func splitParam(p string) (name, typeAnn, defaultVal string, hasType, hasDefault bool) {
	colon := topLevelIndex(p, ':')
	eq := topLevelAssignIndex(p)

	switch {
	case colon >= 0 && (eq < 0 || colon < eq):
		name = p[:colon]
		if eq >= 0 {
			typeAnn = p[colon+1 : eq]
			defaultVal = strings.TrimSpace(p[eq+1:])
			hasDefault = true
		} else {
			typeAnn = p[colon+1:]
		}
		name = stripParamDefaultMarker(name)
		hasType = true
	case eq >= 0:
		name = stripParamDefaultMarker(p[:eq])
		defaultVal = strings.TrimSpace(p[eq+1:])
		hasDefault = true
	default:
		name = stripParamDefaultMarker(p)
	}
	return
}

// stripParamDefaultMarker trims the whitespace around a parameter name. An
// explicit "?" marker is kept as written, so "name?: type" without a
// default passes through the hasType branch above untouched.
func stripParamDefaultMarker(name string) string {
	return strings.TrimSpace(name)
}

func topLevelIndex(s string, target byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if depth > 0 && !(i > 0 && s[i-1] == '=') {
				depth--
			}
		case '"', '\'', '`':
			q := s[i]
			i++
			for i < len(s) && s[i] != q {
				if s[i] == '\\' {
					i++
				}
				i++
			}
		default:
			if depth == 0 && s[i] == target {
				return i
			}
		}
	}
	return -1
}

func topLevelAssignIndex(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if depth > 0 && !(i > 0 && s[i-1] == '=') {
				depth--
			}
		case '"', '\'', '`':
			q := s[i]
			i++
			for i < len(s) && s[i] != q {
				if s[i] == '\\' {
					i++
				}
				i++
			}
		case '=':
			if depth != 0 {
				continue
			}
			prev := byte(0)
			if i > 0 {
				prev = s[i-1]
			}
			next := byte(0)
			if i+1 < len(s) {
				next = s[i+1]
			}
			if prev == '=' || prev == '!' || prev == '<' || prev == '>' || next == '=' || next == '>' {
				continue
			}
			return i
		}
	}
	return -1
}

// inferDefaultParamType infers a parameter's type from its default-value
// literal when the source omits an explicit annotation.
func inferDefaultParamType(defaultVal string) string {
	v := strings.TrimSpace(defaultVal)
	switch v {
	case "true", "false":
		return "boolean"
	}
	if v == "" {
		return "unknown"
	}
	if v[0] == '"' || v[0] == '\'' || v[0] == '`' {
		return "string"
	}
	if v[0] == '[' {
		return "unknown[]"
	}
	if v[0] == '{' {
		return "Record<string, unknown>"
	}
	r := dts_infer.Infer(v, dts_infer.Options{})
	if isNumericLikeType(r.Type) {
		return "number"
	}
	return "unknown"
}

func isNumericLikeType(t string) bool {
	if t == "number" {
		return true
	}
	if t == "" {
		return false
	}
	for _, r := range t {
		if !(r >= '0' && r <= '9' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// reindentDestructure renders a destructured parameter name's text with
// internal defaults and "..." rest markers stripped, re-indenting overlong
// multi-line destructures to a two-space base.
func reindentDestructure(text string) string {
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		return text
	}

	stripped := stripDestructureDefaults(text)
	if !strings.Contains(stripped, "\n") {
		return stripped
	}

	lines := strings.Split(stripped, "\n")
	minIndent := -1
	for _, l := range lines[1:] {
		trimmed := strings.TrimLeft(l, " \t")
		if trimmed == "" {
			continue
		}
		n := len(l) - len(trimmed)
		if minIndent == -1 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent <= 0 {
		return stripped
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		cut := minIndent
		if cut > len(lines[i]) {
			cut = len(lines[i])
		}
		lines[i] = "  " + lines[i][cut:]
	}
	return strings.Join(lines, "\n")
}

// stripDestructureDefaults removes "= expr" defaults and "..." rest
// operators that occur inside a destructuring pattern, leaving only the
// binding shape itself (DTS syntax has no room for destructuring defaults
// in a parameter position).
func stripDestructureDefaults(text string) string {
	var b strings.Builder
	depth := 0
	i := 0
	for i < len(text) {
		ch := text[i]
		switch ch {
		case '{', '[':
			depth++
			b.WriteByte(ch)
		case '}', ']':
			depth--
			b.WriteByte(ch)
		case '"', '\'', '`':
			start := i
			i++
			for i < len(text) && text[i] != ch {
				if text[i] == '\\' {
					i++
				}
				i++
			}
			if i < len(text) {
				i++
			}
			b.WriteString(text[start:i])
			continue
		case '.':
			if strings.HasPrefix(text[i:], "...") {
				i += 3
				continue
			}
			b.WriteByte(ch)
		case '=':
			// Skip the default expression up to the next top-level "," or
			// closing bracket.
			i++
			innerDepth := 0
			for i < len(text) {
				switch text[i] {
				case '{', '[', '(':
					innerDepth++
				case '}', ']', ')':
					if innerDepth == 0 {
						goto doneDefault
					}
					innerDepth--
				case ',':
					if innerDepth == 0 {
						goto doneDefault
					}
				}
				i++
			}
		doneDefault:
			continue
		default:
			b.WriteByte(ch)
		}
		i++
	}
	return b.String()
}
