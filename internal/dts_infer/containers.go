package dts_infer

import "strings"

func unwrapBrackets(expr string, open, close byte) (string, bool) {
	if len(expr) < 2 || expr[0] != open || expr[len(expr)-1] != close {
		return "", false
	}
	return expr[1 : len(expr)-1], true
}

func inferArrayLiteral(expr string, opts Options) Result {
	inner, ok := unwrapBrackets(expr, '[', ']')
	if !ok {
		return Result{Type: "unknown[]"}
	}
	elems := splitTopLevelCommas(inner)
	if len(elems) == 1 && elems[0] == "" {
		elems = nil
	}

	childOpts := Options{IsConst: opts.IsConst, UnionContext: true, depth: opts.depth + 1}
	types := make([]string, 0, len(elems))
	hasAsConst := false
	allLiteral := true
	defaults := make([]string, 0, len(elems))
	defaultsOK := true
	for _, e := range elems {
		if _, wasAsConst := stripTrailingAsConst(e); wasAsConst {
			hasAsConst = true
		}
		r := inferAt(e, childOpts)
		types = append(types, r.Type)
		if !isLiteralTypeString(r.Type) {
			allLiteral = false
		}
		if r.HasDefault {
			defaults = append(defaults, r.Default)
		} else {
			defaultsOK = false
		}
	}

	result := Result{}
	if defaultsOK && len(elems) > 0 {
		result.Default = "[" + strings.Join(defaults, ", ") + "]"
		result.HasDefault = true
	} else if len(elems) == 0 {
		result.Default = "[]"
		result.HasDefault = true
	}

	switch {
	case hasAsConst || opts.IsConst:
		result.Type = "readonly [" + strings.Join(types, ", ") + "]"
	case allLiteral && len(elems) > 0 && len(elems) <= 10:
		result.Type = "readonly [" + strings.Join(types, ", ") + "]"
	case allSameType(types):
		if len(types) == 0 {
			result.Type = "unknown[]"
		} else {
			result.Type = types[0] + "[]"
		}
	default:
		result.Type = "(" + strings.Join(dedupPreserveOrder(types), " | ") + ")[]"
	}
	return result
}

func allSameType(types []string) bool {
	if len(types) == 0 {
		return false
	}
	for _, t := range types[1:] {
		if t != types[0] {
			return false
		}
	}
	return true
}

func dedupPreserveOrder(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}

// isLiteralTypeString reports whether a rendered type string is itself a
// primitive literal (as opposed to a widened keyword like "string" or a
// structural type), used to decide tuple-vs-array emission for arrays
// whose elements were not individually marked "as const".
func isLiteralTypeString(t string) bool {
	switch t {
	case "string", "number", "boolean", "bigint", "unknown", "null", "undefined", "symbol", "object":
		return false
	}
	if t == "" {
		return false
	}
	if t[0] == '"' || t[0] == '\'' || t[0] == '`' {
		return true
	}
	if isDigit(t[0]) || (t[0] == '-' && len(t) > 1 && isDigit(t[1])) {
		return true
	}
	if t == "true" || t == "false" {
		return true
	}
	return false
}

func inferObjectLiteral(expr string, opts Options) Result {
	inner, ok := unwrapBrackets(expr, '{', '}')
	if !ok {
		return Result{Type: "Record<string, unknown>"}
	}
	props := splitTopLevelCommas(inner)

	var fieldLines []string
	var defaultLines []string
	defaultsOK := true
	any := false
	for _, p := range props {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		any = true
		key, valueType, valueDefault, hasDefault, isMethod := inferObjectProperty(p, opts)
		if isMethod {
			fieldLines = append(fieldLines, key+": "+valueType+";")
			defaultsOK = false
			continue
		}
		fieldLines = append(fieldLines, key+": "+valueType+";")
		if hasDefault {
			defaultLines = append(defaultLines, key+": "+valueDefault)
		} else {
			defaultsOK = false
		}
	}

	if !any {
		return Result{Type: "Record<string, unknown>", Default: "{}", HasDefault: true}
	}

	result := Result{Type: "{\n  " + strings.Join(fieldLines, "\n  ") + "\n}"}
	if defaultsOK {
		result.Default = "{ " + strings.Join(defaultLines, ", ") + " }"
		result.HasDefault = true
	}
	return result
}

// inferObjectProperty parses one "key: value" or "name(params) {...}"
// member of an object literal. Shorthand properties ("{ x }") and computed
// keys fall back to the object-literal subtree's invariant: a value that
// is a bare identifier reference is a runtime expression, not a type, so it
// infers to unknown.
func inferObjectProperty(prop string, opts Options) (key, valueType, valueDefault string, hasDefault, isMethod bool) {
	keyText, rest, found := splitPropertyKey(prop)
	if !found {
		// Shorthand property: the whole thing is the (identifier) key and
		// also the runtime value reference.
		return renderKey(strings.TrimSpace(prop)), "unknown", "", false, false
	}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "(") || isGenericMethodHead(rest) {
		sig := renderMethodSignature(rest)
		return renderKey(keyText), sig, "", false, true
	}

	childOpts := Options{IsConst: true, depth: opts.depth + 1}
	r := inferAt(rest, childOpts)
	return renderKey(keyText), r.Type, r.Default, r.HasDefault, false
}

func isGenericMethodHead(rest string) bool {
	return strings.HasPrefix(rest, "<") && strings.Contains(rest, "(")
}

// splitPropertyKey finds the top-level ": " (or the bare "(" that begins a
// method shorthand) separating an object literal property's key from its
// value, returning found=false for a shorthand property with no separator.
func splitPropertyKey(prop string) (key, rest string, found bool) {
	i := 0
	// Quoted key.
	if i < len(prop) && (prop[i] == '"' || prop[i] == '\'') {
		end := skipStringLiteral(prop, i)
		key = prop[i:end]
		i = end
	} else if i < len(prop) && prop[i] == '[' {
		depth := 0
		start := i
		for i < len(prop) {
			if prop[i] == '[' {
				depth++
			} else if prop[i] == ']' {
				depth--
				if depth == 0 {
					i++
					break
				}
			}
			i++
		}
		key = prop[start:i]
	} else {
		start := i
		for i < len(prop) && prop[i] != ':' && prop[i] != '(' && prop[i] != '<' {
			i++
		}
		key = strings.TrimSpace(prop[start:i])
	}

	for i < len(prop) && (prop[i] == ' ' || prop[i] == '\t') {
		i++
	}
	if i < len(prop) && prop[i] == ':' {
		return key, prop[i+1:], true
	}
	if i < len(prop) && (prop[i] == '(' || prop[i] == '<') {
		return key, prop[i:], true
	}
	return key, "", false
}

func renderKey(key string) string {
	if key == "" {
		return key
	}
	if key[0] == '"' || key[0] == '\'' || key[0] == '[' {
		return key
	}
	return key
}
