package diagram

import (
	"regexp"
	"strings"
)

// DefaultAttributeType is assumed when an attribute carries no ": type" suffix.
const DefaultAttributeType = "String"

// DefaultReturnType is assumed when a method carries no return type.
const DefaultReturnType = "void"

var (
	attributePattern = regexp.MustCompile(`^([+\-#~])?\s*([^:()]+?)\s*(?::\s*(.*?))?\s*$`)
	methodPattern    = regexp.MustCompile(`^([+\-#~])?\s*([^:()]+?)\s*\((.*)\)\s*(?::\s*(.*?))?\s*$`)
)

// ParseVisibility maps a UML marker to a visibility. Unknown markers are public.
func ParseVisibility(marker string) Visibility {
	switch marker {
	case "-":
		return Private
	case "#":
		return Protected
	case "~":
		return Package
	default:
		return Public
	}
}

// ParseAttribute parses "[vis] name [: type]". It returns false when no name
// can be recovered from the input.
func ParseAttribute(raw string) (AttributeSpec, bool) {
	m := attributePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return AttributeSpec{}, false
	}
	name := strings.TrimSpace(m[2])
	if strings.Trim(name, "+-#~ ") == "" {
		return AttributeSpec{}, false
	}
	typ := strings.TrimSpace(m[3])
	if typ == "" {
		typ = DefaultAttributeType
	}
	return AttributeSpec{
		Visibility: ParseVisibility(m[1]),
		Name:       name,
		Type:       typ,
	}, true
}

// ParseMethod parses "[vis] name(params) [: returnType]". Parameters use the
// attribute grammar. A method string without parentheses is accepted and
// treated as a method with no parameters.
func ParseMethod(raw string) (MethodSpec, bool) {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "(") {
		attr, ok := ParseAttribute(s)
		if !ok {
			return MethodSpec{}, false
		}
		ret := attr.Type
		if !strings.Contains(s, ":") {
			ret = DefaultReturnType
		}
		return MethodSpec{Visibility: attr.Visibility, Name: attr.Name, ReturnType: ret}, true
	}

	m := methodPattern.FindStringSubmatch(s)
	if m == nil {
		return MethodSpec{}, false
	}
	name := strings.TrimSpace(m[2])
	if strings.Trim(name, "+-#~ ") == "" {
		return MethodSpec{}, false
	}
	ret := strings.TrimSpace(m[4])
	if ret == "" {
		ret = DefaultReturnType
	}

	var params []AttributeSpec
	for _, p := range splitTopLevel(m[3]) {
		if param, ok := ParseAttribute(p); ok {
			params = append(params, param)
		}
	}

	return MethodSpec{
		Visibility: ParseVisibility(m[1]),
		Name:       name,
		Parameters: params,
		ReturnType: ret,
	}, true
}

// IsMethodString reports whether a member string looks like an operation.
func IsMethodString(raw string) bool {
	return strings.Contains(raw, "(")
}

// FormatAttribute renders the canonical "+ name: Type" form.
func FormatAttribute(a AttributeSpec) string {
	typ := a.Type
	if typ == "" {
		typ = DefaultAttributeType
	}
	return a.Visibility.Symbol() + " " + a.Name + ": " + typ
}

// FormatMethod renders the canonical "+ name(p: T): R" form.
func FormatMethod(m MethodSpec) string {
	params := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		params = append(params, p.Name+": "+p.Type)
	}
	ret := m.ReturnType
	if ret == "" {
		ret = DefaultReturnType
	}
	return m.Visibility.Symbol() + " " + m.Name + "(" + strings.Join(params, ", ") + "): " + ret
}

// splitTopLevel splits a parameter list on commas that are not nested inside
// generic brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<', '[':
			depth++
		case '>', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}
