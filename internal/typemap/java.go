package typemap

import (
	"sort"
	"strings"
)

var javaImports = map[string]string{
	"BigDecimal":    "java.math.BigDecimal",
	"BigInteger":    "java.math.BigInteger",
	"LocalDate":     "java.time.LocalDate",
	"LocalDateTime": "java.time.LocalDateTime",
	"LocalTime":     "java.time.LocalTime",
	"Instant":       "java.time.Instant",
	"UUID":          "java.util.UUID",
	"List":          "java.util.List",
	"ArrayList":     "java.util.ArrayList",
	"Set":           "java.util.Set",
	"HashSet":       "java.util.HashSet",
	"Map":           "java.util.Map",
	"HashMap":       "java.util.HashMap",
	"Collection":    "java.util.Collection",
}

// JavaImports returns the sorted imports a mapped Java type needs.
func JavaImports(javaTypes ...string) []string {
	set := make(map[string]struct{})
	for _, t := range javaTypes {
		for _, ident := range strings.FieldsFunc(t, func(r rune) bool {
			return r == '<' || r == '>' || r == ',' || r == ' ' || r == '[' || r == ']'
		}) {
			if imp, ok := javaImports[ident]; ok {
				set[imp] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for imp := range set {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}
