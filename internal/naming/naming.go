// Package naming converts identifiers between the conventions used by the
// generated artifacts. Every generator routes names through here so the same
// class or attribute always yields the same table, field, column and route.
package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// DigitPrefix is prepended to identifiers that would start with a digit.
	DigitPrefix = "n"
	// EmptyIdentifier replaces an identifier with no usable characters.
	EmptyIdentifier = "field"
	// ReservedSuffix is appended to identifiers that collide with a reserved word.
	ReservedSuffix = "_"
)

// FoldDiacritics removes combining marks: "Habitación" becomes "Habitacion".
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// StripVisibilityMarker removes a leading UML visibility marker (+ - # ~).
func StripVisibilityMarker(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && strings.ContainsRune("+-#~", rune(s[0])) {
		s = strings.TrimSpace(s[1:])
	}
	return s
}

// SplitWords breaks an identifier into words on separators, on lower-to-upper
// transitions and before the last capital of an acronym ("URLPath" -> URL, Path).
func SplitWords(s string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	rs := []rune(FoldDiacritics(StripVisibilityMarker(s)))
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 {
			prev := rs[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				flush()
			} else if unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}

// ToPascalCase renders "detalle pedido" as "DetallePedido".
func ToPascalCase(s string) string {
	words := SplitWords(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, "")
}

// ToCamelCase renders "DetallePedido" as "detallePedido".
func ToCamelCase(s string) string {
	p := ToPascalCase(s)
	if p == "" {
		return p
	}
	r := []rune(p)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// ToSnakeCase renders "DetallePedido" as "detalle_pedido".
func ToSnakeCase(s string) string {
	return joinLower(SplitWords(s), "_")
}

// ToKebabCase renders "DetallePedido" as "detalle-pedido".
func ToKebabCase(s string) string {
	return joinLower(SplitWords(s), "-")
}

// ToHuman renders "detallePedido" as "Detalle Pedido".
func ToHuman(s string) string {
	words := SplitWords(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func joinLower(words []string, sep string) string {
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return strings.Join(words, sep)
}

// Plural pluralizes the last word of an identifier.
func Plural(s string) string {
	if s == "" {
		return s
	}
	return inflection.Plural(s)
}

// Singular singularizes the last word of an identifier.
func Singular(s string) string {
	if s == "" {
		return s
	}
	return inflection.Singular(s)
}

// SanitizeIdentifier keeps letters, digits and underscores, prefixes a leading
// digit and suffixes a reserved word of the target language.
func SanitizeIdentifier(s string, reserved ReservedWords) string {
	var b strings.Builder
	for _, r := range FoldDiacritics(StripVisibilityMarker(s)) {
		if r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return EmptyIdentifier
	}
	if unicode.IsDigit(rune(out[0])) {
		out = DigitPrefix + out
	}
	if reserved.Contains(out) {
		out += ReservedSuffix
	}
	return out
}
