package diagram

import "strings"

// DefaultMultiplicity is used when a link carries no multiplicity.
const DefaultMultiplicity = "1"

// IsMany reduces a UML multiplicity to the many/not-many flag.
// Any value containing "*" or a ".." range is many, as is "N"; "1" and the
// empty value are single. "0..1" and "1..1" therefore count as many.
func IsMany(multiplicity string) bool {
	m := strings.TrimSpace(multiplicity)
	if m == "" {
		return false
	}
	return strings.Contains(m, "*") || strings.Contains(m, "..") || strings.EqualFold(m, "n")
}

// NormalizeMultiplicity trims the value and applies the default.
func NormalizeMultiplicity(multiplicity string) string {
	m := strings.Join(strings.Fields(multiplicity), "")
	if m == "" {
		return DefaultMultiplicity
	}
	return m
}
