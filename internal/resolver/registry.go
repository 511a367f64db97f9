package resolver

import (
	"strconv"

	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/naming"
)

// registry tracks the member names taken on each class so derived fields
// never collide with each other or with declared attributes.
type registry map[string]map[string]bool

func newRegistry(d *diagram.Diagram) registry {
	g := make(registry, len(d.Classes))
	for _, c := range d.Classes {
		used := map[string]bool{"id": true}
		for _, a := range c.Attributes {
			used[naming.FieldName(a.Name, naming.MemberReserved)] = true
		}
		g[c.Name] = used
	}
	return g
}

func (g registry) taken(class, name string, reference bool) bool {
	used := g[class]
	if used[name] {
		return true
	}
	return reference && used[name+"Id"]
}

func (g registry) claim(class, name string, reference bool) {
	used := g[class]
	if used == nil {
		used = make(map[string]bool)
		g[class] = used
	}
	used[name] = true
	if reference {
		used[name+"Id"] = true
	}
}

// pick returns the first free name among: the base name, the base with the
// relationship kind appended, the relationship label, the base with a number.
func (g registry) pick(class, base string, kind diagram.RelationKind, label string, reference bool) string {
	candidates := []string{base, base + naming.ToPascalCase(string(kind))}
	if label != "" {
		l := naming.FieldName(label, naming.MemberReserved)
		if !reference {
			l = naming.SanitizeIdentifier(naming.Plural(naming.ToCamelCase(label)), naming.MemberReserved)
		}
		candidates = append(candidates, l)
	}
	for _, c := range candidates {
		if !g.taken(class, c, reference) {
			g.claim(class, c, reference)
			return c
		}
	}
	for n := 2; ; n++ {
		c := base + strconv.Itoa(n)
		if !g.taken(class, c, reference) {
			g.claim(class, c, reference)
			return c
		}
	}
}
