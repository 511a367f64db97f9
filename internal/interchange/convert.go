package interchange

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tordrt/umlgen/internal/diagram"
)

// Grid layout for classes exported without a position.
const (
	gridColumns = 4
	gridOriginX = 40
	gridOriginY = 40
	gridStepX   = 280
	gridStepY   = 240
)

// exportNamespace seeds the deterministic ids of exported documents.
var exportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://umlgen.dev/interchange"))

// Import turns a document into an editor snapshot with fresh ids.
// Relationship endpoints are matched by class id first and then by class
// name; relationships that match neither are dropped with a warning.
func Import(doc Document) (*diagram.Snapshot, []diagram.Warning) {
	snap := &diagram.Snapshot{
		Title:   strings.TrimSpace(doc.Title),
		Classes: make([]diagram.SnapshotClass, 0, len(doc.Classes)),
		Links:   make([]diagram.SnapshotLink, 0, len(doc.Relationships)),
	}
	var warnings []diagram.Warning

	byID := make(map[string]string, len(doc.Classes))
	byName := make(map[string]string, len(doc.Classes))
	for i, c := range doc.Classes {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			warnings = append(warnings, diagram.NewWarning(diagram.WarnUnnamedClass, "classes["+strconv.Itoa(i)+"]",
				"class entry has no name and was skipped"))
			continue
		}
		id := uuid.NewString()
		if c.ID != "" {
			byID[c.ID] = id
		}
		if _, taken := byName[name]; !taken {
			byName[name] = id
		}

		typ, stereotype := classType(c)
		sc := diagram.SnapshotClass{
			ID:         id,
			Name:       name,
			Type:       typ,
			Stereotype: stereotype,
			Attributes: append([]string{}, c.Attributes...),
			Methods:    append([]string{}, c.Methods...),
		}
		if c.Position != nil {
			p := *c.Position
			sc.Position = &p
		}
		snap.Classes = append(snap.Classes, sc)
	}

	resolve := func(ref string) (string, bool) {
		ref = strings.TrimSpace(ref)
		if id, ok := byID[ref]; ok {
			return id, true
		}
		id, ok := byName[ref]
		return id, ok
	}

	for i, r := range doc.Relationships {
		subject := r.ID
		if subject == "" {
			subject = "relationships[" + strconv.Itoa(i) + "]"
		}
		source, okSource := resolve(r.From)
		target, okTarget := resolve(r.To)
		if !okSource || !okTarget {
			warnings = append(warnings, diagram.NewWarning(diagram.WarnDanglingEndpoint, subject,
				"relationship %q -> %q does not connect two known classes and was dropped", r.From, r.To))
			continue
		}
		snap.Links = append(snap.Links, diagram.SnapshotLink{
			ID:                 uuid.NewString(),
			SourceID:           source,
			TargetID:           target,
			Kind:               r.Kind,
			SourceMultiplicity: r.SourceMultiplicity,
			TargetMultiplicity: r.TargetMultiplicity,
			Label:              r.Label,
		})
	}
	return snap, warnings
}

// classType reads the element type. Documents often put a stereotype in the
// type field ("service"); such classes become plain classes carrying it.
func classType(c ClassDoc) (typ, stereotype string) {
	stereotype = c.Stereotype
	if _, ok := diagram.ParseClassKind(c.Type); ok {
		return c.Type, stereotype
	}
	if stereotype == "" && c.Type != "" {
		if st, known := diagram.ParseStereotype(c.Type); known {
			stereotype = string(st)
		}
	}
	return string(diagram.KindClass), stereotype
}

// Export turns a diagram into a document. Ids are derived from class names so
// exporting the same diagram twice gives the same document.
func Export(d *diagram.Diagram) Document {
	doc := emptyDocument()
	doc.Title = d.Title

	for i, c := range d.Classes {
		cd := ClassDoc{
			ID:         uuid.NewSHA1(exportNamespace, []byte("class:"+c.Name)).String(),
			Name:       c.Name,
			Type:       string(c.Kind),
			Stereotype: string(c.Stereotype),
			Attributes: make([]string, 0, len(c.Attributes)),
			Methods:    make([]string, 0, len(c.Methods)),
		}
		if cd.Type == "" {
			cd.Type = string(diagram.KindClass)
		}
		for _, a := range c.Attributes {
			cd.Attributes = append(cd.Attributes, diagram.FormatAttribute(a))
		}
		for _, m := range c.Methods {
			cd.Methods = append(cd.Methods, diagram.FormatMethod(m))
		}
		if c.Position != nil {
			p := *c.Position
			cd.Position = &p
		} else {
			cd.Position = gridPosition(i)
		}
		doc.Classes = append(doc.Classes, cd)
	}

	for i, r := range d.Relationships {
		seed := fmt.Sprintf("relationship:%d:%s:%s:%s", i, r.Kind, r.SourceClass, r.TargetClass)
		doc.Relationships = append(doc.Relationships, RelationshipDoc{
			ID:                 uuid.NewSHA1(exportNamespace, []byte(seed)).String(),
			Kind:               string(r.Kind),
			From:               r.SourceClass,
			To:                 r.TargetClass,
			SourceMultiplicity: r.SourceMultiplicity,
			TargetMultiplicity: r.TargetMultiplicity,
			Label:              r.Label,
		})
	}
	return doc
}

func gridPosition(i int) *diagram.Point {
	return &diagram.Point{
		X: float64(gridOriginX + (i%gridColumns)*gridStepX),
		Y: float64(gridOriginY + (i/gridColumns)*gridStepY),
	}
}
