package diagram

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Extract reads a snapshot into the intermediate representation. It never
// fails: every structural or referential problem drops the offending element
// and is reported as a warning.
func Extract(snap *Snapshot, logger *zap.Logger) (*Diagram, []Warning) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("extractor")

	d := &Diagram{Classes: []ClassEntity{}, Relationships: []Relationship{}}
	if snap == nil {
		return d, nil
	}
	d.Title = strings.TrimSpace(snap.Title)

	var warnings []Warning
	warn := func(w Warning) {
		logger.Warn(w.Message, zap.String("code", string(w.Code)), zap.String("subject", w.Subject))
		warnings = append(warnings, w)
	}

	// element id -> class name, only for elements that became classes
	byID := make(map[string]string, len(snap.Classes))
	seen := make(map[string]bool, len(snap.Classes))

	for _, el := range snap.Classes {
		kind, ok := ParseClassKind(el.Type)
		if !ok {
			logger.Debug("ignoring non-class element", zap.String("id", el.ID), zap.String("type", el.Type))
			continue
		}
		name := strings.TrimSpace(el.Name)
		if name == "" {
			warn(NewWarning(WarnUnnamedClass, el.ID, "element %q has no class name and was skipped", el.ID))
			continue
		}
		if seen[name] {
			warn(NewWarning(WarnDuplicateClass, name, "class %q is declared more than once, keeping the first", name))
			continue
		}
		seen[name] = true
		if el.ID != "" {
			byID[el.ID] = name
		}

		stereotype, known := ParseStereotype(el.Stereotype)
		if !known {
			warn(NewWarning(WarnUnknownStereotype, name, "unknown stereotype %q, using entity", el.Stereotype))
		}

		class := ClassEntity{
			Name:       name,
			Kind:       kind,
			Stereotype: stereotype,
			Attributes: []AttributeSpec{},
			Methods:    []MethodSpec{},
		}
		if el.Position != nil {
			p := *el.Position
			class.Position = &p
		}
		for _, raw := range el.Attributes {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			attr, ok := ParseAttribute(raw)
			if !ok {
				warn(NewWarning(WarnUnparseableMember, name, "attribute %q could not be parsed", raw))
				continue
			}
			class.Attributes = append(class.Attributes, attr)
		}
		for _, raw := range el.Methods {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			method, ok := ParseMethod(raw)
			if !ok {
				warn(NewWarning(WarnUnparseableMember, name, "method %q could not be parsed", raw))
				continue
			}
			class.Methods = append(class.Methods, method)
		}
		d.Classes = append(d.Classes, class)
	}

	for i, link := range snap.Links {
		subject := link.ID
		if subject == "" {
			subject = "link#" + strconv.Itoa(i)
		}
		source, okSource := byID[link.SourceID]
		target, okTarget := byID[link.TargetID]
		if !okSource || !okTarget {
			warn(NewWarning(WarnDanglingEndpoint, subject,
				"link %s -> %s does not connect two classes and was skipped", link.SourceID, link.TargetID))
			continue
		}

		kind, known := ParseRelationKind(link.Kind)
		if !known {
			warn(NewWarning(WarnUnknownKind, subject, "unknown relationship kind %q, using association", link.Kind))
		}

		rel := Relationship{
			Kind:               kind,
			SourceClass:        source,
			TargetClass:        target,
			SourceMultiplicity: NormalizeMultiplicity(link.SourceMultiplicity),
			TargetMultiplicity: NormalizeMultiplicity(link.TargetMultiplicity),
			Label:              strings.TrimSpace(link.Label),
		}
		d.Relationships = append(d.Relationships, rel)
	}

	logger.Debug("extracted diagram",
		zap.Int("classes", len(d.Classes)),
		zap.Int("relationships", len(d.Relationships)),
		zap.Int("warnings", len(warnings)))

	return d, warnings
}

// ParseClassKind reads an element type such as "uml.Class" or "abstract".
func ParseClassKind(elementType string) (ClassKind, bool) {
	t := strings.ToLower(strings.TrimSpace(elementType))
	t = strings.TrimPrefix(t, "uml.")
	switch t {
	case "class":
		return KindClass, true
	case "interface":
		return KindInterface, true
	case "abstract", "abstractclass", "abstract_class":
		return KindAbstract, true
	}
	return "", false
}

// ParseStereotype reads a stereotype tag such as "<<service>>" or "Service".
// Empty input is an entity; unknown input is an entity and reported as unknown.
func ParseStereotype(raw string) (Stereotype, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(strings.TrimPrefix(s, "<<"), ">>")
	s = strings.TrimSuffix(strings.TrimPrefix(s, "«"), "»")
	switch Stereotype(strings.TrimSpace(s)) {
	case "", StereotypeEntity:
		return StereotypeEntity, true
	case StereotypeService:
		return StereotypeService, true
	case StereotypeRepository:
		return StereotypeRepository, true
	case StereotypeController:
		return StereotypeController, true
	case StereotypeUtility:
		return StereotypeUtility, true
	}
	return StereotypeEntity, false
}

// ParseRelationKind maps a link kind, including common aliases, to a
// relationship kind. Unknown kinds are associations.
func ParseRelationKind(raw string) (RelationKind, bool) {
	k := strings.ToLower(strings.TrimSpace(raw))
	k = strings.TrimPrefix(k, "uml.")
	switch k {
	case "association", "":
		return Association, true
	case "composition":
		return Composition, true
	case "aggregation":
		return Aggregation, true
	case "inheritance", "generalization", "extends", "realization", "implementation":
		return Inheritance, true
	}
	return Association, false
}
