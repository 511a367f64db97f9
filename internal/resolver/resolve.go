package resolver

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/naming"
)

// Resolve derives ownership for every relationship, in diagram order.
// It never fails; relationships it cannot resolve are skipped with a warning.
func Resolve(d *diagram.Diagram, logger *zap.Logger) *Resolved {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("resolver")

	r := &Resolved{
		classes:     make(map[string]*ClassRelations),
		Extends:     []Extends{},
		Joins:       []JoinConstruct{},
		Resolutions: []Resolution{},
	}
	if d == nil {
		return r
	}

	names := newRegistry(d)
	for _, c := range d.Classes {
		r.order = append(r.order, c.Name)
		r.classes[c.Name] = &ClassRelations{References: []Reference{}, Collections: []Collection{}}
	}

	warn := func(w diagram.Warning) {
		logger.Warn(w.Message, zap.String("code", string(w.Code)), zap.String("subject", w.Subject))
		r.Warnings = append(r.Warnings, w)
	}

	joinNames := make(map[string]bool)
	generalizations := r.inherit(d, names, warn)

	for i, rel := range d.Relationships {
		res := Resolution{Relation: i, Kind: rel.Kind, Source: rel.SourceClass, Target: rel.TargetClass, Cardinality: Skipped}
		subject := rel.SourceClass + "->" + rel.TargetClass

		if !d.HasClass(rel.SourceClass) || !d.HasClass(rel.TargetClass) {
			warn(diagram.NewWarning(diagram.WarnDanglingEndpoint, subject,
				"relationship %d references a missing class and was skipped", i))
			r.Resolutions = append(r.Resolutions, res)
			continue
		}

		switch rel.Kind {
		case diagram.Inheritance:
			if inherited, ok := generalizations[i]; ok {
				res = inherited
			}

		case diagram.Composition, diagram.Aggregation:
			// the source is the whole, the target the part
			composition := rel.Kind == diagram.Composition
			onDelete := SetNull
			if composition {
				onDelete = Cascade
			}
			res = r.own(names, i, rel, rel.TargetClass, rel.SourceClass, composition, onDelete, true)

		default:
			sourceMany := diagram.IsMany(rel.SourceMultiplicity)
			targetMany := diagram.IsMany(rel.TargetMultiplicity)
			switch {
			case !sourceMany && targetMany:
				res = r.own(names, i, rel, rel.TargetClass, rel.SourceClass, true, Restrict, true)
			case sourceMany && !targetMany:
				res = r.own(names, i, rel, rel.SourceClass, rel.TargetClass, true, Restrict, true)
			case !sourceMany && !targetMany:
				res = r.own(names, i, rel, rel.SourceClass, rel.TargetClass, false, SetNull, false)
			default:
				join := r.join(joinNames, i, rel)
				res.Cardinality = ManyToMany
				res.JoinName = join.Name
				warn(diagram.NewWarning(diagram.WarnManyToMany, subject,
					"many-to-many association between %s and %s needs join construct %s",
					rel.SourceClass, rel.TargetClass, join.Name))
			}
		}

		logger.Debug("resolved relationship",
			zap.Int("relation", i),
			zap.String("kind", string(rel.Kind)),
			zap.String("cardinality", string(res.Cardinality)),
			zap.String("owner", res.Owner),
			zap.String("field", res.ReferenceField))
		r.Resolutions = append(r.Resolutions, res)
	}

	return r
}

// inherit records every inheritance edge before any association is applied,
// so the parent key a child carries is claimed before a reference to the
// same parent picks its field name.
func (r *Resolved) inherit(d *diagram.Diagram, names registry, warn func(diagram.Warning)) map[int]Resolution {
	out := make(map[int]Resolution)
	for i, rel := range d.Relationships {
		if rel.Kind != diagram.Inheritance || !d.HasClass(rel.SourceClass) || !d.HasClass(rel.TargetClass) {
			continue
		}
		child, parent := rel.SourceClass, rel.TargetClass
		subject := child + "->" + parent
		switch {
		case r.wouldCycle(child, parent):
			warn(diagram.NewWarning(diagram.WarnInheritanceCycle, subject,
				"%s extends %s would close an inheritance cycle, edge skipped", child, parent))
		case r.classes[child].Parent != "":
			warn(diagram.NewWarning(diagram.WarnMultipleInheritance, subject,
				"%s already extends %s, additional parent %s skipped", child, r.classes[child].Parent, parent))
		default:
			r.classes[child].Parent = parent
			r.classes[parent].Children = append(r.classes[parent].Children, child)
			r.Extends = append(r.Extends, Extends{Child: child, Parent: parent, Relation: i})
			names.claim(child, referenceBase(parent)+"Id", false)
			if attr, ok := parentKeyCollision(d, child, parent); ok {
				warn(diagram.NewWarning(diagram.WarnNameCollision, child+"."+attr,
					"attribute %q of %s maps to the parent key column of %s and is left out of the table", attr, child, parent))
			}
			out[i] = Resolution{Relation: i, Kind: rel.Kind, Source: child, Target: parent, Cardinality: Generalization, Owner: child}
		}
	}
	return out
}

// parentKeyCollision returns the attribute of child whose column matches the
// key column child uses to reference parent.
func parentKeyCollision(d *diagram.Diagram, child, parent string) (string, bool) {
	c, ok := d.Class(child)
	if !ok {
		return "", false
	}
	key := naming.ColumnName(naming.ToCamelCase(parent) + "Id")
	for _, a := range c.Attributes {
		if naming.ColumnName(a.Name) == key {
			return a.Name, true
		}
	}
	return "", false
}

// own gives owner a reference to related and, when withCollection is set,
// gives related the inverse collection.
func (r *Resolved) own(names registry, i int, rel diagram.Relationship, owner, related string, required bool, onDelete OnDelete, withCollection bool) Resolution {
	refField := names.pick(owner, referenceBase(related), rel.Kind, rel.Label, true)
	ref := Reference{
		Field:    refField,
		Related:  related,
		Required: required,
		Kind:     rel.Kind,
		OnDelete: onDelete,
		OneToOne: !withCollection,
		Relation: i,
	}
	res := Resolution{
		Relation:       i,
		Kind:           rel.Kind,
		Source:         rel.SourceClass,
		Target:         rel.TargetClass,
		Cardinality:    OneToOne,
		Owner:          owner,
		ReferenceField: refField,
	}

	if withCollection {
		colField := names.pick(related, collectionBase(owner), rel.Kind, rel.Label, false)
		ref.Inverse = colField
		r.classes[related].Collections = append(r.classes[related].Collections, Collection{
			Field:    colField,
			Related:  owner,
			Kind:     rel.Kind,
			Cascade:  rel.Kind == diagram.Composition,
			Inverse:  refField,
			Relation: i,
		})
		res.Cardinality = OneToMany
		res.CollectionOwner = related
		res.CollectionField = colField
	}

	r.classes[owner].References = append(r.classes[owner].References, ref)
	return res
}

// join records the linking construct of a many-to-many association. The two
// classes are ordered by their snake_case names.
func (r *Resolved) join(used map[string]bool, i int, rel diagram.Relationship) JoinConstruct {
	left, right := rel.SourceClass, rel.TargetClass
	a, b := naming.ToSnakeCase(left), naming.ToSnakeCase(right)
	if b < a {
		left, right = right, left
		a, b = b, a
	}

	base := naming.SanitizeIdentifier(a+"_"+b, naming.SQLReserved)
	name := base
	if used[name] && rel.Label != "" {
		name = base + "_" + naming.ToSnakeCase(rel.Label)
	}
	for n := 2; used[name]; n++ {
		name = base + "_" + strconv.Itoa(n)
	}
	used[name] = true

	j := JoinConstruct{
		Name:        name,
		Left:        left,
		Right:       right,
		LeftField:   naming.FieldName(left, naming.MemberReserved),
		RightField:  naming.FieldName(right, naming.MemberReserved),
		LeftColumn:  a + "_id",
		RightColumn: b + "_id",
		Label:       rel.Label,
		Relation:    i,
	}
	if left == right {
		j.RightField = naming.FieldName("related "+right, naming.MemberReserved)
		j.RightColumn = "related_" + b + "_id"
	}
	r.Joins = append(r.Joins, j)
	return j
}

// wouldCycle reports whether child -> parent closes a generalization cycle.
func (r *Resolved) wouldCycle(child, parent string) bool {
	seen := make(map[string]bool)
	for p := parent; p != ""; p = r.classes[p].Parent {
		if p == child || seen[p] {
			return true
		}
		seen[p] = true
	}
	return false
}

func referenceBase(related string) string {
	return naming.FieldName(related, naming.MemberReserved)
}

func collectionBase(related string) string {
	return naming.SanitizeIdentifier(naming.Plural(naming.ToCamelCase(related)), naming.MemberReserved)
}
