package generator

import (
	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/naming"
	"github.com/tordrt/umlgen/internal/resolver"
)

// Field is a declared attribute in target-neutral form.
type Field struct {
	Name    string
	UMLType string
	Column  string
	Label   string
}

// Entity is the target-neutral view of one class.
type Entity struct {
	Class       *diagram.ClassEntity
	Name        string
	Var         string
	VarPlural   string
	Table       string
	Route       string
	FileStem    string
	Label       string
	Fields      []Field
	References  []resolver.Reference
	Collections []resolver.Collection
	Parent      string
	Children    []string
	Joins       []resolver.JoinConstruct
}

// IsEntity reports whether the class carries the entity stereotype.
func (e Entity) IsEntity() bool {
	return e.Class.Stereotype == diagram.StereotypeEntity
}

// Entities builds the view of every class in diagram order.
func (in *Input) Entities() []Entity {
	out := make([]Entity, 0, len(in.Diagram.Classes))
	for i := range in.Diagram.Classes {
		out = append(out, in.entity(&in.Diagram.Classes[i]))
	}
	return out
}

// Entity returns the view of the named class.
func (in *Input) Entity(name string) (Entity, bool) {
	c, ok := in.Diagram.Class(name)
	if !ok {
		return Entity{}, false
	}
	return in.entity(c), true
}

func (in *Input) entity(c *diagram.ClassEntity) Entity {
	rel := in.Resolved.For(c.Name)
	e := Entity{
		Class:       c,
		Name:        ClassName(c.Name),
		Var:         naming.FieldName(c.Name, naming.MemberReserved),
		VarPlural:   naming.SanitizeIdentifier(naming.Plural(naming.ToCamelCase(c.Name)), naming.MemberReserved),
		Table:       naming.TableName(c.Name),
		Route:       naming.RoutePath(c.Name),
		FileStem:    naming.FileName(c.Name),
		Label:       naming.ToHuman(c.Name),
		References:  rel.References,
		Collections: rel.Collections,
		Parent:      rel.Parent,
		Children:    rel.Children,
		Joins:       in.Resolved.JoinsOf(c.Name),
	}
	for _, a := range c.Attributes {
		if a.IsIdentifier() {
			continue
		}
		e.Fields = append(e.Fields, Field{
			Name:    naming.FieldName(a.Name, naming.MemberReserved),
			UMLType: a.Type,
			Column:  naming.ColumnName(a.Name),
			Label:   naming.ToHuman(a.Name),
		})
	}
	return e
}

// ParentKeyColumn is the column a child table uses to reference its parent
// row: "animal_id" for a child of Animal.
func ParentKeyColumn(parent string) string {
	return naming.ColumnName(naming.ToCamelCase(parent) + "Id")
}

// ClassName is the type name shared by the backend and mobile artifacts.
func ClassName(class string) string {
	return naming.TypeName(class, naming.MemberReserved)
}

// JoinEntity is the view of a join construct rendered as a linking entity.
type JoinEntity struct {
	Join       resolver.JoinConstruct
	Name       string
	Var        string
	Route      string
	FileStem   string
	Left       string
	Right      string
	LeftField  string
	RightField string
}

// JoinEntities returns the linking entities of every many-to-many association.
func (in *Input) JoinEntities() []JoinEntity {
	out := make([]JoinEntity, 0, len(in.Resolved.Joins))
	for _, j := range in.Resolved.Joins {
		name := naming.TypeName(j.ClassName(), naming.MemberReserved)
		out = append(out, JoinEntity{
			Join:       j,
			Name:       name,
			Var:        naming.FieldName(name, naming.MemberReserved),
			Route:      "/api/" + naming.Plural(naming.ToKebabCase(j.Name)),
			FileStem:   j.Name,
			Left:       ClassName(j.Left),
			Right:      ClassName(j.Right),
			LeftField:  j.LeftField,
			RightField: j.RightField,
		})
	}
	return out
}
