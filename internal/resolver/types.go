// Package resolver decides, for every relationship of a diagram, which class
// owns the foreign key, which owns the collection and which relationships
// need a join construct. The decisions are shared by every generator.
package resolver

import (
	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/naming"
)

// OnDelete is the delete rule of an owned reference.
type OnDelete string

const (
	Cascade  OnDelete = "CASCADE"
	SetNull  OnDelete = "SET NULL"
	Restrict OnDelete = "RESTRICT"
)

// Cardinality is the shape of a resolved relationship.
type Cardinality string

const (
	OneToMany      Cardinality = "one_to_many"
	OneToOne       Cardinality = "one_to_one"
	ManyToMany     Cardinality = "many_to_many"
	Generalization Cardinality = "generalization"
	Skipped        Cardinality = "skipped"
)

// Reference is a foreign key owned by a class.
type Reference struct {
	// Field is the object-side name ("usuario"); the key is Field+"Id".
	Field    string               `json:"field"`
	Related  string               `json:"related"`
	Required bool                 `json:"required"`
	Kind     diagram.RelationKind `json:"kind"`
	OnDelete OnDelete             `json:"onDelete"`
	OneToOne bool                 `json:"oneToOne,omitempty"`
	// Inverse is the collection on Related that points back, empty for one-to-one.
	Inverse  string `json:"inverse,omitempty"`
	Relation int    `json:"relation"`
}

// IDField is the key field name: "usuarioId".
func (r Reference) IDField() string {
	return r.Field + "Id"
}

// Column is the key column name: "usuario_id".
func (r Reference) Column() string {
	return naming.ColumnName(r.IDField())
}

// Collection is an owned "has many" edge.
type Collection struct {
	Field   string               `json:"field"`
	Related string               `json:"related"`
	Kind    diagram.RelationKind `json:"kind"`
	// Cascade is set for compositions: deleting the owner deletes the parts.
	Cascade bool `json:"cascade"`
	// Inverse is the reference field on Related (JPA mappedBy).
	Inverse  string `json:"inverse"`
	Relation int    `json:"relation"`
}

// JoinConstruct is the synthetic linking entity of a many-to-many association.
type JoinConstruct struct {
	// Name is the snake_case table name, e.g. "curso_estudiante".
	Name        string `json:"name"`
	Left        string `json:"left"`
	Right       string `json:"right"`
	LeftField   string `json:"leftField"`
	RightField  string `json:"rightField"`
	LeftColumn  string `json:"leftColumn"`
	RightColumn string `json:"rightColumn"`
	Label       string `json:"label,omitempty"`
	Relation    int    `json:"relation"`
}

// ClassName is the PascalCase entity name of the construct.
func (j JoinConstruct) ClassName() string {
	return naming.ToPascalCase(j.Name)
}

// Involves reports whether class is one of the two linked classes.
func (j JoinConstruct) Involves(class string) bool {
	return j.Left == class || j.Right == class
}

// Extends is a generalization edge: Child IS-A Parent.
type Extends struct {
	Child    string `json:"child"`
	Parent   string `json:"parent"`
	Relation int    `json:"relation"`
}

// Resolution summarizes what happened to one relationship.
type Resolution struct {
	Relation        int                  `json:"relation"`
	Kind            diagram.RelationKind `json:"kind"`
	Source          string               `json:"source"`
	Target          string               `json:"target"`
	Cardinality     Cardinality          `json:"cardinality"`
	Owner           string               `json:"owner,omitempty"`
	ReferenceField  string               `json:"referenceField,omitempty"`
	CollectionOwner string               `json:"collectionOwner,omitempty"`
	CollectionField string               `json:"collectionField,omitempty"`
	JoinName        string               `json:"joinName,omitempty"`
}

// ClassRelations is everything a single class owns.
type ClassRelations struct {
	References  []Reference  `json:"references"`
	Collections []Collection `json:"collections"`
	Parent      string       `json:"parent,omitempty"`
	Children    []string     `json:"children,omitempty"`
}

// Resolved is the resolved relationship set of one diagram.
type Resolved struct {
	order       []string
	classes     map[string]*ClassRelations
	Extends     []Extends         `json:"extends"`
	Joins       []JoinConstruct   `json:"joins"`
	Resolutions []Resolution      `json:"resolutions"`
	Warnings    []diagram.Warning `json:"warnings,omitempty"`
}

// For returns the relations owned by class. Unknown classes own nothing.
func (r *Resolved) For(class string) ClassRelations {
	if cr, ok := r.classes[class]; ok {
		return *cr
	}
	return ClassRelations{}
}

// Parent returns the generalization parent of class.
func (r *Resolved) Parent(class string) (string, bool) {
	cr, ok := r.classes[class]
	if !ok || cr.Parent == "" {
		return "", false
	}
	return cr.Parent, true
}

// JoinsOf returns the join constructs a class takes part in.
func (r *Resolved) JoinsOf(class string) []JoinConstruct {
	var out []JoinConstruct
	for _, j := range r.Joins {
		if j.Involves(class) {
			out = append(out, j)
		}
	}
	return out
}

// ParentFirst orders the classes so every parent precedes its children,
// otherwise keeping diagram order.
func (r *Resolved) ParentFirst() []string {
	out := make([]string, 0, len(r.order))
	done := make(map[string]bool, len(r.order))
	var visit func(name string)
	visit = func(name string) {
		if done[name] {
			return
		}
		done[name] = true
		if parent, ok := r.Parent(name); ok {
			visit(parent)
		}
		out = append(out, name)
	}
	for _, name := range r.order {
		visit(name)
	}
	return out
}

// Classes returns the per-class relations in diagram order.
func (r *Resolved) Classes() []NamedClassRelations {
	out := make([]NamedClassRelations, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, NamedClassRelations{Class: name, ClassRelations: r.For(name)})
	}
	return out
}

// NamedClassRelations pairs a class name with its relations.
type NamedClassRelations struct {
	Class string `json:"class"`
	ClassRelations
}
