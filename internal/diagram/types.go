// Package diagram holds the intermediate representation of a UML class diagram
// and the extractor that builds it from an editor snapshot.
package diagram

// Visibility is a UML member visibility.
type Visibility string

const (
	Public    Visibility = "public"
	Private   Visibility = "private"
	Protected Visibility = "protected"
	Package   Visibility = "package"
)

// Symbol returns the UML marker for the visibility.
func (v Visibility) Symbol() string {
	switch v {
	case Private:
		return "-"
	case Protected:
		return "#"
	case Package:
		return "~"
	default:
		return "+"
	}
}

// Stereotype classifies a class and steers which backend template applies.
type Stereotype string

const (
	StereotypeEntity     Stereotype = "entity"
	StereotypeService    Stereotype = "service"
	StereotypeRepository Stereotype = "repository"
	StereotypeController Stereotype = "controller"
	StereotypeUtility    Stereotype = "utility"
)

// ClassKind is the kind of graphical element a class was read from.
type ClassKind string

const (
	KindClass     ClassKind = "class"
	KindInterface ClassKind = "interface"
	KindAbstract  ClassKind = "abstract"
)

// RelationKind is the UML relationship type.
type RelationKind string

const (
	Association RelationKind = "association"
	Composition RelationKind = "composition"
	Aggregation RelationKind = "aggregation"
	Inheritance RelationKind = "inheritance"
)

// AttributeSpec is a parsed class attribute.
type AttributeSpec struct {
	Visibility Visibility `json:"visibility"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
}

// IsIdentifier reports whether the attribute is the implicit primary key.
func (a AttributeSpec) IsIdentifier() bool {
	return len(a.Name) == 2 && (a.Name[0] == 'i' || a.Name[0] == 'I') && (a.Name[1] == 'd' || a.Name[1] == 'D')
}

// MethodSpec is a parsed class operation.
type MethodSpec struct {
	Visibility Visibility      `json:"visibility"`
	Name       string          `json:"name"`
	Parameters []AttributeSpec `json:"parameters,omitempty"`
	ReturnType string          `json:"returnType"`
}

// Point is a layout hint carried through import/export.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ClassEntity is one class of the diagram.
type ClassEntity struct {
	Name       string          `json:"name"`
	Kind       ClassKind       `json:"kind"`
	Stereotype Stereotype      `json:"stereotype"`
	Attributes []AttributeSpec `json:"attributes"`
	Methods    []MethodSpec    `json:"methods"`
	Position   *Point          `json:"position,omitempty"`
}

// Relationship is one typed edge between two classes, referenced by name.
type Relationship struct {
	Kind               RelationKind `json:"kind"`
	SourceClass        string       `json:"sourceClass"`
	TargetClass        string       `json:"targetClass"`
	SourceMultiplicity string       `json:"sourceMultiplicity"`
	TargetMultiplicity string       `json:"targetMultiplicity"`
	Label              string       `json:"label,omitempty"`
}

// Diagram is the frozen intermediate representation consumed by the resolver
// and every generator. Nothing downstream mutates it.
type Diagram struct {
	Title         string         `json:"title,omitempty"`
	Classes       []ClassEntity  `json:"classes"`
	Relationships []Relationship `json:"relationships"`
}

// Class returns the class with the given name.
func (d *Diagram) Class(name string) (*ClassEntity, bool) {
	for i := range d.Classes {
		if d.Classes[i].Name == name {
			return &d.Classes[i], true
		}
	}
	return nil, false
}

// HasClass reports whether a class with the given name exists.
func (d *Diagram) HasClass(name string) bool {
	_, ok := d.Class(name)
	return ok
}

// Counts returns the number of classes and relationships.
func (d *Diagram) Counts() (classes, relationships int) {
	return len(d.Classes), len(d.Relationships)
}
