package mobile

import (
	"fmt"
	"strings"

	"github.com/tordrt/umlgen/internal/generator"
	"github.com/tordrt/umlgen/internal/naming"
	"github.com/tordrt/umlgen/internal/typemap"
)

// Form input kinds.
const (
	inputText   = "text"
	inputInt    = "int"
	inputDouble = "double"
	inputBool   = "bool"
	inputDate   = "date"
)

type field struct {
	Name   string
	Type   string
	Label  string
	Decode string
	Encode string
	// Input is the form widget kind, empty when the field is not editable.
	Input string
}

type modelView struct {
	Name     string
	FileStem string
	Parent   string
	// ParentFile is the file stem of the parent model.
	ParentFile string
	Fields     []field
	// Inherited are the ancestor fields, root first, passed to super.
	Inherited []field
	Label     string
	Route     string
	Var       string
	// Title is the field shown as the list tile title.
	Title string
	// Link is set for join constructs.
	Link bool
}

// AllFields are the inherited fields followed by the own fields.
func (m modelView) AllFields() []field {
	return append(append([]field{}, m.Inherited...), m.Fields...)
}

type appView struct {
	Name    string
	Package string
	Models  []modelView
	BaseURL string
}

func dartField(name, dartType, label string) field {
	return field{
		Name:   name,
		Type:   dartType,
		Label:  label,
		Decode: decode(name, dartType),
		Encode: encode(name, dartType),
		Input:  input(dartType),
	}
}

func input(dartType string) string {
	switch dartType {
	case "String":
		return inputText
	case "int":
		return inputInt
	case "double":
		return inputDouble
	case "bool":
		return inputBool
	case "DateTime":
		return inputDate
	}
	return ""
}

// decode is the fromJson expression reading key from a json map.
func decode(key, dartType string) string {
	v := fmt.Sprintf("json['%s']", key)
	switch {
	case dartType == "String":
		return v + " as String?"
	case dartType == "int":
		return fmt.Sprintf("(%s as num?)?.toInt()", v)
	case dartType == "double":
		return fmt.Sprintf("(%s as num?)?.toDouble()", v)
	case dartType == "bool":
		return v + " as bool?"
	case dartType == "DateTime":
		return fmt.Sprintf("%s == null ? null : DateTime.tryParse(%s as String)", v, v)
	case strings.HasPrefix(dartType, "List<"):
		return fmt.Sprintf("%s == null ? null : %s.from(%s as List)", v, dartType, v)
	case strings.HasPrefix(dartType, "Set<"):
		return fmt.Sprintf("%s == null ? null : %s.from(%s as List)", v, dartType, v)
	case strings.HasPrefix(dartType, "Map<"):
		return fmt.Sprintf("%s == null ? null : %s.from(%s as Map)", v, dartType, v)
	case dartType == "dynamic":
		return v
	}
	return fmt.Sprintf("%s as %s?", v, dartType)
}

// encode is the toJson expression of a field.
func encode(name, dartType string) string {
	switch {
	case dartType == "DateTime":
		return name + "?.toIso8601String()"
	case strings.HasPrefix(dartType, "Set<"):
		return name + "?.toList()"
	}
	return name
}

func nullable(dartType string) string {
	if dartType == "dynamic" {
		return dartType
	}
	return dartType + "?"
}

type builder struct {
	in *generator.Input
}

func (b *builder) ownFields(e generator.Entity) []field {
	var out []field
	for _, f := range e.Fields {
		out = append(out, dartField(f.Name, typemap.Map(typemap.Dart, f.UMLType), f.Label))
	}
	for _, r := range e.References {
		out = append(out, dartField(r.IDField(), "int", naming.ToHuman(r.Field)))
	}
	return out
}

func (b *builder) model(e generator.Entity) modelView {
	v := modelView{
		Name:     e.Name,
		FileStem: e.FileStem,
		Fields:   b.ownFields(e),
		Label:    e.Label,
		Route:    e.Route,
		Var:      e.Var,
	}

	if e.Parent != "" {
		v.Parent = generator.ClassName(e.Parent)
		v.ParentFile = naming.FileName(e.Parent)

		var chain [][]field
		seen := map[string]bool{e.Class.Name: true}
		for p := e.Parent; p != "" && !seen[p]; {
			seen[p] = true
			pe, ok := b.in.Entity(p)
			if !ok {
				break
			}
			chain = append([][]field{b.ownFields(pe)}, chain...)
			p = pe.Parent
		}
		for _, fs := range chain {
			v.Inherited = append(v.Inherited, fs...)
		}
	}

	v.Title = "id"
	for _, f := range v.AllFields() {
		if f.Type == "String" {
			v.Title = f.Name
			break
		}
	}
	return v
}

func (b *builder) link(j generator.JoinEntity) modelView {
	return modelView{
		Name:     j.Name,
		FileStem: j.FileStem,
		Route:    j.Route,
		Var:      j.Var,
		Label:    naming.ToHuman(j.Name),
		Link:     true,
		Title:    j.LeftField + "Id",
		Fields: []field{
			dartField(j.LeftField+"Id", "int", naming.ToHuman(j.LeftField)),
			dartField(j.RightField+"Id", "int", naming.ToHuman(j.RightField)),
		},
	}
}
