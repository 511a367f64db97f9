package interchange

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tordrt/umlgen/internal/apperrors"
	"github.com/tordrt/umlgen/internal/diagram"
)

// Key aliases accepted on input, checked in order.
var (
	classesKeys       = []string{"classes", "entities", "nodes", "elements"}
	relationshipsKeys = []string{"relationships", "relations", "links", "edges"}
	nameKeys          = []string{"name", "className", "label"}
	typeKeys          = []string{"type", "elementType", "classType"}
	kindKeys          = []string{"kind", "type", "relationType", "relationship"}
	fromKeys          = []string{"from", "source", "sourceClass", "sourceId"}
	toKeys            = []string{"to", "target", "targetClass", "targetId"}
	sourceMultKeys    = []string{"sourceMultiplicity", "fromMultiplicity", "sourceCardinality", "multiplicityFrom"}
	targetMultKeys    = []string{"targetMultiplicity", "toMultiplicity", "targetCardinality", "multiplicityTo"}
)

// Decode reads a document leniently. It never fails: unreadable input yields
// an empty document and a warning, and malformed entries are skipped with a
// warning.
func Decode(data []byte, format string) (Document, []diagram.Warning) {
	root, err := parse(data, format)
	if err != nil {
		return emptyDocument(), []diagram.Warning{
			diagram.NewWarning(diagram.WarnMalformedDocument, "document", "document could not be read: %v", err),
		}
	}
	d := &decoder{}
	doc := d.document(root)
	return doc, d.warnings
}

// DecodeStrict reads a document and reports the first problem as an error
// wrapping apperrors.ErrInvalidDocument.
func DecodeStrict(data []byte, format string) (Document, error) {
	root, err := parse(data, format)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidDocument, err)
	}
	d := &decoder{strict: true}
	doc := d.document(root)
	if d.err != nil {
		return Document{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidDocument, d.err)
	}
	return doc, nil
}

func emptyDocument() Document {
	return Document{Classes: []ClassDoc{}, Relationships: []RelationshipDoc{}}
}

func parse(data []byte, format string) (map[string]any, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("empty document")
	}
	var raw any
	if format == FormatYAML {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	}
	root, ok := asMap(raw)
	if !ok {
		return nil, fmt.Errorf("document root must be an object")
	}
	// Some tools wrap the document: {"diagram": {...}}.
	if inner, ok := asMap(root["diagram"]); ok && lookup(root, classesKeys) == nil {
		root = inner
	}
	return root, nil
}

type decoder struct {
	strict   bool
	warnings []diagram.Warning
	err      error
}

func (d *decoder) problem(subject, format string, args ...any) {
	w := diagram.NewWarning(diagram.WarnMalformedDocument, subject, format, args...)
	if d.strict {
		if d.err == nil {
			d.err = fmt.Errorf("%s: %s", subject, w.Message)
		}
		return
	}
	d.warnings = append(d.warnings, w)
}

func (d *decoder) document(root map[string]any) Document {
	doc := emptyDocument()
	doc.Title = str(root["title"])
	if doc.Title == "" {
		doc.Title = str(root["name"])
	}

	classes, ok := asList(lookup(root, classesKeys))
	if !ok && lookup(root, classesKeys) != nil {
		d.problem("classes", "classes must be a list")
	}
	for i, raw := range classes {
		m, ok := asMap(raw)
		if !ok {
			d.problem(fmt.Sprintf("classes[%d]", i), "class entry is not an object")
			continue
		}
		c := d.class(m)
		if c.Name == "" && d.strict {
			d.problem(fmt.Sprintf("classes[%d]", i), "class has no name")
			continue
		}
		doc.Classes = append(doc.Classes, c)
	}

	rels, ok := asList(lookup(root, relationshipsKeys))
	if !ok && lookup(root, relationshipsKeys) != nil {
		d.problem("relationships", "relationships must be a list")
	}
	for i, raw := range rels {
		m, ok := asMap(raw)
		if !ok {
			d.problem(fmt.Sprintf("relationships[%d]", i), "relationship entry is not an object")
			continue
		}
		r := RelationshipDoc{
			ID:                 str(m["id"]),
			Kind:               str(lookup(m, kindKeys)),
			From:               str(lookup(m, fromKeys)),
			To:                 str(lookup(m, toKeys)),
			SourceMultiplicity: str(lookup(m, sourceMultKeys)),
			TargetMultiplicity: str(lookup(m, targetMultKeys)),
			Label:              str(m["label"]),
		}
		if d.strict && (r.From == "" || r.To == "") {
			d.problem(fmt.Sprintf("relationships[%d]", i), "relationship needs both from and to")
		}
		doc.Relationships = append(doc.Relationships, r)
	}
	return doc
}

func (d *decoder) class(m map[string]any) ClassDoc {
	c := ClassDoc{
		ID:         str(m["id"]),
		Name:       strings.TrimSpace(str(lookup(m, nameKeys))),
		Type:       str(lookup(m, typeKeys)),
		Stereotype: str(m["stereotype"]),
		Attributes: []string{},
		Methods:    []string{},
	}
	if c.Type == "" {
		c.Type = string(diagram.KindClass)
	}

	attrs, _ := asList(m["attributes"])
	for _, raw := range attrs {
		if s := member(raw, false); s != "" {
			c.Attributes = append(c.Attributes, s)
		}
	}
	methods, _ := asList(lookup(m, []string{"methods", "operations"}))
	for _, raw := range methods {
		if s := member(raw, true); s != "" {
			c.Methods = append(c.Methods, s)
		}
	}

	if p, ok := asMap(m["position"]); ok {
		c.Position = &diagram.Point{X: num(p["x"]), Y: num(p["y"])}
	} else if m["x"] != nil || m["y"] != nil {
		c.Position = &diagram.Point{X: num(m["x"]), Y: num(m["y"])}
	}
	return c
}

// member renders a string or object member in the canonical form.
func member(raw any, method bool) string {
	m, ok := asMap(raw)
	if !ok {
		return strings.TrimSpace(str(raw))
	}
	name := strings.TrimSpace(str(m["name"]))
	if name == "" {
		return ""
	}
	vis := diagram.ParseVisibility(visibilityMarker(str(m["visibility"])))
	if !method {
		return diagram.FormatAttribute(diagram.AttributeSpec{Visibility: vis, Name: name, Type: str(m["type"])})
	}

	spec := diagram.MethodSpec{Visibility: vis, Name: name, ReturnType: str(lookup(m, []string{"returnType", "returns", "type"}))}
	params, _ := asList(m["parameters"])
	for _, p := range params {
		if pm, ok := asMap(p); ok {
			typ := str(pm["type"])
			if typ == "" {
				typ = diagram.DefaultAttributeType
			}
			spec.Parameters = append(spec.Parameters, diagram.AttributeSpec{Name: str(pm["name"]), Type: typ})
		} else if a, ok := diagram.ParseAttribute(str(p)); ok {
			spec.Parameters = append(spec.Parameters, a)
		}
	}
	return diagram.FormatMethod(spec)
}

func visibilityMarker(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "-", "private":
		return "-"
	case "#", "protected":
		return "#"
	case "~", "package":
		return "~"
	}
	return "+"
}

func lookup(m map[string]any, keys []string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// str reads strings, numbers and booleans as text.
func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func num(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	}
	return 0
}
