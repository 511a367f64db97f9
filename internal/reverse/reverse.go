// Package reverse turns an introspected relational schema into an
// interchange document, so an existing database can seed a class diagram.
package reverse

import (
	"strings"

	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/interchange"
	"github.com/tordrt/umlgen/internal/naming"
	"github.com/tordrt/umlgen/internal/schema"
	"github.com/tordrt/umlgen/internal/typemap"
)

// Multiplicities written on derived associations.
const (
	one        = "1"
	zeroOrMany = "0..*"
)

// Document builds a diagram document from s. Tables become entity classes,
// foreign keys become associations and pure link tables become many-to-many
// associations. Generalization is never inferred.
func Document(s *schema.Schema, title string, logger *zap.Logger) (interchange.Document, []diagram.Warning) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("reverse")

	c := &converter{
		schema:  s,
		classes: make(map[string]string, len(s.Tables)),
		doc: interchange.Document{
			Title:         title,
			Classes:       []interchange.ClassDoc{},
			Relationships: []interchange.RelationshipDoc{},
		},
		logger: logger,
	}

	var links []*schema.Table
	for i := range s.Tables {
		t := &s.Tables[i]
		if c.isLink(t) {
			links = append(links, t)
			continue
		}
		c.class(t)
	}
	for i := range s.Tables {
		t := &s.Tables[i]
		if _, ok := c.classes[t.Name]; ok {
			c.references(t)
		}
	}
	for _, t := range links {
		c.manyToMany(t)
	}

	logger.Debug("schema converted",
		zap.Int("tables", len(s.Tables)),
		zap.Int("classes", len(c.doc.Classes)),
		zap.Int("relationships", len(c.doc.Relationships)))
	return c.doc, c.warnings
}

type converter struct {
	schema *schema.Schema
	// classes maps table names to class names.
	classes  map[string]string
	doc      interchange.Document
	warnings []diagram.Warning
	logger   *zap.Logger
}

// isLink reports whether t only joins two other tables of the schema.
func (c *converter) isLink(t *schema.Table) bool {
	if !t.IsLinkTable() {
		return false
	}
	for _, rel := range t.Relations {
		if rel.TargetTable == t.Name {
			return false
		}
		if _, ok := c.schema.Table(rel.TargetTable); !ok {
			return false
		}
	}
	return true
}

func (c *converter) class(t *schema.Table) {
	name := naming.ClassFromTable(t.Name)
	c.classes[t.Name] = name

	cd := interchange.ClassDoc{
		Name:       name,
		Type:       string(diagram.KindClass),
		Stereotype: string(diagram.StereotypeEntity),
		Attributes: []string{},
		Methods:    []string{},
	}
	for _, col := range t.Columns {
		if t.IsPrimaryKey(col.Name) {
			continue
		}
		if _, fk := t.RelationFor(col.Name); fk {
			continue
		}
		cd.Attributes = append(cd.Attributes, diagram.FormatAttribute(diagram.AttributeSpec{
			Visibility: diagram.Private,
			Name:       naming.ToCamelCase(col.Name),
			Type:       typemap.FromSQL(col.Type),
		}))
	}
	c.doc.Classes = append(c.doc.Classes, cd)
}

// references adds one association per foreign key of t. The referenced class
// is the source end, except for a unique key, where the owning table becomes
// the source of a one-to-one.
func (c *converter) references(t *schema.Table) {
	for _, rel := range t.Relations {
		target, ok := c.classes[rel.TargetTable]
		if !ok {
			c.warn(diagram.WarnDanglingEndpoint, t.Name+"."+rel.SourceColumn,
				"foreign key references table %q which is not part of the diagram", rel.TargetTable)
			continue
		}

		doc := interchange.RelationshipDoc{
			Kind:               string(diagram.Association),
			From:               target,
			To:                 c.classes[t.Name],
			SourceMultiplicity: one,
			TargetMultiplicity: zeroOrMany,
			Label:              role(rel.SourceColumn, rel.TargetTable),
		}
		if rel.Cardinality == schema.OneToOne {
			doc.From, doc.To = c.classes[t.Name], target
			doc.TargetMultiplicity = one
		}
		c.doc.Relationships = append(c.doc.Relationships, doc)
	}
}

func (c *converter) manyToMany(t *schema.Table) {
	left, right := t.Relations[0], t.Relations[1]
	c.doc.Relationships = append(c.doc.Relationships, interchange.RelationshipDoc{
		Kind:               string(diagram.Association),
		From:               c.classes[left.TargetTable],
		To:                 c.classes[right.TargetTable],
		SourceMultiplicity: zeroOrMany,
		TargetMultiplicity: zeroOrMany,
	})
	c.logger.Debug("link table read as many-to-many", zap.String("table", t.Name))
}

func (c *converter) warn(code diagram.WarningCode, subject, format string, args ...any) {
	w := diagram.NewWarning(code, subject, format, args...)
	c.warnings = append(c.warnings, w)
	c.logger.Warn(w.Message, zap.String("code", string(w.Code)), zap.String("subject", w.Subject))
}

// role names the association after its column when the column does not just
// repeat the referenced table: "author_id" -> users gives "author".
func role(column, targetTable string) string {
	base := strings.TrimSuffix(strings.ToLower(column), "_id")
	if base == "" || base == strings.ToLower(column) {
		return ""
	}
	if naming.ToSnakeCase(naming.Singular(base)) == naming.ToSnakeCase(naming.Singular(targetTable)) {
		return ""
	}
	return naming.ToCamelCase(base)
}
