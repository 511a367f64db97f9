// Package sqlgen generates the relational schema of a diagram as MySQL DDL.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/tordrt/umlgen/internal/generator"
	"github.com/tordrt/umlgen/internal/naming"
	"github.com/tordrt/umlgen/internal/resolver"
	"github.com/tordrt/umlgen/internal/schema"
	"github.com/tordrt/umlgen/internal/typemap"
)

const (
	idColumn = "id"
	keyType  = "BIGINT"
	// maxIdentifier is the MySQL identifier length limit.
	maxIdentifier = 64
)

// BuildSchema derives the relational model: one table per class with parents
// before children, then one table per join construct.
func BuildSchema(in *generator.Input) *schema.Schema {
	s := &schema.Schema{}

	for _, name := range in.Resolved.ParentFirst() {
		e, ok := in.Entity(name)
		if !ok {
			continue
		}
		s.Tables = append(s.Tables, classTable(e))
	}

	for _, j := range in.Resolved.Joins {
		s.Tables = append(s.Tables, joinTable(j))
	}

	for _, ext := range in.Resolved.Extends {
		if v, ok := inheritanceView(s, ext); ok {
			s.Views = append(s.Views, v)
		}
	}

	return s
}

func classTable(e generator.Entity) schema.Table {
	t := schema.Table{
		Name:       e.Table,
		Source:     e.Class.Name,
		PrimaryKey: []string{idColumn},
		Columns: []schema.Column{
			{Name: idColumn, Type: keyType, AutoIncrement: true},
		},
	}

	if e.Parent != "" {
		parentTable := naming.TableName(e.Parent)
		col := generator.ParentKeyColumn(e.Parent)
		t.Columns = append(t.Columns, schema.Column{Name: col, Type: keyType, IsUnique: true, Comment: "IS-A " + e.Parent})
		t.Relations = append(t.Relations, schema.Relation{
			Name:         constraintName("fk", t.Name, col),
			SourceColumn: col,
			TargetTable:  parentTable,
			TargetColumn: idColumn,
			Cardinality:  schema.OneToOne,
			OnDelete:     string(resolver.Cascade),
		})
	}

	for _, f := range e.Fields {
		// the resolver warns about an attribute shadowing the parent key
		if _, taken := t.Column(f.Column); taken {
			continue
		}
		t.Columns = append(t.Columns, schema.Column{
			Name:     f.Column,
			Type:     typemap.Map(typemap.SQL, f.UMLType),
			Nullable: true,
		})
	}

	for _, ref := range e.References {
		col := ref.Column()
		cardinality := schema.ManyToOne
		if ref.OneToOne {
			cardinality = schema.OneToOne
		}
		t.Columns = append(t.Columns, schema.Column{
			Name:     col,
			Type:     keyType,
			Nullable: !ref.Required,
			IsUnique: ref.OneToOne,
			Comment:  fmt.Sprintf("%s %s", ref.Kind, ref.Related),
		})
		t.Relations = append(t.Relations, schema.Relation{
			Name:         constraintName("fk", t.Name, col),
			SourceColumn: col,
			TargetTable:  naming.TableName(ref.Related),
			TargetColumn: idColumn,
			Cardinality:  cardinality,
			OnDelete:     string(ref.OnDelete),
		})
	}

	t.Indexes = foreignKeyIndexes(t)
	return t
}

func joinTable(j resolver.JoinConstruct) schema.Table {
	t := schema.Table{
		Name:       j.Name,
		Source:     j.ClassName(),
		PrimaryKey: []string{j.LeftColumn, j.RightColumn},
		Comment: fmt.Sprintf("Join construct for the many-to-many association between %s and %s: %s links %s and %s.",
			j.Left, j.Right, j.Name, naming.TableName(j.Left), naming.TableName(j.Right)),
		Columns: []schema.Column{
			{Name: j.LeftColumn, Type: keyType},
			{Name: j.RightColumn, Type: keyType},
		},
		Relations: []schema.Relation{
			{
				Name:         constraintName("fk", j.Name, j.LeftColumn),
				SourceColumn: j.LeftColumn,
				TargetTable:  naming.TableName(j.Left),
				TargetColumn: idColumn,
				Cardinality:  schema.ManyToOne,
				OnDelete:     string(resolver.Cascade),
			},
			{
				Name:         constraintName("fk", j.Name, j.RightColumn),
				SourceColumn: j.RightColumn,
				TargetTable:  naming.TableName(j.Right),
				TargetColumn: idColumn,
				Cardinality:  schema.ManyToOne,
				OnDelete:     string(resolver.Cascade),
			},
		},
	}
	t.Indexes = foreignKeyIndexes(t)
	return t
}

// foreignKeyIndexes indexes every foreign key column not already covered by
// a unique constraint or by the leading primary key column.
func foreignKeyIndexes(t schema.Table) []schema.Index {
	var out []schema.Index
	for _, rel := range t.Relations {
		col, ok := t.Column(rel.SourceColumn)
		if ok && col.IsUnique {
			continue
		}
		if len(t.PrimaryKey) > 0 && t.PrimaryKey[0] == rel.SourceColumn {
			continue
		}
		out = append(out, schema.Index{
			Name:    constraintName("idx", t.Name, rel.SourceColumn),
			Columns: []string{rel.SourceColumn},
		})
	}
	return out
}

// inheritanceView joins a child table to its parent so the child reads as a
// complete row.
func inheritanceView(s *schema.Schema, ext resolver.Extends) (schema.View, bool) {
	child, ok := s.Table(naming.TableName(ext.Child))
	if !ok {
		return schema.View{}, false
	}
	parent, ok := s.Table(naming.TableName(ext.Parent))
	if !ok {
		return schema.View{}, false
	}
	key := generator.ParentKeyColumn(ext.Parent)

	cols := make([]string, 0, len(child.Columns)+len(parent.Columns))
	for _, c := range child.Columns {
		cols = append(cols, "c."+quote(c.Name))
	}
	for _, c := range parent.Columns {
		if c.Name == idColumn {
			continue
		}
		if _, clash := child.Column(c.Name); clash {
			cols = append(cols, fmt.Sprintf("p.%s AS %s", quote(c.Name), quote(naming.ToSnakeCase(ext.Parent)+"_"+c.Name)))
			continue
		}
		cols = append(cols, "p."+quote(c.Name))
	}

	query := fmt.Sprintf("SELECT %s\nFROM %s c\nJOIN %s p ON p.%s = c.%s",
		strings.Join(cols, ", "), quote(child.Name), quote(parent.Name), quote(idColumn), quote(key))

	return schema.View{
		Name:    truncate("v_" + child.Name),
		Comment: fmt.Sprintf("%s IS-A %s", ext.Child, ext.Parent),
		Query:   query,
	}, true
}

func constraintName(prefix, table, column string) string {
	return truncate(prefix + "_" + table + "_" + column)
}

func truncate(name string) string {
	if len(name) <= maxIdentifier {
		return name
	}
	return name[:maxIdentifier]
}
