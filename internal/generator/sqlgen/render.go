package sqlgen

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/artifact"
	"github.com/tordrt/umlgen/internal/generator"
	"github.com/tordrt/umlgen/internal/schema"
)

// Path is where the schema script is emitted.
const Path = "database/schema.sql"

const tableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci"

// Generator emits the MySQL schema script.
type Generator struct{}

// New returns the schema generator.
func New() *Generator {
	return &Generator{}
}

// Target implements generator.Generator.
func (g *Generator) Target() string {
	return generator.TargetSchema
}

// Generate implements generator.Generator.
func (g *Generator) Generate(ctx context.Context, in *generator.Input) (*artifact.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := in.Log("sqlgen")

	s := BuildSchema(in)
	b := artifact.NewBundle(g.Target())
	b.Add(Path, Render(s, in.Project.Name))

	log.Debug("schema generated",
		zap.Int("tables", len(s.Tables)),
		zap.Int("views", len(s.Views)))
	return b, nil
}

// Render writes the schema as a MySQL 8 script. Foreign keys are added after
// every table exists so table order never matters for loading.
func Render(s *schema.Schema, project string) string {
	var sb strings.Builder

	if project != "" {
		sb.WriteString(fmt.Sprintf("-- Schema for %s\n", project))
	}
	sb.WriteString("-- Dialect: MySQL 8.0\n\n")
	sb.WriteString("SET FOREIGN_KEY_CHECKS = 0;\n")
	sb.WriteString("START TRANSACTION;\n\n")

	for i := range s.Tables {
		writeTable(&sb, &s.Tables[i])
	}

	var constraints []string
	for _, t := range s.Tables {
		for _, rel := range t.Relations {
			constraints = append(constraints, foreignKey(t.Name, rel))
		}
	}
	if len(constraints) > 0 {
		sb.WriteString("-- Foreign keys\n")
		for _, c := range constraints {
			sb.WriteString(c)
		}
		sb.WriteString("\n")
	}

	var indexes []string
	for _, t := range s.Tables {
		for _, idx := range t.Indexes {
			indexes = append(indexes, createIndex(t.Name, idx))
		}
	}
	if len(indexes) > 0 {
		sb.WriteString("-- Indexes\n")
		for _, idx := range indexes {
			sb.WriteString(idx)
		}
		sb.WriteString("\n")
	}

	for _, v := range s.Views {
		if v.Comment != "" {
			sb.WriteString(fmt.Sprintf("-- %s\n", v.Comment))
		}
		sb.WriteString(fmt.Sprintf("CREATE OR REPLACE VIEW %s AS\n%s;\n\n", quote(v.Name), v.Query))
	}

	sb.WriteString("SET FOREIGN_KEY_CHECKS = 1;\n")
	sb.WriteString("COMMIT;\n")
	return sb.String()
}

func writeTable(sb *strings.Builder, t *schema.Table) {
	if t.Comment != "" {
		sb.WriteString(fmt.Sprintf("-- %s\n", t.Comment))
	} else if t.Source != "" {
		sb.WriteString(fmt.Sprintf("-- %s\n", t.Source))
	}
	sb.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", quote(t.Name)))

	lines := make([]string, 0, len(t.Columns)+1)
	for _, col := range t.Columns {
		lines = append(lines, "  "+columnDefinition(col))
	}
	if len(t.PrimaryKey) > 0 {
		lines = append(lines, fmt.Sprintf("  PRIMARY KEY (%s)", quoteList(t.PrimaryKey)))
	}
	sb.WriteString(strings.Join(lines, ",\n"))
	sb.WriteString(fmt.Sprintf("\n) %s;\n\n", tableOptions))
}

func columnDefinition(col schema.Column) string {
	parts := []string{quote(col.Name), col.Type}
	if col.Nullable {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}
	if col.AutoIncrement {
		parts = append(parts, "AUTO_INCREMENT")
	}
	if col.IsUnique {
		parts = append(parts, "UNIQUE")
	}
	if col.DefaultValue != nil {
		parts = append(parts, "DEFAULT "+*col.DefaultValue)
	}
	if col.Comment != "" {
		parts = append(parts, "COMMENT '"+strings.ReplaceAll(col.Comment, "'", "''")+"'")
	}
	return strings.Join(parts, " ")
}

func foreignKey(table string, rel schema.Relation) string {
	onDelete := rel.OnDelete
	if onDelete == "" {
		onDelete = "RESTRICT"
	}
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s;\n",
		quote(table), quote(rel.Name), quote(rel.SourceColumn), quote(rel.TargetTable), quote(rel.TargetColumn), onDelete)
}

func createIndex(table string, idx schema.Index) string {
	kind := "INDEX"
	if idx.IsUnique {
		kind = "UNIQUE INDEX"
	}
	return fmt.Sprintf("CREATE %s %s ON %s (%s);\n", kind, quote(idx.Name), quote(table), quoteList(idx.Columns))
}

func quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quote(n)
	}
	return strings.Join(quoted, ", ")
}
