package docs

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/umlgen/internal/schema"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Ext is the file extension of a format.
func Ext(format string) string {
	if format == FormatMarkdown {
		return ".md"
	}
	return ".txt"
}

// WriteSchema writes every table of s in the given format.
func WriteSchema(w io.Writer, s *schema.Schema, format string) error {
	if format == FormatMarkdown {
		_, _ = fmt.Fprintln(w, "# Database Schema")
		_, _ = fmt.Fprintln(w)
		for i := range s.Tables {
			writeMarkdownTable(w, &s.Tables[i], s)
		}
		for _, v := range s.Views {
			_, _ = fmt.Fprintf(w, "## %s (view)\n\n", v.Name)
			if v.Comment != "" {
				_, _ = fmt.Fprintf(w, "%s\n\n", v.Comment)
			}
			_, _ = fmt.Fprintf(w, "```sql\n%s\n```\n\n", v.Query)
		}
		return nil
	}

	for i := range s.Tables {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		writeTextTable(w, &s.Tables[i])
	}
	for _, v := range s.Views {
		_, _ = fmt.Fprintf(w, "\nVIEW %s\n", v.Name)
	}
	return nil
}

func writeMarkdownTable(w io.Writer, table *schema.Table, s *schema.Schema) {
	_, _ = fmt.Fprintf(w, "## %s\n\n", table.Name)
	if table.Comment != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", table.Comment)
	}

	_, _ = fmt.Fprintln(w, "### Columns")
	_, _ = fmt.Fprintln(w)
	for _, col := range table.Columns {
		constraintStr := constraints(col, table.IsPrimaryKey(col.Name))
		if constraintStr != "" {
			_, _ = fmt.Fprintf(w, "- **%s:** %s, %s\n", col.Name, columnType(col), constraintStr)
		} else {
			_, _ = fmt.Fprintf(w, "- **%s:** %s\n", col.Name, columnType(col))
		}
	}
	_, _ = fmt.Fprintln(w)

	if len(table.Relations) > 0 {
		_, _ = fmt.Fprintln(w, "### References")
		_, _ = fmt.Fprintln(w)
		for _, rel := range table.Relations {
			_, _ = fmt.Fprintf(w, "- %s → %s.%s (%s)", rel.SourceColumn, rel.TargetTable, rel.TargetColumn, rel.Cardinality)
			if rel.OnDelete != "" {
				_, _ = fmt.Fprintf(w, ", on delete %s", rel.OnDelete)
			}
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(table.Indexes) > 0 {
		_, _ = fmt.Fprintln(w, "### Indexes")
		_, _ = fmt.Fprintln(w)
		for _, idx := range table.Indexes {
			if idx.IsUnique {
				_, _ = fmt.Fprintf(w, "- %s on (%s), unique\n", idx.Name, strings.Join(idx.Columns, ", "))
			} else {
				_, _ = fmt.Fprintf(w, "- %s on (%s)\n", idx.Name, strings.Join(idx.Columns, ", "))
			}
		}
		_, _ = fmt.Fprintln(w)
	}

	if incoming := s.IncomingRelations(table.Name); len(incoming) > 0 {
		_, _ = fmt.Fprintln(w, "### Referenced by")
		_, _ = fmt.Fprintln(w)
		for _, rel := range incoming {
			_, _ = fmt.Fprintf(w, "- %s.%s → %s (%s)\n", rel.SourceTable, rel.SourceColumn, rel.TargetColumn, rel.Cardinality)
		}
		_, _ = fmt.Fprintln(w)
	}
}

func writeTextTable(w io.Writer, table *schema.Table) {
	pkStr := ""
	if len(table.PrimaryKey) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(table.PrimaryKey, ", "))
	}
	_, _ = fmt.Fprintf(w, "TABLE %s%s\n", table.Name, pkStr)

	for _, col := range table.Columns {
		parts := []string{col.Name + ":", columnType(col)}
		if col.IsUnique {
			parts = append(parts, "UNIQUE")
		}
		if !col.Nullable {
			parts = append(parts, "NOT NULL")
		}
		if col.DefaultValue != nil {
			parts = append(parts, fmt.Sprintf("DEFAULT %s", *col.DefaultValue))
		}
		_, _ = fmt.Fprintf(w, "  %s\n", strings.Join(parts, " "))
	}

	if len(table.Relations) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "  RELATIONS:")
		for _, rel := range table.Relations {
			_, _ = fmt.Fprintf(w, "    %s → %s.%s (%s)\n", rel.SourceColumn, rel.TargetTable, rel.TargetColumn, rel.Cardinality)
		}
	}

	if len(table.Indexes) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "  INDEXES:")
		for _, idx := range table.Indexes {
			unique := ""
			if idx.IsUnique {
				unique = " UNIQUE"
			}
			_, _ = fmt.Fprintf(w, "    %s (%s)%s\n", idx.Name, strings.Join(idx.Columns, ", "), unique)
		}
	}
}

func columnType(col schema.Column) string {
	if len(col.EnumValues) > 0 {
		return fmt.Sprintf("%s (%s)", col.Type, strings.Join(col.EnumValues, "|"))
	}
	return col.Type
}

func constraints(col schema.Column, isPK bool) string {
	var out []string
	if isPK {
		out = append(out, "PK")
	}
	if col.AutoIncrement {
		out = append(out, "AUTO_INCREMENT")
	}
	if col.IsUnique {
		out = append(out, "UNIQUE")
	}
	if !col.Nullable {
		out = append(out, "NOT NULL")
	}
	if col.DefaultValue != nil {
		out = append(out, fmt.Sprintf("DEFAULT %s", *col.DefaultValue))
	}
	return strings.Join(out, ", ")
}
