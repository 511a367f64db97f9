// Package schema is the relational model shared by the DDL generator, the
// generated documentation and live database introspection.
package schema

// Cardinalities of a foreign key, read from the referencing table.
const (
	ManyToOne = "N:1"
	OneToOne  = "1:1"
)

// Schema represents a complete database schema
type Schema struct {
	Tables []Table
	Views  []View
}

// Table represents a database table
type Table struct {
	Name       string
	Columns    []Column
	Relations  []Relation
	Indexes    []Index
	PrimaryKey []string
	// Comment is emitted above the table, e.g. the join construct notice.
	Comment string
	// Source is the diagram class or join construct the table realizes.
	Source string
}

// Column represents a table column
type Column struct {
	Name          string
	Type          string
	Nullable      bool
	DefaultValue  *string
	IsUnique      bool
	AutoIncrement bool
	EnumValues    []string
	Comment       string
}

// Relation represents a foreign key relationship
type Relation struct {
	Name         string
	TargetTable  string
	TargetColumn string
	SourceColumn string
	Cardinality  string // 1:1, N:1
	OnDelete     string
}

// Index represents a database index
type Index struct {
	Name     string
	Columns  []string
	IsUnique bool
}

// View is a named read-only query.
type View struct {
	Name    string
	Comment string
	Query   string
}

// Table returns the table with the given name.
func (s *Schema) Table(name string) (*Table, bool) {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// IsPrimaryKey reports whether column is part of the primary key.
func (t *Table) IsPrimaryKey(column string) bool {
	for _, pk := range t.PrimaryKey {
		if pk == column {
			return true
		}
	}
	return false
}

// RelationFor returns the foreign key that starts at column.
func (t *Table) RelationFor(column string) (*Relation, bool) {
	for i := range t.Relations {
		if t.Relations[i].SourceColumn == column {
			return &t.Relations[i], true
		}
	}
	return nil, false
}

// IsLinkTable reports whether the table only links two other tables: exactly
// two foreign keys and no column besides them and the primary key.
func (t *Table) IsLinkTable() bool {
	if len(t.Relations) != 2 {
		return false
	}
	for _, c := range t.Columns {
		if _, ok := t.RelationFor(c.Name); ok {
			continue
		}
		if t.IsPrimaryKey(c.Name) {
			continue
		}
		return false
	}
	return true
}

// IncomingRelation represents a relationship pointing to a table
type IncomingRelation struct {
	SourceTable  string
	SourceColumn string
	TargetTable  string
	TargetColumn string
	Cardinality  string
}

// IncomingRelations finds all foreign keys pointing to tableName.
func (s *Schema) IncomingRelations(tableName string) []IncomingRelation {
	var incoming []IncomingRelation
	for _, table := range s.Tables {
		for _, rel := range table.Relations {
			if rel.TargetTable == tableName {
				incoming = append(incoming, IncomingRelation{
					SourceTable:  table.Name,
					SourceColumn: rel.SourceColumn,
					TargetTable:  rel.TargetTable,
					TargetColumn: rel.TargetColumn,
					Cardinality:  rel.Cardinality,
				})
			}
		}
	}
	return incoming
}

// FilterTables keeps the named tables (all when include is empty) and then
// drops the excluded ones.
func (s *Schema) FilterTables(include, exclude []string) {
	includeSet := toSet(include)
	excludeSet := toSet(exclude)

	filtered := make([]Table, 0, len(s.Tables))
	for _, table := range s.Tables {
		if len(includeSet) > 0 && !includeSet[table.Name] {
			continue
		}
		if excludeSet[table.Name] {
			continue
		}
		filtered = append(filtered, table)
	}
	s.Tables = filtered
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
