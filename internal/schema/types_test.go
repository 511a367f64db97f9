package schema

import (
	"testing"
)

func TestFilterTables(t *testing.T) {
	tests := []struct {
		name       string
		include    []string
		exclude    []string
		wantTables []string
	}{
		{
			name:       "exclude single table",
			exclude:    []string{"posts"},
			wantTables: []string{"users", "comments", "likes"},
		},
		{
			name:       "exclude multiple tables",
			exclude:    []string{"posts", "likes"},
			wantTables: []string{"users", "comments"},
		},
		{
			name:       "exclude non-existent table",
			exclude:    []string{"products"},
			wantTables: []string{"users", "posts", "comments", "likes"},
		},
		{
			name:       "include then exclude",
			include:    []string{"users", "posts"},
			exclude:    []string{"posts"},
			wantTables: []string{"users"},
		},
		{
			name:       "exclude all tables",
			exclude:    []string{"users", "posts", "comments", "likes"},
			wantTables: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Schema{Tables: []Table{{Name: "users"}, {Name: "posts"}, {Name: "comments"}, {Name: "likes"}}}
			s.FilterTables(tt.include, tt.exclude)

			if len(s.Tables) != len(tt.wantTables) {
				t.Fatalf("FilterTables() resulted in %d tables, want %d", len(s.Tables), len(tt.wantTables))
			}
			for i, table := range s.Tables {
				if table.Name != tt.wantTables[i] {
					t.Errorf("FilterTables() table[%d] = %s, want %s", i, table.Name, tt.wantTables[i])
				}
			}
		})
	}
}

func TestIsLinkTable(t *testing.T) {
	link := Table{
		Name:       "curso_estudiante",
		Columns:    []Column{{Name: "curso_id"}, {Name: "estudiante_id"}},
		PrimaryKey: []string{"curso_id", "estudiante_id"},
		Relations: []Relation{
			{SourceColumn: "curso_id", TargetTable: "cursos", TargetColumn: "id"},
			{SourceColumn: "estudiante_id", TargetTable: "estudiantes", TargetColumn: "id"},
		},
	}
	if !link.IsLinkTable() {
		t.Errorf("IsLinkTable() = false, want true")
	}

	withPayload := link
	withPayload.Columns = append([]Column{}, link.Columns...)
	withPayload.Columns = append(withPayload.Columns, Column{Name: "nota"})
	if withPayload.IsLinkTable() {
		t.Errorf("IsLinkTable() with extra column = true, want false")
	}

	single := Table{Name: "pedidos", Relations: link.Relations[:1]}
	if single.IsLinkTable() {
		t.Errorf("IsLinkTable() with one relation = true, want false")
	}
}

func TestIncomingRelations(t *testing.T) {
	s := &Schema{Tables: []Table{
		{Name: "usuarios"},
		{Name: "pedidos", Relations: []Relation{{SourceColumn: "usuario_id", TargetTable: "usuarios", TargetColumn: "id", Cardinality: ManyToOne}}},
	}}

	got := s.IncomingRelations("usuarios")
	if len(got) != 1 {
		t.Fatalf("IncomingRelations() returned %d, want 1", len(got))
	}
	if got[0].SourceTable != "pedidos" || got[0].SourceColumn != "usuario_id" {
		t.Errorf("IncomingRelations()[0] = %+v", got[0])
	}
}
