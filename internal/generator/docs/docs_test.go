package docs

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/generator/gentest"
	"github.com/tordrt/umlgen/internal/schema"
)

func generate(t *testing.T, format string, d *diagram.Diagram) map[string]string {
	t.Helper()
	b, err := New(format).Generate(context.Background(), gentest.Input(d))
	require.NoError(t, err)
	files := make(map[string]string, len(b.Artifacts))
	for _, a := range b.Artifacts {
		files[a.Path] = a.Content
	}
	return files
}

func TestGenerate_MarkdownLayout(t *testing.T) {
	files := generate(t, FormatMarkdown, gentest.OneToMany())

	assert.Len(t, files, 4)
	overview := files["docs/_overview.md"]
	assert.Contains(t, overview, "# Tienda Online")
	assert.Contains(t, overview, "- **Pedido** «entity» (references: Usuario)")
	assert.Contains(t, overview, "- **Usuario** «entity»\n")
	assert.Less(t, bytes.Index([]byte(overview), []byte("**Pedido**")), bytes.Index([]byte(overview), []byte("**Usuario**")))

	assert.Contains(t, files["docs/database.md"], "## pedidos")
}

func TestGenerate_ClassFile(t *testing.T) {
	files := generate(t, FormatMarkdown, gentest.OneToMany())

	pedido := files["docs/pedido.md"]
	assert.Contains(t, pedido, "# Pedido\n")
	assert.Contains(t, pedido, "table `pedidos` · route `/api/pedidos`")
	assert.Contains(t, pedido, "## Attributes\n\n- `- total: BigDecimal`\n- `- fecha: LocalDate`\n")
	assert.Contains(t, pedido, "- usuario → Usuario via usuarioId (required, on delete RESTRICT)")

	usuario := files["docs/usuario.md"]
	assert.Contains(t, usuario, "- pedidos → Pedido[] (association, mapped by usuario)")
	assert.Contains(t, usuario, "## Referenced by\n\n- Pedido.usuario\n")
}

func TestGenerate_CompositionAndInheritance(t *testing.T) {
	files := generate(t, FormatMarkdown, gentest.Composition())
	assert.Contains(t, files["docs/casa.md"], "(composition, cascade, mapped by casa)")
	assert.Contains(t, files["docs/habitacion.md"], "on delete CASCADE")

	files = generate(t, FormatMarkdown, gentest.Inheritance())
	assert.Contains(t, files["docs/perro.md"], "## Generalization\n\n- extends Animal\n")
	assert.Contains(t, files["docs/animal.md"], "- specialized by Perro")
	assert.Contains(t, files["docs/database.md"], "## v_perros (view)")
}

func TestGenerate_JoinConstructs(t *testing.T) {
	files := generate(t, FormatMarkdown, gentest.ManyToMany())

	assert.Contains(t, files["docs/_overview.md"], "- **curso_estudiante** links Curso and Estudiante")
	assert.Contains(t, files["docs/curso.md"], "curso_estudiante: many-to-many with Estudiante")
	assert.Contains(t, files["docs/estudiante.md"], "curso_estudiante: many-to-many with Curso")
}

func TestGenerate_Text(t *testing.T) {
	files := generate(t, FormatText, gentest.Everything())

	assert.Contains(t, files, "docs/_overview.txt")
	svc := files["docs/notificacion_service.txt"]
	assert.Contains(t, svc, "CLASS NotificacionService <<service>>\n")
	assert.Contains(t, svc, "  METHODS:\n    + notificar(usuario: Usuario): void\n")
	assert.NotContains(t, svc, "table:")

	assert.Contains(t, files["docs/database.txt"], "TABLE usuarios (PK: id)")
}

func TestNew_DefaultsToMarkdown(t *testing.T) {
	assert.Equal(t, FormatMarkdown, New("html").Format)
	assert.Equal(t, FormatText, New(FormatText).Format)
}

func TestWriteSchema(t *testing.T) {
	def := "0"
	s := &schema.Schema{Tables: []schema.Table{
		{
			Name:       "users",
			PrimaryKey: []string{"id"},
			Columns: []schema.Column{
				{Name: "id", Type: "bigint", AutoIncrement: true},
				{Name: "email", Type: "varchar(255)", IsUnique: true},
				{Name: "role", Type: "enum", EnumValues: []string{"admin", "user"}, Nullable: true},
				{Name: "logins", Type: "int", DefaultValue: &def},
			},
			Indexes: []schema.Index{{Name: "uq_users_email", Columns: []string{"email"}, IsUnique: true}},
		},
		{
			Name:       "orders",
			PrimaryKey: []string{"id"},
			Columns: []schema.Column{
				{Name: "id", Type: "bigint"},
				{Name: "user_id", Type: "bigint", Nullable: true},
			},
			Relations: []schema.Relation{{SourceColumn: "user_id", TargetTable: "users", TargetColumn: "id", Cardinality: schema.ManyToOne, OnDelete: "SET NULL"}},
		},
	}}

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSchema(&buf, s, FormatMarkdown))
		out := buf.String()
		assert.Contains(t, out, "- **id:** bigint, PK, AUTO_INCREMENT, NOT NULL\n")
		assert.Contains(t, out, "- **role:** enum (admin|user)\n")
		assert.Contains(t, out, "- **logins:** int, NOT NULL, DEFAULT 0\n")
		assert.Contains(t, out, "- uq_users_email on (email), unique\n")
		assert.Contains(t, out, "- user_id → users.id (N:1), on delete SET NULL\n")
		assert.Contains(t, out, "### Referenced by\n\n- orders.user_id → id (N:1)\n")
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSchema(&buf, s, FormatText))
		out := buf.String()
		assert.Contains(t, out, "TABLE users (PK: id)\n  id: bigint NOT NULL\n")
		assert.Contains(t, out, "  email: varchar(255) UNIQUE NOT NULL\n")
		assert.Contains(t, out, "    user_id → users.id (N:1)\n")
		assert.Contains(t, out, "    uq_users_email (email) UNIQUE\n")
	})
}
