package interchange

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/apperrors"
	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/generator/gentest"
)

func sampleDocument() Document {
	return Document{
		Title: "Tienda Online",
		Classes: []ClassDoc{
			{ID: "u", Name: "Usuario", Type: "class", Stereotype: "entity", Attributes: []string{"- email: String", "- password: String"}, Methods: []string{}, Position: &diagram.Point{X: 10, Y: 20}},
			{ID: "p", Name: "Pedido", Type: "class", Stereotype: "entity", Attributes: []string{"+ total: BigDecimal"}, Methods: []string{"+ confirmar(): void"}, Position: &diagram.Point{X: 300, Y: 20}},
			{ID: "s", Name: "PagoService", Type: "interface", Stereotype: "service", Attributes: []string{}, Methods: []string{"+ pagar(pedido: Pedido, monto: BigDecimal): boolean"}, Position: &diagram.Point{X: 600, Y: 20}},
		},
		Relationships: []RelationshipDoc{
			{ID: "r1", Kind: "association", From: "u", To: "p", SourceMultiplicity: "1", TargetMultiplicity: "0..*"},
			{ID: "r2", Kind: "composition", From: "Pedido", To: "Usuario", SourceMultiplicity: "0..*", TargetMultiplicity: "1", Label: "owner"},
		},
	}
}

func roundTrip(t *testing.T, doc Document) Document {
	t.Helper()
	snap, warnings := Import(doc)
	require.Empty(t, warnings)
	d, warnings := diagram.Extract(snap, zap.NewNop())
	require.Empty(t, warnings)
	return Export(d)
}

// stripIDs keeps only the semantic content of a document.
func stripIDs(doc Document) Document {
	out := Document{Title: doc.Title}
	byID := make(map[string]string)
	for _, c := range doc.Classes {
		byID[c.ID] = c.Name
		c.ID = ""
		out.Classes = append(out.Classes, c)
	}
	name := func(ref string) string {
		if n, ok := byID[ref]; ok {
			return n
		}
		return ref
	}
	for _, r := range doc.Relationships {
		r.ID = ""
		r.From, r.To = name(r.From), name(r.To)
		out.Relationships = append(out.Relationships, r)
	}
	return out
}

func TestRoundTrip_PreservesContent(t *testing.T) {
	doc := sampleDocument()
	got := roundTrip(t, doc)
	assert.Equal(t, stripIDs(doc), stripIDs(got))
}

func TestRoundTrip_Idempotent(t *testing.T) {
	first := roundTrip(t, Export(gentest.Everything()))
	second := roundTrip(t, first)
	assert.Equal(t, first, second)
}

func TestExport_GridLayout(t *testing.T) {
	d := &diagram.Diagram{}
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		d.Classes = append(d.Classes, diagram.ClassEntity{Name: n, Kind: diagram.KindClass, Stereotype: diagram.StereotypeEntity})
	}
	d.Classes[1].Position = &diagram.Point{X: 5, Y: 6}

	doc := Export(d)
	assert.Equal(t, &diagram.Point{X: 40, Y: 40}, doc.Classes[0].Position)
	assert.Equal(t, &diagram.Point{X: 5, Y: 6}, doc.Classes[1].Position)
	assert.Equal(t, &diagram.Point{X: 600, Y: 40}, doc.Classes[2].Position)
	assert.Equal(t, &diagram.Point{X: 40, Y: 280}, doc.Classes[4].Position)
}

func TestExport_DeterministicIDs(t *testing.T) {
	a := Export(gentest.Everything())
	b := Export(gentest.Everything())
	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Classes[0].ID, a.Classes[1].ID)
}

func TestImport_DropsDanglingRelationships(t *testing.T) {
	doc := sampleDocument()
	doc.Relationships = append(doc.Relationships, RelationshipDoc{ID: "r3", Kind: "association", From: "Usuario", To: "Ghost"})

	snap, warnings := Import(doc)
	require.Len(t, warnings, 1)
	assert.Equal(t, diagram.WarnDanglingEndpoint, warnings[0].Code)
	assert.Equal(t, "r3", warnings[0].Subject)
	assert.Len(t, snap.Links, 2)
}

func TestImport_FreshIDs(t *testing.T) {
	snap, _ := Import(sampleDocument())
	ids := map[string]bool{}
	for _, c := range snap.Classes {
		assert.NotEqual(t, "u", c.ID)
		ids[c.ID] = true
	}
	assert.Len(t, ids, 3)
	assert.Equal(t, snap.Classes[0].ID, snap.Links[0].SourceID)
}

func TestImport_UnnamedClass(t *testing.T) {
	snap, warnings := Import(Document{Classes: []ClassDoc{{Name: "  "}, {Name: "A"}}})
	require.Len(t, warnings, 1)
	assert.Equal(t, diagram.WarnUnnamedClass, warnings[0].Code)
	assert.Len(t, snap.Classes, 1)
}

func TestClassType(t *testing.T) {
	tests := []struct {
		in              ClassDoc
		typ, stereotype string
	}{
		{ClassDoc{Type: "uml.Class"}, "uml.Class", ""},
		{ClassDoc{Type: "abstract", Stereotype: "entity"}, "abstract", "entity"},
		{ClassDoc{Type: "service"}, "class", "service"},
		{ClassDoc{Type: "table"}, "class", ""},
		{ClassDoc{}, "class", ""},
	}
	for _, tt := range tests {
		typ, st := classType(tt.in)
		assert.Equal(t, tt.typ, typ, tt.in.Type)
		assert.Equal(t, tt.stereotype, st, tt.in.Type)
	}
}

func TestDecode_Aliases(t *testing.T) {
	data := []byte(`{
  "name": "Biblioteca",
  "entities": [
    {"id": 1, "className": "Libro", "attributes": ["isbn: String", {"name": "paginas", "type": "int", "visibility": "private"}],
     "operations": [{"name": "prestar", "parameters": [{"name": "dias", "type": "int"}], "returnType": "boolean"}], "x": 10, "y": "20"},
    {"id": 2, "name": "Autor", "type": "abstract"}
  ],
  "links": [
    {"type": "aggregation", "source": 2, "target": 1, "fromMultiplicity": 1, "toMultiplicity": "0..*"}
  ]
}`)
	doc, warnings := Decode(data, FormatJSON)
	assert.Empty(t, warnings)
	assert.Equal(t, "Biblioteca", doc.Title)
	require.Len(t, doc.Classes, 2)

	libro := doc.Classes[0]
	assert.Equal(t, "1", libro.ID)
	assert.Equal(t, "Libro", libro.Name)
	assert.Equal(t, "class", libro.Type)
	assert.Equal(t, []string{"isbn: String", "- paginas: int"}, libro.Attributes)
	assert.Equal(t, []string{"+ prestar(dias: int): boolean"}, libro.Methods)
	assert.Equal(t, &diagram.Point{X: 10, Y: 20}, libro.Position)
	assert.Equal(t, "abstract", doc.Classes[1].Type)

	require.Len(t, doc.Relationships, 1)
	assert.Equal(t, RelationshipDoc{Kind: "aggregation", From: "2", To: "1", SourceMultiplicity: "1", TargetMultiplicity: "0..*"}, doc.Relationships[0])

	snap, warnings := Import(doc)
	assert.Empty(t, warnings)
	assert.Equal(t, snap.Classes[1].ID, snap.Links[0].SourceID)
}

func TestDecode_NeverFails(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"syntax", `{"classes": [`},
		{"array root", `[1, 2]`},
		{"scalar", `"hello"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, warnings := Decode([]byte(tt.data), FormatJSON)
			require.Len(t, warnings, 1)
			assert.Equal(t, diagram.WarnMalformedDocument, warnings[0].Code)
			assert.NotNil(t, doc.Classes)
			assert.Empty(t, doc.Classes)
		})
	}
}

func TestDecode_SkipsMalformedEntries(t *testing.T) {
	doc, warnings := Decode([]byte(`{"classes": ["oops", {"name": "A"}], "relationships": {"bad": true}}`), FormatJSON)
	assert.Len(t, warnings, 2)
	assert.Len(t, doc.Classes, 1)
	assert.Empty(t, doc.Relationships)
}

func TestDecodeStrict(t *testing.T) {
	_, err := DecodeStrict([]byte(`not json`), FormatJSON)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidDocument))

	_, err = DecodeStrict([]byte(`{"classes": [{"attributes": []}]}`), FormatJSON)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidDocument))

	_, err = DecodeStrict([]byte(`{"classes": [{"name": "A"}], "relationships": [{"from": "A"}]}`), FormatJSON)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidDocument))

	doc, err := DecodeStrict([]byte(`{"classes": [{"name": "A"}], "relationships": []}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Classes[0].Name)
}

func TestYAML(t *testing.T) {
	doc := sampleDocument()
	data, err := Encode(doc, FormatYAML)
	require.NoError(t, err)

	got, warnings := Decode(data, FormatYAML)
	assert.Empty(t, warnings)
	assert.Equal(t, doc, got)
}

func TestJSON(t *testing.T) {
	doc := sampleDocument()
	data, err := Encode(doc, FormatJSON)
	require.NoError(t, err)

	got, warnings := Decode(data, FormatJSON)
	assert.Empty(t, warnings)
	assert.Equal(t, doc, got)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a/diagram.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("diagram.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("diagram.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("diagram"))
}

func TestGenerator(t *testing.T) {
	in := gentest.Input(gentest.ManyToMany())

	b, err := NewGenerator(FormatYAML).Generate(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, b.Artifacts, 1)
	assert.Equal(t, "academia.uml.yaml", b.Artifacts[0].Path)

	doc, warnings := Decode([]byte(b.Artifacts[0].Content), FormatYAML)
	assert.Empty(t, warnings)
	assert.Equal(t, "Academia", doc.Title)
	assert.Len(t, doc.Classes, 2)

	b, err = NewGenerator("").Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "academia.uml.json", b.Artifacts[0].Path)
}
