package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AttributeSpec
	}{
		{"full", "+ name: String", AttributeSpec{Public, "name", "String"}},
		{"private no space", "-email:String", AttributeSpec{Private, "email", "String"}},
		{"protected", "# total : BigDecimal", AttributeSpec{Protected, "total", "BigDecimal"}},
		{"package", "~ code: int", AttributeSpec{Package, "code", "int"}},
		{"no visibility", "createdAt: Date", AttributeSpec{Public, "createdAt", "Date"}},
		{"no type", "+ nombre", AttributeSpec{Public, "nombre", DefaultAttributeType}},
		{"empty type", "- nombre:", AttributeSpec{Private, "nombre", DefaultAttributeType}},
		{"generic", "+ tags: List<String>", AttributeSpec{Public, "tags", "List<String>"}},
		{"map generic", "+ meta: Map<String, Integer>", AttributeSpec{Public, "meta", "Map<String, Integer>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAttribute(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAttribute_Rejects(t *testing.T) {
	for _, raw := range []string{"", "   ", "+", ": String", "- : int"} {
		_, ok := ParseAttribute(raw)
		assert.False(t, ok, "ParseAttribute(%q) should fail", raw)
	}
}

func TestParseMethod(t *testing.T) {
	got, ok := ParseMethod("+ calcularTotal(descuento: BigDecimal, cupon: String): BigDecimal")
	require.True(t, ok)
	assert.Equal(t, Public, got.Visibility)
	assert.Equal(t, "calcularTotal", got.Name)
	assert.Equal(t, "BigDecimal", got.ReturnType)
	require.Len(t, got.Parameters, 2)
	assert.Equal(t, AttributeSpec{Public, "descuento", "BigDecimal"}, got.Parameters[0])
	assert.Equal(t, AttributeSpec{Public, "cupon", "String"}, got.Parameters[1])

	got, ok = ParseMethod("- validar()")
	require.True(t, ok)
	assert.Equal(t, Private, got.Visibility)
	assert.Equal(t, DefaultReturnType, got.ReturnType)
	assert.Empty(t, got.Parameters)

	got, ok = ParseMethod("+ merge(a: Map<String, Integer>, b: int): void")
	require.True(t, ok)
	require.Len(t, got.Parameters, 2)
	assert.Equal(t, "Map<String, Integer>", got.Parameters[0].Type)

	got, ok = ParseMethod("+ login")
	require.True(t, ok)
	assert.Equal(t, "login", got.Name)
	assert.Equal(t, DefaultReturnType, got.ReturnType)

	_, ok = ParseMethod("+ (): void")
	assert.False(t, ok)
}

func TestFormatMembers(t *testing.T) {
	attr, ok := ParseAttribute("-email")
	require.True(t, ok)
	assert.Equal(t, "- email: String", FormatAttribute(attr))

	m, ok := ParseMethod("# buscar(id: Long): Usuario")
	require.True(t, ok)
	assert.Equal(t, "# buscar(id: Long): Usuario", FormatMethod(m))

	again, ok := ParseMethod(FormatMethod(m))
	require.True(t, ok)
	assert.Equal(t, m, again)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, AttributeSpec{Name: "id"}.IsIdentifier())
	assert.True(t, AttributeSpec{Name: "ID"}.IsIdentifier())
	assert.False(t, AttributeSpec{Name: "idCliente"}.IsIdentifier())
}
