package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/diagram"
)

func class(name string, attrs ...string) diagram.ClassEntity {
	c := diagram.ClassEntity{Name: name, Kind: diagram.KindClass, Stereotype: diagram.StereotypeEntity}
	for _, a := range attrs {
		spec, _ := diagram.ParseAttribute(a)
		c.Attributes = append(c.Attributes, spec)
	}
	return c
}

func rel(kind diagram.RelationKind, src, srcMult, tgt, tgtMult string) diagram.Relationship {
	return diagram.Relationship{Kind: kind, SourceClass: src, SourceMultiplicity: srcMult, TargetClass: tgt, TargetMultiplicity: tgtMult}
}

func TestResolve_OneToManyOwnsForeignKey(t *testing.T) {
	d := &diagram.Diagram{
		Classes:       []diagram.ClassEntity{class("Usuario", "name: String", "email: String"), class("Pedido", "total: BigDecimal")},
		Relationships: []diagram.Relationship{rel(diagram.Association, "Usuario", "1", "Pedido", "0..*")},
	}

	r := Resolve(d, zap.NewNop())

	pedido := r.For("Pedido")
	require.Len(t, pedido.References, 1)
	ref := pedido.References[0]
	assert.Equal(t, "usuario", ref.Field)
	assert.Equal(t, "usuarioId", ref.IDField())
	assert.Equal(t, "usuario_id", ref.Column())
	assert.Equal(t, "Usuario", ref.Related)
	assert.True(t, ref.Required)
	assert.Equal(t, Restrict, ref.OnDelete)
	assert.Equal(t, "pedidos", ref.Inverse)
	assert.Empty(t, pedido.Collections)

	usuario := r.For("Usuario")
	assert.Empty(t, usuario.References)
	require.Len(t, usuario.Collections, 1)
	assert.Equal(t, "pedidos", usuario.Collections[0].Field)
	assert.Equal(t, "Pedido", usuario.Collections[0].Related)
	assert.Equal(t, "usuario", usuario.Collections[0].Inverse)
	assert.False(t, usuario.Collections[0].Cascade)

	require.Len(t, r.Resolutions, 1)
	assert.Equal(t, OneToMany, r.Resolutions[0].Cardinality)
	assert.Empty(t, r.Warnings)
}

func TestResolve_CompositionCascadesToParts(t *testing.T) {
	d := &diagram.Diagram{
		Classes:       []diagram.ClassEntity{class("Casa"), class("Habitacion")},
		Relationships: []diagram.Relationship{rel(diagram.Composition, "Casa", "1", "Habitacion", "1..*")},
	}

	r := Resolve(d, nil)

	hab := r.For("Habitacion")
	require.Len(t, hab.References, 1)
	assert.Equal(t, "casaId", hab.References[0].IDField())
	assert.True(t, hab.References[0].Required)
	assert.Equal(t, Cascade, hab.References[0].OnDelete)

	casa := r.For("Casa")
	require.Len(t, casa.Collections, 1)
	assert.Equal(t, "habitacions", casa.Collections[0].Field)
	assert.True(t, casa.Collections[0].Cascade)
}

func TestResolve_AggregationIsOptional(t *testing.T) {
	d := &diagram.Diagram{
		Classes:       []diagram.ClassEntity{class("Equipo"), class("Jugador")},
		Relationships: []diagram.Relationship{rel(diagram.Aggregation, "Equipo", "1", "Jugador", "*")},
	}

	r := Resolve(d, nil)

	ref := r.For("Jugador").References[0]
	assert.False(t, ref.Required)
	assert.Equal(t, SetNull, ref.OnDelete)
	assert.False(t, r.For("Equipo").Collections[0].Cascade)
}

func TestResolve_ManyToOneOwnsRequiredReference(t *testing.T) {
	d := &diagram.Diagram{
		Classes: []diagram.ClassEntity{class("Producto"), class("Categoria")},
		Relationships: []diagram.Relationship{
			rel(diagram.Association, "Producto", "0..*", "Categoria", "1"),
		},
	}

	r := Resolve(d, nil)

	ref := r.For("Producto").References[0]
	assert.Equal(t, "categoria", ref.Field)
	assert.True(t, ref.Required)
	assert.Equal(t, Restrict, ref.OnDelete)
	assert.Equal(t, "productos", r.For("Categoria").Collections[0].Field)
	assert.Equal(t, OneToMany, r.Resolutions[0].Cardinality)
}

func TestResolve_RangeMultiplicitiesCountAsMany(t *testing.T) {
	tests := []struct {
		name        string
		sourceMult  string
		targetMult  string
		cardinality Cardinality
		owner       string
	}{
		{name: "zero or one target", sourceMult: "1", targetMult: "0..1", cardinality: OneToMany, owner: "Perfil"},
		{name: "exactly one range target", sourceMult: "1", targetMult: "1..1", cardinality: OneToMany, owner: "Perfil"},
		{name: "zero or one source", sourceMult: "0..1", targetMult: "1", cardinality: OneToMany, owner: "Usuario"},
		{name: "ranges on both ends", sourceMult: "0..1", targetMult: "*", cardinality: ManyToMany},
		{name: "plain ones", sourceMult: "1", targetMult: "1", cardinality: OneToOne, owner: "Usuario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &diagram.Diagram{
				Classes:       []diagram.ClassEntity{class("Usuario"), class("Perfil")},
				Relationships: []diagram.Relationship{rel(diagram.Association, "Usuario", tt.sourceMult, "Perfil", tt.targetMult)},
			}

			r := Resolve(d, nil)

			require.Len(t, r.Resolutions, 1)
			res := r.Resolutions[0]
			assert.Equal(t, tt.cardinality, res.Cardinality)
			assert.Equal(t, tt.owner, res.Owner)
			if tt.cardinality == ManyToMany {
				assert.Len(t, r.Joins, 1)
				return
			}
			refs := r.For(tt.owner).References
			require.Len(t, refs, 1)
			assert.Equal(t, tt.cardinality != OneToOne, refs[0].Required)
		})
	}
}

func TestResolve_OneToOne(t *testing.T) {
	d := &diagram.Diagram{
		Classes:       []diagram.ClassEntity{class("Persona"), class("Pasaporte")},
		Relationships: []diagram.Relationship{rel(diagram.Association, "Persona", "1", "Pasaporte", "1")},
	}

	r := Resolve(d, nil)

	persona := r.For("Persona")
	require.Len(t, persona.References, 1)
	assert.Equal(t, "pasaporte", persona.References[0].Field)
	assert.False(t, persona.References[0].Required)
	assert.True(t, persona.References[0].OneToOne)
	assert.Empty(t, persona.References[0].Inverse)
	assert.Empty(t, persona.Collections)

	pasaporte := r.For("Pasaporte")
	assert.Empty(t, pasaporte.References)
	assert.Empty(t, pasaporte.Collections)
	assert.Equal(t, OneToOne, r.Resolutions[0].Cardinality)
}

func TestResolve_ManyToManyNeedsJoin(t *testing.T) {
	d := &diagram.Diagram{
		Classes:       []diagram.ClassEntity{class("Estudiante"), class("Curso")},
		Relationships: []diagram.Relationship{rel(diagram.Association, "Estudiante", "*", "Curso", "*")},
	}

	r := Resolve(d, nil)

	for _, name := range []string{"Estudiante", "Curso"} {
		cr := r.For(name)
		assert.Empty(t, cr.References, name)
		assert.Empty(t, cr.Collections, name)
	}
	require.Len(t, r.Joins, 1)
	j := r.Joins[0]
	assert.Equal(t, "curso_estudiante", j.Name)
	assert.Equal(t, "CursoEstudiante", j.ClassName())
	assert.Equal(t, "Curso", j.Left)
	assert.Equal(t, "Estudiante", j.Right)
	assert.Equal(t, "curso_id", j.LeftColumn)
	assert.Equal(t, "estudiante_id", j.RightColumn)

	require.Len(t, r.Warnings, 1)
	assert.Equal(t, diagram.WarnManyToMany, r.Warnings[0].Code)
	assert.Contains(t, r.Warnings[0].Message, "curso_estudiante")
	assert.Equal(t, ManyToMany, r.Resolutions[0].Cardinality)
}

func TestResolve_SelfManyToMany(t *testing.T) {
	d := &diagram.Diagram{
		Classes:       []diagram.ClassEntity{class("Usuario")},
		Relationships: []diagram.Relationship{rel(diagram.Association, "Usuario", "*", "Usuario", "*")},
	}

	r := Resolve(d, nil)

	require.Len(t, r.Joins, 1)
	assert.Equal(t, "usuario_usuario", r.Joins[0].Name)
	assert.Equal(t, "usuario_id", r.Joins[0].LeftColumn)
	assert.Equal(t, "related_usuario_id", r.Joins[0].RightColumn)
	assert.Equal(t, "relatedUsuario", r.Joins[0].RightField)
}

func TestResolve_CollisionTieBreak(t *testing.T) {
	d := &diagram.Diagram{
		Classes: []diagram.ClassEntity{class("Usuario"), class("Pedido")},
		Relationships: []diagram.Relationship{
			rel(diagram.Association, "Usuario", "1", "Pedido", "*"),
			rel(diagram.Composition, "Usuario", "1", "Pedido", "*"),
			{Kind: diagram.Association, SourceClass: "Usuario", SourceMultiplicity: "1", TargetClass: "Pedido", TargetMultiplicity: "*", Label: "repartidor"},
			rel(diagram.Association, "Usuario", "1", "Pedido", "*"),
		},
	}

	r := Resolve(d, nil)

	var refs []string
	for _, ref := range r.For("Pedido").References {
		refs = append(refs, ref.Field)
	}
	assert.Equal(t, []string{"usuario", "usuarioComposition", "usuarioAssociation", "usuario2"}, refs)

	var cols []string
	for _, c := range r.For("Usuario").Collections {
		cols = append(cols, c.Field)
	}
	assert.Equal(t, []string{"pedidos", "pedidosComposition", "pedidosAssociation", "pedidos2"}, cols)
}

func TestResolve_LabelTieBreak(t *testing.T) {
	d := &diagram.Diagram{
		Classes: []diagram.ClassEntity{class("Persona"), class("Vuelo")},
		Relationships: []diagram.Relationship{
			rel(diagram.Association, "Persona", "1", "Vuelo", "*"),
			rel(diagram.Association, "Persona", "1", "Vuelo", "*"),
			{Kind: diagram.Association, SourceClass: "Persona", SourceMultiplicity: "1", TargetClass: "Vuelo", TargetMultiplicity: "*", Label: "piloto"},
		},
	}

	r := Resolve(d, nil)

	refs := r.For("Vuelo").References
	require.Len(t, refs, 3)
	assert.Equal(t, "personaAssociation", refs[1].Field)
	assert.Equal(t, "piloto", refs[2].Field)
	assert.Equal(t, "pilotos", r.For("Persona").Collections[2].Field)
}

func TestResolve_AvoidsAttributeNames(t *testing.T) {
	d := &diagram.Diagram{
		Classes:       []diagram.ClassEntity{class("Cliente"), class("Factura", "clienteId: Long")},
		Relationships: []diagram.Relationship{rel(diagram.Association, "Cliente", "1", "Factura", "*")},
	}

	r := Resolve(d, nil)

	assert.Equal(t, "clienteAssociation", r.For("Factura").References[0].Field)
}

func TestResolve_SelfAssociation(t *testing.T) {
	d := &diagram.Diagram{
		Classes:       []diagram.ClassEntity{class("Empleado")},
		Relationships: []diagram.Relationship{{Kind: diagram.Association, SourceClass: "Empleado", SourceMultiplicity: "1", TargetClass: "Empleado", TargetMultiplicity: "*", Label: "jefe"}},
	}

	r := Resolve(d, nil)

	emp := r.For("Empleado")
	require.Len(t, emp.References, 1)
	require.Len(t, emp.Collections, 1)
	assert.Equal(t, "empleado", emp.References[0].Field)
	assert.True(t, emp.References[0].Required)
	assert.Equal(t, "empleados", emp.Collections[0].Field)
}

func TestResolve_Inheritance(t *testing.T) {
	d := &diagram.Diagram{
		Classes: []diagram.ClassEntity{class("Perro"), class("Animal"), class("Ser"), class("Mascota")},
		Relationships: []diagram.Relationship{
			rel(diagram.Inheritance, "Perro", "", "Animal", ""),
			rel(diagram.Inheritance, "Animal", "", "Ser", ""),
			rel(diagram.Inheritance, "Perro", "", "Mascota", ""),
			rel(diagram.Inheritance, "Ser", "", "Perro", ""),
		},
	}

	r := Resolve(d, nil)

	parent, ok := r.Parent("Perro")
	require.True(t, ok)
	assert.Equal(t, "Animal", parent)
	assert.Empty(t, r.For("Perro").References)
	assert.Equal(t, []string{"Perro"}, r.For("Animal").Children)
	require.Len(t, r.Extends, 2)

	assert.Equal(t, []string{"Ser", "Animal", "Perro", "Mascota"}, r.ParentFirst())

	require.Len(t, r.Warnings, 2)
	assert.Equal(t, diagram.WarnMultipleInheritance, r.Warnings[0].Code)
	assert.Equal(t, diagram.WarnInheritanceCycle, r.Warnings[1].Code)
}

func TestResolve_InheritanceAndReferenceToSameParent(t *testing.T) {
	extends := rel(diagram.Inheritance, "Empleado", "", "Persona", "")
	reference := rel(diagram.Association, "Empleado", "0..*", "Persona", "1")

	tests := []struct {
		name string
		rels []diagram.Relationship
	}{
		{name: "inheritance first", rels: []diagram.Relationship{extends, reference}},
		{name: "reference first", rels: []diagram.Relationship{reference, extends}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &diagram.Diagram{
				Classes:       []diagram.ClassEntity{class("Persona"), class("Empleado")},
				Relationships: tt.rels,
			}

			r := Resolve(d, nil)

			parent, ok := r.Parent("Empleado")
			require.True(t, ok)
			assert.Equal(t, "Persona", parent)

			refs := r.For("Empleado").References
			require.Len(t, refs, 1)
			assert.Equal(t, "personaAssociation", refs[0].Field)
			assert.Equal(t, "persona_association_id", refs[0].Column())
			assert.True(t, refs[0].Required)
			assert.Empty(t, r.Warnings)
		})
	}
}

func TestResolve_DanglingRelationship(t *testing.T) {
	d := &diagram.Diagram{
		Classes: []diagram.ClassEntity{class("A"), class("B")},
		Relationships: []diagram.Relationship{
			rel(diagram.Association, "A", "1", "Ghost", "*"),
			rel(diagram.Association, "A", "1", "B", "*"),
		},
	}

	r := Resolve(d, nil)

	require.Len(t, r.Warnings, 1)
	assert.Equal(t, diagram.WarnDanglingEndpoint, r.Warnings[0].Code)
	assert.Equal(t, Skipped, r.Resolutions[0].Cardinality)
	assert.Len(t, r.For("B").References, 1)
}

// Every non-inheritance, non-many-to-many relationship yields exactly one
// reference and at most one collection.
func TestResolve_OwnershipTotality(t *testing.T) {
	mults := []string{"1", "0..1", "0..*", "1..*", "1..N", "*"}
	kinds := []diagram.RelationKind{diagram.Association, diagram.Composition, diagram.Aggregation}

	for _, kind := range kinds {
		for _, sm := range mults {
			for _, tm := range mults {
				d := &diagram.Diagram{
					Classes:       []diagram.ClassEntity{class("A"), class("B")},
					Relationships: []diagram.Relationship{rel(kind, "A", sm, "B", tm)},
				}
				r := Resolve(d, nil)
				a, b := r.For("A"), r.For("B")
				refs := len(a.References) + len(b.References)
				cols := len(a.Collections) + len(b.Collections)

				bothMany := kind == diagram.Association && diagram.IsMany(sm) && diagram.IsMany(tm)
				oneToOne := kind == diagram.Association && !diagram.IsMany(sm) && !diagram.IsMany(tm)
				switch {
				case bothMany:
					assert.Zero(t, refs+cols, "%s %s-%s", kind, sm, tm)
					assert.Len(t, r.Joins, 1)
				case oneToOne:
					assert.Equal(t, 1, refs, "%s %s-%s", kind, sm, tm)
					assert.Zero(t, cols, "%s %s-%s", kind, sm, tm)
				default:
					assert.Equal(t, 1, refs, "%s %s-%s", kind, sm, tm)
					assert.Equal(t, 1, cols, "%s %s-%s", kind, sm, tm)
					assert.NotEqual(t, len(a.References), len(a.Collections), "reference and collection must land on different sides")
				}
			}
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	d := &diagram.Diagram{
		Classes: []diagram.ClassEntity{class("Usuario"), class("Pedido"), class("Curso")},
		Relationships: []diagram.Relationship{
			rel(diagram.Association, "Usuario", "1", "Pedido", "*"),
			rel(diagram.Composition, "Usuario", "1", "Pedido", "*"),
			rel(diagram.Association, "Usuario", "*", "Curso", "*"),
			rel(diagram.Association, "Curso", "*", "Usuario", "*"),
		},
	}

	first := Resolve(d, nil)
	second := Resolve(d, nil)

	assert.Equal(t, first.Classes(), second.Classes())
	assert.Equal(t, first.Joins, second.Joins)
	assert.Equal(t, "curso_usuario", first.Joins[0].Name)
	assert.Equal(t, "curso_usuario_2", first.Joins[1].Name)
}
