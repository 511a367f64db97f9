// Package gentest provides diagram fixtures for generator tests.
package gentest

import (
	"go.uber.org/zap"

	"github.com/tordrt/umlgen/internal/diagram"
	"github.com/tordrt/umlgen/internal/generator"
)

// Class builds an entity class from attribute strings such as "email: String".
func Class(name string, attrs ...string) diagram.ClassEntity {
	c := diagram.ClassEntity{Name: name, Kind: diagram.KindClass, Stereotype: diagram.StereotypeEntity}
	for _, a := range attrs {
		if spec, ok := diagram.ParseAttribute(a); ok {
			c.Attributes = append(c.Attributes, spec)
		}
	}
	return c
}

// Rel builds a relationship.
func Rel(kind diagram.RelationKind, src, srcMult, tgt, tgtMult string) diagram.Relationship {
	return diagram.Relationship{Kind: kind, SourceClass: src, SourceMultiplicity: srcMult, TargetClass: tgt, TargetMultiplicity: tgtMult}
}

// Input prepares d for generation under a fixed project name.
func Input(d *diagram.Diagram) *generator.Input {
	title := d.Title
	if title == "" {
		title = "Tienda Online"
	}
	return generator.Prepare(d, generator.NewProject(title, ""), zap.NewNop())
}

// OneToMany is a user owning many orders.
func OneToMany() *diagram.Diagram {
	return &diagram.Diagram{
		Title: "Tienda Online",
		Classes: []diagram.ClassEntity{
			Class("Usuario", "-id: Long", "-nombre: String", "-email: String", "-password: String"),
			Class("Pedido", "-total: BigDecimal", "-fecha: LocalDate"),
		},
		Relationships: []diagram.Relationship{
			Rel(diagram.Association, "Usuario", "1", "Pedido", "0..*"),
		},
	}
}

// Composition is a house composed of rooms.
func Composition() *diagram.Diagram {
	return &diagram.Diagram{
		Title: "Inmobiliaria",
		Classes: []diagram.ClassEntity{
			Class("Casa", "direccion: String"),
			Class("Habitacion", "metros: Double"),
		},
		Relationships: []diagram.Relationship{
			Rel(diagram.Composition, "Casa", "1", "Habitacion", "1..*"),
		},
	}
}

// Inheritance is a dog extending an animal, declared child first.
func Inheritance() *diagram.Diagram {
	return &diagram.Diagram{
		Title: "Veterinaria",
		Classes: []diagram.ClassEntity{
			Class("Perro", "raza: String"),
			Class("Animal", "nombre: String", "edad: Integer"),
		},
		Relationships: []diagram.Relationship{
			Rel(diagram.Inheritance, "Perro", "", "Animal", ""),
		},
	}
}

// ManyToMany is courses and students.
func ManyToMany() *diagram.Diagram {
	return &diagram.Diagram{
		Title: "Academia",
		Classes: []diagram.ClassEntity{
			Class("Curso", "titulo: String", "creditos: int"),
			Class("Estudiante", "nombre: String", "activo: boolean"),
		},
		Relationships: []diagram.Relationship{
			Rel(diagram.Association, "Curso", "0..*", "Estudiante", "1..*"),
		},
	}
}

// Everything combines every relationship kind with an authenticated user.
func Everything() *diagram.Diagram {
	d := &diagram.Diagram{
		Title: "Tienda Online",
		Classes: []diagram.ClassEntity{
			Class("Usuario", "-nombre: String", "-email: String", "-password: String"),
			Class("Pedido", "-total: BigDecimal", "-fecha: LocalDateTime", "-etiquetas: List<String>"),
			Class("LineaPedido", "-cantidad: int", "-precio: double"),
			Class("Producto", "-nombre: String", "-descripcion: Text", "-stock: Integer"),
			Class("Categoria", "-nombre: String"),
			Class("ProductoDigital", "-url: String"),
		},
		Relationships: []diagram.Relationship{
			Rel(diagram.Association, "Usuario", "1", "Pedido", "0..*"),
			Rel(diagram.Composition, "Pedido", "1", "LineaPedido", "1..*"),
			Rel(diagram.Association, "LineaPedido", "0..*", "Producto", "1"),
			Rel(diagram.Association, "Producto", "0..*", "Categoria", "0..*"),
			Rel(diagram.Inheritance, "ProductoDigital", "", "Producto", ""),
		},
	}
	svc := diagram.ClassEntity{Name: "NotificacionService", Kind: diagram.KindClass, Stereotype: diagram.StereotypeService}
	if m, ok := diagram.ParseMethod("+notificar(usuario: Usuario): void"); ok {
		svc.Methods = append(svc.Methods, m)
	}
	d.Classes = append(d.Classes, svc)
	return d
}
